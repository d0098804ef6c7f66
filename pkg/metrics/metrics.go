// Package metrics 提供 Prometheus helper，包含 HTTP 与定价业务指标
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wyfcoding/optionpricing/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 报价请求计数
	QuotesTotal prometheus.Counter
	// 被校验拒绝的报价请求计数
	QuotesRejectedTotal prometheus.Counter
	// 单次报价耗时（含两张热力图网格）
	QuoteDuration prometheus.Histogram
	// 已计算的网格单元数
	GridCellsTotal prometheus.Counter
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "optionpricing",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "optionpricing",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		// 业务指标
		QuotesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "optionpricing",
			Subsystem: serviceName,
			Name:      "quotes_total",
			Help:      "Total quote computations",
		}),
		QuotesRejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "optionpricing",
			Subsystem: serviceName,
			Name:      "quotes_rejected_total",
			Help:      "Quote requests rejected by input validation",
		}),
		QuoteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "optionpricing",
			Subsystem: serviceName,
			Name:      "quote_duration_seconds",
			Help:      "Quote computation duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		GridCellsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "optionpricing",
			Subsystem: serviceName,
			Name:      "grid_cells_total",
			Help:      "Total heatmap grid cells computed",
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.QuotesTotal,
		m.QuotesRejectedTotal,
		m.QuoteDuration,
		m.GridCellsTotal,
	}

	for _, c := range collectors {
		if err := prometheus.DefaultRegisterer.Register(c); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}

	logger.Info(context.Background(), "Metrics registered successfully")
	return nil
}

// RecordHTTPRequest 记录 HTTP 请求
func (m *Metrics) RecordHTTPRequest(duration float64) {
	m.HTTPRequestsTotal.Inc()
	m.HTTPRequestDuration.Observe(duration)
}

// RecordQuote 记录一次报价计算
func (m *Metrics) RecordQuote(duration float64, gridCells int) {
	m.QuotesTotal.Inc()
	m.QuoteDuration.Observe(duration)
	m.GridCellsTotal.Add(float64(gridCells))
}

// RecordRejected 记录一次被校验拒绝的请求
func (m *Metrics) RecordRejected() {
	m.QuotesRejectedTotal.Inc()
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) error {
	if path == "" {
		path = "/metrics"
	}

	http.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Error(context.Background(), "Failed to start Prometheus HTTP server", "error", err)
		}
	}()

	return nil
}

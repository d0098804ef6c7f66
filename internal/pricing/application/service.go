// Package application 定价服务的应用层，负责输入校验与报价编排
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	"github.com/wyfcoding/optionpricing/pkg/config"
	"github.com/wyfcoding/optionpricing/pkg/logger"
	"github.com/wyfcoding/optionpricing/pkg/metrics"
)

// ErrInvalidInput 请求参数越界，属于可预期的用户输入错误
var ErrInvalidInput = errors.New("invalid input")

// QuoteCommand 报价请求
type QuoteCommand struct {
	Spot         float64 // 标的资产价格 S
	Strike       float64 // 执行价格 K
	Maturity     float64 // 到期时间 T (年)
	RiskFreeRate float64 // 无风险利率 r
	Volatility   float64 // 波动率 σ
	SpotSteps    int     // 现货轴采样点数（0 表示使用默认值）
	VolSteps     int     // 波动率轴采样点数（0 表示使用默认值）
}

// Validate 输入边界校验
// 非正的 S/K/σ 与负的 T 在进入引擎前即被拒绝；
// σ=0 与 T=0 的退化情形由引擎内部兜底处理
func (c *QuoteCommand) Validate() error {
	if c.Spot <= 0 {
		return fmt.Errorf("%w: asset price must be positive, got %v", ErrInvalidInput, c.Spot)
	}
	if c.Strike <= 0 {
		return fmt.Errorf("%w: strike price must be positive, got %v", ErrInvalidInput, c.Strike)
	}
	if c.Maturity < 0 {
		return fmt.Errorf("%w: maturity must be non-negative, got %v", ErrInvalidInput, c.Maturity)
	}
	if c.RiskFreeRate < 0 || c.RiskFreeRate > 1 {
		return fmt.Errorf("%w: risk-free rate must be in [0, 1], got %v", ErrInvalidInput, c.RiskFreeRate)
	}
	if c.Volatility <= 0 {
		return fmt.Errorf("%w: volatility must be positive, got %v", ErrInvalidInput, c.Volatility)
	}
	if c.Volatility > 1 {
		return fmt.Errorf("%w: volatility must be in (0, 1], got %v", ErrInvalidInput, c.Volatility)
	}
	return nil
}

// PricingService 定价应用服务
// 无状态，每次请求都从零重新计算，不缓存任何结果
type PricingService struct {
	cfg     config.PricingConfig
	metrics *metrics.Metrics
}

// NewPricingService 创建定价应用服务实例
func NewPricingService(cfg config.PricingConfig, m *metrics.Metrics) *PricingService {
	return &PricingService{cfg: cfg, metrics: m}
}

// Quote 计算标量看涨/看跌价格以及两张价格敏感度热力图
func (s *PricingService) Quote(ctx context.Context, cmd QuoteCommand) (*QuoteResult, error) {
	if err := cmd.Validate(); err != nil {
		if s.metrics != nil {
			s.metrics.RecordRejected()
		}
		return nil, err
	}

	spotSteps := cmd.SpotSteps
	if spotSteps == 0 {
		spotSteps = s.cfg.SpotSteps
	}
	volSteps := cmd.VolSteps
	if volSteps == 0 {
		volSteps = s.cfg.VolSteps
	}
	if spotSteps < 2 || volSteps < 2 || spotSteps > s.cfg.MaxSteps || volSteps > s.cfg.MaxSteps {
		if s.metrics != nil {
			s.metrics.RecordRejected()
		}
		return nil, fmt.Errorf("%w: grid steps must be in [2, %d], got spot=%d vol=%d",
			ErrInvalidInput, s.cfg.MaxSteps, spotSteps, volSteps)
	}

	start := time.Now()

	base := domain.PricingInput{
		Spot:         cmd.Spot,
		Strike:       cmd.Strike,
		Maturity:     cmd.Maturity,
		RiskFreeRate: cmd.RiskFreeRate,
		Volatility:   cmd.Volatility,
		Type:         domain.OptionTypeCall,
	}

	callPrice, err := domain.Price(base)
	if err != nil {
		return nil, err
	}
	base.Type = domain.OptionTypePut
	putPrice, err := domain.Price(base)
	if err != nil {
		return nil, err
	}

	callGrid, putGrid, err := domain.BuildGrids(base, spotSteps, volSteps)
	if err != nil {
		return nil, err
	}

	callDec := decimal.NewFromFloat(callPrice).Round(2)
	putDec := decimal.NewFromFloat(putPrice).Round(2)
	result := &QuoteResult{
		CallPrice:          callDec,
		PutPrice:           putDec,
		CallPriceFormatted: "$" + callDec.StringFixed(2),
		PutPriceFormatted:  "$" + putDec.StringFixed(2),
		CallHeatmap:        toHeatmapDTO(callGrid),
		PutHeatmap:         toHeatmapDTO(putGrid),
	}

	if s.metrics != nil {
		// 每个网格单元同时计算 call 和 put
		s.metrics.RecordQuote(time.Since(start).Seconds(), spotSteps*volSteps*2)
	}
	logger.Debug(ctx, "quote computed",
		"spot", cmd.Spot,
		"strike", cmd.Strike,
		"maturity", cmd.Maturity,
		"call", result.CallPriceFormatted,
		"put", result.PutPriceFormatted,
	)

	return result, nil
}

// Package http 定价服务的 HTTP 接口
// 负责交互页面与报价 API 两个出口
package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/optionpricing/internal/pricing/application"
	"github.com/wyfcoding/optionpricing/pkg/logger"
	"github.com/wyfcoding/optionpricing/pkg/response"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PricingHandler HTTP 处理器
type PricingHandler struct {
	svc  *application.PricingService
	tmpl *template.Template
}

// NewPricingHandler 创建 HTTP 处理器实例
func NewPricingHandler(svc *application.PricingService) *PricingHandler {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
	return &PricingHandler{svc: svc, tmpl: tmpl}
}

// RegisterRoutes 注册路由
func (h *PricingHandler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(h.tmpl)
	router.GET("/", h.Index)

	api := router.Group("/api/v1/pricing")
	{
		api.POST("/quote", h.Quote)
	}
}

// pageDefaults 页面初始参数，与输入控件的默认值一致
type pageDefaults struct {
	Spot         float64
	Strike       float64
	Maturity     float64
	RiskFreeRate float64
	Volatility   float64
}

// Index 渲染交互页面
func (h *PricingHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html.tmpl", pageDefaults{
		Spot:         100.0,
		Strike:       100.0,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.2,
	})
}

// QuoteRequest 报价请求
type QuoteRequest struct {
	Spot         float64 `json:"spot" binding:"required"`
	Strike       float64 `json:"strike" binding:"required"`
	Maturity     float64 `json:"maturity"`
	RiskFreeRate float64 `json:"risk_free_rate"`
	Volatility   float64 `json:"volatility" binding:"required"`
	SpotSteps    int     `json:"spot_steps"`
	VolSteps     int     `json:"vol_steps"`
}

// Quote 计算期权价格与热力图
func (h *PricingHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := application.QuoteCommand{
		Spot:         req.Spot,
		Strike:       req.Strike,
		Maturity:     req.Maturity,
		RiskFreeRate: req.RiskFreeRate,
		Volatility:   req.Volatility,
		SpotSteps:    req.SpotSteps,
		VolSteps:     req.VolSteps,
	}

	result, err := h.svc.Quote(c.Request.Context(), cmd)
	if err != nil {
		if errors.Is(err, application.ErrInvalidInput) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error(c.Request.Context(), "Failed to compute quote", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, result)
}

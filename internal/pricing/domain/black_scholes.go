// Package domain 定价服务的领域模型
package domain

import (
	"errors"
	"fmt"
	"math"
)

// OptionType 期权类型
type OptionType string

const (
	OptionTypeCall OptionType = "CALL" // 看涨期权
	OptionTypePut  OptionType = "PUT"  // 看跌期权
)

// ErrInvalidOptionType 非法的期权类型
var ErrInvalidOptionType = errors.New("invalid option type")

// PricingInput Black-Scholes 模型输入
type PricingInput struct {
	Spot         float64    // 标的资产价格 S
	Strike       float64    // 执行价格 K
	Maturity     float64    // 到期时间 T (年)
	RiskFreeRate float64    // 无风险利率 r
	Volatility   float64    // 波动率 σ
	Type         OptionType // 期权类型
}

// Price 计算欧式期权的 Black-Scholes 价格
//
// 退化情形：T <= 0 或 σ <= 0 时返回 0.0，此时合约没有时间价值
// 也没有波动率溢价，同时避免 d1/d2 中的除零。
// 边界校验（S > 0, K > 0, T >= 0, σ >= 0）由调用方负责。
func Price(input PricingInput) (float64, error) {
	if input.Type != OptionTypeCall && input.Type != OptionTypePut {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOptionType, input.Type)
	}

	if input.Maturity <= 0 || input.Volatility <= 0 {
		return 0.0, nil
	}

	sqrtT := math.Sqrt(input.Maturity)
	d1 := (math.Log(input.Spot/input.Strike) + (input.RiskFreeRate+0.5*input.Volatility*input.Volatility)*input.Maturity) / (input.Volatility * sqrtT)
	d2 := d1 - input.Volatility*sqrtT

	discount := math.Exp(-input.RiskFreeRate * input.Maturity)
	if input.Type == OptionTypeCall {
		return input.Spot*normCdf(d1) - input.Strike*discount*normCdf(d2), nil
	}
	return input.Strike*discount*normCdf(-d2) - input.Spot*normCdf(-d1), nil
}

// normCdf 标准正态分布累积分布函数
func normCdf(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

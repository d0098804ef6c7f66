package domain

import (
	"golang.org/x/sync/errgroup"
)

// 热力图的价格轴与波动率轴相对基准输入的缩放范围
const (
	spotRangeLow  = 0.8
	spotRangeHigh = 1.2
	volRangeLow   = 0.5
	volRangeHigh  = 1.5
)

// PriceGrid 价格网格
// 行对应波动率轴，列对应现货价格轴（行主序）
type PriceGrid struct {
	Spots  []float64   `json:"spots"`
	Vols   []float64   `json:"vols"`
	Prices [][]float64 `json:"prices"`
}

// BuildGrids 在基准输入附近的 (现货价格, 波动率) 网格上分别计算
// 看涨与看跌期权价格，执行价、到期时间与利率保持不变。
//
// 现货轴取 [0.8S, 1.2S]，波动率轴取 [0.5σ, 1.5σ]，两端点均包含。
// 每个单元都是独立的纯计算，按行并发求值，结果与串行一致。
func BuildGrids(base PricingInput, spotSteps, volSteps int) (call, put *PriceGrid, err error) {
	spots := linspace(base.Spot*spotRangeLow, base.Spot*spotRangeHigh, spotSteps)
	vols := linspace(base.Volatility*volRangeLow, base.Volatility*volRangeHigh, volSteps)

	call = &PriceGrid{Spots: spots, Vols: vols, Prices: make([][]float64, volSteps)}
	put = &PriceGrid{Spots: spots, Vols: vols, Prices: make([][]float64, volSteps)}

	var g errgroup.Group
	for i, vol := range vols {
		i, vol := i, vol
		g.Go(func() error {
			callRow := make([]float64, len(spots))
			putRow := make([]float64, len(spots))
			for j, spot := range spots {
				input := PricingInput{
					Spot:         spot,
					Strike:       base.Strike,
					Maturity:     base.Maturity,
					RiskFreeRate: base.RiskFreeRate,
					Volatility:   vol,
					Type:         OptionTypeCall,
				}
				c, err := Price(input)
				if err != nil {
					return err
				}
				input.Type = OptionTypePut
				p, err := Price(input)
				if err != nil {
					return err
				}
				callRow[j] = c
				putRow[j] = p
			}
			call.Prices[i] = callRow
			put.Prices[i] = putRow
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return call, put, nil
}

// linspace 生成 [lo, hi] 上 n 个等距采样点，包含两端点
func linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

package application

import (
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// QuoteResult 报价结果 DTO
// 价格保留两位小数，展示层直接渲染
type QuoteResult struct {
	CallPrice          decimal.Decimal `json:"call_price"`
	PutPrice           decimal.Decimal `json:"put_price"`
	CallPriceFormatted string          `json:"call_price_formatted"`
	PutPriceFormatted  string          `json:"put_price_formatted"`
	CallHeatmap        *HeatmapDTO     `json:"call_heatmap"`
	PutHeatmap         *HeatmapDTO     `json:"put_heatmap"`
}

// HeatmapDTO 热力图数据
// Values 行对应波动率轴、列对应现货价格轴，取值保留两位小数；
// 轴刻度标签与单元值使用相同的两位小数格式
type HeatmapDTO struct {
	SpotLabels []string    `json:"spot_labels"`
	VolLabels  []string    `json:"vol_labels"`
	Values     [][]float64 `json:"values"`
}

// toHeatmapDTO 将价格网格转换为展示层 DTO
func toHeatmapDTO(grid *domain.PriceGrid) *HeatmapDTO {
	dto := &HeatmapDTO{
		SpotLabels: make([]string, len(grid.Spots)),
		VolLabels:  make([]string, len(grid.Vols)),
		Values:     make([][]float64, len(grid.Prices)),
	}
	for i, s := range grid.Spots {
		dto.SpotLabels[i] = decimal.NewFromFloat(s).StringFixed(2)
	}
	for i, v := range grid.Vols {
		dto.VolLabels[i] = decimal.NewFromFloat(v).StringFixed(2)
	}
	for i, row := range grid.Prices {
		out := make([]float64, len(row))
		for j, p := range row {
			out[j] = decimal.NewFromFloat(p).Round(2).InexactFloat64()
		}
		dto.Values[i] = out
	}
	return dto
}

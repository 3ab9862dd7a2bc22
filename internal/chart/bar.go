package chart

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/shopspring/decimal"
)

// StrategyComparison compares the final cumulative ROI of named strategy
// runs side by side. names and finals align index-for-index.
func StrategyComparison(names []string, finals []decimal.Decimal) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Final Cumulative ROI by Strategy"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cumulative ROI"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	data := make([]opts.BarData, len(finals))
	for i, roi := range finals {
		data[i] = opts.BarData{Value: roi.InexactFloat64()}
	}

	bar.SetXAxis(names).
		AddSeries("Final Cumulative ROI", data,
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Position:  "top",
				Formatter: "{c}",
			}))
	return bar
}

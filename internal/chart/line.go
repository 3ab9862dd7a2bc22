package chart

import (
	"time"

	"roibacktest/types"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// CumulativeROILine plots the cumulative ROI of a return series over its
// trade boundaries.
func CumulativeROILine(returns types.ReturnSeries, title string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Trades"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cumulative ROI"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	x := make([]string, len(returns))
	data := make([]opts.LineData, len(returns))
	for i, p := range returns {
		x[i] = p.Date.Format(time.DateOnly)
		data[i] = opts.LineData{Value: p.CumulativeROI.InexactFloat64()}
	}

	line.SetXAxis(x).
		AddSeries("Cumulative ROI", data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	return line
}

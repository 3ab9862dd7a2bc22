package chart

import (
	"roibacktest/internal/sweep"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// SweepComparison plots the final cumulative ROI of every MA combination in
// a sweep. Failed combinations are skipped; the surviving points keep their
// combination labels on the x axis.
func SweepComparison(results []sweep.Result, title string) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Short MA - Long MA Combinations"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Last Cumulative ROI"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	var x []string
	var data []opts.ScatterData
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		x = append(x, res.Combination.String())
		data = append(data, opts.ScatterData{
			Value:      res.FinalROI.InexactFloat64(),
			SymbolSize: 12,
		})
	}

	scatter.SetXAxis(x).AddSeries("ROI", data)
	return scatter
}

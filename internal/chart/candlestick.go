package chart

import (
	"time"

	"roibacktest/strategies/macross"
	"roibacktest/types"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// CandlestickTrends renders the price history as a candlestick chart with a
// volume bar chart underneath, optionally overlaid with the two moving
// averages and buy/sell markers with vertical reference lines at the signal
// dates. maInfo may be nil for a plain price chart.
func CandlestickTrends(series *types.PriceSeries, maInfo *macross.MAInfo, buyDates, sellDates []time.Time) *components.Page {
	x := make([]string, series.Len())
	klineData := make([]opts.KlineData, series.Len())
	volumeData := make([]opts.BarData, series.Len())
	for i, c := range series.Candles() {
		x[i] = c.Date.Format(time.DateOnly)
		klineData[i] = opts.KlineData{Value: [4]float64{
			c.Open.InexactFloat64(),
			c.Close.InexactFloat64(),
			c.Low.InexactFloat64(),
			c.High.InexactFloat64(),
		}}
		color := "green"
		if c.Close.GreaterThanOrEqual(c.Open) {
			color = "red"
		}
		volumeData[i] = opts.BarData{
			Value:     c.Volume.InexactFloat64(),
			ItemStyle: &opts.ItemStyle{Color: color},
		}
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: series.Ticker()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{SplitNumber: 12}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	kline.SetXAxis(x).AddSeries("Candlestick", klineData,
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color:        "red",
			Color0:       "green",
			BorderColor:  "red",
			BorderColor0: "green",
		}))

	if maInfo != nil {
		kline.Overlap(
			maLine(x, maInfo.ShortLabel, maInfo.ShortMA, "blue"),
			maLine(x, maInfo.LongLabel, maInfo.LongMA, "purple"),
		)
	}
	if len(buyDates) > 0 {
		kline.Overlap(signalScatter(series, x, "Buy Signal", buyDates, "red", "triangle"))
	}
	if len(sellDates) > 0 {
		kline.Overlap(signalScatter(series, x, "Sell Signal", sellDates, "green", "arrow"))
	}

	volume := charts.NewBar()
	volume.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Trading Volume"}),
		charts.WithXAxisOpts(opts.XAxis{SplitNumber: 12}),
	)
	volume.SetXAxis(x).AddSeries("Volume", volumeData)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(kline, volume)
	return page
}

// maLine builds a moving-average overlay. Warmup entries carry no value so
// the line starts where the average becomes defined.
func maLine(x []string, name string, ma []float64, color string) *charts.Line {
	data := make([]opts.LineData, len(ma))
	for i, v := range ma {
		if v == 0 {
			data[i] = opts.LineData{Value: "-"}
			continue
		}
		data[i] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetXAxis(x).AddSeries(name, data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: color, Type: "dashed"}),
	)
	return line
}

// signalScatter marks the close price on each signal date and drops a
// vertical reference line there.
func signalScatter(series *types.PriceSeries, x []string, name string, dates []time.Time, color, symbol string) *charts.Scatter {
	signaled := make(map[time.Time]bool, len(dates))
	marks := make([]charts.SeriesOpts, 0, len(dates)+1)
	for _, d := range dates {
		day := types.Day(d)
		signaled[day] = true
		marks = append(marks, charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
			Name:  name,
			XAxis: day.Format(time.DateOnly),
		}))
	}
	marks = append(marks,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol: []string{"none", "none"},
			LineStyle: &opts.LineStyle{
				Color: color,
				Type:  "dotted",
			},
		}),
	)

	data := make([]opts.ScatterData, series.Len())
	for i, c := range series.Candles() {
		if !signaled[c.Date] {
			data[i] = opts.ScatterData{Value: "-"}
			continue
		}
		data[i] = opts.ScatterData{
			Value:      c.Close.InexactFloat64(),
			Symbol:     symbol,
			SymbolSize: 14,
		}
	}

	scatter := charts.NewScatter()
	scatter.SetXAxis(x).AddSeries(name, data, marks...)
	return scatter
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"roibacktest/internal/chart"
	"roibacktest/internal/config"
	"roibacktest/internal/engine"
	"roibacktest/internal/loader"
	"roibacktest/internal/repository"
	"roibacktest/internal/sweep"
	"roibacktest/strategies/dca"
	"roibacktest/strategies/macross"
	"roibacktest/types"

	"github.com/shopspring/decimal"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	series, err := loadSeries(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// Final cumulative ROI per strategy, in run order, for the comparison
	// bar chart. A failed strategy simply never registers here.
	var names []string
	var finals []decimal.Decimal
	record := func(name string, roi decimal.Decimal) {
		names = append(names, name)
		finals = append(finals, roi)
	}

	if roi, err := runDCA(cfg, series); err != nil {
		log.Printf("DCA: %v", err)
	} else {
		record("DCA", roi)
	}

	for _, policy := range []types.Policy{types.SignalAlternation, types.BuyAndHold, types.BuyFirstPaired} {
		results := sweep.Run(series, cfg.SweepPeriods, policy)
		out := filepath.Join(cfg.OutputDir, fmt.Sprintf("sweep_%s.html", policy))
		if err := chart.WriteHTMLFile(out, chart.SweepComparison(results, fmt.Sprintf("ROI Comparison of MA Combinations (%s)", policy))); err != nil {
			log.Printf("sweep %s: %v", policy, err)
		}
	}

	for _, run := range cfg.MACRuns {
		name := fmt.Sprintf("MAC %d-%d (%s)", run.Short, run.Long, run.Policy)
		if roi, err := runMAC(cfg, series, run); err != nil {
			log.Printf("%s: %v", name, err)
		} else {
			record(name, roi)
		}
	}

	out := filepath.Join(cfg.OutputDir, "strategy_comparison.html")
	if err := chart.WriteHTMLFile(out, chart.StrategyComparison(names, finals)); err != nil {
		log.Fatal(err)
	}
}

func loadSeries(cfg *config.Config) (*types.PriceSeries, error) {
	if cfg.XLSXPath != "" {
		return loader.ReadPriceSeriesXLSX(cfg.XLSXPath, cfg.XLSXSheet, cfg.Ticker)
	}

	db, err := repository.NewDatabase(cfg.DBConnStr)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx := context.Background()
	asset, err := db.GetAssetByTicker(cfg.Ticker, ctx)
	if err != nil {
		return nil, err
	}
	start, err := cfg.StartTime()
	if err != nil {
		return nil, err
	}
	end, err := cfg.EndTime()
	if err != nil {
		return nil, err
	}
	return db.GetDailyPriceSeries(asset.Id, asset.Ticker, start, end, ctx)
}

func runDCA(cfg *config.Config, series *types.PriceSeries) (decimal.Decimal, error) {
	buyDates, err := dca.BuyDates(series, dca.Pickup(cfg.DCAPickup))
	if err != nil {
		return decimal.Decimal{}, err
	}

	res, err := engine.Compute(series, engine.Request{
		Policy:   types.BuyAndHold,
		BuyDates: buyDates,
	})
	if err != nil {
		return decimal.Decimal{}, err
	}

	lineOut := filepath.Join(cfg.OutputDir, "dca_cumulative_roi.html")
	if err := chart.WriteHTMLFile(lineOut, chart.CumulativeROILine(res.Returns, "Cumulative ROI Over Trades (DCA)")); err != nil {
		return decimal.Decimal{}, err
	}
	trendOut := filepath.Join(cfg.OutputDir, "dca_candlestick.html")
	if err := chart.WriteHTMLFile(trendOut, chart.CandlestickTrends(series, nil, buyDates, nil)); err != nil {
		return decimal.Decimal{}, err
	}
	return res.FinalROI, nil
}

func runMAC(cfg *config.Config, series *types.PriceSeries, run config.MACRun) (decimal.Decimal, error) {
	info, err := macross.Detect(series, run.Short, run.Long)
	if err != nil {
		return decimal.Decimal{}, err
	}

	policy := cfg.PolicyOf(run)
	req := engine.Request{Policy: policy, BuyDates: info.BuyDates}
	if policy != types.BuyAndHold {
		req.SellDates = info.SellDates
	}
	res, err := engine.Compute(series, req)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if policy == types.BuyFirstPaired {
		if err := engine.WriteTradesCSVFile(cfg.TradeTablePath, res.Trades); err != nil {
			return decimal.Decimal{}, err
		}
	}

	prefix := fmt.Sprintf("mac_%d_%d_%s", run.Short, run.Long, run.Policy)
	lineOut := filepath.Join(cfg.OutputDir, prefix+"_roi.html")
	title := fmt.Sprintf("Cumulative ROI Over Trades (%s/%s)", info.ShortLabel, info.LongLabel)
	if err := chart.WriteHTMLFile(lineOut, chart.CumulativeROILine(res.Returns, title)); err != nil {
		return decimal.Decimal{}, err
	}
	trendOut := filepath.Join(cfg.OutputDir, prefix+"_candlestick.html")
	if err := chart.WriteHTMLFile(trendOut, chart.CandlestickTrends(series, info, info.BuyDates, info.SellDates)); err != nil {
		return decimal.Decimal{}, err
	}
	return res.FinalROI, nil
}

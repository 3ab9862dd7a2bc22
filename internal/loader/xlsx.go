// Package loader reads a daily price history from a spreadsheet into a
// price series. The expected sheet has a header row with Date, Open, High,
// Low, Close and Volume columns; a currency suffix on the price columns
// (e.g. "Close(NTD)") is tolerated.
package loader

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"roibacktest/types"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var columnNames = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

var dateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"01-02-06",
	"1/2/2006",
	time.RFC3339,
}

// ReadPriceSeriesXLSX loads the price history from a workbook. An empty
// sheet name selects the first sheet.
func ReadPriceSeriesXLSX(path, sheet, ticker string) (*types.PriceSeries, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q: no data rows", sheet)
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	candles := make([]types.Candle, 0, len(rows)-1)
	for i, row := range rows[1:] {
		candle, err := parseRow(row, cols, ticker)
		if err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", sheet, i+2, err)
		}
		candles = append(candles, candle)
	}
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Date.Before(candles[j].Date)
	})

	return types.NewPriceSeries(ticker, candles)
}

// mapColumns resolves each required column to its index by header prefix.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(columnNames))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		for _, want := range columnNames {
			if _, taken := cols[want]; !taken && strings.HasPrefix(name, want) {
				cols[want] = i
				break
			}
		}
	}
	for _, want := range columnNames {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("missing %q column in header %v", want, header)
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int, ticker string) (types.Candle, error) {
	cell := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := parseDate(cell("Date"))
	if err != nil {
		return types.Candle{}, err
	}

	candle := types.Candle{Ticker: ticker, Date: date}
	prices := []struct {
		name string
		dst  *decimal.Decimal
	}{
		{"Open", &candle.Open},
		{"High", &candle.High},
		{"Low", &candle.Low},
		{"Close", &candle.Close},
		{"Volume", &candle.Volume},
	}
	for _, p := range prices {
		raw := strings.ReplaceAll(cell(p.name), ",", "")
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return types.Candle{}, fmt.Errorf("parse %s %q: %w", p.name, raw, err)
		}
		if value.IsNegative() {
			return types.Candle{}, fmt.Errorf("negative %s %q", p.name, raw)
		}
		*p.dst = value
	}
	return candle, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return types.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

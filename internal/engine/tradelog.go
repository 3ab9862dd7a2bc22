package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"roibacktest/types"

	"github.com/shopspring/decimal"
)

var tradeCSVHeader = []string{
	"BuyDate",
	"SellDate",
	"BuyPrice",
	"SellPrice",
	"ROI",
	"CumulativeROI",
}

// WriteTradesCSVFile writes the trade table to a CSV file at the given path.
func WriteTradesCSVFile(path string, trades []types.TradeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trades file: %w", err)
	}
	defer f.Close()

	return WriteTradesCSV(f, trades)
}

// WriteTradesCSV writes the trade table to any io.Writer as CSV, one row per
// closed trade, ordered as produced (sell date ascending).
func WriteTradesCSV(w io.Writer, trades []types.TradeRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(tradeCSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range trades {
		record := []string{
			t.BuyDate.Format(time.DateOnly),
			t.SellDate.Format(time.DateOnly),
			t.BuyPrice.String(),
			t.SellPrice.String(),
			t.ROI.String(),
			t.CumulativeROI.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadTradesCSV reads a trade table previously written by WriteTradesCSV.
func ReadTradesCSV(r io.Reader) ([]types.TradeRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(tradeCSVHeader)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read csv: missing header row")
	}

	trades := make([]types.TradeRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		t, err := parseTradeRow(row)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func parseTradeRow(row []string) (types.TradeRecord, error) {
	var t types.TradeRecord
	var err error

	if t.BuyDate, err = time.ParseInLocation(time.DateOnly, row[0], time.UTC); err != nil {
		return t, fmt.Errorf("parse buy date %q: %w", row[0], err)
	}
	if t.SellDate, err = time.ParseInLocation(time.DateOnly, row[1], time.UTC); err != nil {
		return t, fmt.Errorf("parse sell date %q: %w", row[1], err)
	}

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"buy price", row[2], &t.BuyPrice},
		{"sell price", row[3], &t.SellPrice},
		{"roi", row[4], &t.ROI},
		{"cumulative roi", row[5], &t.CumulativeROI},
	}
	for _, f := range fields {
		if *f.dst, err = decimal.NewFromString(f.raw); err != nil {
			return t, fmt.Errorf("parse %s %q: %w", f.name, f.raw, err)
		}
	}
	return t, nil
}

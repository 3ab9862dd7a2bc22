package types

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func candleOn(date time.Time, close int64) Candle {
	price := decimal.NewFromInt(close)
	return Candle{Date: date, Open: price, High: price, Low: price, Close: price, Volume: decimal.NewFromInt(1)}
}

func TestNewPriceSeries_Validation(t *testing.T) {
	d1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		candles []Candle
		wantErr error
	}{
		{"empty", nil, ErrEmptySeries},
		{"descending dates", []Candle{candleOn(d2, 100), candleOn(d1, 101)}, ErrUnsortedSeries},
		{"duplicate dates", []Candle{candleOn(d1, 100), candleOn(d1, 101)}, ErrUnsortedSeries},
		{"valid", []Candle{candleOn(d1, 100), candleOn(d2, 101)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPriceSeries("TEST", tt.candles)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewPriceSeries() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewPriceSeries_NormalizesDates(t *testing.T) {
	noon := time.Date(2024, 1, 2, 12, 30, 0, 0, time.UTC)
	series, err := NewPriceSeries("TEST", []Candle{candleOn(noon, 100)})
	if err != nil {
		t.Fatalf("NewPriceSeries() error = %v", err)
	}
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !series.FirstDate().Equal(want) {
		t.Fatalf("first date = %s, want %s", series.FirstDate(), want)
	}
	if !series.Contains(noon) {
		t.Fatal("lookup with intraday timestamp should hit the trading day")
	}
}

func TestPriceSeries_CloseAt(t *testing.T) {
	d1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series, err := NewPriceSeries("TEST", []Candle{candleOn(d1, 100)})
	if err != nil {
		t.Fatalf("NewPriceSeries() error = %v", err)
	}

	price, err := series.CloseAt(d1)
	if err != nil {
		t.Fatalf("CloseAt() error = %v", err)
	}
	if !price.Equal(decimal.NewFromInt(100)) {
		t.Errorf("CloseAt() = %s, want 100", price)
	}

	_, err = series.CloseAt(d1.AddDate(0, 0, 1))
	if !errors.Is(err, ErrDateNotFound) {
		t.Fatalf("CloseAt() on absent date error = %v, want ErrDateNotFound", err)
	}
}

func TestPriceSeries_TickerFilledOnCandles(t *testing.T) {
	d1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series, err := NewPriceSeries("9921", []Candle{candleOn(d1, 100)})
	if err != nil {
		t.Fatalf("NewPriceSeries() error = %v", err)
	}
	if series.At(0).Ticker != "9921" {
		t.Fatalf("candle ticker = %q, want 9921", series.At(0).Ticker)
	}
}

package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Global error declarations.
var (
	ErrEmptySeries    = errors.New("price series has no candles")
	ErrUnsortedSeries = errors.New("candle dates must be unique and strictly ascending")
	ErrDateNotFound   = errors.New("date not present in price series")
)

// PriceSeries is an ordered, date-indexed table of daily candles for one
// instrument. Dates are unique and strictly ascending; non-trading days are
// simply absent. Lookups on a date that is not in the index fail with
// ErrDateNotFound rather than coercing to a neighbour.
type PriceSeries struct {
	ticker  string
	candles []Candle
	index   map[time.Time]int
}

// NewPriceSeries validates and indexes candles. Candle dates are normalized
// to UTC midnight before indexing.
func NewPriceSeries(ticker string, candles []Candle) (*PriceSeries, error) {
	if len(candles) == 0 {
		return nil, ErrEmptySeries
	}

	owned := make([]Candle, len(candles))
	index := make(map[time.Time]int, len(candles))
	for i, c := range candles {
		c.Date = Day(c.Date)
		if c.Ticker == "" {
			c.Ticker = ticker
		}
		if i > 0 && !owned[i-1].Date.Before(c.Date) {
			return nil, fmt.Errorf("%w: %s followed by %s",
				ErrUnsortedSeries,
				owned[i-1].Date.Format(time.DateOnly),
				c.Date.Format(time.DateOnly))
		}
		owned[i] = c
		index[c.Date] = i
	}

	return &PriceSeries{ticker: ticker, candles: owned, index: index}, nil
}

func (s *PriceSeries) Ticker() string { return s.ticker }

func (s *PriceSeries) Len() int { return len(s.candles) }

// Candles returns the underlying candles in date order. Callers must not
// mutate the returned slice.
func (s *PriceSeries) Candles() []Candle { return s.candles }

func (s *PriceSeries) At(i int) Candle { return s.candles[i] }

func (s *PriceSeries) Last() Candle { return s.candles[len(s.candles)-1] }

func (s *PriceSeries) FirstDate() time.Time { return s.candles[0].Date }

func (s *PriceSeries) LastDate() time.Time { return s.Last().Date }

// Contains reports whether date is a trading day of the series.
func (s *PriceSeries) Contains(date time.Time) bool {
	_, ok := s.index[Day(date)]
	return ok
}

// CloseAt returns the close price on the given trading day.
func (s *PriceSeries) CloseAt(date time.Time) (decimal.Decimal, error) {
	i, ok := s.index[Day(date)]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", Day(date).Format(time.DateOnly), ErrDateNotFound)
	}
	return s.candles[i].Close, nil
}

// Dates returns every trading day of the series in ascending order.
func (s *PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.candles))
	for i, c := range s.candles {
		dates[i] = c.Date
	}
	return dates
}

// CloseFloats returns the close prices as float64, for indicator libraries
// that work on float slices.
func (s *PriceSeries) CloseFloats() []float64 {
	out := make([]float64, len(s.candles))
	for i, c := range s.candles {
		out[i] = c.Close.InexactFloat64()
	}
	return out
}

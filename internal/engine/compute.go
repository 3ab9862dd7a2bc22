package engine

import (
	"errors"
	"fmt"
	"time"

	"roibacktest/types"

	"github.com/shopspring/decimal"
)

// Global error declarations.
var (
	ErrInvalidInput = errors.New("invalid compute input")
	ErrNoTrades     = errors.New("pairing produced no closed trades")
)

// Request describes one return calculation. Policy picks the pairing policy
// explicitly; SellDates are ignored by BuyAndHold.
type Request struct {
	Policy    types.Policy
	BuyDates  []time.Time
	SellDates []time.Time
}

// Result is the output of one Compute call. Each call produces a fresh
// Result; the engine keeps no state between calls.
type Result struct {
	Returns types.ReturnSeries
	// FinalROI is the last cumulative ROI of Returns.
	FinalROI decimal.Decimal
	// Trades holds one record per closed round-trip. Only the
	// BuyFirstPaired policy fills it.
	Trades []types.TradeRecord
}

var one = decimal.NewFromInt(1)

// Compute turns buy/sell signal dates and a price series into a per-trade
// return series and its cumulative product. Every signal date must be a
// trading day of the series; absent dates fail with types.ErrDateNotFound.
func Compute(series *types.PriceSeries, req Request) (*Result, error) {
	if series == nil || series.Len() == 0 {
		return nil, fmt.Errorf("%w: nil or empty price series", ErrInvalidInput)
	}
	if len(req.BuyDates) == 0 {
		return nil, fmt.Errorf("%w: no buy dates", ErrInvalidInput)
	}

	switch req.Policy {
	case types.BuyAndHold:
		return computeBuyAndHold(series, req.BuyDates)
	case types.BuyFirstPaired:
		return computeBuyFirstPaired(series, req.BuyDates, req.SellDates)
	case types.SignalAlternation:
		return computeSignalAlternation(series, req.BuyDates, req.SellDates)
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", ErrInvalidInput, req.Policy)
	}
}

// computeBuyAndHold compares the last close of the series against the mean
// close over all buy dates. The two-point series it produces is indexed by
// the earliest buy date and the last series date.
func computeBuyAndHold(series *types.PriceSeries, buyDates []time.Time) (*Result, error) {
	sum := decimal.Zero
	earliest := types.Day(buyDates[0])
	for _, d := range buyDates {
		price, err := series.CloseAt(d)
		if err != nil {
			return nil, err
		}
		sum = sum.Add(price)
		if day := types.Day(d); day.Before(earliest) {
			earliest = day
		}
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(buyDates))))

	roi := series.Last().Close.Sub(mean).Div(mean)
	final := one.Add(roi)

	returns := types.ReturnSeries{
		{Date: earliest, ROI: decimal.Zero, CumulativeROI: one},
		{Date: series.LastDate(), ROI: roi, CumulativeROI: final},
	}
	return &Result{Returns: returns, FinalROI: final}, nil
}

// computeBuyFirstPaired enforces strict buy->sell alternation starting with
// a buy: a sell preceding the first buy cannot close anything and is
// dropped, and a trailing buy with no matching sell stays out of the result
// because an open position is not counted.
func computeBuyFirstPaired(series *types.PriceSeries, buyDates, sellDates []time.Time) (*Result, error) {
	buyPrices, err := closesAt(series, buyDates)
	if err != nil {
		return nil, err
	}
	sellPrices, err := closesAt(series, sellDates)
	if err != nil {
		return nil, err
	}

	if len(sellDates) > 0 && types.Day(sellDates[0]).Before(types.Day(buyDates[0])) {
		sellDates = sellDates[1:]
		sellPrices = sellPrices[1:]
	}

	pairs := min(len(buyDates), len(sellDates))
	if pairs == 0 {
		return nil, ErrNoTrades
	}

	cum := one
	returns := make(types.ReturnSeries, 0, pairs)
	trades := make([]types.TradeRecord, 0, pairs)
	for i := 0; i < pairs; i++ {
		roi := sellPrices[i].Sub(buyPrices[i]).Div(buyPrices[i])
		cum = cum.Mul(one.Add(roi))
		sellDay := types.Day(sellDates[i])
		returns = append(returns, types.ReturnPoint{Date: sellDay, ROI: roi, CumulativeROI: cum})
		trades = append(trades, types.TradeRecord{
			BuyDate:       types.Day(buyDates[i]),
			SellDate:      sellDay,
			BuyPrice:      buyPrices[i],
			SellPrice:     sellPrices[i],
			ROI:           roi,
			CumulativeROI: cum,
		})
	}

	return &Result{Returns: returns, FinalROI: cum, Trades: trades}, nil
}

// computeSignalAlternation overlays +1/-1 flags on the close series and
// marks the running position to market between consecutive signaled days.
func computeSignalAlternation(series *types.PriceSeries, buyDates, sellDates []time.Time) (*Result, error) {
	signals := make(map[time.Time]int, len(buyDates)+len(sellDates))
	for _, d := range buyDates {
		day := types.Day(d)
		if !series.Contains(day) {
			return nil, fmt.Errorf("%s: %w", day.Format(time.DateOnly), types.ErrDateNotFound)
		}
		signals[day] = 1
	}
	// Sells are assigned after buys, so a sell wins a same-day collision.
	for _, d := range sellDates {
		day := types.Day(d)
		if !series.Contains(day) {
			return nil, fmt.Errorf("%s: %w", day.Format(time.DateOnly), types.ErrDateNotFound)
		}
		signals[day] = -1
	}

	// A position opened by a signal on the final trading day can never be
	// closed, so invert that signal in place. Days before the final one are
	// left alone; an open position elsewhere simply never produces a row.
	last := series.LastDate()
	switch signals[last] {
	case 1:
		signals[last] = -1
	case -1:
		signals[last] = 1
	}

	// Only signaled days participate; walk the series in order so the
	// return rows come out date-ascending.
	var (
		prevClose  decimal.Decimal
		prevSignal int
		started    bool
	)
	cum := one
	returns := make(types.ReturnSeries, 0, len(signals))
	for _, c := range series.Candles() {
		sig, ok := signals[c.Date]
		if !ok {
			continue
		}
		roi := decimal.Zero
		if started {
			switch prevSignal {
			case 1:
				roi = c.Close.Sub(prevClose).Div(prevClose)
			case -1:
				roi = prevClose.Sub(c.Close).Div(prevClose)
			}
		}
		cum = cum.Mul(one.Add(roi))
		returns = append(returns, types.ReturnPoint{Date: c.Date, ROI: roi, CumulativeROI: cum})
		prevClose, prevSignal, started = c.Close, sig, true
	}

	return &Result{Returns: returns, FinalROI: cum}, nil
}

func closesAt(series *types.PriceSeries, dates []time.Time) ([]decimal.Decimal, error) {
	prices := make([]decimal.Decimal, len(dates))
	for i, d := range dates {
		price, err := series.CloseAt(d)
		if err != nil {
			return nil, err
		}
		prices[i] = price
	}
	return prices, nil
}

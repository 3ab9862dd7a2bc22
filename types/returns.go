package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Policy selects how buy and sell dates are turned into trades. The variant
// is chosen explicitly by the caller; no policy is inferred from which date
// sequences happen to be present.
type Policy string

const (
	// BuyAndHold averages the close over all buy dates and holds to the end
	// of the series. Sell dates are ignored.
	BuyAndHold Policy = "BuyAndHold"
	// BuyFirstPaired pairs each buy with the next sell in sequence,
	// discarding a leading unmatched sell and a trailing unmatched buy.
	BuyFirstPaired Policy = "BuyFirstPaired"
	// SignalAlternation treats buy/sell dates as position-flip points and
	// marks the position to market between consecutive signaled dates.
	SignalAlternation Policy = "SignalAlternation"
)

// ReturnPoint is one row of a return series.
type ReturnPoint struct {
	Date time.Time
	// ROI is the fractional return for this period or trade.
	ROI decimal.Decimal
	// CumulativeROI is the running product of (1+ROI) up to and including
	// this point, starting from a basis of 1.
	CumulativeROI decimal.Decimal
}

// ReturnSeries is an ordered sequence of return points. For BuyAndHold and
// BuyFirstPaired the index dates are trade boundaries, not individual
// transactions; for SignalAlternation they are the signaled trading days.
type ReturnSeries []ReturnPoint

// Final returns the last cumulative ROI of the series, the scalar summary of
// a run. The basis 1 is returned for an empty series.
func (rs ReturnSeries) Final() decimal.Decimal {
	if len(rs) == 0 {
		return decimal.NewFromInt(1)
	}
	return rs[len(rs)-1].CumulativeROI
}

// TradeRecord is one closed round-trip produced by the BuyFirstPaired
// policy. Records are immutable once computed and ordered by sell date.
type TradeRecord struct {
	BuyDate       time.Time
	SellDate      time.Time
	BuyPrice      decimal.Decimal
	SellPrice     decimal.Decimal
	ROI           decimal.Decimal
	CumulativeROI decimal.Decimal
}

package macross

import (
	"fmt"
	"time"

	"roibacktest/types"

	"github.com/markcheno/go-talib"
)

// MAInfo carries the crossover result: the signal dates the engine consumes
// plus the two moving-average display series for the chart layer.
type MAInfo struct {
	ShortLabel string
	LongLabel  string
	// ShortMA and LongMA align index-for-index with the series dates.
	// Entries inside the warmup window are zero and not displayable.
	ShortMA []float64
	LongMA  []float64

	BuyDates  []time.Time
	SellDates []time.Time
}

// Detect computes SMA(shortPeriod) and SMA(longPeriod) over the close
// prices and fires a buy when the short average crosses above the long one,
// a sell on the mirror crossing. Crossings inside the long warmup window
// are ignored.
func Detect(series *types.PriceSeries, shortPeriod, longPeriod int) (*MAInfo, error) {
	if shortPeriod <= 0 || shortPeriod >= longPeriod {
		return nil, fmt.Errorf("invalid ma periods: short %d must be in (0, long %d)", shortPeriod, longPeriod)
	}
	if longPeriod > series.Len() {
		return nil, fmt.Errorf("long ma period %d exceeds series length %d", longPeriod, series.Len())
	}

	closes := series.CloseFloats()
	info := &MAInfo{
		ShortLabel: fmt.Sprintf("MA_%d", shortPeriod),
		LongLabel:  fmt.Sprintf("MA_%d", longPeriod),
		ShortMA:    talib.Sma(closes, shortPeriod),
		LongMA:     talib.Sma(closes, longPeriod),
	}

	dates := series.Dates()
	// Both averages and their previous-day values exist from longPeriod on.
	for i := longPeriod; i < len(closes); i++ {
		prevShort, prevLong := info.ShortMA[i-1], info.LongMA[i-1]
		curShort, curLong := info.ShortMA[i], info.LongMA[i]

		switch {
		case prevShort <= prevLong && curShort > curLong:
			info.BuyDates = append(info.BuyDates, dates[i])
		case prevShort >= prevLong && curShort < curLong:
			info.SellDates = append(info.SellDates, dates[i])
		}
	}
	return info, nil
}

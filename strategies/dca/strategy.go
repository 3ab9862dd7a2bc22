package dca

import (
	"fmt"
	"time"

	"roibacktest/types"
)

// Pickup selects which trading day of each month gets bought.
type Pickup string

const (
	PickupFirst Pickup = "first"
	PickupLast  Pickup = "last"
)

// BuyDates returns one buy date per calendar month present in the series:
// the first (or last) trading day of that month. The returned dates are
// always trading days of the series, in ascending order.
func BuyDates(series *types.PriceSeries, pickup Pickup) ([]time.Time, error) {
	if pickup != PickupFirst && pickup != PickupLast {
		return nil, fmt.Errorf("unknown pickup %q", pickup)
	}

	var dates []time.Time
	for _, c := range series.Candles() {
		if len(dates) == 0 || !sameMonth(dates[len(dates)-1], c.Date) {
			dates = append(dates, c.Date)
			continue
		}
		if pickup == PickupLast {
			dates[len(dates)-1] = c.Date
		}
	}
	return dates, nil
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

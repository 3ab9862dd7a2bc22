package repository

import (
	"context"
	"errors"
	"time"

	"roibacktest/types"

	"github.com/jackc/pgx/v5"
)

// GetDailyPriceSeries loads the daily candles of an asset in [start, end)
// and returns them as a validated price series.
func (db *Database) GetDailyPriceSeries(assetId int, ticker string, start, end time.Time, ctx context.Context) (*types.PriceSeries, error) {
	rows, err := db.candles.GetDailyCandles(ctx, int32(assetId), start, end)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoCandles
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoCandles
	}
	return types.NewPriceSeries(ticker, convertCandles(rows, ticker))
}

func convertCandles(rows []candleRow, ticker string) []types.Candle {
	var candles []types.Candle
	for _, row := range rows {
		candles = append(candles, types.Candle{
			Ticker: ticker,
			Date:   types.Day(row.Day),
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}
	return candles
}

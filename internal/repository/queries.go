package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type assetRow struct {
	ID         int32
	Ticker     string
	Name       string
	Type       string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

type candleRow struct {
	AssetID int32
	Day     time.Time
	Open    decimal.Decimal
	High    decimal.Decimal
	Low     decimal.Decimal
	Close   decimal.Decimal
	Volume  decimal.Decimal
}

type queries struct {
	pool *pgxpool.Pool
}

const getAssetByTickerSQL = `
SELECT id, ticker, name, type, created_at, modified_at
FROM assets
WHERE ticker = $1`

func (q *queries) GetAssetByTicker(ctx context.Context, ticker string) (assetRow, error) {
	var row assetRow
	err := q.pool.QueryRow(ctx, getAssetByTickerSQL, ticker).Scan(
		&row.ID, &row.Ticker, &row.Name, &row.Type, &row.CreatedAt, &row.ModifiedAt)
	return row, err
}

const getDailyCandlesSQL = `
SELECT asset_id,
       time_bucket('1 day', timestamp) AS day,
       first(open, timestamp)          AS open,
       max(high)                       AS high,
       min(low)                        AS low,
       last(close, timestamp)          AS close,
       sum(volume)                     AS volume
FROM candles
WHERE asset_id = $1
  AND timestamp >= $2
  AND timestamp < $3
GROUP BY asset_id, day
ORDER BY day`

func (q *queries) GetDailyCandles(ctx context.Context, assetID int32, start, end time.Time) ([]candleRow, error) {
	rows, err := q.pool.Query(ctx, getDailyCandlesSQL, assetID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []candleRow
	for rows.Next() {
		var r candleRow
		if err := rows.Scan(&r.AssetID, &r.Day, &r.Open, &r.High, &r.Low, &r.Close, &r.Volume); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

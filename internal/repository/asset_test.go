package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"roibacktest/types"

	"github.com/jackc/pgx/v5"
)

type mockAssetsRepository struct {
	sqlError error
	row      assetRow
}

func (m mockAssetsRepository) GetAssetByTicker(ctx context.Context, ticker string) (assetRow, error) {
	if m.sqlError != nil {
		return assetRow{}, m.sqlError
	}
	return m.row, nil
}

func TestDatabase_GetAssetByTicker(t *testing.T) {
	created := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	stored := assetRow{
		ID:         42,
		Ticker:     "AAPL",
		Name:       "Apple Inc.",
		Type:       "STOCK",
		CreatedAt:  created,
		ModifiedAt: created,
	}

	tests := []struct {
		name    string
		sqlErr  error
		want    *types.Asset
		wantErr error
	}{
		{"should throw ErrAssetNotFound", pgx.ErrNoRows, nil, ErrAssetNotFound},
		{"should return asset", nil, &types.Asset{
			Id:         42,
			Ticker:     "AAPL",
			Name:       "Apple Inc.",
			Type:       types.AssetTypeStock,
			CreatedAt:  created,
			ModifiedAt: created,
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &Database{
				assets: mockAssetsRepository{sqlError: tt.sqlErr, row: stored},
			}
			got, err := db.GetAssetByTicker("AAPL", context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetAssetByTicker() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetAssetByTicker() error = %v", err)
			}
			if *got != *tt.want {
				t.Fatalf("GetAssetByTicker() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

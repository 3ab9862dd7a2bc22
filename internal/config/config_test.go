package config

import (
	"os"
	"path/filepath"
	"testing"

	"roibacktest/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
xlsx_path: "./data/history.xlsx"
ticker: "9921"
`))
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "buy_sell_prices.csv", cfg.TradeTablePath)
	assert.Equal(t, "first", cfg.DCAPickup)
	assert.Equal(t, []int{5, 10, 20, 60, 120, 240}, cfg.SweepPeriods)
	require.Len(t, cfg.MACRuns, 3)
	assert.Equal(t, types.SignalAlternation, cfg.PolicyOf(cfg.MACRuns[0]))
}

func TestLoad_FullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
db_conn_str: "postgresql://localhost:5432/candles"
ticker: "AAPL"
start: "2020-01-01"
end: "2024-01-01"
output_dir: "./charts"
dca_pickup: "last"
mac_runs:
  - { short: 10, long: 20, policy: "BuyFirstPaired" }
sweep_periods: [5, 10]
`))
	require.NoError(t, err)

	start, err := cfg.StartTime()
	require.NoError(t, err)
	assert.Equal(t, 2020, start.Year())

	require.Len(t, cfg.MACRuns, 1)
	assert.Equal(t, types.BuyFirstPaired, cfg.PolicyOf(cfg.MACRuns[0]))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no source", `ticker: "AAPL"`},
		{"two sources", "xlsx_path: a.xlsx\ndb_conn_str: postgres://x\nticker: AAPL"},
		{"missing ticker", `xlsx_path: "a.xlsx"`},
		{"db source without dates", "db_conn_str: postgres://x\nticker: AAPL"},
		{"unknown policy", "xlsx_path: a.xlsx\nticker: AAPL\nmac_runs: [{short: 5, long: 10, policy: Hold}]"},
		{"short above long", "xlsx_path: a.xlsx\nticker: AAPL\nmac_runs: [{short: 20, long: 10, policy: BuyAndHold}]"},
		{"not yaml", `{{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

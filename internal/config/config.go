// Package config
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"roibacktest/types"

	"gopkg.in/yaml.v3"
)

/*
YAML config example:
xlsx_path: "./data/9921_daily.xlsx"
ticker: "9921"
output_dir: "./out"
trade_table_path: "./out/buy_sell_prices.csv"
dca_pickup: "first"
mac_runs:
  - { short: 20, long: 120, policy: "SignalAlternation" }
  - { short: 20, long: 240, policy: "BuyAndHold" }
  - { short: 10, long: 20, policy: "BuyFirstPaired" }
sweep_periods: [5, 10, 20, 60, 120, 240]
*/

type MACRun struct {
	Short  int    `yaml:"short"`
	Long   int    `yaml:"long"`
	Policy string `yaml:"policy"`
}

type Config struct {
	// Exactly one of XLSXPath and DBConnStr selects the price source.
	XLSXPath  string `yaml:"xlsx_path"`
	XLSXSheet string `yaml:"xlsx_sheet"`
	DBConnStr string `yaml:"db_conn_str"`

	Ticker string `yaml:"ticker"`
	Start  string `yaml:"start"`
	End    string `yaml:"end"`

	OutputDir      string `yaml:"output_dir"`
	TradeTablePath string `yaml:"trade_table_path"`

	DCAPickup    string   `yaml:"dca_pickup"`
	MACRuns      []MACRun `yaml:"mac_runs"`
	SweepPeriods []int    `yaml:"sweep_periods"`
}

var validPolicies = map[string]types.Policy{
	string(types.BuyAndHold):        types.BuyAndHold,
	string(types.BuyFirstPaired):    types.BuyFirstPaired,
	string(types.SignalAlternation): types.SignalAlternation,
}

// Load reads and validates a YAML config file, filling defaults where the
// file is silent.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.TradeTablePath == "" {
		c.TradeTablePath = "buy_sell_prices.csv"
	}
	if c.DCAPickup == "" {
		c.DCAPickup = "first"
	}
	if len(c.SweepPeriods) == 0 {
		c.SweepPeriods = []int{5, 10, 20, 60, 120, 240}
	}
	if len(c.MACRuns) == 0 {
		c.MACRuns = []MACRun{
			{Short: 20, Long: 120, Policy: string(types.SignalAlternation)},
			{Short: 20, Long: 240, Policy: string(types.BuyAndHold)},
			{Short: 10, Long: 20, Policy: string(types.BuyFirstPaired)},
		}
	}
}

func (c *Config) validate() error {
	if c.XLSXPath == "" && c.DBConnStr == "" {
		return errors.New("config: one of xlsx_path or db_conn_str is required")
	}
	if c.XLSXPath != "" && c.DBConnStr != "" {
		return errors.New("config: xlsx_path and db_conn_str are mutually exclusive")
	}
	if c.Ticker == "" {
		return errors.New("config: ticker is required")
	}
	if c.DBConnStr != "" {
		if _, err := c.StartTime(); err != nil {
			return err
		}
		if _, err := c.EndTime(); err != nil {
			return err
		}
	}
	for _, run := range c.MACRuns {
		if _, ok := validPolicies[run.Policy]; !ok {
			return fmt.Errorf("config: unknown policy %q", run.Policy)
		}
		if run.Short <= 0 || run.Short >= run.Long {
			return fmt.Errorf("config: invalid ma run %d-%d", run.Short, run.Long)
		}
	}
	return nil
}

// PolicyOf maps a validated run to its engine policy.
func (c *Config) PolicyOf(run MACRun) types.Policy {
	return validPolicies[run.Policy]
}

func (c *Config) StartTime() (time.Time, error) {
	return parseDay("start", c.Start)
}

func (c *Config) EndTime() (time.Time, error) {
	return parseDay("end", c.End)
}

func parseDay(field, raw string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: %s: %w", field, err)
	}
	return t, nil
}

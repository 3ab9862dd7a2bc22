// Package sweep runs a moving-average crossover backtest for every valid
// (short, long) period combination and collects each combination's final
// cumulative ROI. Combinations are independent and run in parallel; results
// are keyed by combination, never by completion order.
package sweep

import (
	"fmt"
	"runtime"
	"sync"

	"roibacktest/internal/engine"
	"roibacktest/strategies/macross"
	"roibacktest/types"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

type Combination struct {
	Short int
	Long  int
}

func (c Combination) String() string {
	return fmt.Sprintf("%d-%d", c.Short, c.Long)
}

// Result is the outcome for one combination. A failed combination carries
// its error here and leaves every other combination's result intact.
type Result struct {
	Combination
	FinalROI decimal.Decimal
	Err      error
}

// Combinations returns every (short, long) pair with short < long, in
// stable order.
func Combinations(periods []int) []Combination {
	var combos []Combination
	for _, s := range periods {
		for _, l := range periods {
			if s < l {
				combos = append(combos, Combination{Short: s, Long: l})
			}
		}
	}
	return combos
}

// Run backtests every combination of the given periods under the given
// pairing policy. For BuyAndHold only the buy dates feed the engine.
func Run(series *types.PriceSeries, periods []int, policy types.Policy) []Result {
	combos := Combinations(periods)
	results := make([]Result, len(combos))

	bar := initProgressBar(len(combos), fmt.Sprintf("Sweeping MA combinations (%s)...", policy))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i, combo := range combos {
		wg.Add(1)
		go func(i int, combo Combination) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = runOne(series, combo, policy)
			bar.Add(1)
		}(i, combo)
	}
	wg.Wait()

	return results
}

func runOne(series *types.PriceSeries, combo Combination, policy types.Policy) Result {
	info, err := macross.Detect(series, combo.Short, combo.Long)
	if err != nil {
		return Result{Combination: combo, Err: err}
	}

	req := engine.Request{Policy: policy, BuyDates: info.BuyDates}
	if policy != types.BuyAndHold {
		req.SellDates = info.SellDates
	}
	res, err := engine.Compute(series, req)
	if err != nil {
		return Result{Combination: combo, Err: err}
	}
	return Result{Combination: combo, FinalROI: res.FinalROI}
}

func initProgressBar(maxTicks int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

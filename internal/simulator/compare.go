package simulator

import (
	"context"
	"fmt"
	"io"

	"github.com/lox/pyramid/internal/fileutil"
	"github.com/lox/pyramid/internal/statistics"
)

// significance is the alpha used when describing a comparison
const significance = 0.05

// Comparison is the outcome of two strategies playing the same deals
type Comparison struct {
	Base    Report                `json:"base"`
	Against Report                `json:"against"`
	Result  statistics.Comparison `json:"result"`
}

// Compare runs base and then against, and tests whether their mean scores
// differ. Both must be configured with the same games, seed and rules so
// that every deal is played once by each strategy.
func Compare(ctx context.Context, base, against *Simulator) (*Comparison, error) {
	bc, ac := base.Config(), against.Config()
	if bc.Games != ac.Games || bc.Seed != ac.Seed || bc.Rules != ac.Rules {
		return nil, fmt.Errorf("%w: compared runs must share games, seed and rules", ErrInvalidConfig)
	}

	baseReport, baseStats, err := runTimed(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", bc.Strategy, err)
	}
	againstReport, againstStats, err := runTimed(ctx, against)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ac.Strategy, err)
	}

	return &Comparison{
		Base:    baseReport,
		Against: againstReport,
		Result:  statistics.Compare(baseStats, againstStats),
	}, nil
}

func runTimed(ctx context.Context, sim *Simulator) (Report, *statistics.Statistics, error) {
	start := sim.config.Clock.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return Report{}, nil, err
	}
	return NewReport(sim.config, stats, sim.config.Clock.Since(start)), stats, nil
}

// WriteFile stores the comparison as indented JSON, replacing path atomically
func (c *Comparison) WriteFile(path string) error {
	if err := fileutil.WriteJSONAtomic(path, c, 0o644); err != nil {
		return fmt.Errorf("failed to write comparison %s: %w", path, err)
	}
	return nil
}

// PrintSummary writes both reports and the significance test
func (c *Comparison) PrintSummary(w io.Writer) {
	c.Base.PrintSummary(w)
	c.Against.PrintSummary(w)

	r := c.Result
	fmt.Fprintf(w, "\n=== %s vs %s ===\n", c.Base.Strategy, c.Against.Strategy)
	fmt.Fprintf(w, "Win rate: %+.2f%%\n", r.WinRateDiff*100)
	fmt.Fprintf(w, "Mean score: %+.1f  95%% CI: [%.1f, %.1f]\n", r.Difference, r.CI95Low, r.CI95High)
	fmt.Fprintf(w, "t = %.2f (df %d)  p = %.4f, %s\n", r.TStatistic, r.DF, r.PValue, statistics.InterpretPValue(r.PValue, significance))
	fmt.Fprintf(w, "Effect size: %.2f (%s)\n", r.EffectSize, statistics.InterpretEffectSize(r.EffectSize))
}

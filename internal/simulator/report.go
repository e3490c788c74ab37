package simulator

import (
	"fmt"
	"io"
	"time"

	"github.com/lox/pyramid/internal/fileutil"
	"github.com/lox/pyramid/internal/statistics"
)

// Report is the JSON summary of a simulation run
type Report struct {
	Strategy    string                         `json:"strategy"`
	Seed        int64                          `json:"seed"`
	Games       int                            `json:"games"`
	Wins        int                            `json:"wins"`
	Losses      int                            `json:"losses"`
	Stalls      int                            `json:"stalls"`
	WinRate     float64                        `json:"winRate"`
	MeanScore   float64                        `json:"meanScore"`
	MedianScore float64                        `json:"medianScore"`
	StdDev      float64                        `json:"stdDev"`
	CI95        [2]float64                     `json:"ci95"`
	MeanMoves   float64                        `json:"meanMoves"`
	MeanCleared float64                        `json:"meanCleared"`
	Cleared     [statistics.MaxCleared + 1]int `json:"cleared"`
	BestScore   int                            `json:"bestScore"`
	BestSeed    int64                          `json:"bestSeed"`
	Duration    time.Duration                  `json:"duration"`
}

// NewReport summarises stats for the run described by config
func NewReport(config Config, stats *statistics.Statistics, duration time.Duration) Report {
	low, high := stats.ConfidenceInterval95()
	return Report{
		Strategy:    config.Strategy,
		Seed:        config.Seed,
		Games:       stats.Games,
		Wins:        stats.Wins,
		Losses:      stats.Losses,
		Stalls:      stats.Stalls,
		WinRate:     stats.WinRate(),
		MeanScore:   stats.Mean(),
		MedianScore: stats.Median(),
		StdDev:      stats.StdDev(),
		CI95:        [2]float64{low, high},
		MeanMoves:   stats.MeanMoves(),
		MeanCleared: stats.MeanCleared(),
		Cleared:     stats.Cleared,
		BestScore:   stats.BestScore,
		BestSeed:    stats.BestSeed,
		Duration:    duration,
	}
}

// WriteFile stores the report as indented JSON, replacing path atomically
func (r Report) WriteFile(path string) error {
	if err := fileutil.WriteJSONAtomic(path, r, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// PrintSummary writes a human-readable summary of the report
func (r Report) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "\n=== RESULTS: %s strategy ===\n", r.Strategy)
	fmt.Fprintf(w, "Games played: %d (seeds %d..%d)\n", r.Games, r.Seed, r.Seed+int64(r.Games)-1)
	fmt.Fprintf(w, "Won: %d (%.2f%%)  Lost: %d  Stalled: %d\n", r.Wins, r.WinRate*100, r.Losses, r.Stalls)

	fmt.Fprintf(w, "\n=== SCORE ===\n")
	fmt.Fprintf(w, "Mean: %.1f  Median: %.1f  Std Dev: %.1f\n", r.MeanScore, r.MedianScore, r.StdDev)
	fmt.Fprintf(w, "95%% CI: [%.1f, %.1f]\n", r.CI95[0], r.CI95[1])
	fmt.Fprintf(w, "Best: %d (seed %d)\n", r.BestScore, r.BestSeed)

	fmt.Fprintf(w, "\n=== PLAY ===\n")
	fmt.Fprintf(w, "Moves per game: %.1f\n", r.MeanMoves)
	fmt.Fprintf(w, "Pyramid cards cleared per game: %.1f / %d\n", r.MeanCleared, statistics.MaxCleared)
	fmt.Fprintf(w, "Took %s\n", r.Duration.Round(time.Millisecond))
}

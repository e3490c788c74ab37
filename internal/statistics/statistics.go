package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// MaxCleared is the number of pyramid cards a game can clear
const MaxCleared = 28

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Seed    int64         // Deal seed (for replay)
	Won     bool          // Pyramid cleared
	Lost    bool          // No moves left
	Stalled bool          // Hit the move cap while still playable
	Score   int           // Final score
	Moves   int           // Moves made, draws included
	Cleared int           // Pyramid cards removed (0-28)
	Elapsed time.Duration // Wall time spent playing
}

// Statistics aggregates simulated game results
type Statistics struct {
	Games     int
	Wins      int
	Losses    int
	Stalls    int
	SumScore  float64
	SumScore2 float64   // Sum of squares for variance calculation
	Values    []float64 // Store all scores for median/percentile calculation

	SumMoves   int
	SumCleared int

	// Cleared[n] counts games that removed exactly n pyramid cards
	Cleared [MaxCleared + 1]int

	BestScore int
	BestSeed  int64
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	score := float64(result.Score)
	s.Games++
	s.SumScore += score
	s.SumScore2 += score * score
	s.Values = append(s.Values, score)
	s.SumMoves += result.Moves

	switch {
	case result.Won:
		s.Wins++
	case result.Lost:
		s.Losses++
	case result.Stalled:
		s.Stalls++
	}

	cleared := min(max(result.Cleared, 0), MaxCleared)
	s.SumCleared += cleared
	s.Cleared[cleared]++

	if s.Games == 1 || result.Score > s.BestScore {
		s.BestScore = result.Score
		s.BestSeed = result.Seed
	}
}

// Merge folds other into s. Merging per-worker statistics in a fixed order
// gives the same totals as adding every result to one Statistics.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil || other.Games == 0 {
		return
	}
	if s.Games == 0 || other.BestScore > s.BestScore {
		s.BestScore = other.BestScore
		s.BestSeed = other.BestSeed
	}
	s.Games += other.Games
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Stalls += other.Stalls
	s.SumScore += other.SumScore
	s.SumScore2 += other.SumScore2
	s.Values = append(s.Values, other.Values...)
	s.SumMoves += other.SumMoves
	s.SumCleared += other.SumCleared
	for i, n := range other.Cleared {
		s.Cleared[i] += n
	}
}

// WinRate returns the fraction of games won
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Mean returns the arithmetic mean score per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumScore / float64(s.Games)
}

// Variance returns the sample variance of scores
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumScore2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of scores
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	se := s.StdError()
	margin := 1.96 * se // 95% confidence
	return mean - margin, mean + margin
}

// Median returns the median score
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the score at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// MeanMoves returns the average number of moves per game
func (s *Statistics) MeanMoves() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumMoves) / float64(s.Games)
}

// MeanCleared returns the average number of pyramid cards removed per game
func (s *Statistics) MeanCleared() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumCleared) / float64(s.Games)
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if outcomes := s.Wins + s.Losses + s.Stalls; outcomes > s.Games {
		return fmt.Errorf("outcomes (%d) exceed total games (%d)", outcomes, s.Games)
	}

	histogram := 0
	for _, n := range s.Cleared {
		histogram += n
	}
	if histogram != s.Games {
		return fmt.Errorf("cleared histogram total (%d) does not match total games (%d)",
			histogram, s.Games)
	}

	if s.Cleared[MaxCleared] != s.Wins {
		return fmt.Errorf("wins (%d) do not match fully cleared games (%d)", s.Wins, s.Cleared[MaxCleared])
	}

	return nil
}

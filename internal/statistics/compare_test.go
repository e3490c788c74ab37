package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scores(values ...int) *Statistics {
	s := &Statistics{}
	for i, v := range values {
		s.Add(GameResult{Seed: int64(i + 1), Lost: true, Score: v})
	}
	return s
}

func TestCompareKnownSamples(t *testing.T) {
	c := Compare(scores(1, 2, 3, 4, 5), scores(2, 3, 4, 5, 6))

	assert.InDelta(t, -1.0, c.Difference, 1e-9)
	assert.InDelta(t, 1.0, c.StdError, 1e-9)
	assert.InDelta(t, -1.0, c.TStatistic, 1e-9)
	assert.Equal(t, 8, c.DF)
	assert.InDelta(t, 0.3466, c.PValue, 1e-3)
	assert.InDelta(t, -0.6325, c.EffectSize, 1e-3)
	assert.Less(t, c.CI95Low, 0.0)
	assert.Greater(t, c.CI95High, 0.0)
	assert.Equal(t, "medium", InterpretEffectSize(c.EffectSize))
	assert.Equal(t, "not significant", InterpretPValue(c.PValue, 0.05))
}

func TestCompareIdentical(t *testing.T) {
	a := scores(50, 50, 50, 50)
	c := Compare(a, a)

	assert.Zero(t, c.Difference)
	assert.Zero(t, c.EffectSize)
	assert.Equal(t, 1.0, c.PValue)
	assert.Zero(t, c.WinRateDiff)
}

func TestCompareClearDifference(t *testing.T) {
	var high, low []int
	for i := 0; i < 20; i++ {
		high = append(high, 200+i*5)
		low = append(low, i*5)
	}
	a, b := scores(high...), scores(low...)
	a.Add(GameResult{Seed: 99, Won: true, Score: 300, Cleared: MaxCleared})

	c := Compare(a, b)
	assert.Greater(t, c.Difference, 150.0)
	assert.Less(t, c.PValue, 0.001)
	assert.Greater(t, c.CI95Low, 0.0)
	assert.Greater(t, c.WinRateDiff, 0.0)
	assert.Equal(t, "large", InterpretEffectSize(c.EffectSize))
	assert.Equal(t, "highly significant", InterpretPValue(c.PValue, 0.05))
}

func TestInterpretPValue(t *testing.T) {
	assert.Equal(t, "very significant", InterpretPValue(0.005, 0.05))
	assert.Equal(t, "significant", InterpretPValue(0.03, 0.05))
	assert.Equal(t, "marginally significant", InterpretPValue(0.07, 0.05))
	assert.Equal(t, "small", InterpretEffectSize(-0.3))
	assert.Equal(t, "negligible", InterpretEffectSize(0.1))
}

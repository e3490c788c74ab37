package statistics

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Comparison contains the results of comparing the scores of two runs
type Comparison struct {
	Difference  float64 // Mean score difference, a minus b
	StdError    float64 // Standard error of difference
	TStatistic  float64
	DF          int     // Welch degrees of freedom
	PValue      float64 // Two-tailed
	EffectSize  float64 // Cohen's d
	CI95Low     float64 // 95% CI for difference
	CI95High    float64 // 95% CI for difference
	WinRateDiff float64
}

// Compare runs Welch's t-test on the scores of a and b
func Compare(a, b *Statistics) Comparison {
	difference := a.Mean() - b.Mean()

	pooled := pooledStdDev(a.StdDev(), a.Games, b.StdDev(), b.Games)
	effectSize := 0.0
	if pooled > 0 {
		effectSize = difference / pooled
	}

	se := math.Sqrt(a.StdError()*a.StdError() + b.StdError()*b.StdError())
	tStat := 0.0
	if se > 0 {
		tStat = difference / se
	}

	df := welchDF(a.StdDev(), a.Games, b.StdDev(), b.Games)
	margin := 0.0
	if se > 0 {
		margin = studentsT(df).Quantile(0.975) * se
	}

	return Comparison{
		Difference:  difference,
		StdError:    se,
		TStatistic:  tStat,
		DF:          df,
		PValue:      pValue(tStat, df, se),
		EffectSize:  effectSize,
		CI95Low:     difference - margin,
		CI95High:    difference + margin,
		WinRateDiff: a.WinRate() - b.WinRate(),
	}
}

func studentsT(df int) distuv.StudentsT {
	return distuv.StudentsT{Nu: float64(df), Mu: 0, Sigma: 1}
}

func pooledStdDev(sd1 float64, n1 int, sd2 float64, n2 int) float64 {
	if n1+n2 <= 2 {
		return 0
	}
	v := (float64(n1-1)*sd1*sd1 + float64(n2-1)*sd2*sd2) / float64(n1+n2-2)
	return math.Sqrt(v)
}

// welchDF is the Welch-Satterthwaite approximation, floored. The epsilon
// keeps an exact integer from rounding down a whole degree.
func welchDF(sd1 float64, n1 int, sd2 float64, n2 int) int {
	if n1 <= 1 || n2 <= 1 {
		return 2
	}

	v1 := sd1 * sd1 / float64(n1)
	v2 := sd2 * sd2 / float64(n2)
	denominator := v1*v1/float64(n1-1) + v2*v2/float64(n2-1)
	if denominator == 0 {
		return n1 + n2 - 2
	}
	return int(math.Floor((v1+v2)*(v1+v2)/denominator + 1e-9))
}

// pValue is P(|T| > |t|). Identical constant samples have nothing to test.
func pValue(tStat float64, df int, se float64) float64 {
	if df <= 0 || se == 0 {
		return 1
	}
	p := 2 * (1 - studentsT(df).CDF(math.Abs(tStat)))
	return math.Min(math.Max(p, 0), 1)
}

// InterpretEffectSize returns a human-readable interpretation of Cohen's d
func InterpretEffectSize(d float64) string {
	absd := math.Abs(d)
	switch {
	case absd < 0.2:
		return "negligible"
	case absd < 0.5:
		return "small"
	case absd < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// InterpretPValue returns a human-readable interpretation of a p-value
func InterpretPValue(p float64, alpha float64) string {
	switch {
	case p < 0.001:
		return "highly significant"
	case p < 0.01:
		return "very significant"
	case p < alpha:
		return "significant"
	case p < 0.10:
		return "marginally significant"
	default:
		return "not significant"
	}
}

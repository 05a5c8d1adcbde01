package calibration

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Combined is the result of pooling several radiocarbon ages that are thought
// to date the same event.
type Combined struct {
	N     int
	Age   float64 // Inverse-variance weighted mean raw age
	Sigma float64 // Uncertainty of the pooled age
	T     float64 // Ward & Wilson test statistic
	P     float64 // Chance of a T at least this large if all ages share one true age
}

// Combine pools raw ages with the Ward & Wilson (1978) procedure. The test
// statistic T is chi-square distributed with n-1 degrees of freedom when the
// ages are contemporaneous.
func Combine(ages, sigmas []float64) (Combined, error) {
	if len(ages) != len(sigmas) {
		return Combined{}, fmt.Errorf("%d ages but %d sigmas", len(ages), len(sigmas))
	}
	if len(ages) == 0 {
		return Combined{}, fmt.Errorf("no ages to combine")
	}

	var weightSum, weightedAges float64
	for i, sigma := range sigmas {
		if sigma <= 0 {
			return Combined{}, fmt.Errorf("sigma %d must be positive, got %v", i, sigma)
		}
		w := 1 / (sigma * sigma)
		weightSum += w
		weightedAges += w * ages[i]
	}

	out := Combined{
		N:     len(ages),
		Age:   weightedAges / weightSum,
		Sigma: math.Sqrt(1 / weightSum),
		P:     1,
	}

	for i, age := range ages {
		out.T += math.Pow(age-out.Age, 2) / (sigmas[i] * sigmas[i])
	}

	if out.N > 1 {
		out.P = 1 - distuv.ChiSquared{K: float64(out.N - 1)}.CDF(out.T)
	}

	return out, nil
}

// Consistent reports whether the ages pass the test at significance alpha
// (conventionally 0.05).
func (c Combined) Consistent(alpha float64) bool {
	return c.P >= alpha
}

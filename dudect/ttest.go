package dudect

import "math"

// groupA and groupB index the two sample groups within a TTest.
const (
	groupA = 0
	groupB = 1
)

// groupValues holds the running Welford accumulators for one sample group.
//
// Invariants: numberSamples >= 0, m2 >= 0; after k pushes, mean and
// m2/(k-1) equal the exact sample mean and sample variance up to
// floating-point rounding.
type groupValues struct {
	mean          float64
	m2            float64
	numberSamples float64
}

// push updates the group's running mean and sum-of-squared-deviations by
// Welford's method. Numerically stable for large n even when variance is
// small relative to mean — the common case for tight cryptographic
// routines.
func (g *groupValues) push(value float64) {
	g.numberSamples++
	delta := value - g.mean
	g.mean += delta / g.numberSamples
	g.m2 += delta * (value - g.mean) // note: uses the *new* mean
}

func (g *groupValues) variance() float64 {
	return g.m2 / (g.numberSamples - 1.0)
}

// TTest is a two-group online Welch t-test accumulator. It is a small value
// type: cheap to copy, which maxTest relies on when returning the winning
// test by value.
type TTest struct {
	groups [2]groupValues
}

// NewTTest returns a t-test with both groups empty.
func NewTTest() TTest {
	return TTest{}
}

// Push adds value to group A if isGroupA is true, else to group B.
func (t *TTest) Push(value float64, isGroupA bool) {
	if isGroupA {
		t.groups[groupA].push(value)
	} else {
		t.groups[groupB].push(value)
	}
}

// Compute returns the Welch t statistic, or false if either group has at
// most one sample, or the combined standard error is exactly zero.
func (t *TTest) Compute() (float64, bool) {
	a, b := t.groups[groupA], t.groups[groupB]
	if a.numberSamples <= 1.0 || b.numberSamples <= 1.0 {
		return 0, false
	}

	varA := a.variance()
	varB := b.variance()
	num := a.mean - b.mean
	den := math.Sqrt(varA/a.numberSamples + varB/b.numberSamples)
	if den == 0.0 {
		return 0, false
	}
	return num / den, true
}

// SampleCounts returns the number of samples pushed to group A and group B.
func (t *TTest) SampleCounts() (nA, nB float64) {
	return t.groups[groupA].numberSamples, t.groups[groupB].numberSamples
}

// Means returns the running mean of group A and group B.
func (t *TTest) Means() (meanA, meanB float64) {
	return t.groups[groupA].mean, t.groups[groupB].mean
}

// computeOrZero returns Compute(), treating "no result" as zero — the
// convention used by maxTest and report: insufficient samples and
// divide-by-zero are both recovered locally, never propagated.
func (t *TTest) computeOrZero() float64 {
	v, ok := t.Compute()
	if !ok {
		return 0
	}
	return v
}

package dudect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecuteMeasurementRun_FirstRun_AlwaysNoLeakageEvidenceYet(t *testing.T) {
	// GIVEN a brand-new measurement context
	ctx := NewMeasurementContext(&fixedSleepSpecimen{}, 500)

	// WHEN we execute the very first run
	result := ctx.ExecuteMeasurementRun()

	// THEN it always returns NoLeakageEvidenceYet and seeds the percentiles
	assert.Equal(t, NoLeakageEvidenceYet, result)
	assert.NotZero(t, ctx.percentiles[numberPercentiles-1])
}

func TestExecuteMeasurementRun_FewSamples_NotEnoughMeasurements(t *testing.T) {
	// GIVEN a context with a tiny M, so each run contributes few samples and
	// the combined sample count stays under the 10000 reporting threshold
	ctx := NewMeasurementContext(&fixedSleepSpecimen{}, 20)

	// WHEN we run the warm-up and then one measured run
	ctx.ExecuteMeasurementRun()
	result := ctx.ExecuteMeasurementRun()

	// THEN there aren't remotely enough samples to reach a verdict
	assert.Equal(t, NoLeakageEvidenceYet, result)
}

func TestUpdateStatistics_SecondOrderTest_EmptyUntilThreshold(t *testing.T) {
	// GIVEN a context that has only run a handful of small measurement runs
	ctx := NewMeasurementContext(&fixedSleepSpecimen{}, 50)
	ctx.ExecuteMeasurementRun() // warm-up
	for i := 0; i < 5; i++ {
		ctx.ExecuteMeasurementRun()
	}

	// WHEN we inspect the second-order test
	nA, nB := ctx.secondOrderTest.SampleCounts()

	// THEN it has not been engaged yet (far fewer than 10000 samples pushed
	// to percentileTests[0]'s group A)
	assert.Equal(t, 0.0, nA)
	assert.Equal(t, 0.0, nB)
}

func TestUpdateStatistics_WarmupStrip_DoesNotContaminateTests(t *testing.T) {
	// GIVEN a context with a huge spike injected into the first ten
	// execution times of a (non-warm-up) run
	ctx := NewMeasurementContext(&fixedSleepSpecimen{}, 100)
	ctx.ExecuteMeasurementRun() // warm-up: seeds percentiles

	for i := range ctx.executionTimes {
		ctx.executionTimes[i] = 1000
	}
	for i := 0; i < warmupStripPerRun; i++ {
		ctx.executionTimes[i] = 1 << 40 // spike, far above any percentile crop
	}
	for i := range ctx.isGroupA {
		ctx.isGroupA[i] = i%2 == 0
	}

	// WHEN we update statistics directly from this run
	ctx.updateStatistics()

	// THEN the spike never reaches any test: the uncropped test only ever
	// saw samples from index warmupStripPerRun onward
	nA, nB := ctx.firstOrderUncroppedTest.SampleCounts()
	assert.Equal(t, float64(ctx.m-1-warmupStripPerRun), nA+nB)
	meanA, meanB := ctx.firstOrderUncroppedTest.Means()
	assert.Less(t, meanA, 2000.0)
	assert.Less(t, meanB, 2000.0)
}

func TestMaxTest_TieBreak_IsDeterministic(t *testing.T) {
	// GIVEN a context whose percentile tests are all tied at the same t
	// value, with the first-order and second-order tests left empty
	ctx := NewMeasurementContext(&fixedSleepSpecimen{}, 50)
	buildTiedTTest := func() TTest {
		tt := NewTTest()
		for _, v := range []float64{1.0, 2.0, 3.0} {
			tt.Push(v, true)
		}
		for _, v := range []float64{0.0, 1.0, 2.0} {
			tt.Push(v, false)
		}
		return tt
	}
	for i := range ctx.percentileTests {
		ctx.percentileTests[i] = buildTiedTTest()
	}

	// WHEN only the percentile tests are tied (first/second order empty)
	result := ctx.maxTest()

	// THEN the result is a valid, non-empty t-test, and selecting again from
	// the same state yields the same test (exact identity among ties is not
	// load-bearing)
	value, ok := result.Compute()
	assert.True(t, ok)
	assert.Greater(t, value, 0.0)
	assert.Equal(t, result, ctx.maxTest())
}

func TestMaxTest_FirstOrderOverridesOnlyWhenStrictlyGreater(t *testing.T) {
	// GIVEN percentile tests all empty (compute as 0) and a first-order test
	// with a clearly positive t
	ctx := NewMeasurementContext(&fixedSleepSpecimen{}, 50)
	for _, v := range altValues(10.0, 8) {
		ctx.firstOrderUncroppedTest.Push(v, true)
	}
	for _, v := range altValues(0.0, 8) {
		ctx.firstOrderUncroppedTest.Push(v, false)
	}

	// WHEN we select the max test
	result := ctx.maxTest()

	// THEN the first-order test wins, since it strictly beats the empty
	// percentile tests (which compute to 0)
	value, ok := result.Compute()
	assert.True(t, ok)
	assert.Greater(t, value, 0.0)
}

func TestReport_ThresholdLadder(t *testing.T) {
	// GIVEN three contexts whose winning test's |t| falls in each band of
	// the decision ladder, built from noisy samples with unit variance per
	// group (so the Welch t-test has a real, non-degenerate denominator)
	const n = 6000
	cases := []struct {
		name string
		mean float64
		want MeasurementRunResult
	}{
		{"overwhelming", 18.26, LeakageFound},               // |t| ~ 1000
		{"moderate", 0.3652, LeakageFound},                   // |t| ~ 20
		{"insufficient-evidence", 0.0001826, NoLeakageEvidenceYet}, // |t| ~ 0.01
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := NewMeasurementContext(&fixedSleepSpecimen{}, 50)
			for _, v := range altValues(tc.mean, n) {
				ctx.firstOrderUncroppedTest.Push(v, true)
			}
			for _, v := range altValues(0.0, n) {
				ctx.firstOrderUncroppedTest.Push(v, false)
			}

			// WHEN we report
			got := ctx.report()

			// THEN the verdict matches the expected band
			assert.Equal(t, tc.want, got)
		})
	}
}

// altValues returns n values alternating mean+1 and mean-1, giving an exact
// mean of `mean` and a sample variance of n/(n-1) (~1 for large n) — a
// simple way to build t-tests with a known, non-degenerate denominator.
func altValues(mean float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = mean + 1
		} else {
			out[i] = mean - 1
		}
	}
	return out
}

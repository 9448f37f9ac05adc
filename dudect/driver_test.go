package dudect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeRunner reports NoLeakageEvidenceYet for a fixed number of calls, then
// LeakageFound, so driver tests don't need to drive real hardware timing.
type fakeRunner struct {
	remaining int
	calls     int
}

func (f *fakeRunner) ExecuteMeasurementRun() MeasurementRunResult {
	f.calls++
	if f.remaining <= 0 {
		return LeakageFound
	}
	f.remaining--
	return NoLeakageEvidenceYet
}

func TestRunUntilLeakageWithClock_StopsOnLeakageFound(t *testing.T) {
	// GIVEN a runner that takes 450 calls before finding leakage
	runner := &fakeRunner{remaining: 450}

	// WHEN we drive it with the real clock (the heartbeat only reads time,
	// it never gates the loop)
	result := RunUntilLeakageWithClock(runner, RealClock)

	// THEN it stops exactly at the 451st call, having found leakage
	assert.Equal(t, LeakageFound, result)
	assert.Equal(t, 451, runner.calls)
}

func TestRunUntilLeakageWithClock_HeartbeatDoesNotAffectResult(t *testing.T) {
	// GIVEN a runner spanning multiple heartbeat intervals
	runner := &fakeRunner{remaining: heartbeatEvery*3 + 5}

	// WHEN we drive it
	result := RunUntilLeakageWithClock(runner, RealClock)

	// THEN the heartbeat logging is purely observational: the result and
	// call count only depend on the runner's own sequence
	assert.Equal(t, LeakageFound, result)
	assert.Equal(t, heartbeatEvery*3+6, runner.calls)
}

package dudect

import (
	"github.com/sirupsen/logrus"
	"github.com/zoobzio/clockz"
)

// Clock abstracts wall-clock time so the driver's heartbeat cadence is
// testable without sleeping in tests, mirroring the type-alias-for-testing
// pattern the streamz example uses for its own Clock.
type Clock = clockz.Clock

// RealClock is the Clock RunUntilLeakage uses in production.
var RealClock Clock = clockz.RealClock

// heartbeatEvery controls how many completed measurement runs elapse
// between heartbeat log lines.
const heartbeatEvery = 200

// runnable is the subset of MeasurementContext the driver needs. It is
// satisfied by *MeasurementContext; tests substitute a fake to exercise the
// loop and heartbeat without driving real hardware timing.
type runnable interface {
	ExecuteMeasurementRun() MeasurementRunResult
}

// RunUntilLeakage repeatedly executes measurement runs against ctx until one
// reports LeakageFound. The loop is unbounded by design: absence of
// evidence never becomes proof of constancy.
func RunUntilLeakage(ctx *MeasurementContext) MeasurementRunResult {
	return RunUntilLeakageWithClock(ctx, RealClock)
}

// RunUntilLeakageWithClock is RunUntilLeakage with an injectable Clock, so
// tests can exercise the heartbeat without waiting on real time.
func RunUntilLeakageWithClock(ctx runnable, clock Clock) MeasurementRunResult {
	started := clock.Now()
	result := NoLeakageEvidenceYet
	runs := 0
	for result == NoLeakageEvidenceYet {
		result = ctx.ExecuteMeasurementRun()
		runs++
		if runs%heartbeatEvery == 0 {
			logrus.WithFields(logrus.Fields{
				"runs":    runs,
				"elapsed": clock.Now().Sub(started).String(),
			}).Info("dudect: still measuring")
		}
	}
	return result
}

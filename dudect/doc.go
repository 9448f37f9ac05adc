// Package dudect implements the dudect methodology for detecting
// non-constant-time execution of a caller-supplied computation.
//
// # Reading Guide
//
// Start with these files to understand the measurement kernel:
//   - specimen.go: the extension point a caller implements
//   - ttest.go: the online, numerically stable Welch t-test accumulator
//   - percentile.go: the order-statistic helper used to build crop thresholds
//   - context.go: the measurement loop — one run at a time, owns every buffer
//   - driver.go: repeatedly drives a context until it reports leakage
//
// # Architecture
//
// A MeasurementContext owns all state for a single specimen: its input
// buffers, its bank of t-tests, and its percentile crop thresholds. It never
// allocates once constructed, and it drives exactly one measurement run at a
// time — see the ordering notes in context.go.
//
// # Key Interfaces
//
// The only extension point is Specimen: InputWidth, PrepareInputData, and
// DoOneComputation. Everything else — randomizing group assignment, timing,
// statistics, verdicts — is internal to this package.
package dudect

package dudect

// Specimen is the capability set a caller implements to have a computation
// analyzed for timing leaks. The reference dudect implementation
// parameterizes this by a compile-time input width N; Go has no generic
// array-length parameter, so InputWidth is a runtime method instead and
// input buffers are plain byte slices of that length.
type Specimen interface {
	// InputWidth returns N, the number of bytes in one computation's input.
	// It must return the same value for the lifetime of the specimen.
	InputWidth() int

	// PrepareInputData fills every entry of inputData (each of length
	// InputWidth()) for the current run. isGroupA is parallel to inputData
	// and read-only: entries flagged group A may be distributed differently
	// from group B. Must not read the cycle counter.
	PrepareInputData(inputData [][]byte, isGroupA []bool)

	// DoOneComputation performs the routine under test on one input. Its
	// return value, if any, is not observed; implementations must ensure the
	// call is not optimized away even though nothing observable escapes.
	DoOneComputation(input []byte)
}

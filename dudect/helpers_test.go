package dudect

// fixedSleepSpecimen is a minimal Specimen used by tests whose outcome does
// not depend on the timings it produces. DoOneComputation does nothing
// observable, matching the contract, and is not optimized away because it
// stores into the package-level sink.
type fixedSleepSpecimen struct {
	width int
}

func (s *fixedSleepSpecimen) InputWidth() int {
	if s.width == 0 {
		return 1
	}
	return s.width
}

func (s *fixedSleepSpecimen) PrepareInputData(inputData [][]byte, isGroupA []bool) {
	for i := range inputData {
		inputData[i][0] = byte(i)
	}
}

func (s *fixedSleepSpecimen) DoOneComputation(input []byte) {
	sink = input[0]
}

// sink defeats dead-code elimination of DoOneComputation's argument read.
var sink byte

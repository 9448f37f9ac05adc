package cmd

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/localthomas/dudect-rs/dudect"
)

// sleepConstantSpecimen sleeps for input[0] microseconds regardless of which
// group the input belongs to: both groups receive random bytes, so the
// sleep duration carries no information about group membership. Mirrors
// original_source's constant_simple.rs.
type sleepConstantSpecimen struct{}

func (sleepConstantSpecimen) InputWidth() int { return 1 }

func (sleepConstantSpecimen) PrepareInputData(inputData [][]byte, isGroupA []bool) {
	for _, in := range inputData {
		_, _ = rand.Read(in)
	}
}

func (sleepConstantSpecimen) DoOneComputation(input []byte) {
	time.Sleep(time.Duration(input[0]) * time.Microsecond)
}

// sleepLeakySpecimen sleeps for input[0] microseconds, but group B always
// gets a zero input: sleep duration correlates with group membership, which
// a constant-time harness should flag. Mirrors original_source's
// not_constant_simple.rs.
type sleepLeakySpecimen struct{}

func (sleepLeakySpecimen) InputWidth() int { return 1 }

func (sleepLeakySpecimen) PrepareInputData(inputData [][]byte, isGroupA []bool) {
	for i, in := range inputData {
		if isGroupA[i] {
			_, _ = rand.Read(in)
		} else {
			in[0] = 0
		}
	}
}

func (sleepLeakySpecimen) DoOneComputation(input []byte) {
	time.Sleep(time.Duration(input[0]) * time.Microsecond)
}

// newSpecimen resolves a --specimen flag value into a dudect.Specimen. The
// CLI ships only these two built-ins: a pluggable custom-specimen path
// would require a stable Go plugin ABI this harness does not attempt to
// provide.
func newSpecimen(name string) (dudect.Specimen, error) {
	switch name {
	case "sleep-constant":
		return sleepConstantSpecimen{}, nil
	case "sleep-leaky":
		return sleepLeakySpecimen{}, nil
	default:
		return nil, fmt.Errorf("unknown specimen %q (want sleep-constant or sleep-leaky)", name)
	}
}

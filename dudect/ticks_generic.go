//go:build !amd64 && !arm64

package dudect

import "time"

// CPUTicks falls back to wall-clock nanoseconds on architectures without a
// dedicated cycle-counter probe wired up here. The measurement math only
// cares about the tick series being monotonic modulo wraparound, not the
// tick unit, so this degrades measurement precision but not correctness.
func CPUTicks() uint64 {
	return uint64(time.Now().UnixNano())
}

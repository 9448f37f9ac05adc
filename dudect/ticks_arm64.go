package dudect

// CPUTicks returns the raw ARMv8 virtual count register (CNTVCT_EL0) value,
// assembled in ticks_arm64.s. Like the amd64 probe, it does not serialize
// around the read; the measurement protocol tolerates the resulting
// out-of-order noise statistically.
func CPUTicks() uint64 {
	return cntvctAsm()
}

// cntvctAsm is implemented in ticks_arm64.s.
func cntvctAsm() uint64

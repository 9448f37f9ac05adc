package dudect

// CPUTicks returns the raw x86 RDTSC timestamp counter value, assembled in
// ticks_amd64.s. Intel recommends serializing execution around RDTSC (e.g.
// with CPUID or the combined RDTSCP instruction) to reduce variance from
// out-of-order execution; this probe does not serialize, matching the
// reference implementation, and instead relies on the measurement's
// statistical tolerance for that noise.
func CPUTicks() uint64 {
	return rdtscAsm()
}

// rdtscAsm is implemented in ticks_amd64.s.
func rdtscAsm() uint64

package dudect

import "sort"

// percentile sorts data in place (order among equal elements is not
// preserved) and returns the order-statistic value at quantile q, with
// q in (0, 1).
//
// Panics if the computed index would reach or exceed len(data); callers
// must ensure q < 1.
func percentile(data []uint64, q float64) uint64 {
	sort.Slice(data, func(i, j int) bool { return data[i] < data[j] })

	position := int(float64(len(data)) * q)
	if position >= len(data) {
		panic("dudect: percentile quantile out of range")
	}
	return data[position]
}

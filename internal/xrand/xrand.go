// Package xrand derives independent random seeds for parallel annealing reads.
//
// Each read owns a generator seeded from the run seed and its read index, so
// results do not depend on goroutine scheduling.
package xrand

// golden is the SplitMix64 increment (2^64 / phi).
const golden = 0x9E3779B97F4A7C15

// Mix64 applies the SplitMix64 finalizer to x.
func Mix64(x uint64) uint64 {
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// SubSeed returns the seed for the given read index. Distinct read indices
// yield statistically independent streams for any fixed run seed.
func SubSeed(seed int64, read int) int64 {
	return int64(Mix64(uint64(seed) + (uint64(read)+1)*golden))
}

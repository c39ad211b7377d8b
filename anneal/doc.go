// Package anneal implements the classical annealing solver.
//
// A solve runs a configurable number of independent reads; each read starts
// from a fresh random binary vector and performs sweeps that attempt to flip
// every variable once. Flip acceptance blends the Metropolis criterion under
// a linearly rising inverse temperature with a tunneling term that lets the
// search cross tall, narrow energy barriers. The lowest-energy sample seen
// across all reads is returned.
//
// Reads run in parallel. Each read owns a generator seeded from the run seed
// and its read index, so a fixed seed yields a bit-for-bit identical result
// regardless of goroutine scheduling.
package anneal

// Package dwave talks to a remote quantum-annealing service.
//
// The client submits the sparse QUBO matrix in (i, j, value) form together
// with a read count and a fixed annealing duration, then polls for the
// answer and returns the lowest-energy sample. Every failure mode, from
// transport errors to oversized problems, is reported as an error wrapping
// ErrUnavailable so the hybrid solver can fall back to classical annealing.
//
// The network call is the only blocking I/O in the solver core; it is
// bounded by the caller's context.
package dwave

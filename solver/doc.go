// Package solver selects a backend for a formulated problem.
//
// A Hybrid solver routes small enough problems to quantum-annealing hardware
// when the configured capabilities allow it, and otherwise runs the classical
// annealing solver with parameters scaled to the problem size. Hardware
// failures of any kind degrade transparently to the classical path; callers
// only learn which backend produced the result, never a hardware error.
package solver

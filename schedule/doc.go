// Package schedule defines the scheduling context consumed by the solver.
//
// A Context is an immutable snapshot of one scheduling problem: who can work
// (residents), when work happens (time blocks), what kind of work exists
// (role templates), and when each resident is unavailable. Positions in the
// context slices double as stable integer indices, so downstream code can use
// flat arrays instead of map lookups.
package schedule

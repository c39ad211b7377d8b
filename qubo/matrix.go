package qubo

import (
	"fmt"
	"sort"
)

// Key identifies one cell of the sparse quadratic matrix under the canonical
// ordering I <= J. A cell with I == J holds a linear term.
type Key struct {
	I, J int32
}

// Entry is one (i, j, coefficient) cell in canonical order. It doubles as the
// wire form submitted to a hardware annealer.
type Entry struct {
	I     int32   `json:"i"`
	J     int32   `json:"j"`
	Value float64 `json:"value"`
}

// Matrix is the sparse quadratic coefficient map of a QUBO problem.
//
// Coefficients accumulate additively: contributing twice to the same pair sums
// the values. Pairs are normalized to I <= J on insert, so no pair is ever
// stored in both orders. A Matrix is mutable during formulation and must be
// treated as read-only once handed to a solver; solvers share it across
// concurrent reads without locking.
type Matrix struct {
	q       map[Key]float64
	numVars int
}

// NewMatrix returns an empty matrix.
func NewMatrix() *Matrix {
	return &Matrix{q: make(map[Key]float64)}
}

// Add accumulates v into the cell for the unordered pair (i, j).
func (m *Matrix) Add(i, j int32, v float64) {
	if i > j {
		i, j = j, i
	}
	m.q[Key{I: i, J: j}] += v
	if int(j)+1 > m.numVars {
		m.numVars = int(j) + 1
	}
}

// Get returns the coefficient for the unordered pair (i, j), or 0.
func (m *Matrix) Get(i, j int32) float64 {
	if i > j {
		i, j = j, i
	}
	return m.q[Key{I: i, J: j}]
}

// Len returns the number of non-zero cells.
func (m *Matrix) Len() int {
	return len(m.q)
}

// NumVariables returns one past the highest variable index any cell touches.
func (m *Matrix) NumVariables() int {
	return m.numVars
}

// Entries returns every cell sorted by (I, J). The ordering is deterministic,
// which keeps hardware submissions and archived dumps byte-stable for a given
// problem.
func (m *Matrix) Entries() []Entry {
	entries := make([]Entry, 0, len(m.q))
	for k, v := range m.q {
		entries = append(entries, Entry{I: k.I, J: k.J, Value: v})
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].I != entries[b].I {
			return entries[a].I < entries[b].I
		}
		return entries[a].J < entries[b].J
	})
	return entries
}

// String summarizes the matrix for logs.
func (m *Matrix) String() string {
	return fmt.Sprintf("qubo.Matrix{vars: %d, terms: %d}", m.numVars, len(m.q))
}

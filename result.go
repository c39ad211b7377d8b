package qsched

import (
	"time"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/qubo"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/schedule"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/solver"
)

// Status classifies the outcome of a solve run.
type Status string

const (
	// StatusFeasible means a sample was found and decoded. Consult the
	// Feasibility report before persisting: under extreme contention the
	// best sample can still violate hard constraints.
	StatusFeasible Status = "feasible"

	// StatusEmpty means the context yields zero variables, so there is
	// nothing to solve.
	StatusEmpty Status = "empty"

	// StatusTimeout means the context expired before any sample was
	// evaluated.
	StatusTimeout Status = "timeout"

	// StatusError means formulation or solving failed outright.
	StatusError Status = "error"
)

// Backend identifies which solver produced the result.
type Backend = solver.Backend

// Re-exported backend values, so callers inspecting results do not need to
// import the solver package.
const (
	BackendClassical = solver.BackendClassical
	BackendQuantum   = solver.BackendQuantum
	BackendFallback  = solver.BackendFallback
	BackendNone      = solver.BackendNone
)

// Stats summarizes one solve run for diagnostics.
type Stats struct {
	// Variables and Terms describe the formulated problem.
	Variables int
	Terms     int

	// Reads and Sweeps are the annealing parameters actually used.
	Reads  int
	Sweeps int

	// ReadsCompleted counts reads that ran their full sweep budget.
	ReadsCompleted int

	// SamplesEvaluated counts candidate evaluations across all reads.
	SamplesEvaluated int64
}

// Result is the outcome of one Solve call.
type Result struct {
	// Succeeded reports whether the run completed with a usable outcome:
	// true for StatusFeasible and StatusEmpty, false for StatusTimeout.
	Succeeded bool

	// Status classifies the run.
	Status Status

	// Backend that produced the sample.
	Backend Backend

	// Assignments is the decoded placement set.
	Assignments []schedule.Assignment

	// Objective is the negated QUBO energy of the best sample; higher is
	// better.
	Objective float64

	// Elapsed is the wall time of formulation plus solving.
	Elapsed time.Duration

	// Feasibility audits the assignments against the hard and duty-hour
	// constraints. Nil unless Status is StatusFeasible.
	Feasibility *qubo.FeasibilityReport

	// Stats carries solver diagnostics.
	Stats Stats
}

package solver

import (
	"context"
	"log/slog"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/anneal"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/qubo"
)

// Backend identifies which solver produced a sample.
type Backend string

const (
	// BackendClassical is the classical annealing solver, chosen directly.
	BackendClassical Backend = "classical"

	// BackendQuantum is the hardware-assisted quantum annealer.
	BackendQuantum Backend = "dwave_quantum"

	// BackendFallback is the classical solver after a hardware failure.
	BackendFallback Backend = "classical_fallback"

	// BackendNone means no solver ran (zero-variable problem).
	BackendNone Backend = "none"
)

// Parameter scaling bounds. Larger problems get fewer, longer-sweeping reads;
// smaller problems get more, shorter ones.
const (
	BaseReads         = 100000
	MinReads          = 50
	MaxReads          = 1000
	SweepsPerVariable = 10
	MinSweeps         = 500
	MaxSweeps         = 10000
)

// HardwareAnnealer submits a QUBO matrix to quantum-annealing hardware and
// returns the best sample with its energy. Implementations report every
// transport, authentication, sizing, or service problem as an error; the
// Hybrid solver converts all of them into a classical fallback.
type HardwareAnnealer interface {
	Submit(ctx context.Context, m *qubo.Matrix, reads int) (qubo.Sample, float64, error)
}

// Selection is the outcome of one hybrid solve.
type Selection struct {
	// Backend that produced Outcome.
	Backend Backend

	// Outcome holds the best sample and solve statistics.
	Outcome *anneal.Outcome

	// Reads and Sweeps are the parameters actually used.
	Reads  int
	Sweeps int
}

// Hybrid routes a problem to the hardware annealer or the classical solver.
type Hybrid struct {
	caps   Capabilities
	hw     HardwareAnnealer
	logger *slog.Logger
	params anneal.Params
}

// Option configures a Hybrid solver.
type Option func(*Hybrid)

// WithLogger sets the logger for capability checks and fallback decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hybrid) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithParams overrides the base annealing parameters. Zero Reads or Sweeps
// are auto-scaled per problem; the seed, beta range, and concurrency limit
// carry through unchanged.
func WithParams(p anneal.Params) Option {
	return func(h *Hybrid) {
		h.params = p
	}
}

// New builds a Hybrid solver. Capabilities are normalized at construction:
// an incomplete hardware configuration silently degrades to classical-only.
func New(caps Capabilities, hw HardwareAnnealer, optFns ...Option) *Hybrid {
	h := &Hybrid{
		hw:     hw,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(h)
		}
	}
	if hw == nil {
		caps.Hardware = false
	}
	h.caps = caps.Normalize(h.logger)
	return h
}

// Capabilities returns the normalized capabilities in effect.
func (h *Hybrid) Capabilities() Capabilities {
	return h.caps
}

// Solve picks a backend for the problem and runs it.
//
// A zero-variable problem returns immediately with BackendNone and an empty
// outcome. Hardware errors never propagate: the same matrix is re-solved
// classically and the selection is tagged BackendFallback.
func (h *Hybrid) Solve(ctx context.Context, p *qubo.Problem) (*Selection, error) {
	numVars := p.Index.NumVariables()
	if numVars == 0 {
		return &Selection{
			Backend: BackendNone,
			Outcome: &anneal.Outcome{Sample: qubo.Sample{}},
		}, nil
	}

	params := ScaleParams(numVars, h.params)

	if h.caps.HardwareEnabled() && numVars <= h.caps.MaxHardwareVariables {
		sample, energy, err := h.hw.Submit(ctx, p.Matrix, params.Reads)
		if err == nil && len(sample) == numVars {
			return &Selection{
				Backend: BackendQuantum,
				Outcome: &anneal.Outcome{
					Sample:           sample,
					Energy:           energy,
					ReadsCompleted:   params.Reads,
					SamplesEvaluated: int64(params.Reads),
				},
				Reads: params.Reads,
			}, nil
		}
		if err != nil {
			h.logger.Warn("hardware annealer failed, falling back to classical solver",
				"variables", numVars,
				"error", err,
			)
		} else {
			h.logger.Warn("hardware annealer returned malformed sample, falling back to classical solver",
				"variables", numVars,
				"sample_length", len(sample),
			)
		}
		return h.solveClassical(ctx, p, params, BackendFallback)
	}

	return h.solveClassical(ctx, p, params, BackendClassical)
}

func (h *Hybrid) solveClassical(ctx context.Context, p *qubo.Problem, params anneal.Params, backend Backend) (*Selection, error) {
	out, err := anneal.Solve(ctx, p.Matrix, params)
	if err != nil {
		return nil, err
	}
	return &Selection{
		Backend: backend,
		Outcome: out,
		Reads:   params.Reads,
		Sweeps:  params.Sweeps,
	}, nil
}

// ScaleParams derives annealing parameters from the problem size. Explicit
// Reads or Sweeps in base win over auto-scaling.
func ScaleParams(numVars int, base anneal.Params) anneal.Params {
	p := base
	if p.BetaStart <= 0 || p.BetaEnd <= p.BetaStart {
		d := anneal.DefaultParams()
		p.BetaStart, p.BetaEnd = d.BetaStart, d.BetaEnd
	}
	if p.Reads <= 0 {
		p.Reads = clamp(BaseReads/max(numVars, 1), MinReads, MaxReads)
	}
	if p.Sweeps <= 0 {
		p.Sweeps = clamp(numVars*SweepsPerVariable, MinSweeps, MaxSweeps)
	}
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

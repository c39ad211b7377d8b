package qsched

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/archive"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/dwave"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/qubo"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/resource"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/schedule"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/solver"
)

// Scheduler turns scheduling contexts into assignments.
//
// A Scheduler is safe for concurrent use. Construction wires the formulation,
// the hybrid solver, and optionally the archival writer; Solve runs are
// independent and share no mutable state beyond admission control.
type Scheduler struct {
	logger      *Logger
	metrics     MetricsCollector
	formulation *qubo.Formulation
	hybrid      *solver.Hybrid
	timeout     time.Duration
	controller  *resource.Controller
	archiver    *archive.Writer

	closed atomic.Bool
}

// New creates a Scheduler.
//
// Without options it solves classically with default penalties and
// auto-scaled annealing parameters, logs nothing, and archives nothing.
func New(optFns ...Option) (*Scheduler, error) {
	opts := applyOptions(optFns...)

	hw := opts.annealer
	if hw == nil && opts.caps.HardwareEnabled() {
		hw = dwave.NewClient(opts.caps.Endpoint, opts.caps.Token, func(o *dwave.Options) {
			o.Logger = opts.logger.Logger
		})
	}

	s := &Scheduler{
		logger:      opts.logger,
		metrics:     opts.metrics,
		formulation: qubo.NewFormulation(opts.penalties),
		hybrid: solver.New(opts.caps, hw,
			solver.WithLogger(opts.logger.Logger),
			solver.WithParams(opts.params),
		),
		timeout:    opts.timeout,
		controller: opts.controller,
	}

	if opts.store != nil {
		writerFns := append([]func(*archive.WriterOptions){func(o *archive.WriterOptions) {
			o.Logger = opts.logger.Logger
		}}, opts.writerFns...)
		s.archiver = archive.NewWriter(opts.store, writerFns...)
	}

	return s, nil
}

// Solve formulates sc as a QUBO problem, runs the selected backend, and
// decodes the best sample into assignments.
//
// The context bounds the whole run. When it expires mid-solve the best sample
// found so far is returned; when it expires before any sample was evaluated
// the result carries StatusTimeout and no error.
func (s *Scheduler) Solve(ctx context.Context, sc *schedule.Context) (*Result, error) {
	if s.closed.Load() {
		return nil, ErrSchedulerClosed
	}

	if err := s.controller.AcquireSolve(ctx); err != nil {
		return nil, err
	}
	defer s.controller.ReleaseSolve()

	start := time.Now()
	logger := s.logger
	if sc != nil && sc.ID != "" {
		logger = logger.WithScheduleID(sc.ID)
	}

	problem, err := s.formulate(ctx, logger, sc)
	if err != nil {
		s.metrics.RecordSolve(string(BackendNone), time.Since(start), err)
		return nil, translateError(err)
	}

	numVars := problem.Index.NumVariables()
	numTerms := problem.Matrix.Len()

	if numVars == 0 {
		res := &Result{
			Succeeded: true,
			Status:    StatusEmpty,
			Backend:   BackendNone,
			Elapsed:   time.Since(start),
			Stats:     Stats{Variables: 0, Terms: numTerms},
		}
		s.metrics.RecordSolve(string(BackendNone), res.Elapsed, nil)
		logger.LogSolve(ctx, string(BackendNone), 0, 0, res.Elapsed, nil)
		return res, nil
	}

	footprint := problem.MemoryFootprint()
	if err := s.controller.AcquireMemory(ctx, footprint); err != nil {
		return nil, err
	}
	defer s.controller.ReleaseMemory(footprint)

	solveCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	sel, err := s.hybrid.Solve(solveCtx, problem)
	if err != nil {
		elapsed := time.Since(start)
		s.metrics.RecordSolve(string(BackendNone), elapsed, err)
		logger.LogSolve(ctx, string(BackendNone), 0, 0, elapsed, err)
		return nil, translateError(err)
	}
	if sel.Backend == BackendFallback {
		s.metrics.RecordHardwareFallback()
	}

	stats := Stats{
		Variables:        numVars,
		Terms:            numTerms,
		Reads:            sel.Reads,
		Sweeps:           sel.Sweeps,
		ReadsCompleted:   sel.Outcome.ReadsCompleted,
		SamplesEvaluated: sel.Outcome.SamplesEvaluated,
	}

	if sel.Outcome.SamplesEvaluated == 0 {
		res := &Result{
			Status:  StatusTimeout,
			Backend: sel.Backend,
			Elapsed: time.Since(start),
			Stats:   stats,
		}
		s.metrics.RecordSolve(string(sel.Backend), res.Elapsed, nil)
		logger.LogSolve(ctx, string(sel.Backend), 0, 0, res.Elapsed, nil)
		s.archiveRun(ctx, logger, sc, problem, res)
		return res, nil
	}

	assignments, err := qubo.Decode(problem.Index, sc, sel.Outcome.Sample)
	if err != nil {
		elapsed := time.Since(start)
		s.metrics.RecordSolve(string(sel.Backend), elapsed, err)
		logger.LogSolve(ctx, string(sel.Backend), 0, 0, elapsed, err)
		return nil, translateError(err)
	}

	res := &Result{
		Succeeded:   true,
		Status:      StatusFeasible,
		Backend:     sel.Backend,
		Assignments: assignments,
		Objective:   -sel.Outcome.Energy,
		Elapsed:     time.Since(start),
		Feasibility: qubo.CheckFeasibility(problem.Index, sc, assignments),
		Stats:       stats,
	}

	s.metrics.RecordSolve(string(sel.Backend), res.Elapsed, nil)
	logger.LogSolve(ctx, string(sel.Backend), len(assignments), res.Objective, res.Elapsed, nil)
	s.archiveRun(ctx, logger, sc, problem, res)
	return res, nil
}

// Capabilities returns the normalized solver capabilities in effect.
func (s *Scheduler) Capabilities() solver.Capabilities {
	return s.hybrid.Capabilities()
}

func (s *Scheduler) formulate(ctx context.Context, logger *Logger, sc *schedule.Context) (*qubo.Problem, error) {
	start := time.Now()
	if sc == nil {
		sc = &schedule.Context{}
	}
	if err := sc.Validate(); err != nil {
		s.metrics.RecordFormulation(time.Since(start), err)
		logger.LogFormulation(ctx, 0, 0, err)
		return nil, err
	}

	problem, err := s.formulation.Build(sc)
	s.metrics.RecordFormulation(time.Since(start), err)
	if err != nil {
		logger.LogFormulation(ctx, 0, 0, err)
		return nil, err
	}
	logger.LogFormulation(ctx, problem.Index.NumVariables(), problem.Matrix.Len(), nil)
	return problem, nil
}

// archiveRun submits the run record for asynchronous archival. Archival
// failures never affect the solve result.
func (s *Scheduler) archiveRun(ctx context.Context, logger *Logger, sc *schedule.Context, problem *qubo.Problem, res *Result) {
	if s.archiver == nil {
		return
	}

	scheduleID := ""
	if sc != nil {
		scheduleID = sc.ID
	}
	rec := archive.NewRecord(scheduleID)
	rec.Variables = res.Stats.Variables
	rec.Terms = res.Stats.Terms
	rec.Entries = problem.Matrix.Entries()
	rec.Backend = string(res.Backend)
	rec.Status = string(res.Status)
	rec.Energy = -res.Objective
	rec.ElapsedMS = res.Elapsed.Milliseconds()
	rec.Assignments = res.Assignments

	// Submission must survive an already-expired solve context.
	err := s.archiver.Record(context.WithoutCancel(ctx), rec)
	s.metrics.RecordArchive(err)
	logger.LogArchive(ctx, rec.RunID, err)
}

package qsched

import (
	"errors"
	"fmt"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/qubo"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/schedule"
)

var (
	// ErrSchedulerClosed is returned when Solve is called after Close.
	ErrSchedulerClosed = errors.New("scheduler is closed")

	// ErrInvalidContext is returned for structurally inconsistent
	// scheduling contexts.
	ErrInvalidContext = errors.New("invalid scheduling context")

	// ErrSolverInconsistency is returned when a backend produces a sample
	// that does not match the formulation. It indicates a bug or a
	// misbehaving hardware service, never bad caller input.
	ErrSolverInconsistency = errors.New("solver produced inconsistent sample")
)

// translateError normalizes subsystem errors into the public taxonomy.
// Hardware failures never reach this point; they are converted into a
// fallback decision inside the hybrid solver.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, schedule.ErrInvalidContext) {
		return fmt.Errorf("%w: %w", ErrInvalidContext, err)
	}

	var slm *qubo.ErrSampleLengthMismatch
	if errors.As(err, &slm) {
		return fmt.Errorf("%w: %w", ErrSolverInconsistency, err)
	}

	return err
}

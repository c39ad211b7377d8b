package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Config holds resource limits for concurrent solves.
type Config struct {
	// MaxConcurrentSolves is the number of solves admitted at once.
	// If 0, defaults to 1.
	MaxConcurrentSolves int64

	// MemoryLimitBytes is the hard limit for reserved problem memory.
	// If 0, memory is tracked but not limited.
	MemoryLimitBytes int64
}

// Controller admits solve runs and accounts for their memory.
// All methods are safe on a nil receiver, which behaves as "no limits".
type Controller struct {
	solveSem *semaphore.Weighted
	memSem   *semaphore.Weighted // nil if unlimited
	memUsed  atomic.Int64
}

// NewController creates a controller with the given limits.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentSolves <= 0 {
		cfg.MaxConcurrentSolves = 1
	}
	c := &Controller{
		solveSem: semaphore.NewWeighted(cfg.MaxConcurrentSolves),
	}
	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	return c
}

// AcquireSolve blocks until a solve slot is free or ctx expires.
func (c *Controller) AcquireSolve(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.solveSem.Acquire(ctx, 1)
}

// TryAcquireSolve reserves a solve slot without blocking.
func (c *Controller) TryAcquireSolve() bool {
	if c == nil {
		return true
	}
	return c.solveSem.TryAcquire(1)
}

// ReleaseSolve frees a solve slot.
func (c *Controller) ReleaseSolve() {
	if c == nil {
		return
	}
	c.solveSem.Release(1)
}

// AcquireMemory reserves bytes for a formulated problem, blocking while the
// configured limit is exhausted.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}
	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory returns reserved bytes.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the bytes currently reserved.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

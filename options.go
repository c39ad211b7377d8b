package qsched

import (
	"log/slog"
	"time"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/anneal"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/archive"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/qubo"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/resource"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/solver"
)

// Option configures a Scheduler.
type Option func(*options)

type options struct {
	logger     *Logger
	metrics    MetricsCollector
	penalties  qubo.Penalties
	params     anneal.Params
	timeout    time.Duration
	caps       solver.Capabilities
	annealer   solver.HardwareAnnealer
	store      archive.Store
	writerFns  []func(*archive.WriterOptions)
	controller *resource.Controller
}

func applyOptions(optFns ...Option) options {
	opts := options{
		logger:    NoopLogger(),
		metrics:   NoopMetricsCollector{},
		penalties: qubo.DefaultPenalties(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	return opts
}

// WithLogger sets a custom logger.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger to stderr at the given level.
// Shorthand for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// WithPenalties overrides the formulation penalty weights.
func WithPenalties(p qubo.Penalties) Option {
	return func(o *options) {
		o.penalties = p
	}
}

// WithAnnealingParams overrides the base annealing parameters. Zero Reads or
// Sweeps are auto-scaled per problem size.
func WithAnnealingParams(p anneal.Params) Option {
	return func(o *options) {
		o.params = p
	}
}

// WithSeed fixes the random stream of the classical solver. Two solves of the
// same context with the same seed and parameters produce identical results.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.params.Seed = seed
	}
}

// WithTimeout bounds every Solve call. The solver returns its best sample
// found so far when the deadline passes; a solve that never evaluated a
// sample reports StatusTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHardware enables the hardware-assisted backend with the given
// capabilities. Incomplete capabilities (missing endpoint or token) degrade
// silently to classical-only.
func WithHardware(caps solver.Capabilities) Option {
	return func(o *options) {
		o.caps = caps
	}
}

// WithHardwareAnnealer injects a hardware annealer directly, bypassing the
// built-in REST client. Useful for tests and alternative services.
func WithHardwareAnnealer(hw solver.HardwareAnnealer) Option {
	return func(o *options) {
		o.annealer = hw
	}
}

// WithArchive enables asynchronous run-record archival to store.
func WithArchive(store archive.Store, optFns ...func(*archive.WriterOptions)) Option {
	return func(o *options) {
		o.store = store
		o.writerFns = optFns
	}
}

// WithResourceController sets the admission controller shared across
// schedulers.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithMaxConcurrentSolves creates a dedicated admission controller limiting
// concurrent Solve calls on this scheduler.
func WithMaxConcurrentSolves(n int64) Option {
	return func(o *options) {
		o.controller = resource.NewController(resource.Config{MaxConcurrentSolves: n})
	}
}

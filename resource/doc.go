// Package resource bounds the resources of concurrent solve runs.
//
// An orchestrator fanning out many schedules can start more solves than the
// host has memory or cores for; the Controller admits solves through a
// weighted semaphore and tracks the memory reserved for their matrices.
// A nil Controller admits everything, so callers need no special casing when
// limits are disabled.
package resource

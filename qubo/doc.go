// Package qubo translates a scheduling context into a quadratic unconstrained
// binary optimization problem and decodes solver samples back into
// assignments.
//
// The formulation enumerates one binary variable per eligible
// (resident, block, template) triple, then assembles a sparse quadratic
// energy matrix from five additive terms: a coverage objective plus penalty
// terms for double-booked blocks, unavailability, weekly duty-hour overruns,
// and workload inequity. Minimizing the energy maximizes coverage while
// steering the sample away from constraint violations.
//
// Hard constraints are encoded as large but finite penalties, so a heavily
// contended instance can still yield an infeasible sample. CheckFeasibility
// inspects decoded assignments so callers can detect and reject such samples.
package qubo

// Package qsched assigns people to time blocks by encoding the scheduling
// problem as a Quadratic Unconstrained Binary Optimization (QUBO) model and
// minimizing its energy with a quantum-inspired annealing solver.
//
// A Scheduler consumes an immutable schedule.Context (residents, time blocks,
// role templates, unavailability), formulates it into a sparse quadratic
// energy matrix, and solves it either classically or on quantum-annealing
// hardware. Hardware is attempted only when the configured capabilities and
// the problem size allow it, and any hardware failure falls back to the
// classical solver transparently; the Result reports which backend ran.
//
// # Quick start
//
//	s, err := qsched.New(
//	    qsched.WithSeed(42),
//	    qsched.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//	    panic(err)
//	}
//	defer s.Close()
//
//	res, err := s.Solve(ctx, scheduleContext)
//	if err != nil {
//	    panic(err)
//	}
//	for _, a := range res.Assignments {
//	    fmt.Println(a.Resident, a.Block, a.Template)
//	}
//
// # Hardware offload
//
//	s, err := qsched.New(
//	    qsched.WithHardware(solver.Capabilities{
//	        Hardware: true,
//	        Endpoint: os.Getenv("ANNEALER_ENDPOINT"),
//	        Token:    os.Getenv("ANNEALER_TOKEN"),
//	    }),
//	)
//
// The solver encodes hard constraints as large but finite penalties, so a
// heavily contended instance can still return an infeasible sample. Every
// Result carries a feasibility report; orchestrators should reject results
// whose report is not feasible instead of persisting them.
package qsched

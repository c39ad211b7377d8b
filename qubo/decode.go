package qubo

import (
	"fmt"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/schedule"
)

// Sample is one binary assignment vector. Position v holds the 0/1 value of
// variable v.
type Sample []uint8

// ErrSampleLengthMismatch indicates a sample whose length does not match the
// variable index it is decoded against.
type ErrSampleLengthMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrSampleLengthMismatch) Error() string {
	return fmt.Sprintf("sample length mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Decode inverts the variable index over the active sample positions.
//
// Every returned assignment corresponds to a triple present in the index;
// decoding can never invent a placement the formulation did not enumerate.
func Decode(ix *VariableIndex, sc *schedule.Context, s Sample) ([]schedule.Assignment, error) {
	if len(s) != ix.NumVariables() {
		return nil, &ErrSampleLengthMismatch{Expected: ix.NumVariables(), Actual: len(s)}
	}

	assignments := make([]schedule.Assignment, 0)
	for v, bit := range s {
		if bit == 0 {
			continue
		}
		r, b, t := ix.Triple(v)
		a := schedule.Assignment{
			Resident: sc.Residents[r].ID,
			Block:    b,
		}
		if t >= 0 {
			a.Template = sc.Templates[t].ID
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

// WeeklyOverrun records one resident exceeding the weekly duty ceiling.
type WeeklyOverrun struct {
	Resident string
	Week     int
	Count    int
}

// FeasibilityReport lists the constraint violations present in a decoded
// assignment set. The penalty encoding is soft, so a returned sample can
// violate nominally hard constraints under extreme contention; callers use
// this report to detect and reject such samples instead of persisting them.
type FeasibilityReport struct {
	Feasible bool

	// DoubleBookedBlocks lists blocks carrying more than one assignment.
	DoubleBookedBlocks []int

	// UnavailableAssignments lists assignments placing a resident on a
	// block they are unavailable for.
	UnavailableAssignments []schedule.Assignment

	// WeeklyOverruns lists resident weeks above the duty-hour ceiling.
	WeeklyOverruns []WeeklyOverrun
}

// CheckFeasibility audits decoded assignments against the hard and duty-hour
// constraints of the context.
func CheckFeasibility(ix *VariableIndex, sc *schedule.Context, assignments []schedule.Assignment) *FeasibilityReport {
	report := &FeasibilityReport{}

	perBlock := make(map[int]int)
	perResidentWeek := make(map[[2]int]int)
	for _, a := range assignments {
		perBlock[a.Block]++

		r := sc.ResidentIndex(a.Resident)
		if r >= 0 && ix.Unavailable(r, a.Block) {
			report.UnavailableAssignments = append(report.UnavailableAssignments, a)
		}
		perResidentWeek[[2]int{r, ix.Week(a.Block)}]++
	}

	for b := 0; b < len(sc.Blocks); b++ {
		if perBlock[b] > 1 {
			report.DoubleBookedBlocks = append(report.DoubleBookedBlocks, b)
		}
	}

	maxPerWeek := MaxWeeklyHours / HoursPerBlock
	for r := range sc.Residents {
		for w := 0; w < ix.NumWeeks(); w++ {
			if n := perResidentWeek[[2]int{r, w}]; n > maxPerWeek {
				report.WeeklyOverruns = append(report.WeeklyOverruns, WeeklyOverrun{
					Resident: sc.Residents[r].ID,
					Week:     w,
					Count:    n,
				})
			}
		}
	}

	report.Feasible = len(report.DoubleBookedBlocks) == 0 &&
		len(report.UnavailableAssignments) == 0 &&
		len(report.WeeklyOverruns) == 0
	return report
}

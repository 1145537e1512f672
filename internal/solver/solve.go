package solver

import (
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

// Status mirrors the source system's terminal CP-SAT statuses, adapted to
// the mip solver's solution object.
type Status int

const (
	Unknown Status = iota
	Optimal
	Feasible
	Infeasible
	ModelInvalid
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	case ModelInvalid:
		return "MODEL_INVALID"
	default:
		return "UNKNOWN"
	}
}

// Outcome is the result of one Solve call: a status, the wall-clock
// runtime, a diagnostic (when infeasible) and the extracted schedule
// (when a solution was found).
type Outcome struct {
	Status     Status
	RunTime    time.Duration
	Diagnosis  *InfeasibleDiagnosis
	Result     *model.Result
}

// Solve runs a bounded HiGHS search for at most maxTimeInSeconds with a
// zero relative MIP gap and extracts the resulting schedule. The number of
// search threads is not set here; it is left at the backend's default.
// When no solution values come back it runs the pre-flight validator to
// try to name the offending package.
func (s *Solver) Solve(maxTimeInSeconds int) (Outcome, error) {
	mipSolver, err := mip.NewSolver("highs", s.m)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: constructing solver: %v", model.ErrModelInvalid, err)
	}

	options := mip.NewSolveOptions()
	if err := options.SetMaximumDuration(time.Duration(maxTimeInSeconds) * time.Second); err != nil {
		return Outcome{}, fmt.Errorf("%w: setting duration limit: %v", model.ErrModelInvalid, err)
	}
	if err := options.SetMIPGapRelative(0); err != nil {
		return Outcome{}, fmt.Errorf("%w: setting MIP gap: %v", model.ErrModelInvalid, err)
	}
	options.SetVerbosity(mip.Off)

	solution, err := mipSolver.Solve(options)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", model.ErrModelInvalid, err)
	}

	if solution == nil || !solution.HasValues() {
		diagnosis := s.Validate()
		if diagnosis != nil {
			return Outcome{Status: Infeasible, Diagnosis: diagnosis}, fmt.Errorf("%w: %v", model.ErrInfeasible, diagnosis)
		}
		return Outcome{Status: Unknown}, model.ErrUnknown
	}

	status := Feasible
	if solution.IsOptimal() {
		status = Optimal
	}

	result := s.extractResult(solution)

	return Outcome{
		Status:  status,
		RunTime: solution.RunTime(),
		Result:  result,
	}, nil
}

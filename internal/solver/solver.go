// Package solver builds one constraint-programming model per sub-input and
// solves it to cost-optimality. It is the centerpiece of the pipeline: the
// decision variables, constraints and objective below are a direct, if
// necessarily re-encoded, port of the original CP-SAT formulation onto
// github.com/nextmv-io/sdk/mip, the teacher's linear/integer programming
// library.
//
// mip models a mixed-integer *linear* program: it has no native reified
// "OnlyEnforceIf" the way OR-Tools' CP-SAT does. Every conditional
// constraint from the source formulation whose guard is a decision variable
// (C3, C5, C6, C8, C9, C13) is therefore re-expressed as a big-M
// linearization; see bigm.go. C4 and C12 are decided from static package
// data and become direct rows.
package solver

import (
	"log/slog"
	"sort"

	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

type xKey struct {
	TruckID string
	Package model.PackageID
}

type ttKey struct {
	Package model.PackageID
	TypeID  int
}

// Solver holds the mip model and every decision variable for one
// sub-input's solve. A Solver is built fresh per sub-problem and never
// shared: each solve is hermetic, per the concurrency design.
type Solver struct {
	input  model.Input
	logger *slog.Logger
	m      mip.Model

	packageIDs []model.PackageID
	truckIDs   []string

	x            map[xKey]mip.Bool
	stop         map[model.PackageID]mip.Int
	start        map[model.PackageID]mip.Int
	arrive       map[model.PackageID]mip.Int
	same         map[pairKey]mip.Bool
	tt           map[ttKey]mip.Bool
	before       map[pairKey]mip.Bool
	sameRankDir  map[pairKey]mip.Bool
	truckStart   map[string]mip.Int
	truckArrive  map[string]mip.Int
	truckMaxStop map[string]mip.Int
	maxStopZero  map[string]mip.Bool
	cost         map[string]mip.Int

	truckType map[string]model.TruckType

	minStart    int64
	maxStart    int64
	maxDeadline int64
	bigM        float64
}

// New constructs a Solver for in, ready for Build and Solve.
func New(logger *slog.Logger, in model.Input) *Solver {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Solver{
		input:        in,
		logger:       logger,
		m:            mip.NewModel(),
		x:            map[xKey]mip.Bool{},
		stop:         map[model.PackageID]mip.Int{},
		start:        map[model.PackageID]mip.Int{},
		arrive:       map[model.PackageID]mip.Int{},
		same:         map[pairKey]mip.Bool{},
		tt:           map[ttKey]mip.Bool{},
		before:       map[pairKey]mip.Bool{},
		sameRankDir:  map[pairKey]mip.Bool{},
		truckStart:   map[string]mip.Int{},
		truckArrive:  map[string]mip.Int{},
		truckMaxStop: map[string]mip.Int{},
		maxStopZero:  map[string]mip.Bool{},
		cost:         map[string]mip.Int{},
		truckType:    map[string]model.TruckType{},
	}

	for id := range in.Packages {
		s.packageIDs = append(s.packageIDs, id)
	}
	sort.Slice(s.packageIDs, func(i, j int) bool {
		return s.packageIDs[i].String() < s.packageIDs[j].String()
	})

	for id, truck := range in.Trucks {
		s.truckIDs = append(s.truckIDs, id)
		s.truckType[id] = truck.Type
	}
	sort.Strings(s.truckIDs)

	s.minStart, s.maxStart = minMaxAvailable(in.Packages)
	s.maxDeadline = maxDeadline(in.Packages)

	maxCapacity := int64(0)
	for _, tt := range in.TruckTypes {
		if tt.AreaCapacity > maxCapacity {
			maxCapacity = tt.AreaCapacity
		}
		if tt.WeightCapacity > maxCapacity {
			maxCapacity = tt.WeightCapacity
		}
	}
	s.bigM = bigM(s.maxDeadline, maxCapacity)

	return s
}

func minMaxAvailable(packages map[model.PackageID]model.Package) (min int64, max int64) {
	first := true
	for _, p := range packages {
		if first {
			min, max = p.AvailableTime, p.AvailableTime
			first = false
			continue
		}
		if p.AvailableTime < min {
			min = p.AvailableTime
		}
		if p.AvailableTime > max {
			max = p.AvailableTime
		}
	}
	return min, max
}

func maxDeadline(packages map[model.PackageID]model.Package) int64 {
	var max int64
	for _, p := range packages {
		if p.Deadline > max {
			max = p.Deadline
		}
	}
	return max
}

// Build constructs every decision variable and adds every constraint plus
// the cost objective. It must be called exactly once before Solve.
func (s *Solver) Build() error {
	if len(s.truckIDs) == 0 {
		return ErrEmptyTruckPool
	}

	s.createVariables()

	s.addAssignmentConstraint()
	s.addSameTruckLinkageConstraint()
	s.addFixedSourceConstraint(s.logger)
	s.addTimeWindowConstraint()
	s.addPackageStartConstraint()
	s.addTruckTypeConstraint()
	s.addTravelTimeConstraint()
	s.addSameTruckContinuityConstraint()
	s.addDeadlineConstraint()
	s.addCapacityConstraints()
	s.addDangerTypeConstraint()
	s.addTruckAggregateConstraints()

	s.addCostObjective()

	return nil
}

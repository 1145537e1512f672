package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextmv-examples/truckfleet/internal/config"
	"github.com/nextmv-examples/truckfleet/internal/model"
	"github.com/nextmv-examples/truckfleet/internal/solver"
)

func singlePackageInput(t *testing.T, deadline int64) model.Input {
	t.Helper()

	params := config.Default()
	truckTypes := model.Catalog(params.ScaleFactor)

	p := model.Package{
		ID:            model.PackageID{OrderID: "O1", MaterialID: "M1", PlateID: "P1"},
		Source:        "A",
		Destination:   "B",
		Area:          10,
		Weight:        10,
		DangerType:    model.NonDanger,
		AvailableTime: 0,
		Deadline:      deadline,
	}
	packages := map[model.PackageID]model.Package{p.ID: p}

	dm, err := model.NewDistanceMatrix([][3]any{{"A", "B", int64(1000)}})
	require.NoError(t, err)

	return model.Input{
		Packages:   packages,
		TruckTypes: truckTypes,
		Trucks:     model.BuildTruckPool(packages, truckTypes),
		Distances:  dm,
		Params:     params,
	}
}

// twoPackageInput builds two packages under the same order ID so
// BuildTruckPool mints exactly one truck (the largest type's pool is never
// discounted, and both packages' combined area/weight stay well under its
// capacity) — forcing the solver to decide, rather than sidestep, whether
// the pair can share that single truck.
func twoPackageInput(t *testing.T, dangerA, dangerB string) model.Input {
	t.Helper()

	params := config.Default()
	truckTypes := model.Catalog(params.ScaleFactor)

	p1 := model.Package{
		ID:            model.PackageID{OrderID: "O1", MaterialID: "M1", PlateID: "P1"},
		Source:        "A",
		Destination:   "B",
		Area:          10,
		Weight:        10,
		DangerType:    dangerA,
		AvailableTime: 0,
		Deadline:      100000,
	}
	p2 := model.Package{
		ID:            model.PackageID{OrderID: "O1", MaterialID: "M2", PlateID: "P2"},
		Source:        "A",
		Destination:   "C",
		Area:          10,
		Weight:        10,
		DangerType:    dangerB,
		AvailableTime: 0,
		Deadline:      100000,
	}
	packages := map[model.PackageID]model.Package{p1.ID: p1, p2.ID: p2}

	dm, err := model.NewDistanceMatrix([][3]any{
		{"A", "B", int64(1000)},
		{"A", "C", int64(1000)},
		{"B", "C", int64(1000)},
		{"C", "B", int64(1000)},
	})
	require.NoError(t, err)

	return model.Input{
		Packages:   packages,
		TruckTypes: truckTypes,
		Trucks:     model.BuildTruckPool(packages, truckTypes),
		Distances:  dm,
		Params:     params,
	}
}

func TestSolveAllowsCompatiblePackagesToShareTheirOnlyTruck(t *testing.T) {
	// Arrange: both packages are non_danger, so C12 imposes no restriction,
	// and BuildTruckPool's single-order discount leaves exactly one truck
	// available — the pair-linkage rank encoding (C3) must therefore allow
	// same[pair] to be true.
	in := twoPackageInput(t, model.NonDanger, model.NonDanger)
	require.Len(t, in.Trucks, 1)

	s := solver.New(nil, in)
	require.NoError(t, s.Build())

	// Act
	outcome, err := s.Solve(10)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, []solver.Status{solver.Optimal, solver.Feasible}, outcome.Status)
	require.NotNil(t, outcome.Result)
	require.Len(t, outcome.Result.PackageTruck, 2)

	var trucks []string
	for _, tID := range outcome.Result.PackageTruck {
		trucks = append(trucks, tID)
	}
	assert.Equal(t, trucks[0], trucks[1], "both packages should share the pool's only truck")
}

func TestSolveRejectsConflictingDangerTypesOnTheirOnlyTruck(t *testing.T) {
	// Arrange: two distinct, non-"non_danger" tags force same[pair]==0 via
	// C12, but the single-order discount still leaves only one truck in
	// the pool, so both packages cannot be assigned at all.
	in := twoPackageInput(t, "acid", "oxidizer")
	require.Len(t, in.Trucks, 1)

	s := solver.New(nil, in)
	require.NoError(t, s.Build())

	// Act
	outcome, err := s.Solve(10)

	// Assert: the solve finds no feasible assignment, and the pre-flight
	// validator's single-truck-per-package heuristic independently flags
	// the second package as unreachable once the only truck is spoken for.
	require.Error(t, err)
	assert.Equal(t, solver.Infeasible, outcome.Status)
	require.NotNil(t, outcome.Diagnosis)
}

func TestBuildRejectsEmptyTruckPool(t *testing.T) {
	// Arrange
	in := singlePackageInput(t, 100000)
	in.Trucks = map[string]model.Truck{}

	s := solver.New(nil, in)

	// Act
	err := s.Build()

	// Assert
	assert.ErrorIs(t, err, solver.ErrEmptyTruckPool)
}

func TestSolveAssignsTheOnlyPackageWhenFeasible(t *testing.T) {
	// Arrange
	in := singlePackageInput(t, 100000)
	s := solver.New(nil, in)
	require.NoError(t, s.Build())

	// Act
	outcome, err := s.Solve(5)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, []solver.Status{solver.Optimal, solver.Feasible}, outcome.Status)
	require.NotNil(t, outcome.Result)
	assert.Len(t, outcome.Result.PackageTruck, 1)
}

func TestValidateDiagnosesUnreachableDeadline(t *testing.T) {
	// Arrange: a one-second deadline with only slow-enough trucks in the
	// pool can never be reached, so the pre-flight check should name the
	// package rather than let the solver time out silently.
	in := singlePackageInput(t, 1)
	s := solver.New(nil, in)
	require.NoError(t, s.Build())

	// Act
	diagnosis := s.Validate()

	// Assert
	require.NotNil(t, diagnosis)
	assert.Equal(t, "O1", diagnosis.Package.OrderID)
}

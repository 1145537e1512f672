package reducer_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextmv-examples/truckfleet/internal/config"
	"github.com/nextmv-examples/truckfleet/internal/model"
	"github.com/nextmv-examples/truckfleet/internal/reducer"
)

func testInput(t *testing.T, packages map[model.PackageID]model.Package) model.Input {
	t.Helper()

	params := config.Default()
	truckTypes := model.Catalog(params.ScaleFactor)
	dm, err := model.NewDistanceMatrix([][3]any{
		{"SRC", "DST", int64(36000)},
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

func TestReduceByOrderCommitsSaturatedLoad(t *testing.T) {
	// Arrange
	params := config.Default()
	truckTypes := model.Catalog(params.ScaleFactor)
	biggest := truckTypes[0]

	pkg := model.Package{
		ID:            model.PackageID{OrderID: "O1", MaterialID: "M1", PlateID: "P1"},
		Source:        "SRC",
		Destination:   "DST",
		Area:          int64(float64(biggest.AreaCapacity) * 0.99),
		Weight:        int64(float64(biggest.WeightCapacity) * 0.99),
		DangerType:    model.NonDanger,
		AvailableTime: 0,
		Deadline:      100000,
	}
	in := testInput(t, map[model.PackageID]model.Package{pkg.ID: pkg})

	// Act
	remaining, partial := reducer.Reduce(slog.Default(), in, reducer.PerOrder)

	// Assert
	assert.Empty(t, remaining.Packages)
	assert.Len(t, partial.PackageTruck, 1)
	assert.Contains(t, partial.PackageTruck, pkg.ID)
}

func TestReduceByOrderLeavesUnderfilledLoadForThePartitioner(t *testing.T) {
	// Arrange
	pkg := model.Package{
		ID:            model.PackageID{OrderID: "O1", MaterialID: "M1", PlateID: "P1"},
		Source:        "SRC",
		Destination:   "DST",
		Area:          10,
		Weight:        10,
		DangerType:    model.NonDanger,
		AvailableTime: 0,
		Deadline:      100000,
	}
	in := testInput(t, map[model.PackageID]model.Package{pkg.ID: pkg})

	// Act
	remaining, partial := reducer.Reduce(slog.Default(), in, reducer.PerOrder)

	// Assert
	assert.Empty(t, partial.PackageTruck)
	assert.Len(t, remaining.Packages, 1)
}

func TestReduceByDestinationSeparatesIncompatibleDangerTypes(t *testing.T) {
	// Arrange
	params := config.Default()
	truckTypes := model.Catalog(params.ScaleFactor)
	biggest := truckTypes[0]

	p1 := model.Package{
		ID:            model.PackageID{OrderID: "O1", MaterialID: "M1", PlateID: "P1"},
		Source:        "SRC",
		Destination:   "DST",
		Area:          int64(float64(biggest.AreaCapacity) * 0.5),
		Weight:        int64(float64(biggest.WeightCapacity) * 0.5),
		DangerType:    "flammable",
		AvailableTime: 0,
		Deadline:      100000,
	}
	p2 := model.Package{
		ID:            model.PackageID{OrderID: "O2", MaterialID: "M1", PlateID: "P1"},
		Source:        "SRC",
		Destination:   "DST",
		Area:          int64(float64(biggest.AreaCapacity) * 0.5),
		Weight:        int64(float64(biggest.WeightCapacity) * 0.5),
		DangerType:    "corrosive",
		AvailableTime: 0,
		Deadline:      100000,
	}
	in := testInput(t, map[model.PackageID]model.Package{p1.ID: p1, p2.ID: p2})

	// Act
	_, partial := reducer.Reduce(slog.Default(), in, reducer.PerDestination)

	// Assert: the two incompatible danger types never land on the same
	// committed truck, even though their combined size saturates it.
	if t1, ok := partial.PackageTruck[p1.ID]; ok {
		if t2, ok2 := partial.PackageTruck[p2.ID]; ok2 {
			assert.NotEqual(t, t1, t2)
		}
	}
}

package partitioner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextmv-examples/truckfleet/internal/config"
	"github.com/nextmv-examples/truckfleet/internal/model"
	"github.com/nextmv-examples/truckfleet/internal/partitioner"
)

func pkg(order, source string, availableTime int64) model.Package {
	return model.Package{
		ID:            model.PackageID{OrderID: order, MaterialID: "M1", PlateID: "P1"},
		Source:        source,
		Destination:   "DST",
		Area:          1,
		Weight:        1,
		DangerType:    model.NonDanger,
		AvailableTime: availableTime,
		Deadline:      availableTime + 100000,
	}
}

func TestPartitionBySourceNeverMixesSources(t *testing.T) {
	// Arrange
	params := config.Default()
	truckTypes := model.Catalog(params.ScaleFactor)
	dm, err := model.NewDistanceMatrix([][3]any{{"A", "DST", int64(1000)}, {"B", "DST", int64(1000)}})
	require.NoError(t, err)

	packages := map[model.PackageID]model.Package{}
	p1 := pkg("O1", "A", 0)
	p2 := pkg("O2", "B", 0)
	packages[p1.ID] = p1
	packages[p2.ID] = p2

	in := model.Input{
		Packages:   packages,
		TruckTypes: truckTypes,
		Trucks:     model.BuildTruckPool(packages, truckTypes),
		Distances:  dm,
		Params:     params,
	}

	// Act
	subs := partitioner.Partition(in, 30)

	// Assert
	require.Len(t, subs, 2)
	for _, sub := range subs {
		sources := map[string]bool{}
		for _, p := range sub.Packages {
			sources[p.Source] = true
		}
		assert.Len(t, sources, 1)
	}
}

func TestPartitionByTimeIntervalSplitsOnGap(t *testing.T) {
	// Arrange
	params := config.Default()
	params.MaxTimeDifferenceBetweenPackage = 100
	params.MaxPackageNum = 1
	truckTypes := model.Catalog(params.ScaleFactor)
	dm, err := model.NewDistanceMatrix([][3]any{{"A", "DST", int64(1000)}})
	require.NoError(t, err)

	packages := map[model.PackageID]model.Package{}
	early := pkg("O1", "A", 0)
	late := pkg("O2", "A", 10000)
	packages[early.ID] = early
	packages[late.ID] = late

	in := model.Input{
		Packages:   packages,
		TruckTypes: truckTypes,
		Trucks:     model.BuildTruckPool(packages, truckTypes),
		Distances:  dm,
		Params:     params,
	}

	// Act
	subs := partitioner.Partition(in, 1)

	// Assert: the two packages share a source but their available times
	// are 10000s apart, far past the 100s gap threshold, so they land in
	// separate sub-inputs despite the shared source.
	require.Len(t, subs, 2)
	assert.Len(t, subs[0].Packages, 1)
	assert.Len(t, subs[1].Packages, 1)
}

package orchestrator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextmv-examples/truckfleet/internal/config"
	"github.com/nextmv-examples/truckfleet/internal/model"
	"github.com/nextmv-examples/truckfleet/internal/orchestrator"
)

func subInput(t *testing.T, orderID string) model.Input {
	t.Helper()

	params := config.Default()
	truckTypes := model.Catalog(params.ScaleFactor)

	p := model.Package{
		ID:            model.PackageID{OrderID: orderID, MaterialID: "M1", PlateID: "P1"},
		Source:        "A",
		Destination:   "B",
		Area:          10,
		Weight:        10,
		DangerType:    model.NonDanger,
		AvailableTime: 0,
		Deadline:      100000,
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

func TestRunSolvesEverySubInput(t *testing.T) {
	// Arrange
	subs := []model.Input{subInput(t, "O1"), subInput(t, "O2"), subInput(t, "O3")}

	// Act
	results, err := orchestrator.Run(context.Background(), nil, subs, 5, 2)

	// Assert
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.NoError(t, r.Err)
	}
}

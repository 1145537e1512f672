package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

func TestPackageValidate(t *testing.T) {
	// Arrange
	valid := model.Package{
		ID:            model.PackageID{OrderID: "O1", MaterialID: "M1", PlateID: "P1"},
		Area:          100,
		Weight:        200,
		AvailableTime: 0,
		Deadline:      3600,
	}

	// Act / Assert
	require.NoError(t, valid.Validate())

	badDeadline := valid
	badDeadline.Deadline = badDeadline.AvailableTime
	assert.ErrorIs(t, badDeadline.Validate(), model.ErrInputSchema)

	badArea := valid
	badArea.Area = 0
	assert.ErrorIs(t, badArea.Validate(), model.ErrInputSchema)

	badWeight := valid
	badWeight.Weight = -1
	assert.ErrorIs(t, badWeight.Validate(), model.ErrInputSchema)
}

func TestDistanceMatrixFillsMissingPairsWithZero(t *testing.T) {
	// Arrange
	dm, err := model.NewDistanceMatrix([][3]any{
		{"A", "B", int64(1000)},
	})
	require.NoError(t, err)

	// Act / Assert
	assert.Equal(t, int64(1000), dm.Distance("A", "B"))
	assert.Equal(t, int64(0), dm.Distance("B", "A"))
	assert.Equal(t, int64(0), dm.Distance("A", model.Placeholder))
	assert.Equal(t, int64(0), dm.Distance(model.Placeholder, "A"))
}

func TestCatalogIsSortedLargestFirst(t *testing.T) {
	// Arrange
	catalog := model.Catalog(10000)

	// Act / Assert
	require.Len(t, catalog, 4)
	for i := 1; i < len(catalog); i++ {
		assert.Greater(t, catalog[i-1].WeightCapacity, catalog[i].WeightCapacity)
	}
}

func TestBuildTruckPoolSizesByCapacity(t *testing.T) {
	// Arrange
	truckTypes := model.Catalog(1)
	packages := map[model.PackageID]model.Package{
		{OrderID: "O1", MaterialID: "M1"}: {
			ID:     model.PackageID{OrderID: "O1", MaterialID: "M1"},
			Area:   1,
			Weight: 27000,
		},
	}

	// Act
	pool := model.BuildTruckPool(packages, truckTypes)

	// Assert
	assert.NotEmpty(t, pool)
}

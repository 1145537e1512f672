package merger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextmv-examples/truckfleet/internal/merger"
	"github.com/nextmv-examples/truckfleet/internal/model"
)

func TestMergeUnionsDisjointResults(t *testing.T) {
	// Arrange
	p1 := model.PackageID{OrderID: "O1", MaterialID: "M1"}
	p2 := model.PackageID{OrderID: "O2", MaterialID: "M1"}

	reduced := model.NewResult()
	reduced.Packages[p1] = model.Package{ID: p1}
	reduced.PackageTruck[p1] = "truck-a"

	sub := model.NewResult()
	sub.Packages[p2] = model.Package{ID: p2}
	sub.PackageTruck[p2] = "truck-b"

	// Act
	merged, err := merger.Merge(merger.Union, reduced, []*model.Result{sub})

	// Assert
	require.NoError(t, err)
	assert.Len(t, merged.PackageTruck, 2)
	assert.Equal(t, "truck-a", merged.PackageTruck[p1])
	assert.Equal(t, "truck-b", merged.PackageTruck[p2])
}

func TestMergeOptimizeModeIsUnimplemented(t *testing.T) {
	// Act
	_, err := merger.Merge(merger.Optimize, model.NewResult(), nil)

	// Assert
	assert.ErrorIs(t, err, model.ErrOptimizeNotImplemented)
}

package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

func TestCanonicalPairIsOrderIndependent(t *testing.T) {
	// Arrange
	p1 := model.PackageID{OrderID: "O1", MaterialID: "M1"}
	p2 := model.PackageID{OrderID: "O2", MaterialID: "M1"}

	// Act / Assert
	assert.Equal(t, canonicalPair(p1, p2), canonicalPair(p2, p1))
}

func TestAllPairsCountsEveryDistinctPairOnce(t *testing.T) {
	// Arrange
	ids := []model.PackageID{
		{OrderID: "O1", MaterialID: "M1"},
		{OrderID: "O2", MaterialID: "M1"},
		{OrderID: "O3", MaterialID: "M1"},
	}

	// Act
	pairs := allPairs(ids)

	// Assert
	assert.Len(t, pairs, 3)

	seen := map[pairKey]bool{}
	for _, p := range pairs {
		assert.False(t, seen[p], "pair reported twice: %v", p)
		seen[p] = true
	}
}

func TestBigMGrowsWithDeadlineAndCapacity(t *testing.T) {
	// Act
	small := bigM(100, 100)
	large := bigM(100000, 1000000)

	// Assert
	assert.Greater(t, large, small)
}

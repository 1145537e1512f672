package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextmv-examples/truckfleet/internal/ingest"
	"github.com/nextmv-examples/truckfleet/internal/model"
)

func TestLoadOrdersRoundTripsThroughWriteOrders(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv")

	p := model.Package{
		ID:            model.PackageID{OrderID: "O1", MaterialID: "M1", PlateID: "P1"},
		Source:        "A",
		Destination:   "B",
		AvailableTime: 1000,
		Deadline:      5000,
		DangerType:    model.NonDanger,
		Area:          20000,
		Weight:        30000,
	}
	packages := map[model.PackageID]model.Package{p.ID: p}

	require.NoError(t, ingest.WriteOrders(path, packages, 10000))

	// Act
	loaded, err := ingest.LoadOrders(path, 10000)

	// Assert
	require.NoError(t, err)
	require.Contains(t, loaded, p.ID)
	assert.Equal(t, p.Source, loaded[p.ID].Source)
	assert.Equal(t, p.Area, loaded[p.ID].Area)
	assert.Equal(t, p.Weight, loaded[p.ID].Weight)
}

func TestLoadOrdersRejectsMissingColumn(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "bad_orders.csv")
	writeRaw(t, path, "Order_ID,Material_ID\nO1,M1\n")

	// Act
	_, err := ingest.LoadOrders(path, 10000)

	// Assert
	assert.ErrorIs(t, err, model.ErrInputSchema)
}

func TestLoadDistancesFillsMissingPairsWithZero(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "distances.csv")
	writeRaw(t, path, "Source,Destination,Distance(M)\nA,B,1000\n")

	// Act
	dm, err := ingest.LoadDistances(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1000), dm.Distance("A", "B"))
	assert.Equal(t, int64(0), dm.Distance("B", "A"))
}

func TestMergeScheduleRowsUnionsAndSorts(t *testing.T) {
	// Arrange
	a := []model.ScheduleRow{{ScheduleID: "t2", OrderID: "O2", MaterialID: "M1"}}
	b := []model.ScheduleRow{{ScheduleID: "t1", OrderID: "O1", MaterialID: "M1"}}

	// Act
	merged := ingest.MergeScheduleRows(a, b)

	// Assert
	require.Len(t, merged, 2)
	assert.Equal(t, "t1", merged[0].ScheduleID)
	assert.Equal(t, "t2", merged[1].ScheduleID)
}

func writeRaw(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

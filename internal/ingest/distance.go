package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

var distanceColumns = []string{"Source", "Destination", "Distance(M)"}

// LoadDistances reads the distance CSV at path and returns a DistanceMatrix
// with the synthetic Placeholder location appended.
func LoadDistances(path string) (*model.DistanceMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening distance file: %v", model.ErrInputSchema, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading distance header: %v", model.ErrInputSchema, err)
	}

	idx, err := columnIndex(header, distanceColumns)
	if err != nil {
		return nil, err
	}

	var rows [][3]any

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading distance row: %v", model.ErrInputSchema, err)
		}

		meters, err := strconv.ParseInt(record[idx["Distance(M)"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: unparseable distance %q: %v", model.ErrInputSchema, record[idx["Distance(M)"]], err)
		}

		rows = append(rows, [3]any{record[idx["Source"]], record[idx["Destination"]], meters})
	}

	return model.NewDistanceMatrix(rows)
}

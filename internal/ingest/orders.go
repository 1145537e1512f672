// Package ingest loads the order and distance CSV files into the shared
// model types, and writes the schedule CSV back out. Column handling is
// explicit encoding/csv plus typed conversions, the way the pack's
// standalone delimited-file parser (see other_examples' VRP loader) reads
// and validates its input rather than reflecting a CSV row onto a struct.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

var orderColumns = []string{
	"Order_ID", "Material_ID", "Plate_ID", "Source", "Destination",
	"Available_Time", "Deadline", "Danger_Type", "Area", "Weight",
}

// LoadOrders reads the order CSV at path and returns the decoded packages
// keyed by (order, material, plate). Area and Weight are scaled by
// scaleFactor and truncated to integer, matching the source loader.
func LoadOrders(path string, scaleFactor int64) (map[model.PackageID]model.Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening order file: %v", model.ErrInputSchema, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading order header: %v", model.ErrInputSchema, err)
	}

	idx, err := columnIndex(header, orderColumns)
	if err != nil {
		return nil, err
	}

	packages := map[model.PackageID]model.Package{}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading order row: %v", model.ErrInputSchema, err)
		}

		p, err := parseOrderRow(record, idx, scaleFactor)
		if err != nil {
			return nil, err
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}

		packages[p.ID] = p
	}

	return packages, nil
}

func parseOrderRow(record []string, idx map[string]int, scaleFactor int64) (model.Package, error) {
	available, err := time.Parse(timeLayout, record[idx["Available_Time"]])
	if err != nil {
		return model.Package{}, fmt.Errorf("%w: unparseable Available_Time %q: %v", model.ErrInputSchema, record[idx["Available_Time"]], err)
	}
	deadline, err := time.Parse(timeLayout, record[idx["Deadline"]])
	if err != nil {
		return model.Package{}, fmt.Errorf("%w: unparseable Deadline %q: %v", model.ErrInputSchema, record[idx["Deadline"]], err)
	}

	area, err := parseScaledInt(record[idx["Area"]], scaleFactor)
	if err != nil {
		return model.Package{}, fmt.Errorf("%w: unparseable Area %q: %v", model.ErrInputSchema, record[idx["Area"]], err)
	}
	weight, err := parseScaledInt(record[idx["Weight"]], scaleFactor)
	if err != nil {
		return model.Package{}, fmt.Errorf("%w: unparseable Weight %q: %v", model.ErrInputSchema, record[idx["Weight"]], err)
	}

	return model.Package{
		ID: model.PackageID{
			OrderID:    record[idx["Order_ID"]],
			MaterialID: record[idx["Material_ID"]],
			PlateID:    record[idx["Plate_ID"]],
		},
		Source:        record[idx["Source"]],
		Destination:   record[idx["Destination"]],
		AvailableTime: available.Unix(),
		Deadline:      deadline.Unix(),
		DangerType:    record[idx["Danger_Type"]],
		Area:          area,
		Weight:        weight,
	}, nil
}

func columnIndex(header []string, required []string) (map[string]int, error) {
	idx := map[string]int{}
	for i, col := range header {
		idx[col] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", model.ErrInputSchema, col)
		}
	}
	return idx, nil
}

func parseScaledInt(raw string, scaleFactor int64) (int64, error) {
	var f float64
	if _, err := fmt.Sscanf(raw, "%g", &f); err != nil {
		return 0, err
	}
	return int64(f * float64(scaleFactor)), nil
}

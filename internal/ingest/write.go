package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

// WriteOrders writes packages back out in the order-file CSV shape, the
// Go equivalent of the source system's toOrderDF, sorted by
// (Order_ID, Material_ID) for deterministic output.
func WriteOrders(path string, packages map[model.PackageID]model.Package, scaleFactor int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating order file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(orderColumns); err != nil {
		return err
	}

	ids := make([]model.PackageID, 0, len(packages))
	for id := range packages {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].OrderID != ids[j].OrderID {
			return ids[i].OrderID < ids[j].OrderID
		}
		return ids[i].MaterialID < ids[j].MaterialID
	})

	for _, id := range ids {
		p := packages[id]
		row := []string{
			p.ID.OrderID,
			p.ID.MaterialID,
			p.ID.PlateID,
			p.Source,
			p.Destination,
			time.Unix(p.AvailableTime, 0).UTC().Format(timeLayout),
			time.Unix(p.Deadline, 0).UTC().Format(timeLayout),
			p.DangerType,
			formatScaled(p.Area, scaleFactor),
			formatScaled(p.Weight, scaleFactor),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatScaled(v, scaleFactor int64) string {
	return strconv.FormatFloat(float64(v)/float64(scaleFactor), 'f', -1, 64)
}

var scheduleColumns = []string{
	"Schedule_ID", "Truck_Route", "Order_ID", "Material_ID", "Plate_ID",
	"Danger_Type", "Source", "Destination", "Start_Time", "Arrival_Time",
	"Deadline", "Shared_Truck", "Truck_Type", "Area_Rate", "Weight_Rate",
	"Capacity_Rate",
}

// WriteSchedule writes a Result's schedule rows to the output CSV, already
// sorted by (Schedule_ID, Order_ID, Material_ID).
func WriteSchedule(path string, result *model.Result) error {
	return WriteScheduleRows(path, result.ScheduleRows())
}

// WriteScheduleRows writes a pre-computed set of schedule rows, the shape
// the merge stage uses to re-emit rows it only read back from disk rather
// than recomputed from a Result.
func WriteScheduleRows(path string, rows []model.ScheduleRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating schedule file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(scheduleColumns); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.ScheduleID,
			row.TruckRoute,
			row.OrderID,
			row.MaterialID,
			row.PlateID,
			row.DangerType,
			row.Source,
			row.Destination,
			time.Unix(row.StartTime, 0).UTC().Format(timeLayout),
			time.Unix(row.ArrivalTime, 0).UTC().Format(timeLayout),
			time.Unix(row.Deadline, 0).UTC().Format(timeLayout),
			row.SharedTruck,
			strconv.Itoa(row.TruckType),
			strconv.FormatFloat(row.AreaRate, 'f', -1, 64),
			strconv.FormatFloat(row.WeightRate, 'f', -1, 64),
			strconv.FormatFloat(row.CapacityRate, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return w.Error()
}

// ReadScheduleRows reads back a schedule CSV written by WriteSchedule or
// WriteScheduleRows, for the merge stage to combine multiple partial
// schedules without re-solving anything.
func ReadScheduleRows(path string) ([]model.ScheduleRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading schedule file: %v", model.ErrInputSchema, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]model.ScheduleRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(scheduleColumns) {
			return nil, fmt.Errorf("%w: schedule row has %d columns, want %d", model.ErrInputSchema, len(record), len(scheduleColumns))
		}

		start, err := time.Parse(timeLayout, record[8])
		if err != nil {
			return nil, fmt.Errorf("%w: parsing Start_Time: %v", model.ErrInputSchema, err)
		}
		arrival, err := time.Parse(timeLayout, record[9])
		if err != nil {
			return nil, fmt.Errorf("%w: parsing Arrival_Time: %v", model.ErrInputSchema, err)
		}
		deadline, err := time.Parse(timeLayout, record[10])
		if err != nil {
			return nil, fmt.Errorf("%w: parsing Deadline: %v", model.ErrInputSchema, err)
		}
		truckType, err := strconv.Atoi(record[12])
		if err != nil {
			return nil, fmt.Errorf("%w: parsing Truck_Type: %v", model.ErrInputSchema, err)
		}
		areaRate, err := strconv.ParseFloat(record[13], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing Area_Rate: %v", model.ErrInputSchema, err)
		}
		weightRate, err := strconv.ParseFloat(record[14], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing Weight_Rate: %v", model.ErrInputSchema, err)
		}
		capacityRate, err := strconv.ParseFloat(record[15], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing Capacity_Rate: %v", model.ErrInputSchema, err)
		}

		rows = append(rows, model.ScheduleRow{
			ScheduleID:   record[0],
			TruckRoute:   record[1],
			OrderID:      record[2],
			MaterialID:   record[3],
			PlateID:      record[4],
			DangerType:   record[5],
			Source:       record[6],
			Destination:  record[7],
			StartTime:    start.UTC().Unix(),
			ArrivalTime:  arrival.UTC().Unix(),
			Deadline:     deadline.UTC().Unix(),
			SharedTruck:  record[11],
			TruckType:    truckType,
			AreaRate:     areaRate,
			WeightRate:   weightRate,
			CapacityRate: capacityRate,
		})
	}

	return rows, nil
}

// MergeScheduleRows unions multiple already-written schedule row sets and
// re-sorts the result by (Schedule_ID, Order_ID, Material_ID), the same
// ordering WriteSchedule produces directly from a Result.
func MergeScheduleRows(rowSets ...[]model.ScheduleRow) []model.ScheduleRow {
	var all []model.ScheduleRow
	for _, rows := range rowSets {
		all = append(all, rows...)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].ScheduleID != all[j].ScheduleID {
			return all[i].ScheduleID < all[j].ScheduleID
		}
		if all[i].OrderID != all[j].OrderID {
			return all[i].OrderID < all[j].OrderID
		}
		return all[i].MaterialID < all[j].MaterialID
	})

	return all
}

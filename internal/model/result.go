package model

import "sort"

// Result is the output of a reducer commit, a single solver run, or the
// merger: five parallel mappings describing which truck carries which
// package, the ordered route each truck drives, and the timing of each
// package's journey.
//
// Ownership: Packages and Trucks hold copies of the records a caller passed
// in, never back-references into a caller's own maps.
type Result struct {
	Packages map[PackageID]Package
	Trucks   map[string]Truck

	PackageTruck   map[PackageID]string
	TruckRoute     map[string][]string
	TruckPackages  map[string][]PackageID
	PackageStart   map[PackageID]int64
	PackageArrival map[PackageID]int64
}

// NewResult returns an empty, initialized Result.
func NewResult() *Result {
	return &Result{
		Packages:       map[PackageID]Package{},
		Trucks:         map[string]Truck{},
		PackageTruck:   map[PackageID]string{},
		TruckRoute:     map[string][]string{},
		TruckPackages:  map[string][]PackageID{},
		PackageStart:   map[PackageID]int64{},
		PackageArrival: map[PackageID]int64{},
	}
}

// Merge unions another result into this one in place. Callers are
// responsible for ensuring the package sets are disjoint; this is the
// invariant the partitioner and reducer jointly guarantee (see
// internal/merger).
func (r *Result) Merge(other *Result) {
	for k, v := range other.Packages {
		r.Packages[k] = v
	}
	for k, v := range other.Trucks {
		r.Trucks[k] = v
	}
	for k, v := range other.PackageTruck {
		r.PackageTruck[k] = v
	}
	for k, v := range other.TruckRoute {
		r.TruckRoute[k] = v
	}
	for k, v := range other.TruckPackages {
		r.TruckPackages[k] = v
	}
	for k, v := range other.PackageStart {
		r.PackageStart[k] = v
	}
	for k, v := range other.PackageArrival {
		r.PackageArrival[k] = v
	}
}

// ScheduleRow is one line of the schedule CSV: a single package's leg of
// its truck's route.
type ScheduleRow struct {
	ScheduleID   string
	TruckRoute   string
	OrderID      string
	MaterialID   string
	PlateID      string
	DangerType   string
	Source       string
	Destination  string
	StartTime    int64
	ArrivalTime  int64
	Deadline     int64
	SharedTruck  string
	TruckType    int
	AreaRate     float64
	WeightRate   float64
	CapacityRate float64
}

// ScheduleRows flattens the result into schedule rows sorted by
// (Schedule_ID, Order_ID, Material_ID), matching the output CSV ordering.
func (r *Result) ScheduleRows() []ScheduleRow {
	truckOrders := map[string]map[string]bool{}
	truckAreaRate := map[string]float64{}
	truckWeightRate := map[string]float64{}

	for tID, pkgIDs := range r.TruckPackages {
		truck := r.Trucks[tID]
		orders := map[string]bool{}
		var area, weight int64
		for _, pID := range pkgIDs {
			p := r.Packages[pID]
			orders[p.ID.OrderID] = true
			area += p.Area
			weight += p.Weight
		}
		truckOrders[tID] = orders
		if truck.Type.AreaCapacity > 0 {
			truckAreaRate[tID] = float64(area) / float64(truck.Type.AreaCapacity)
		}
		if truck.Type.WeightCapacity > 0 {
			truckWeightRate[tID] = float64(weight) / float64(truck.Type.WeightCapacity)
		}
	}

	rows := make([]ScheduleRow, 0, len(r.PackageTruck))
	for tID, pkgIDs := range r.TruckPackages {
		truck := r.Trucks[tID]
		route := r.TruckRoute[tID]

		areaRate := truckAreaRate[tID]
		weightRate := truckWeightRate[tID]
		capacityRate := areaRate
		if weightRate > capacityRate {
			capacityRate = weightRate
		}

		shared := "N"
		if len(truckOrders[tID]) > 1 {
			shared = "Y"
		}

		for _, pID := range pkgIDs {
			p := r.Packages[pID]
			rows = append(rows, ScheduleRow{
				ScheduleID:   tID,
				TruckRoute:   joinArrow(route),
				OrderID:      p.ID.OrderID,
				MaterialID:   p.ID.MaterialID,
				PlateID:      p.ID.PlateID,
				DangerType:   p.DangerType,
				Source:       p.Source,
				Destination:  p.Destination,
				StartTime:    r.PackageStart[pID],
				ArrivalTime:  r.PackageArrival[pID],
				Deadline:     p.Deadline,
				SharedTruck:  shared,
				TruckType:    truck.Type.ID,
				AreaRate:     areaRate,
				WeightRate:   weightRate,
				CapacityRate: capacityRate,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ScheduleID != rows[j].ScheduleID {
			return rows[i].ScheduleID < rows[j].ScheduleID
		}
		if rows[i].OrderID != rows[j].OrderID {
			return rows[i].OrderID < rows[j].OrderID
		}
		return rows[i].MaterialID < rows[j].MaterialID
	})

	return rows
}

func joinArrow(route []string) string {
	out := ""
	for i, loc := range route {
		if i > 0 {
			out += "->"
		}
		out += loc
	}
	return out
}

// Package model defines the shared data model for the truck-routing
// pipeline: packages, truck types, trucks, the distance matrix, and the
// model input/result records that flow between the reducer, partitioner,
// solver and merger stages.
package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Placeholder is the synthetic zero-distance location appended to every
// distance matrix, matching the source system's sentinel location.
const Placeholder = "Placeholder"

// NonDanger is the sentinel danger type tag meaning "compatible with
// anything".
const NonDanger = "non_danger"

// PackageID uniquely identifies a Package by the triple the original system
// keys on: order, material and plate.
type PackageID struct {
	OrderID    string
	MaterialID string
	PlateID    string
}

func (id PackageID) String() string {
	return fmt.Sprintf("%s/%s/%s", id.OrderID, id.MaterialID, id.PlateID)
}

// Package is a single physical shipment unit.
type Package struct {
	ID PackageID

	Source      string
	Destination string

	// Area and Weight are scaled integers (see config.Parameters.ScaleFactor).
	Area   int64
	Weight int64

	DangerType string

	AvailableTime int64
	Deadline      int64
}

// Validate checks the per-package invariants from the data model: the
// deadline must be strictly after availability, and size fields must be
// positive.
func (p Package) Validate() error {
	if p.Deadline <= p.AvailableTime {
		return fmt.Errorf("%w: package %s deadline %d <= available_time %d", ErrInputSchema, p.ID, p.Deadline, p.AvailableTime)
	}
	if p.Area <= 0 {
		return fmt.Errorf("%w: package %s has non-positive area %d", ErrInputSchema, p.ID, p.Area)
	}
	if p.Weight <= 0 {
		return fmt.Errorf("%w: package %s has non-positive weight %d", ErrInputSchema, p.ID, p.Weight)
	}
	return nil
}

// TruckType is an immutable vehicle profile: capacity, speed and cost.
type TruckType struct {
	ID int // numeric label, e.g. 165 for the "16.5m" type; see catalog.go

	InnerLength float64
	InnerWidth  float64

	AreaCapacity   int64
	WeightCapacity int64

	// Speed is in meters per second.
	Speed float64

	// CostPerKM is the per-kilometer currency cost.
	CostPerKM float64
}

// Truck is a vehicle instance: an id plus a reference to its type.
type Truck struct {
	ID   string
	Type TruckType
}

// NewTruck instantiates a fresh truck of the given type with a random id,
// the way the source system mints a uuid per truck instance.
func NewTruck(t TruckType) Truck {
	return Truck{ID: uuid.NewString(), Type: t}
}

// DistanceMatrix is a square, read-only mapping from (source, destination)
// location pairs to a distance in meters.
type DistanceMatrix struct {
	distances map[string]map[string]int64
}

// NewDistanceMatrix builds a matrix from a flat list of (source, dest,
// meters) rows, then appends the zero-distance Placeholder location to
// every row and column exactly as the source system does.
func NewDistanceMatrix(rows [][3]any) (*DistanceMatrix, error) {
	m := &DistanceMatrix{distances: map[string]map[string]int64{}}
	locations := map[string]bool{}

	for _, row := range rows {
		src, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: distance row source is not a string", ErrInputSchema)
		}
		dst, ok := row[1].(string)
		if !ok {
			return nil, fmt.Errorf("%w: distance row destination is not a string", ErrInputSchema)
		}
		meters, ok := row[2].(int64)
		if !ok {
			return nil, fmt.Errorf("%w: distance row meters is not an int64", ErrInputSchema)
		}

		locations[src] = true
		locations[dst] = true

		if m.distances[src] == nil {
			m.distances[src] = map[string]int64{}
		}
		m.distances[src][dst] = meters
	}

	for loc := range locations {
		m.set(loc, Placeholder, 0)
		m.set(Placeholder, loc, 0)
	}
	m.set(Placeholder, Placeholder, 0)

	return m, nil
}

func (m *DistanceMatrix) set(src, dst string, meters int64) {
	if m.distances[src] == nil {
		m.distances[src] = map[string]int64{}
	}
	m.distances[src][dst] = meters
}

// Distance returns the meters between src and dst. Missing pairs return 0,
// matching the source system's fillna(0) on the pivoted matrix.
func (m *DistanceMatrix) Distance(src, dst string) int64 {
	if m == nil {
		return 0
	}
	if row, ok := m.distances[src]; ok {
		return row[dst]
	}
	return 0
}

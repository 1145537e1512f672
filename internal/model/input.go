package model

import (
	"math"
	"sort"

	"github.com/nextmv-examples/truckfleet/internal/config"
)

// Input is a mapping of package-id to Package, the truck-type catalog, a
// distance matrix, a derived truck pool, a sorted distinct location list,
// and the global scalar parameters. It is the unit of work passed between
// pipeline stages.
type Input struct {
	Packages   map[PackageID]Package
	TruckTypes []TruckType
	Trucks     map[string]Truck
	Distances  *DistanceMatrix
	Params     config.Parameters
}

// LocationList returns the sorted, distinct set of locations referenced by
// Packages, with the Placeholder location appended last.
func (in Input) LocationList() []string {
	seen := map[string]bool{}
	for _, p := range in.Packages {
		seen[p.Source] = true
		seen[p.Destination] = true
	}

	locs := make([]string, 0, len(seen))
	for loc := range seen {
		locs = append(locs, loc)
	}
	sort.Strings(locs)
	locs = append(locs, Placeholder)

	return locs
}

// truckTypeDiscount mirrors the source system's bias toward bigger,
// cheaper-per-unit trucks: the pool for smaller types is shrunk by a
// discount factor so the solver is nudged toward the types the reducer
// already favors.
func truckTypeDiscount(rank int) float64 {
	switch rank {
	case 0:
		return 1.0
	case 1, 2:
		return 0.6
	default:
		return 0.36
	}
}

// BuildTruckPool computes, for every truck type and order, the minimum
// number of trucks of that type needed to carry the order's packages
// (by area and by weight independently, taking the max), discounts smaller
// types to bias the solver toward larger trucks, and instantiates that many
// fresh trucks per type. The result is an upper bound: the solver decides
// which trucks are actually used.
func BuildTruckPool(packages map[PackageID]Package, truckTypes []TruckType) map[string]Truck {
	trucks := map[string]Truck{}

	byOrder := map[string][]Package{}
	for _, p := range packages {
		byOrder[p.ID.OrderID] = append(byOrder[p.ID.OrderID], p)
	}

	for rank, tt := range truckTypes {
		discount := truckTypeDiscount(rank)

		for _, pkgs := range byOrder {
			var totalArea, totalWeight int64
			for _, p := range pkgs {
				totalArea += p.Area
				totalWeight += p.Weight
			}

			minByArea := ceilDiv(totalArea, tt.AreaCapacity)
			minByWeight := ceilDiv(totalWeight, tt.WeightCapacity)

			minNum := minByArea
			if minByWeight > minNum {
				minNum = minByWeight
			}

			count := int(float64(minNum) * discount)
			for i := 0; i < count; i++ {
				t := NewTruck(tt)
				trucks[t.ID] = t
			}
		}
	}

	return trucks
}

func ceilDiv(a, b int64) int64 {
	if b <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(a) / float64(b)))
}

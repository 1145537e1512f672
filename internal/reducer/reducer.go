// Package reducer implements the search-space reducer: a greedy pre-solver
// that commits "obviously full" truckloads before the constraint solver
// ever sees them, shrinking the problem the partitioner and solver have to
// handle.
//
// Both heuristics share the signature (Input) -> (reduced Input, partial
// Result), mirroring the source system's sibling reduce1/reduce2 procedures
// behind a common shape.
package reducer

import (
	"log/slog"
	"sort"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

// Heuristic selects which reduction strategy the pipeline runs.
type Heuristic int

const (
	// PerOrder groups packages by order_id (H1).
	PerOrder Heuristic = iota
	// PerDestination groups packages by destination (H2).
	PerDestination
)

// Reduce runs the selected heuristic against in, returning the packages it
// could not commit (the reduced input) and the partial schedule for the
// packages it did commit.
func Reduce(logger *slog.Logger, in model.Input, h Heuristic) (model.Input, *model.Result) {
	switch h {
	case PerDestination:
		return reduceByDestination(logger, in)
	default:
		return reduceByOrder(logger, in)
	}
}

// reduceByOrder is H1: group packages by order_id (assuming a single order
// shares source, destination, available_time and danger_type), and greedily
// fill truck_types[0] with an order's own packages until the saturation
// threshold is crossed, at which point the accumulated packages are
// committed to a fresh truck of that type.
func reduceByOrder(logger *slog.Logger, in model.Input) (model.Input, *model.Result) {
	partial := model.NewResult()

	if len(in.TruckTypes) == 0 {
		return in, partial
	}
	truckType := in.TruckTypes[0]
	threshold := in.Params.ReduceThreshold

	byOrder := map[string][]model.Package{}
	var orderIDs []string
	for _, p := range in.Packages {
		if _, ok := byOrder[p.ID.OrderID]; !ok {
			orderIDs = append(orderIDs, p.ID.OrderID)
		}
		byOrder[p.ID.OrderID] = append(byOrder[p.ID.OrderID], p)
	}
	sort.Strings(orderIDs)

	for _, orderID := range orderIDs {
		packages := byOrder[orderID]
		assertSingleOrderAssumption(packages)

		var candidates []model.Package
		var totalArea, totalWeight int64

		for _, p := range packages {
			if totalArea+p.Area <= truckType.AreaCapacity && totalWeight+p.Weight <= truckType.WeightCapacity {
				candidates = append(candidates, p)
				totalArea += p.Area
				totalWeight += p.Weight

				if float64(totalArea) > float64(truckType.AreaCapacity)*threshold ||
					float64(totalWeight) > float64(truckType.WeightCapacity)*threshold {
					commit(partial, candidates, in.Distances, truckType)
					candidates = nil
					totalArea, totalWeight = 0, 0
				}
			} else {
				candidates = nil
				totalArea, totalWeight = 0, 0
			}
		}
	}

	reduced := remainder(in, partial)

	logger.Info("reduce step complete",
		"heuristic", "per_order",
		"packages_before", len(in.Packages),
		"packages_after", len(reduced.Packages))

	return reduced, partial
}

// reduceByDestination is H2: group by destination, sort candidates within a
// group by (available_time, danger_type, order_id), and greedily pack while
// respecting capacity, danger-type compatibility and the time-window
// constraint.
func reduceByDestination(logger *slog.Logger, in model.Input) (model.Input, *model.Result) {
	partial := model.NewResult()

	if len(in.TruckTypes) == 0 {
		return in, partial
	}
	truckType := in.TruckTypes[0]
	threshold := in.Params.ReduceThreshold
	maxGap := in.Params.MaxTimeDifferenceBetweenPackage

	byDest := map[string][]model.Package{}
	var destinations []string
	for _, p := range in.Packages {
		if _, ok := byDest[p.Destination]; !ok {
			destinations = append(destinations, p.Destination)
		}
		byDest[p.Destination] = append(byDest[p.Destination], p)
	}
	sort.Strings(destinations)

	for _, dest := range destinations {
		packages := byDest[dest]
		sort.Slice(packages, func(i, j int) bool {
			if packages[i].AvailableTime != packages[j].AvailableTime {
				return packages[i].AvailableTime < packages[j].AvailableTime
			}
			if packages[i].DangerType != packages[j].DangerType {
				return packages[i].DangerType < packages[j].DangerType
			}
			return packages[i].ID.OrderID < packages[j].ID.OrderID
		})

		var candidates []model.Package
		var totalArea, totalWeight int64
		dangerTypes := map[string]bool{}
		minAvailable := int64(-1)

		for _, p := range packages {
			if totalArea+p.Area > truckType.AreaCapacity || totalWeight+p.Weight > truckType.WeightCapacity {
				candidates = nil
				totalArea, totalWeight = 0, 0
				dangerTypes = map[string]bool{}
				minAvailable = -1
				continue
			}

			if p.DangerType != model.NonDanger {
				if len(dangerTypes) == 0 {
					candidates = append(candidates, p)
					totalArea += p.Area
					totalWeight += p.Weight
					dangerTypes[p.DangerType] = true
					minAvailable = p.AvailableTime
				} else if !dangerTypes[p.DangerType] {
					continue
				} else if abs64(p.AvailableTime-minAvailable) > maxGap {
					continue
				} else {
					candidates = append(candidates, p)
					totalArea += p.Area
					totalWeight += p.Weight
					minAvailable = min64(minAvailable, p.AvailableTime)
				}
			} else {
				if minAvailable != -1 && abs64(p.AvailableTime-minAvailable) > maxGap {
					continue
				}
				candidates = append(candidates, p)
				totalArea += p.Area
				totalWeight += p.Weight
				if minAvailable == -1 {
					minAvailable = p.AvailableTime
				} else {
					minAvailable = min64(minAvailable, p.AvailableTime)
				}
			}

			if float64(totalArea) > float64(truckType.AreaCapacity)*threshold ||
				float64(totalWeight) > float64(truckType.WeightCapacity)*threshold {
				commit(partial, candidates, in.Distances, truckType)
				candidates = nil
				totalArea, totalWeight = 0, 0
				dangerTypes = map[string]bool{}
				minAvailable = -1
			}
		}
	}

	reduced := remainder(in, partial)

	logger.Info("reduce step complete",
		"heuristic", "per_destination",
		"packages_before", len(in.Packages),
		"packages_after", len(reduced.Packages))

	return reduced, partial
}

// commit builds a fresh truck of truckType carrying candidates, using the
// first candidate's source/destination as the route and the latest
// available_time among candidates as the start time.
func commit(partial *model.Result, candidates []model.Package, distances *model.DistanceMatrix, truckType model.TruckType) {
	if len(candidates) == 0 {
		return
	}

	truck := model.NewTruck(truckType)

	startTime := candidates[0].AvailableTime
	for _, p := range candidates[1:] {
		if p.AvailableTime > startTime {
			startTime = p.AvailableTime
		}
	}

	source := candidates[0].Source
	destination := candidates[0].Destination
	travel := int64(float64(distances.Distance(source, destination)) / truckType.Speed)
	arrival := startTime + travel

	partial.Trucks[truck.ID] = truck
	partial.TruckRoute[truck.ID] = []string{source, destination}

	for _, p := range candidates {
		partial.Packages[p.ID] = p
		partial.PackageTruck[p.ID] = truck.ID
		partial.TruckPackages[truck.ID] = append(partial.TruckPackages[truck.ID], p.ID)
		partial.PackageStart[p.ID] = startTime
		partial.PackageArrival[p.ID] = arrival
	}
}

// remainder returns a new Input containing the packages not committed into
// partial, with a freshly sized truck pool.
func remainder(in model.Input, partial *model.Result) model.Input {
	remaining := map[model.PackageID]model.Package{}
	for id, p := range in.Packages {
		if _, committed := partial.PackageTruck[id]; !committed {
			remaining[id] = p
		}
	}

	return model.Input{
		Packages:   remaining,
		TruckTypes: in.TruckTypes,
		Trucks:     model.BuildTruckPool(remaining, in.TruckTypes),
		Distances:  in.Distances,
		Params:     in.Params,
	}
}

// assertSingleOrderAssumption verifies H1's documented assumption: all
// packages sharing an order_id share source, destination, available_time
// and danger_type. It panics on violation, matching the source system's
// bare assert (a fatal, load-time-class invariant, not a recoverable
// per-row error).
func assertSingleOrderAssumption(packages []model.Package) {
	if len(packages) == 0 {
		return
	}
	first := packages[0]
	for _, p := range packages[1:] {
		if p.Source != first.Source || p.Destination != first.Destination ||
			p.AvailableTime != first.AvailableTime || p.DangerType != first.DangerType {
			panic("reducer: order " + first.ID.OrderID + " violates the single source/destination/available_time/danger_type assumption")
		}
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

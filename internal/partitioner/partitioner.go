// Package partitioner splits a reduced input into sub-inputs that the
// solver can solve one at a time, in any order. Three monotone refinement
// passes are applied in sequence. The by-source and by-time-interval passes
// lose no cross-package constraint; the hard-cut pass, applied only to
// groups still over the size cap, can separate packages that could have
// shared a truck. Each sub-input carries the same distance matrix,
// truck-type catalog and global parameters as the parent, with its own
// freshly sized truck pool.
package partitioner

import (
	"sort"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

// Partition splits in into sub-inputs of at most maxPackageNum packages
// each, applying the by-source, by-time-interval and hard-cut passes in
// order.
func Partition(in model.Input, maxPackageNum int) []model.Input {
	bySource := partitionBySource(in)

	var byTime []model.Input
	for _, sub := range bySource {
		if len(sub.Packages) <= maxPackageNum {
			byTime = append(byTime, sub)
			continue
		}
		byTime = append(byTime, partitionByTimeInterval(sub, maxPackageNum)...)
	}

	var final []model.Input
	for _, sub := range byTime {
		if len(sub.Packages) <= maxPackageNum {
			final = append(final, sub)
			continue
		}
		final = append(final, partitionByHardCut(sub, maxPackageNum)...)
	}

	return final
}

// partitionBySource groups packages by source location. This is always
// safe: the model requires one truck per source, so cross-source packages
// can never co-occupy a truck.
func partitionBySource(in model.Input) []model.Input {
	bySource := map[string][]model.Package{}
	var sources []string
	for _, p := range in.Packages {
		if _, ok := bySource[p.Source]; !ok {
			sources = append(sources, p.Source)
		}
		bySource[p.Source] = append(bySource[p.Source], p)
	}
	sort.Strings(sources)

	subs := make([]model.Input, 0, len(sources))
	for _, src := range sources {
		subs = append(subs, buildSubInput(in, bySource[src]))
	}
	return subs
}

// partitionByTimeInterval sorts by (available_time, order_id, material_id)
// and opens a new sub-group whenever the gap to the previous package's
// available_time exceeds max_time_difference_between_package. This is safe
// because the time-window constraint already forbids co-occupancy across
// such a gap; the groups produced are provably independent, not just a
// size-based heuristic cut.
func partitionByTimeInterval(in model.Input, maxPackageNum int) []model.Input {
	packages := sortedPackages(in)

	var groups [][]model.Package
	var current []model.Package
	var previousAvailable int64
	haveGroup := false

	for _, p := range packages {
		if !haveGroup {
			current = append(current, p)
			previousAvailable = p.AvailableTime
			haveGroup = true
			continue
		}

		if abs64(p.AvailableTime-previousAvailable) <= in.Params.MaxTimeDifferenceBetweenPackage {
			current = append(current, p)
			previousAvailable = p.AvailableTime
			continue
		}

		groups = append(groups, current)
		current = []model.Package{p}
		previousAvailable = p.AvailableTime
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	subs := make([]model.Input, 0, len(groups))
	for _, g := range groups {
		subs = append(subs, buildSubInput(in, g))
	}
	return subs
}

// partitionByHardCut is the last resort: it emits consecutive chunks of
// size maxPackageNum from the (available_time, order_id, material_id)
// sorted list. This pass does not preserve independence; it exists only to
// bound sub-problem size when the prior passes could not.
func partitionByHardCut(in model.Input, maxPackageNum int) []model.Input {
	packages := sortedPackages(in)

	var subs []model.Input
	var chunk []model.Package

	for _, p := range packages {
		chunk = append(chunk, p)
		if len(chunk) == maxPackageNum {
			subs = append(subs, buildSubInput(in, chunk))
			chunk = nil
		}
	}
	if len(chunk) > 0 {
		subs = append(subs, buildSubInput(in, chunk))
	}
	return subs
}

func sortedPackages(in model.Input) []model.Package {
	packages := make([]model.Package, 0, len(in.Packages))
	for _, p := range in.Packages {
		packages = append(packages, p)
	}
	sort.Slice(packages, func(i, j int) bool {
		if packages[i].AvailableTime != packages[j].AvailableTime {
			return packages[i].AvailableTime < packages[j].AvailableTime
		}
		if packages[i].ID.OrderID != packages[j].ID.OrderID {
			return packages[i].ID.OrderID < packages[j].ID.OrderID
		}
		return packages[i].ID.MaterialID < packages[j].ID.MaterialID
	})
	return packages
}

func buildSubInput(parent model.Input, packages []model.Package) model.Input {
	all := make(map[model.PackageID]model.Package, len(packages))
	for _, p := range packages {
		all[p.ID] = p
	}

	return model.Input{
		Packages:   all,
		TruckTypes: parent.TruckTypes,
		Trucks:     model.BuildTruckPool(all, parent.TruckTypes),
		Distances:  parent.Distances,
		Params:     parent.Params,
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

package solver

import (
	"math"
	"sort"

	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

// extractResult reads back every assigned package/truck/route from a
// solved model, mirroring the source system's getModelResult: invert
// x[t,p] to learn which truck carries which package, then order each
// truck's destinations by its solved stop index, collapsing packages that
// share a stop index (the C8 same-destination branch) into the single
// route entry they represent instead of repeating it once per package.
func (s *Solver) extractResult(solution mip.Solution) *model.Result {
	result := model.NewResult()

	truckPackages := map[string][]model.PackageID{}

	for _, pID := range s.packageIDs {
		p := s.package_(pID)

		for _, tID := range s.truckIDs {
			if solution.Value(s.x[xKey{TruckID: tID, Package: pID}]) <= 0.5 {
				continue
			}

			result.PackageTruck[pID] = tID
			result.PackageStart[pID] = int64(math.Round(solution.Value(s.start[pID])))
			result.PackageArrival[pID] = int64(math.Round(solution.Value(s.arrive[pID])))

			truck := s.input.Trucks[tID]
			truck.Type = s.truckType[tID]
			result.Trucks[tID] = truck
			result.Packages[pID] = p

			truckPackages[tID] = append(truckPackages[tID], pID)
			break
		}
	}

	for tID, pkgs := range truckPackages {
		sort.Slice(pkgs, func(i, j int) bool {
			return solution.Value(s.stop[pkgs[i]]) < solution.Value(s.stop[pkgs[j]])
		})

		result.TruckPackages[tID] = pkgs

		route := []string{s.package_(pkgs[0]).Source}
		var lastStop float64
		haveStop := false
		for _, pID := range pkgs {
			stop := solution.Value(s.stop[pID])
			if haveStop && stop == lastStop {
				continue
			}
			route = append(route, s.package_(pID).Destination)
			lastStop = stop
			haveStop = true
		}
		result.TruckRoute[tID] = route
	}

	return result
}

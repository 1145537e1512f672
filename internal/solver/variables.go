package solver

import "github.com/nextmv-examples/truckfleet/internal/model"

// createVariables allocates every decision variable named in the model:
// x[t,p], stop[p], start[p], arrive[p], same[p1,p2], tt[p,k], before[p1,p2]
// (the last lazily, once same/destination are known), sameRankDir[p1,p2]
// (lazily, for same-source pairs only — the NE-branch discriminator for
// C3's rank-weighted disequality), and the per-truck aggregates T_start,
// T_arrive, T_maxstop, C.
func (s *Solver) createVariables() {
	for _, tID := range s.truckIDs {
		for _, pID := range s.packageIDs {
			s.x[xKey{TruckID: tID, Package: pID}] = s.m.NewBool()
		}
	}

	for _, pID := range s.packageIDs {
		s.stop[pID] = s.m.NewInt(1, s.input.Params.MaxStops)
		s.start[pID] = s.m.NewInt(int(s.minStart), int(s.maxStart))
		s.arrive[pID] = s.m.NewInt(int(s.minStart), int(s.maxDeadline))
	}

	for _, pair := range allPairs(s.packageIDs) {
		s.same[pair] = s.m.NewBool()

		if s.package_(pair.A).Destination != s.package_(pair.B).Destination {
			s.before[pair] = s.m.NewBool()
		}

		if s.package_(pair.A).Source == s.package_(pair.B).Source {
			s.sameRankDir[pair] = s.m.NewBool()
		}
	}

	for _, pID := range s.packageIDs {
		for _, tt := range s.input.TruckTypes {
			s.tt[ttKey{Package: pID, TypeID: tt.ID}] = s.m.NewBool()
		}
	}

	for _, tID := range s.truckIDs {
		s.truckStart[tID] = s.m.NewInt(0, int(s.maxStart))
		s.truckArrive[tID] = s.m.NewInt(0, int(s.maxDeadline))
		s.truckMaxStop[tID] = s.m.NewInt(0, s.input.Params.MaxStops)
		s.maxStopZero[tID] = s.m.NewBool()
		s.cost[tID] = s.m.NewInt(0, int(s.truckCostUpperBound(tID)))
	}
}

// truckCostUpperBound bounds C[t]'s domain: the most a single truck could
// ever cost, driving for the full horizon plus the maximum possible stop
// surcharge.
func (s *Solver) truckCostUpperBound(truckID string) int64 {
	tt := s.truckType[truckID]
	perSecond := int64(tt.Speed * tt.CostPerKM / 1000 * float64(s.input.Params.CostScaleFactor))
	driving := s.maxDeadline * perSecond
	stops := s.input.Params.StopCost * s.input.Params.CostScaleFactor * int64(s.input.Params.MaxStops-1)
	return driving + stops
}

// trucksOfType returns the ids of every truck in the pool of the given
// type, in the same sorted order as s.truckIDs.
func (s *Solver) trucksOfType(typeID int) []string {
	var out []string
	for _, tID := range s.truckIDs {
		if s.truckType[tID].ID == typeID {
			out = append(out, tID)
		}
	}
	return out
}

func (s *Solver) package_(id model.PackageID) model.Package {
	return s.input.Packages[id]
}

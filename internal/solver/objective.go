package solver

// addCostObjective builds each truck's cost variable and sets the
// objective to minimize their sum (the Cost objective; no other objective
// is supported, and the Solver has no option for selecting one).
//
// Expanding the source formulation's
//
//	C[t] = (T_arrive[t]-T_start[t]-(ms-1)*stop_time) * perSecond + (ms-1)*stop_cost*scale
//
// (where perSecond and stop_cost*scale are build-time constants, not
// variables) keeps every term linear in T_arrive, T_start and T_maxstop,
// so no bilinear (variable times variable) term is ever needed.
func (s *Solver) addCostObjective() {
	for _, tID := range s.truckIDs {
		tt := s.truckType[tID]
		perSecond := float64(int64(tt.Speed * tt.CostPerKM / 1000 * float64(s.input.Params.CostScaleFactor)))
		stopCostScaled := float64(s.input.Params.StopCost * s.input.Params.CostScaleFactor)
		stopTime := float64(s.input.Params.StopTime)

		maxStopCoeff := stopCostScaled - perSecond*stopTime
		rhsConstant := perSecond*stopTime - stopCostScaled

		// maxStopZero[t] <=> T_maxstop[t] == 0
		enforceEQIf(s.m,
			[]term{intTerm(1, s.truckMaxStop[tID])}, 0,
			ifAll(condition{v: s.maxStopZero[tID], want: true}), s.bigM)
		enforceGEIf(s.m,
			[]term{intTerm(1, s.truckMaxStop[tID])}, 1,
			ifAll(condition{v: s.maxStopZero[tID], want: false}), s.bigM)

		// maxStopZero[t] ⇒ C[t] == 0
		enforceEQIf(s.m,
			[]term{intTerm(1, s.cost[tID])}, 0,
			ifAll(condition{v: s.maxStopZero[tID], want: true}), s.bigM)

		// !maxStopZero[t] ⇒ C[t] == perSecond*Arrive - perSecond*Start - maxStopCoeff*MaxStop + rhsConstant
		enforceEQIf(s.m,
			[]term{
				intTerm(1, s.cost[tID]),
				intTerm(-perSecond, s.truckArrive[tID]),
				intTerm(perSecond, s.truckStart[tID]),
				intTerm(-maxStopCoeff, s.truckMaxStop[tID]),
			},
			rhsConstant,
			ifAll(condition{v: s.maxStopZero[tID], want: false}), s.bigM)
	}

	s.m.Objective().SetMinimize()
	for _, tID := range s.truckIDs {
		s.m.Objective().NewTerm(1, s.cost[tID])
	}
}

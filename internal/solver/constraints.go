package solver

import (
	"log/slog"

	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

// rank gives each truck a stable 1-based index, used by the pair-linkage
// constraint's rank-weighted equality encoding (C3).
func (s *Solver) rank(truckID string) float64 {
	for i, id := range s.truckIDs {
		if id == truckID {
			return float64(i + 1)
		}
	}
	return 0
}

// addAssignmentConstraint is C1: every package is assigned to exactly one
// truck.
func (s *Solver) addAssignmentConstraint() {
	for _, pID := range s.packageIDs {
		c := s.m.NewConstraint(mip.Equal, 1)
		for _, tID := range s.truckIDs {
			c.NewTerm(1, s.x[xKey{TruckID: tID, Package: pID}])
		}
	}
}

// addSameTruckLinkageConstraint is C2 (cross-source exclusivity) and C3
// (pair linkage via rank-weighted equality): same[p1,p2] is true iff some
// truck carries both, tested by comparing the rank-weighted sum of each
// package's assignment vector. same==true forces that sum's difference to
// zero; same==false forces it away from zero (via sameRankDir, a fresh
// auxiliary indicator — reusing same[pair] itself here would make
// same==true self-contradictory, since the same==false branch would still
// apply unconditionally).
func (s *Solver) addSameTruckLinkageConstraint() {
	for pair := range s.same {
		p1, p2 := s.package_(pair.A), s.package_(pair.B)

		if p1.Source != p2.Source {
			for _, tID := range s.truckIDs {
				c := s.m.NewConstraint(mip.LessThanOrEqual, 1)
				c.NewTerm(1, s.x[xKey{TruckID: tID, Package: pair.A}])
				c.NewTerm(1, s.x[xKey{TruckID: tID, Package: pair.B}])
			}

			forced := s.m.NewConstraint(mip.Equal, 0)
			forced.NewTerm(1, s.same[pair])
			continue
		}

		lhs := func(pID model.PackageID, sign float64) []term {
			var terms []term
			for _, tID := range s.truckIDs {
				terms = append(terms, boolTerm(sign*s.rank(tID), s.x[xKey{TruckID: tID, Package: pID}]))
			}
			return terms
		}

		var diffTerms []term
		diffTerms = append(diffTerms, lhs(pair.A, 1)...)
		diffTerms = append(diffTerms, lhs(pair.B, -1)...)

		enforceEQIf(s.m, diffTerms, 0, ifAll(condition{v: s.same[pair], want: true}), s.bigM)
		enforceNEIf(s.m, diffTerms, 0,
			ifAll(condition{v: s.same[pair], want: false}),
			s.sameRankDir[pair], s.bigM)
	}
}

// addTimeWindowConstraint is C4: if two packages' available times differ
// by more than the configured threshold, they cannot share a truck. This
// is known at build time from static package data, so it is added as a
// direct equality rather than a guarded row.
func (s *Solver) addTimeWindowConstraint() {
	maxGap := s.input.Params.MaxTimeDifferenceBetweenPackage

	for pair := range s.same {
		p1, p2 := s.package_(pair.A), s.package_(pair.B)
		if abs64(p1.AvailableTime-p2.AvailableTime) > maxGap {
			c := s.m.NewConstraint(mip.Equal, 0)
			c.NewTerm(1, s.same[pair])
		}
	}
}

// addFixedSourceConstraint logs (rather than panics on) a violation of the
// partitioner's guarantee that every package in a sub-input shares one
// source. Genuine cross-source exclusivity is still enforced for every
// solve by addSameTruckLinkageConstraint's C2 half, so this is a sanity
// check, not a modeling requirement.
func (s *Solver) addFixedSourceConstraint(logger *slog.Logger) {
	sources := map[string]bool{}
	for _, p := range s.input.Packages {
		sources[p.Source] = true
	}
	if len(sources) > 1 {
		logger.Warn("sub-input spans multiple sources; relying on per-pair exclusivity", "sources", len(sources))
	}
}

// addPackageStartConstraint is C5: a package's start time is at least its
// own available time, and at least its truck-mate's available time when
// they share a truck (so a shared truck's start is effectively the max
// over its packages).
func (s *Solver) addPackageStartConstraint() {
	for _, pID := range s.packageIDs {
		p := s.package_(pID)
		c := s.m.NewConstraint(mip.GreaterThanOrEqual, float64(p.AvailableTime))
		c.NewTerm(1, s.start[pID])
	}

	for pair := range s.same {
		p1, p2 := s.package_(pair.A), s.package_(pair.B)

		enforceGEIf(s.m,
			[]term{intTerm(1, s.start[pair.A])},
			float64(p2.AvailableTime),
			ifAll(condition{v: s.same[pair], want: true}),
			s.bigM)

		enforceGEIf(s.m,
			[]term{intTerm(1, s.start[pair.B])},
			float64(p1.AvailableTime),
			ifAll(condition{v: s.same[pair], want: true}),
			s.bigM)
	}
}

// addTruckTypeConstraint is C6 (each package's truck-type indicator tt[p,k]
// reflects exactly which type carries it, and exactly one type does) and
// C9 (packages sharing a truck share a truck type).
func (s *Solver) addTruckTypeConstraint() {
	for _, pID := range s.packageIDs {
		for _, tt := range s.input.TruckTypes {
			key := ttKey{Package: pID, TypeID: tt.ID}
			var terms []term
			for _, tID := range s.trucksOfType(tt.ID) {
				terms = append(terms, boolTerm(1, s.x[xKey{TruckID: tID, Package: pID}]))
			}

			enforceEQIf(s.m, terms, 1, ifAll(condition{v: s.tt[key], want: true}), s.bigM)
			enforceEQIf(s.m, terms, 0, ifAll(condition{v: s.tt[key], want: false}), s.bigM)
		}

		c := s.m.NewConstraint(mip.Equal, 1)
		for _, tt := range s.input.TruckTypes {
			c.NewTerm(1, s.tt[ttKey{Package: pID, TypeID: tt.ID}])
		}
	}

	for pair := range s.same {
		for _, tt := range s.input.TruckTypes {
			k1 := s.tt[ttKey{Package: pair.A, TypeID: tt.ID}]
			k2 := s.tt[ttKey{Package: pair.B, TypeID: tt.ID}]

			enforceEQIf(s.m,
				[]term{boolTerm(1, k1), boolTerm(-1, k2)},
				0,
				ifAll(condition{v: s.same[pair], want: true}),
				s.bigM)
		}
	}
}

// addTravelTimeConstraint is C7: a package's arrival time is at least its
// start time plus the travel time implied by whichever truck type carries
// it. Travel time per type is a build-time constant, so tt[p,k]'s
// coefficient in this row is linear, not bilinear.
func (s *Solver) addTravelTimeConstraint() {
	for _, pID := range s.packageIDs {
		p := s.package_(pID)

		c := s.m.NewConstraint(mip.GreaterThanOrEqual, 0)
		c.NewTerm(1, s.arrive[pID])
		c.NewTerm(-1, s.start[pID])

		for _, tt := range s.input.TruckTypes {
			travel := int64(float64(s.input.Distances.Distance(p.Source, p.Destination)) / tt.Speed)
			c.NewTerm(-float64(travel), s.tt[ttKey{Package: pID, TypeID: tt.ID}])
		}
	}
}

// addSameTruckContinuityConstraint is C8: packages sharing a truck and
// destination share a stop index and arrival time; packages sharing a
// truck but not a destination take distinct stop indices, ordered by
// before[p1,p2], with the later stop's arrival at least the earlier
// stop's arrival plus the configured stop dwell time and inter-stop
// travel.
func (s *Solver) addSameTruckContinuityConstraint() {
	for pair := range s.same {
		p1, p2 := s.package_(pair.A), s.package_(pair.B)

		if p1.Destination == p2.Destination {
			enforceEQIf(s.m,
				[]term{intTerm(1, s.arrive[pair.A]), intTerm(-1, s.arrive[pair.B])},
				0, ifAll(condition{v: s.same[pair], want: true}), s.bigM)

			enforceEQIf(s.m,
				[]term{intTerm(1, s.stop[pair.A]), intTerm(-1, s.stop[pair.B])},
				0, ifAll(condition{v: s.same[pair], want: true}), s.bigM)
			continue
		}

		before := s.before[pair]

		enforceNEIf(s.m,
			[]term{intTerm(1, s.stop[pair.B]), intTerm(-1, s.stop[pair.A])},
			0, ifAll(condition{v: s.same[pair], want: true}), before, s.bigM)

		// before == true ⇒ stop[A] < stop[B]
		enforceLEIf(s.m,
			[]term{intTerm(1, s.stop[pair.A]), intTerm(-1, s.stop[pair.B])},
			-1, ifAll(condition{v: before, want: true}), s.bigM)
		// before == false ⇒ stop[A] >= stop[B]
		enforceGEIf(s.m,
			[]term{intTerm(1, s.stop[pair.A]), intTerm(-1, s.stop[pair.B])},
			0, ifAll(condition{v: before, want: false}), s.bigM)

		// same && before ⇒ arrive[B] >= arrive[A] + stop_time + travel(A.dest -> B.dest)
		enforceGEIf(s.m,
			s.laterArrivalTerms(pair.B, pair.A, p1.Destination, p2.Destination),
			float64(s.input.Params.StopTime),
			ifAll(condition{v: s.same[pair], want: true}, condition{v: before, want: true}),
			s.bigM)

		// same && !before ⇒ arrive[A] >= arrive[B] + stop_time + travel(B.dest -> A.dest)
		enforceGEIf(s.m,
			s.laterArrivalTerms(pair.A, pair.B, p2.Destination, p1.Destination),
			float64(s.input.Params.StopTime),
			ifAll(condition{v: s.same[pair], want: true}, condition{v: before, want: false}),
			s.bigM)
	}
}

// laterArrivalTerms builds the terms for
// arrive[later] - arrive[earlier] - sum_k tt[later,k]*travel(fromDest, toDest) >= stop_time.
func (s *Solver) laterArrivalTerms(later, earlier model.PackageID, fromDest, toDest string) []term {
	terms := []term{
		intTerm(1, s.arrive[later]),
		intTerm(-1, s.arrive[earlier]),
	}
	for _, tt := range s.input.TruckTypes {
		travel := int64(float64(s.input.Distances.Distance(fromDest, toDest)) / tt.Speed)
		terms = append(terms, boolTerm(-float64(travel), s.tt[ttKey{Package: later, TypeID: tt.ID}]))
	}
	return terms
}

// addDeadlineConstraint is C10: every package's arrival time is at most
// its deadline.
func (s *Solver) addDeadlineConstraint() {
	for _, pID := range s.packageIDs {
		p := s.package_(pID)
		c := s.m.NewConstraint(mip.LessThanOrEqual, float64(p.Deadline))
		c.NewTerm(1, s.arrive[pID])
	}
}

// addCapacityConstraints is C11: a truck's packages cannot exceed its
// type's area or weight capacity.
func (s *Solver) addCapacityConstraints() {
	for _, tID := range s.truckIDs {
		tt := s.truckType[tID]

		area := s.m.NewConstraint(mip.LessThanOrEqual, float64(tt.AreaCapacity))
		weight := s.m.NewConstraint(mip.LessThanOrEqual, float64(tt.WeightCapacity))

		for _, pID := range s.packageIDs {
			p := s.package_(pID)
			area.NewTerm(float64(p.Area), s.x[xKey{TruckID: tID, Package: pID}])
			weight.NewTerm(float64(p.Weight), s.x[xKey{TruckID: tID, Package: pID}])
		}
	}
}

// addDangerTypeConstraint is C12: two packages carrying distinct,
// non-"non_danger" tags can never share a truck.
func (s *Solver) addDangerTypeConstraint() {
	for pair := range s.same {
		p1, p2 := s.package_(pair.A), s.package_(pair.B)

		if p1.DangerType == model.NonDanger || p2.DangerType == model.NonDanger {
			continue
		}
		if p1.DangerType != p2.DangerType {
			c := s.m.NewConstraint(mip.Equal, 0)
			c.NewTerm(1, s.same[pair])
		}
	}
}

// addTruckAggregateConstraints is C13: a truck's arrival/start/max-stop
// aggregates dominate every package it carries. Per the source system's
// encoding (and the flagged Open Question), T_start is pushed to the
// maximum of its packages' start times, not the minimum — this is carried
// forward unchanged; see DESIGN.md.
func (s *Solver) addTruckAggregateConstraints() {
	for _, tID := range s.truckIDs {
		for _, pID := range s.packageIDs {
			xVar := s.x[xKey{TruckID: tID, Package: pID}]

			enforceGEIf(s.m,
				[]term{intTerm(1, s.truckArrive[tID]), intTerm(-1, s.arrive[pID])},
				0, ifAll(condition{v: xVar, want: true}), s.bigM)

			enforceGEIf(s.m,
				[]term{intTerm(1, s.truckStart[tID]), intTerm(-1, s.start[pID])},
				0, ifAll(condition{v: xVar, want: true}), s.bigM)

			enforceGEIf(s.m,
				[]term{intTerm(1, s.truckMaxStop[tID]), intTerm(-1, s.stop[pID])},
				0, ifAll(condition{v: xVar, want: true}), s.bigM)
		}
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

package solver

import "github.com/nextmv-io/sdk/mip"

// term is a single (coefficient, variable) pair. mip's Constraint.NewTerm
// is generic over its Bool/Int/Float variable kinds, so a term closes over
// the call that adds itself to a given constraint rather than storing a
// concrete variable type.
type term func(c mip.Constraint)

func boolTerm(coeff float64, v mip.Bool) term {
	return func(c mip.Constraint) { c.NewTerm(coeff, v) }
}

func intTerm(coeff float64, v mip.Int) term {
	return func(c mip.Constraint) { c.NewTerm(coeff, v) }
}

func addTerms(c mip.Constraint, terms []term) {
	for _, t := range terms {
		t(c)
	}
}

// bigM returns the model's shared "large enough" constant used to linearize
// indicator ("OnlyEnforceIf") constraints from the source CP-SAT model. mip
// models a linear program and has no native reified constraints, so every
// conditional constraint in the original formulation (C3, C5, C6, C8, C9,
// C13 and the per-truck cost cases) is re-expressed here as a big-M
// inequality: a row that is vacuously true whenever its guarding
// indicator(s) don't hold, and exactly the intended row when they do. C4
// and C12 depend only on static package data and are added as direct
// same[p1,p2] == 0 rows instead. See DESIGN.md for why this encoding was
// necessary.
//
// The bound must dominate the largest plausible value any guarded row's
// left-hand side can take; maxDeadline bounds every time-valued variable,
// capacity bounds every area/weight sum.
func bigM(maxDeadline int64, capacity int64) float64 {
	m := float64(maxDeadline)
	if float64(capacity) > m {
		m = float64(capacity)
	}
	return m + 1
}

// condition is one indicator guarding a big-M row: the row only needs to
// hold when v's value equals want.
type condition struct {
	v    mip.Bool
	want bool
}

// ifAll guards the following enforce* call on the conjunction of conds
// all holding as stated.
func ifAll(conds ...condition) []condition { return conds }

// enforceLEIf adds the big-M relaxation of:
//
//	(conds all hold) ⇒ sum(terms) <= rhs
func enforceLEIf(m mip.Model, terms []term, rhs float64, conds []condition, bigM float64) {
	adjustedRHS := rhs
	for _, c := range conds {
		if c.want {
			adjustedRHS += bigM
		}
	}

	row := m.NewConstraint(mip.LessThanOrEqual, adjustedRHS)
	addTerms(row, terms)
	for _, c := range conds {
		if c.want {
			row.NewTerm(bigM, c.v)
		} else {
			row.NewTerm(-bigM, c.v)
		}
	}
}

// enforceGEIf adds the big-M relaxation of:
//
//	(conds all hold) ⇒ sum(terms) >= rhs
func enforceGEIf(m mip.Model, terms []term, rhs float64, conds []condition, bigM float64) {
	adjustedRHS := rhs
	for _, c := range conds {
		if c.want {
			adjustedRHS -= bigM
		}
	}

	row := m.NewConstraint(mip.GreaterThanOrEqual, adjustedRHS)
	addTerms(row, terms)
	for _, c := range conds {
		if c.want {
			row.NewTerm(-bigM, c.v)
		} else {
			row.NewTerm(bigM, c.v)
		}
	}
}

// enforceEQIf adds both halves of (conds all hold) ⇒ sum(terms) == rhs.
func enforceEQIf(m mip.Model, terms []term, rhs float64, conds []condition, bigM float64) {
	enforceLEIf(m, terms, rhs, conds, bigM)
	enforceGEIf(m, terms, rhs, conds, bigM)
}

// enforceNEIf adds the big-M disjunction for:
//
//	(conds all hold) ⇒ sum(terms) != rhs
//
// dir is a fresh auxiliary indicator (often a model variable with other
// meaning, like before[p1,p2]) distinguishing the "sum >= rhs+1" branch
// from the "sum <= rhs-1" branch.
func enforceNEIf(m mip.Model, terms []term, rhs float64, conds []condition, dir mip.Bool, bigM float64) {
	geConds := append(append([]condition{}, conds...), condition{v: dir, want: true})
	enforceGEIf(m, terms, rhs+1, geConds, bigM)

	leConds := append(append([]condition{}, conds...), condition{v: dir, want: false})
	enforceLEIf(m, terms, rhs-1, leConds, bigM)
}

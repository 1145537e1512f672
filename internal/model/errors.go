package model

import "errors"

// Sentinel errors forming the error taxonomy from the error-handling design:
// input-schema errors, feasibility errors, model-construction errors and
// the unimplemented merger optimize path.
var (
	// ErrInputSchema wraps any error surfaced while loading orders,
	// distances or the truck-type catalog: a missing column, an
	// unparseable timestamp, a negative capacity.
	ErrInputSchema = errors.New("input schema error")

	// ErrInfeasible is returned when the constraint solver proves a
	// sub-problem has no feasible assignment.
	ErrInfeasible = errors.New("model is infeasible")

	// ErrModelInvalid is returned when the constraint model itself fails
	// validation before search begins (e.g. an empty truck pool).
	ErrModelInvalid = errors.New("model is invalid")

	// ErrUnknown is returned when the solver's wall-clock limit is
	// reached without ever finding a feasible solution.
	ErrUnknown = errors.New("solver status unknown")

	// ErrUnknownObjective names the error for a requested objective other
	// than "Cost". No stage accepts an objective choice, so nothing in this
	// module returns it.
	ErrUnknownObjective = errors.New("unknown objective")

	// ErrOptimizeNotImplemented is returned by the merger's reserved
	// `optimize` extension point, which the source system declares but
	// never implements.
	ErrOptimizeNotImplemented = errors.New("merger optimize mode is not implemented")
)

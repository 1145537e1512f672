// Package merger combines the reducer's greedy commits with every
// sub-problem solve back into a single schedule.
package merger

import (
	"fmt"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

// Objective selects how partial results are combined. Only Union is
// implemented; Optimize is a reserved extension point the source system
// declares but never ships.
type Objective int

const (
	Union Objective = iota
	Optimize
)

// Merge unions the reducer's partial result with every sub-problem result
// into one schedule. The partitioner guarantees the package sets are
// disjoint, so Merge never has to arbitrate a conflicting assignment.
func Merge(objective Objective, reduced *model.Result, subResults []*model.Result) (*model.Result, error) {
	if objective == Optimize {
		return nil, fmt.Errorf("%w: re-optimizing across sub-problem boundaries", model.ErrOptimizeNotImplemented)
	}

	merged := model.NewResult()
	if reduced != nil {
		merged.Merge(reduced)
	}
	for _, r := range subResults {
		if r == nil {
			continue
		}
		merged.Merge(r)
	}

	return merged, nil
}

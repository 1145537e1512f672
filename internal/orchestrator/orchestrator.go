// Package orchestrator solves every sub-input the partitioner produced,
// bounded to a fixed worker pool, and reports one outcome per sub-input.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/nextmv-examples/truckfleet/internal/model"
	"github.com/nextmv-examples/truckfleet/internal/solver"
)

// SubResult pairs a sub-input's solve outcome with its index, so callers
// can report failures against the partition that produced them.
type SubResult struct {
	Index     int
	Outcome   solver.Outcome
	Err       error
}

// Run solves every sub-input concurrently, bounded to workers goroutines
// (runtime.NumCPU() when workers <= 0), and returns one SubResult per
// sub-input in partition order. A single sub-input's error does not cancel
// the others: the caller decides what to do with a partial failure.
func Run(ctx context.Context, logger *slog.Logger, subInputs []model.Input, maxSolveSeconds int, workers int) ([]SubResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]SubResult, len(subInputs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, sub := range subInputs {
		i, sub := i, sub
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}

			s := solver.New(logger.With("sub_problem", i, "packages", len(sub.Packages)), sub)
			if err := s.Build(); err != nil {
				results[i] = SubResult{Index: i, Err: fmt.Errorf("sub-problem %d: %w", i, err)}
				return nil
			}

			outcome, err := s.Solve(maxSolveSeconds)
			results[i] = SubResult{Index: i, Outcome: outcome, Err: err}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}

	return results, nil
}

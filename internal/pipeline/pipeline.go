// Package pipeline wires the four stages (reduce, partition, solve, merge)
// into callable steps shared by the per-stage binaries and the combined
// cmd/pipeline CLI, so the staged and single-shot entry points never
// duplicate stage logic.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nextmv-examples/truckfleet/internal/config"
	"github.com/nextmv-examples/truckfleet/internal/ingest"
	"github.com/nextmv-examples/truckfleet/internal/merger"
	"github.com/nextmv-examples/truckfleet/internal/model"
	"github.com/nextmv-examples/truckfleet/internal/orchestrator"
	"github.com/nextmv-examples/truckfleet/internal/partitioner"
	"github.com/nextmv-examples/truckfleet/internal/reducer"
)

// LoadInput reads the order and distance CSVs and assembles a model.Input
// with a freshly sized truck pool, ready for the reducer.
func LoadInput(ordersPath, distancePath string, params config.Parameters) (model.Input, error) {
	packages, err := ingest.LoadOrders(ordersPath, params.ScaleFactor)
	if err != nil {
		return model.Input{}, fmt.Errorf("loading orders: %w", err)
	}

	distances, err := ingest.LoadDistances(distancePath)
	if err != nil {
		return model.Input{}, fmt.Errorf("loading distances: %w", err)
	}

	truckTypes := model.Catalog(params.ScaleFactor)

	return model.Input{
		Packages:   packages,
		TruckTypes: truckTypes,
		Trucks:     model.BuildTruckPool(packages, truckTypes),
		Distances:  distances,
		Params:     params,
	}, nil
}

// Reduce runs the greedy pre-solver, returning the leftover input for the
// partitioner plus the schedule it already committed.
func Reduce(logger *slog.Logger, in model.Input, h reducer.Heuristic) (model.Input, *model.Result) {
	return reducer.Reduce(logger, in, h)
}

// Partition splits a reduced input into sub-inputs no larger than
// params.MaxPackageNum.
func Partition(in model.Input) []model.Input {
	return partitioner.Partition(in, in.Params.MaxPackageNum)
}

// Solve runs every sub-input through its own constraint model, bounded to
// params.Workers concurrent solves, each capped at params.MaxSolveSeconds.
// A sub-input that comes back INFEASIBLE or MODEL_INVALID does not abort
// the others; its error is returned alongside whatever results did
// complete.
func Solve(ctx context.Context, logger *slog.Logger, subInputs []model.Input, params config.Parameters) ([]*model.Result, error) {
	outcomes, err := orchestrator.Run(ctx, logger, subInputs, params.MaxSolveSeconds, params.Workers)
	if err != nil {
		return nil, err
	}

	results := make([]*model.Result, 0, len(outcomes))
	var firstErr error
	for _, o := range outcomes {
		if o.Err != nil {
			logger.Error("sub-problem solve failed", "index", o.Index, "error", o.Err)
			if firstErr == nil {
				firstErr = o.Err
			}
			continue
		}
		results = append(results, o.Outcome.Result)
	}

	return results, firstErr
}

// Merge unions the reducer's partial schedule with every sub-problem
// result into the final schedule.
func Merge(reduced *model.Result, subResults []*model.Result) (*model.Result, error) {
	return merger.Merge(merger.Union, reduced, subResults)
}

// RunAll executes all four stages back to back against a freshly loaded
// input and returns the final merged schedule.
func RunAll(ctx context.Context, logger *slog.Logger, ordersPath, distancePath string, params config.Parameters, h reducer.Heuristic) (*model.Result, error) {
	in, err := LoadInput(ordersPath, distancePath, params)
	if err != nil {
		return nil, err
	}

	remaining, partial := Reduce(logger, in, h)

	subInputs := Partition(remaining)
	logger.Info("partitioned", "sub_problems", len(subInputs), "remaining_packages", len(remaining.Packages))

	subResults, err := Solve(ctx, logger, subInputs, params)
	if err != nil {
		return nil, fmt.Errorf("solving sub-problems: %w", err)
	}

	return Merge(partial, subResults)
}

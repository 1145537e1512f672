// Command solve builds and solves one sub-problem's constraint model
// against a shared distance matrix and writes its schedule CSV.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/nextmv-io/sdk/run"

	"github.com/nextmv-examples/truckfleet/internal/config"
	"github.com/nextmv-examples/truckfleet/internal/ingest"
	"github.com/nextmv-examples/truckfleet/internal/model"
	"github.com/nextmv-examples/truckfleet/internal/solver"
)

func main() {
	err := run.CLI(solve).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

// Option configures the solve stage.
type Option struct {
	OrdersPath      string `json:"orders_path" default:"sub_problem.csv"`
	DistancePath    string `json:"distance_path" default:"distances.csv"`
	SchedulePath    string `json:"schedule_path" default:"schedule_sub.csv"`
	MaxSolveSeconds int    `json:"max_solve_seconds" default:"120"`
	ScaleFactor     int64  `json:"scale_factor" default:"10000"`
}

// Output reports how the solve terminated.
type Output struct {
	Status            string `json:"status"`
	RunTime           string `json:"runtime"`
	AssignedPackages  int    `json:"assigned_packages"`
	InfeasiblePackage string `json:"infeasible_package,omitempty"`
}

func solve(_ struct{}, opts Option) (Output, error) {
	logger := slog.Default()

	params := config.Default()
	params.ScaleFactor = opts.ScaleFactor

	packages, err := ingest.LoadOrders(opts.OrdersPath, opts.ScaleFactor)
	if err != nil {
		return Output{}, err
	}
	distances, err := ingest.LoadDistances(opts.DistancePath)
	if err != nil {
		return Output{}, err
	}
	truckTypes := model.Catalog(opts.ScaleFactor)

	in := model.Input{
		Packages:   packages,
		TruckTypes: truckTypes,
		Trucks:     model.BuildTruckPool(packages, truckTypes),
		Distances:  distances,
		Params:     params,
	}

	s := solver.New(logger, in)
	if err := s.Build(); err != nil {
		return Output{}, err
	}

	outcome, err := s.Solve(opts.MaxSolveSeconds)
	if err != nil {
		out := Output{Status: outcome.Status.String()}
		if outcome.Diagnosis != nil {
			out.InfeasiblePackage = outcome.Diagnosis.Package.String()
		}
		return out, err
	}

	if err := ingest.WriteSchedule(opts.SchedulePath, outcome.Result); err != nil {
		return Output{}, err
	}

	return Output{
		Status:           outcome.Status.String(),
		RunTime:          outcome.RunTime.String(),
		AssignedPackages: len(outcome.Result.PackageTruck),
	}, nil
}

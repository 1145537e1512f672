// Command reduce runs the greedy pre-solver stage standalone: it loads an
// order and distance CSV pair, commits whatever truckloads the selected
// heuristic considers saturated, and writes both the leftover orders and
// the partial schedule to disk.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/nextmv-io/sdk/run"

	"github.com/nextmv-examples/truckfleet/internal/config"
	"github.com/nextmv-examples/truckfleet/internal/ingest"
	"github.com/nextmv-examples/truckfleet/internal/pipeline"
	"github.com/nextmv-examples/truckfleet/internal/reducer"
)

func main() {
	err := run.CLI(reduce).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

// Option configures the reduce stage.
type Option struct {
	OrdersPath      string `json:"orders_path" default:"orders.csv"`
	DistancePath    string `json:"distance_path" default:"distances.csv"`
	RemainderPath   string `json:"remainder_path" default:"orders_remaining.csv"`
	PartialSchedule string `json:"partial_schedule_path" default:"schedule_reduced.csv"`
	Heuristic       string `json:"heuristic" default:"per_order"`
	ScaleFactor     int64  `json:"scale_factor" default:"10000"`
}

// Output summarizes what the reduce stage committed.
type Output struct {
	CommittedTrucks   int `json:"committed_trucks"`
	CommittedPackages int `json:"committed_packages"`
	RemainingPackages int `json:"remaining_packages"`
}

func reduce(_ struct{}, opts Option) (Output, error) {
	logger := slog.Default()

	params := config.Default()
	params.ScaleFactor = opts.ScaleFactor

	in, err := pipeline.LoadInput(opts.OrdersPath, opts.DistancePath, params)
	if err != nil {
		return Output{}, err
	}

	h := reducer.PerOrder
	if opts.Heuristic == "per_destination" {
		h = reducer.PerDestination
	}

	remaining, partial := pipeline.Reduce(logger, in, h)

	if err := ingest.WriteOrders(opts.RemainderPath, remaining.Packages, opts.ScaleFactor); err != nil {
		return Output{}, err
	}
	if err := ingest.WriteSchedule(opts.PartialSchedule, partial); err != nil {
		return Output{}, err
	}

	return Output{
		CommittedTrucks:   len(partial.Trucks),
		CommittedPackages: len(partial.PackageTruck),
		RemainingPackages: len(remaining.Packages),
	}, nil
}

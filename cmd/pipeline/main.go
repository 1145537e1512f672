// Command pipeline is a single binary exposing each stage as a
// sub-command, plus a combined "run" that executes the whole pipeline
// in-process without writing intermediate sub-problem files to disk.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nextmv-examples/truckfleet/internal/config"
	"github.com/nextmv-examples/truckfleet/internal/ingest"
	"github.com/nextmv-examples/truckfleet/internal/model"
	"github.com/nextmv-examples/truckfleet/internal/pipeline"
	"github.com/nextmv-examples/truckfleet/internal/reducer"
	"github.com/nextmv-examples/truckfleet/internal/solver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pipeline",
		Short: "Truck fleet scheduling pipeline: reduce, partition, solve, merge",
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newReduceCmd())
	root.AddCommand(newPartitionCmd())
	root.AddCommand(newSolveCmd())
	root.AddCommand(newMergeCmd())
	return root
}

func newReduceCmd() *cobra.Command {
	var (
		ordersPath    string
		distancePath  string
		remainderPath string
		partialPath   string
		heuristic     string
		scaleFactor   int64
	)

	cmd := &cobra.Command{
		Use:   "reduce",
		Short: "Commit obviously-saturated truckloads before partitioning",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			params := config.Default()
			params.ScaleFactor = scaleFactor

			in, err := pipeline.LoadInput(ordersPath, distancePath, params)
			if err != nil {
				return err
			}

			h := reducer.PerOrder
			if heuristic == "per_destination" {
				h = reducer.PerDestination
			}

			remaining, partial := pipeline.Reduce(logger, in, h)

			if err := ingest.WriteOrders(remainderPath, remaining.Packages, scaleFactor); err != nil {
				return err
			}
			if err := ingest.WriteSchedule(partialPath, partial); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "committed %d packages across %d trucks, %d remain\n",
				len(partial.PackageTruck), len(partial.Trucks), len(remaining.Packages))
			return nil
		},
	}

	cmd.Flags().StringVar(&ordersPath, "orders", "orders.csv", "order CSV path")
	cmd.Flags().StringVar(&distancePath, "distances", "distances.csv", "distance matrix CSV path")
	cmd.Flags().StringVar(&remainderPath, "remainder", "orders_remaining.csv", "leftover orders CSV output path")
	cmd.Flags().StringVar(&partialPath, "partial-schedule", "schedule_reduced.csv", "committed schedule CSV output path")
	cmd.Flags().StringVar(&heuristic, "heuristic", "per_order", "reducer heuristic: per_order or per_destination")
	cmd.Flags().Int64Var(&scaleFactor, "scale-factor", config.Default().ScaleFactor, "fixed-point scale applied to area/weight")

	return cmd
}

func newRunCmd() *cobra.Command {
	var (
		ordersPath      string
		distancePath    string
		outputPath      string
		heuristic       string
		maxPackageNum   int
		maxSolveSeconds int
		workers         int
		scaleFactor     int64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run reduce, partition, solve and merge back to back",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			params := config.Default()
			params.ScaleFactor = scaleFactor
			params.MaxPackageNum = maxPackageNum
			params.MaxSolveSeconds = maxSolveSeconds
			params.Workers = workers

			h := reducer.PerOrder
			if heuristic == "per_destination" {
				h = reducer.PerDestination
			}

			result, err := pipeline.RunAll(cmd.Context(), logger, ordersPath, distancePath, params, h)
			if err != nil {
				return fmt.Errorf("running pipeline: %w", err)
			}

			if err := ingest.WriteSchedule(outputPath, result); err != nil {
				return fmt.Errorf("writing schedule: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d scheduled legs to %s\n", len(result.PackageTruck), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&ordersPath, "orders", "orders.csv", "order CSV path")
	cmd.Flags().StringVar(&distancePath, "distances", "distances.csv", "distance matrix CSV path")
	cmd.Flags().StringVar(&outputPath, "output", "schedule.csv", "schedule CSV output path")
	cmd.Flags().StringVar(&heuristic, "heuristic", "per_order", "reducer heuristic: per_order or per_destination")
	cmd.Flags().IntVar(&maxPackageNum, "max-package-num", config.Default().MaxPackageNum, "partitioner package cap per sub-problem")
	cmd.Flags().IntVar(&maxSolveSeconds, "max-solve-seconds", config.Default().MaxSolveSeconds, "per sub-problem solve time limit")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent solves (0 = runtime.NumCPU())")
	cmd.Flags().Int64Var(&scaleFactor, "scale-factor", config.Default().ScaleFactor, "fixed-point scale applied to area/weight")

	return cmd
}

func newPartitionCmd() *cobra.Command {
	var (
		ordersPath    string
		distancePath  string
		outputDir     string
		maxPackageNum int
		scaleFactor   int64
	)

	cmd := &cobra.Command{
		Use:   "partition",
		Short: "Split a (typically already-reduced) order/distance pair into independent sub-problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := config.Default()
			params.ScaleFactor = scaleFactor
			params.MaxPackageNum = maxPackageNum

			in, err := pipeline.LoadInput(ordersPath, distancePath, params)
			if err != nil {
				return err
			}

			subs := pipeline.Partition(in)

			for i, sub := range subs {
				path := filepath.Join(outputDir, fmt.Sprintf("sub_problem_%03d.csv", i))
				if err := ingest.WriteOrders(path, sub.Packages, scaleFactor); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d packages)\n", path, len(sub.Packages))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&ordersPath, "orders", "orders_remaining.csv", "order CSV path")
	cmd.Flags().StringVar(&distancePath, "distances", "distances.csv", "distance matrix CSV path")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory to write sub-problem CSVs into")
	cmd.Flags().IntVar(&maxPackageNum, "max-package-num", config.Default().MaxPackageNum, "partitioner package cap per sub-problem")
	cmd.Flags().Int64Var(&scaleFactor, "scale-factor", config.Default().ScaleFactor, "fixed-point scale applied to area/weight")

	return cmd
}

func newSolveCmd() *cobra.Command {
	var (
		ordersPath      string
		distancePath    string
		schedulePath    string
		maxSolveSeconds int
		scaleFactor     int64
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Build and solve one sub-problem's constraint model and write its schedule CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			params := config.Default()
			params.ScaleFactor = scaleFactor

			packages, err := ingest.LoadOrders(ordersPath, scaleFactor)
			if err != nil {
				return err
			}
			distances, err := ingest.LoadDistances(distancePath)
			if err != nil {
				return err
			}
			truckTypes := model.Catalog(scaleFactor)

			in := model.Input{
				Packages:   packages,
				TruckTypes: truckTypes,
				Trucks:     model.BuildTruckPool(packages, truckTypes),
				Distances:  distances,
				Params:     params,
			}

			s := solver.New(logger, in)
			if err := s.Build(); err != nil {
				return err
			}

			outcome, err := s.Solve(maxSolveSeconds)
			if err != nil {
				return fmt.Errorf("solving: %w", err)
			}

			if err := ingest.WriteSchedule(schedulePath, outcome.Result); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "status=%s runtime=%s assigned=%d\n",
				outcome.Status, outcome.RunTime, len(outcome.Result.PackageTruck))
			return nil
		},
	}

	cmd.Flags().StringVar(&ordersPath, "orders", "sub_problem.csv", "sub-problem order CSV path")
	cmd.Flags().StringVar(&distancePath, "distances", "distances.csv", "distance matrix CSV path")
	cmd.Flags().StringVar(&schedulePath, "schedule", "schedule_sub.csv", "schedule CSV output path")
	cmd.Flags().IntVar(&maxSolveSeconds, "max-solve-seconds", config.Default().MaxSolveSeconds, "solve time limit")
	cmd.Flags().Int64Var(&scaleFactor, "scale-factor", config.Default().ScaleFactor, "fixed-point scale applied to area/weight")

	return cmd
}

func newMergeCmd() *cobra.Command {
	var (
		schedulePaths []string
		outputPath    string
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Union the reducer's partial schedule with every sub-problem's solved schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rowSets [][]model.ScheduleRow
			for _, path := range schedulePaths {
				rows, err := ingest.ReadScheduleRows(path)
				if err != nil {
					return err
				}
				rowSets = append(rowSets, rows)
			}

			merged := ingest.MergeScheduleRows(rowSets...)

			if err := ingest.WriteScheduleRows(outputPath, merged); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d scheduled legs to %s\n", len(merged), outputPath)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&schedulePaths, "schedule", nil, "schedule CSV to merge (repeatable)")
	cmd.Flags().StringVar(&outputPath, "output", "schedule.csv", "merged schedule CSV output path")

	return cmd
}

// Command partition splits a (typically already-reduced) order/distance
// pair into sub-problems no larger than the configured package cap, each
// written out as its own order CSV ready for an independent solve.
package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/nextmv-io/sdk/run"

	"github.com/nextmv-examples/truckfleet/internal/config"
	"github.com/nextmv-examples/truckfleet/internal/ingest"
	"github.com/nextmv-examples/truckfleet/internal/pipeline"
)

func main() {
	err := run.CLI(partition).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

// Option configures the partition stage.
type Option struct {
	OrdersPath    string `json:"orders_path" default:"orders_remaining.csv"`
	DistancePath  string `json:"distance_path" default:"distances.csv"`
	OutputDir     string `json:"output_dir" default:"."`
	MaxPackageNum int    `json:"max_package_num" default:"30"`
	ScaleFactor   int64  `json:"scale_factor" default:"10000"`
}

// Output lists the sub-input files the stage produced.
type Output struct {
	SubProblemFiles []string `json:"sub_problem_files"`
	SubProblemSizes []int    `json:"sub_problem_sizes"`
}

func partition(_ struct{}, opts Option) (Output, error) {
	params := config.Default()
	params.ScaleFactor = opts.ScaleFactor
	params.MaxPackageNum = opts.MaxPackageNum

	in, err := pipeline.LoadInput(opts.OrdersPath, opts.DistancePath, params)
	if err != nil {
		return Output{}, err
	}

	subs := pipeline.Partition(in)

	out := Output{
		SubProblemFiles: make([]string, 0, len(subs)),
		SubProblemSizes: make([]int, 0, len(subs)),
	}

	for i, sub := range subs {
		path := filepath.Join(opts.OutputDir, fmt.Sprintf("sub_problem_%03d.csv", i))
		if err := ingest.WriteOrders(path, sub.Packages, opts.ScaleFactor); err != nil {
			return Output{}, err
		}
		out.SubProblemFiles = append(out.SubProblemFiles, path)
		out.SubProblemSizes = append(out.SubProblemSizes, len(sub.Packages))
	}

	return out, nil
}

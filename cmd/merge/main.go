// Command merge unions the reducer's partial schedule with every
// sub-problem's solved schedule into the final schedule CSV.
package main

import (
	"context"
	"log"

	"github.com/nextmv-io/sdk/run"

	"github.com/nextmv-examples/truckfleet/internal/ingest"
	"github.com/nextmv-examples/truckfleet/internal/model"
)

func main() {
	err := run.CLI(merge).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

// Option configures the merge stage.
type Option struct {
	SchedulePaths []string `json:"schedule_paths"`
	OutputPath    string   `json:"output_path" default:"schedule.csv"`
}

// Output reports the size of the merged schedule.
type Output struct {
	Rows int `json:"rows"`
}

func merge(_ struct{}, opts Option) (Output, error) {
	var rowSets [][]model.ScheduleRow
	for _, path := range opts.SchedulePaths {
		rows, err := ingest.ReadScheduleRows(path)
		if err != nil {
			return Output{}, err
		}
		rowSets = append(rowSets, rows)
	}

	merged := ingest.MergeScheduleRows(rowSets...)

	if err := ingest.WriteScheduleRows(opts.OutputPath, merged); err != nil {
		return Output{}, err
	}

	return Output{Rows: len(merged)}, nil
}

// Command inspect loads a delivery dataset, runs the full cleaning and
// derivation pass, and prints the diagnostics, KPIs and per-field summaries.
// Useful for checking a file before pointing the server at it.
//
// Usage: inspect [path]
// The path argument overrides the DATA_FILE environment variable.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"lastmile/domain/delivery"
	"lastmile/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	path := os.Getenv("DATA_FILE")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect [path] (or set DATA_FILE)")
		os.Exit(2)
	}

	dataset, err := pipeline.NewLoader().Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inspect: %v\n", err)
		os.Exit(1)
	}

	report := dataset.Report
	fmt.Printf("Source:              %s\n", dataset.SourcePath)
	fmt.Printf("Rows read:           %d\n", report.RowsRead)
	fmt.Printf("Duplicates removed:  %d\n", report.DuplicatesRemoved)
	fmt.Printf("Dropped rows:        %d\n", report.DroppedRows)
	fmt.Printf("Clean records:       %d\n", report.RowsAfterDrop)
	if len(report.UnresolvedFields) > 0 {
		fmt.Printf("Unresolved fields:   %v\n", report.UnresolvedFields)
	}
	for field, count := range report.ParseFailures {
		fmt.Printf("Parse failures:      %s: %d\n", field, count)
	}

	if dataset.Threshold.Valid {
		fmt.Printf("Lateness threshold:  %.2f (mean %.2f + std %.2f)\n",
			dataset.Threshold.Cutoff, dataset.Threshold.Mean, dataset.Threshold.StdDev)
	} else {
		fmt.Println("Lateness threshold:  undefined (empty dataset)")
	}

	kpis := pipeline.KPIs(dataset.Records)
	fmt.Printf("\nKPIs\n")
	if kpis.AvgDeliveryTime != nil {
		fmt.Printf("  Avg delivery time: %.2f min\n", *kpis.AvgDeliveryTime)
	} else {
		fmt.Printf("  Avg delivery time: n/a\n")
	}
	fmt.Printf("  Total deliveries:  %d\n", kpis.TotalCount)
	fmt.Printf("  Late deliveries:   %.2f%%\n", kpis.LatePercentage)

	for _, field := range delivery.GroupableFields {
		rows, err := pipeline.Summarize(dataset.Records, field)
		if err != nil || len(rows) == 0 {
			continue
		}
		fmt.Printf("\nMean delivery time by %s\n", field)
		for _, row := range rows {
			fmt.Printf("  %-20s %8.2f  (n=%d)\n", row.GroupKey, row.MeanDeliveryTime, row.Count)
		}
	}
}

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sarchlab/scopetrace/tracing"
)

type scopeStat struct {
	name  string
	total *tracing.TotalTimeTracer
	avg   *tracing.AverageTimeTracer
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [trace file]",
	Short: "Print per-scope statistics of a trace file.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, truncated, err := tracing.ReadTrace(args[0])
		if err != nil {
			log.Fatalf("Error reading trace: %v", err)
		}

		if truncated {
			fmt.Println("Warning: the trace is missing its footer; " +
				"run `scopetrace repair` to fix the file.")
		}

		printScopeStats(doc)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func printScopeStats(doc *tracing.TraceDocument) {
	busy := tracing.NewBusyTimeTracer(nil)

	index := make(map[string]int)
	stats := []*scopeStat{}

	for _, e := range doc.TraceEvents {
		r := e.Record()
		busy.WriteRecord(r)

		i, ok := index[r.Name]
		if !ok {
			i = len(stats)
			index[r.Name] = i
			stats = append(stats, &scopeStat{
				name:  r.Name,
				total: tracing.NewTotalTimeTracer(nil),
				avg:   tracing.NewAverageTimeTracer(nil),
			})
		}

		stats[i].total.WriteRecord(r)
		stats[i].avg.WriteRecord(r)
	}

	fmt.Printf("%-40s %8s %14s %14s\n",
		"Scope", "Count", "Total (us)", "Avg (us)")
	for _, s := range stats {
		fmt.Printf("%-40s %8d %14d %14.1f\n",
			s.name,
			s.avg.TotalCount(),
			s.total.TotalTime(),
			s.avg.AverageTime(),
		)
	}

	fmt.Printf("\n%d records, %d us busy\n",
		len(doc.TraceEvents), busy.BusyTime())
}

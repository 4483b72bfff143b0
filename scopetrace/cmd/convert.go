package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sarchlab/scopetrace/tracing"
)

var convertCmd = &cobra.Command{
	Use:   "convert [trace file]",
	Short: "Convert a JSON trace file to CSV or SQLite.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		doc, truncated, err := tracing.ReadTrace(args[0])
		if err != nil {
			log.Fatalf("Error reading trace: %v", err)
		}

		if truncated {
			fmt.Println("Warning: the trace is truncated; " +
				"converting the complete records only.")
		}

		var writer tracing.Tracer
		var flush func()

		switch format {
		case "csv":
			w := tracing.NewCSVTraceWriter(output)
			w.Init()
			writer, flush = w, w.Flush
		case "sqlite":
			w := tracing.NewSQLiteTraceWriter(output)
			w.Init()
			writer, flush = w, w.Flush
		default:
			log.Fatalf("Unknown format %q; use csv or sqlite.", format)
		}

		for _, e := range doc.TraceEvents {
			writer.WriteRecord(e.Record())
		}
		flush()

		fmt.Printf("Converted %d records.\n", len(doc.TraceEvents))
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("format", "csv",
		"Output format: csv or sqlite")
	convertCmd.Flags().String("output", "",
		"Output path, without extension; a generated name is used if empty")
}

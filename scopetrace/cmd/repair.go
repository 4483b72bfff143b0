package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sarchlab/scopetrace/tracing"
)

var repairCmd = &cobra.Command{
	Use:   "repair [trace file]",
	Short: "Restore the footer of a truncated trace file.",
	Long: "`repair` restores the closing of a trace file whose session " +
		"crashed before it could be ended. A partial record at the tail of " +
		"the file is dropped.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repaired, err := tracing.RepairTraceFile(args[0])
		if err != nil {
			log.Fatalf("Error repairing trace: %v", err)
		}

		if repaired {
			fmt.Println("Trace repaired successfully!")
		} else {
			fmt.Println("Trace is already complete.")
		}
	},
}

func init() {
	rootCmd.AddCommand(repairCmd)
}

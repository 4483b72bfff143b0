// Package cmd provides the command-line interface for scopetrace.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "scopetrace",
	Short: "Scopetrace CLI tool can perform common tasks on trace files " +
		"recorded with scopetrace.",
	Long: `Scopetrace CLI tool can perform common tasks on trace files ` +
		`recorded with scopetrace. Currently, it supports inspecting, ` +
		`repairing, converting, and serving trace files.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	cobra.OnInitialize(func() { _ = godotenv.Load() })

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

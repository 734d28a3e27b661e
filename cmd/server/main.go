package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the spendcast server binary
var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Spendcast expense forecasting backend",
	Long: `Spendcast records income and expense entries and serves monthly spend
forecasts, income growth recommendations and per-category trends over
gRPC and REST.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gRPC and REST servers",
	RunE:  runServe,
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Send the monthly recommendation digest once and exit",
	RunE:  runDigest,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo owner with six months of records",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(serveCmd, digestCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

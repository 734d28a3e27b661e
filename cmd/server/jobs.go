package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runDigest(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	report, err := a.digest().RunOnce(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "digest: sent=%d skipped=%d failed=%d\n", report.Sent, report.Skipped, report.Failed)
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.seeder().Seed(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "demo data ready")
	return nil
}

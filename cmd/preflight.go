package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Azsael/CdkDemo/internal/preflight"
	"github.com/Azsael/CdkDemo/internal/ui"
)

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Verify the infrastructure the stack imports",
	Long: `Check that the VPC, its subnet tiers, the database security group and every
configured secret exist in the target account. Exits non-zero when any check
fails.

Examples:
  cdkdemo preflight
  cdkdemo preflight -p prod -r ap-southeast-2`,
	Args: cobra.NoArgs,
	RunE: runPreflight,
}

func init() {
	rootCmd.AddCommand(preflightCmd)
}

func runPreflight(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client, err := newClient(cmd.Context(), settings)
	if err != nil {
		return err
	}

	report := preflight.Run(cmd.Context(), client, settings)
	ui.PrintPreflightReport(cmd.OutOrStdout(), report)

	if report.Failed() {
		return fmt.Errorf("preflight failed: %d of %d checks", report.Count(preflight.StatusFail), len(report.Checks))
	}
	return nil
}

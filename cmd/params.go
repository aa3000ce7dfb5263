package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Azsael/CdkDemo/internal/network"
	"github.com/Azsael/CdkDemo/internal/ui"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List the parameters the tasks may read",
	Long: `List the SSM parameters below /{environment}/{tenant}/, the path the task
roles are granted read access to. Values are never fetched.

Examples:
  cdkdemo params
  cdkdemo params -e prod -t nz`,
	Args: cobra.NoArgs,
	RunE: runParams,
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}

func runParams(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client, err := newClient(cmd.Context(), settings)
	if err != nil {
		return err
	}

	netctx := network.New(nil,
		network.WithEnvironment(settings.Environment),
		network.WithTenant(settings.Tenant),
	)
	path := netctx.ParameterPath()

	params, err := client.ListParameters(cmd.Context(), strings.TrimSuffix(path, "/"))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Parameters under %s\n", ui.NameStyle.Render(path))
	ui.PrintParameterTable(cmd.OutOrStdout(), params)
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Azsael/CdkDemo/internal/network"
	"github.com/Azsael/CdkDemo/internal/stacks"
	"github.com/Azsael/CdkDemo/internal/ui"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Show every resource name a deploy will use",
	Long: `Print the physical names the enabled builders assign, without calling AWS.

Examples:
  cdkdemo names                 # dev-au-*
  cdkdemo names -e prod -t nz   # prod-nz-*`,
	Args: cobra.NoArgs,
	RunE: runNames,
}

func init() {
	rootCmd.AddCommand(namesCmd)
}

func runNames(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	ref := settings.Network.VPCID
	if ref == "" {
		ref = settings.Network.VPCName
	}
	netctx := network.New(network.ID(ref),
		network.WithEnvironment(settings.Environment),
		network.WithTenant(settings.Tenant),
	)

	var rows []ui.NameRow
	for _, n := range stacks.NamesFor(netctx, settings.Service.Builders) {
		rows = append(rows, ui.NameRow{Builder: n.Builder, Kind: n.Kind, Name: n.Name})
	}
	ui.PrintNameTable(cmd.OutOrStdout(), rows)
	return nil
}

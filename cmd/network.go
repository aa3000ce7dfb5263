package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Azsael/CdkDemo/internal/aws"
	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/network"
	"github.com/Azsael/CdkDemo/internal/ui"
)

var networkCmd = &cobra.Command{
	Use:   "network [vpc]",
	Short: "Show the VPC and the subnets used per tier",
	Long: `Resolve the configured VPC through the EC2 API and show which subnets the
stack places its load balancers and tasks in.

The VPC may be given by name or ID. Without an argument the configured VPC is
used; when none is configured and the terminal is interactive, a selector is
shown.

Examples:
  cdkdemo network                 # Configured VPC
  cdkdemo network main            # VPC named "main"
  cdkdemo network vpc-0abc1234    # Specific VPC
  cdkdemo network ls              # List all VPCs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNetwork,
}

var networkLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all VPCs",
	Args:  cobra.NoArgs,
	RunE:  runNetworkList,
}

func init() {
	rootCmd.AddCommand(networkCmd)
	networkCmd.AddCommand(networkLsCmd)
}

func runNetworkList(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client, err := newClient(cmd.Context(), settings)
	if err != nil {
		return err
	}

	vpcs, err := client.ListVPCs(cmd.Context())
	if err != nil {
		return err
	}
	ui.PrintVPCTable(cmd.OutOrStdout(), vpcs)
	return nil
}

func runNetwork(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client, err := newClient(ctx, settings)
	if err != nil {
		return err
	}

	cfg := settings.Network
	switch {
	case len(args) > 0:
		setVPC(&cfg, args[0])
	case cfg.VPCID == "" && cfg.VPCName == "":
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("no VPC configured: set network.vpc_name in %s or pass one", config.DefaultFileName)
		}
		vpcs, err := client.ListVPCs(ctx)
		if err != nil {
			return err
		}
		selected, err := ui.SelectVPC(vpcs)
		if err != nil {
			return err
		}
		cfg.VPCID = selected.ID
	}

	topo, err := client.ResolveTopology(ctx, cfg, settings.Environment, settings.Tenant)
	if err != nil {
		return err
	}

	printTopology(cmd.OutOrStdout(), topo)
	return nil
}

func setVPC(cfg *config.NetworkSettings, ref string) {
	if strings.HasPrefix(ref, "vpc-") {
		cfg.VPCID, cfg.VPCName = ref, ""
	} else {
		cfg.VPCID, cfg.VPCName = "", ref
	}
}

func printTopology(w io.Writer, topo *aws.Topology) {
	netctx := topo.Network

	fmt.Fprintln(w)
	fmt.Fprintf(w, "VPC: %s\n", ui.IDStyle.Render(topo.VPC.ID))
	fmt.Fprintf(w, "  Name:        %s\n", topo.VPC.Name)
	fmt.Fprintf(w, "  CIDR:        %s\n", topo.VPC.CIDR)
	fmt.Fprintf(w, "  Environment: %s\n", netctx.Environment())
	fmt.Fprintf(w, "  Tenant:      %s\n", netctx.Tenant())
	fmt.Fprintf(w, "  Parameters:  %s\n", netctx.ParameterPath())
	fmt.Fprintln(w)

	selected := map[string]bool{}
	for _, tier := range []network.Tier{network.TierPublic, network.TierPrivate, network.TierIsolated} {
		ids := netctx.Subnets(tier).IDs()
		for _, id := range ids {
			selected[id] = true
		}
		value := ui.MutedStyle.Render("(none)")
		if len(ids) > 0 {
			value = strings.Join(ids, ", ")
		}
		fmt.Fprintf(w, "  %-21s %s\n", string(tier)+":", value)
	}
	fmt.Fprintln(w)

	ui.PrintSubnetTable(w, topo.Subnets, selected)
}

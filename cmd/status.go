package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Azsael/CdkDemo/internal/aws"
	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/network"
	"github.com/Azsael/CdkDemo/internal/stacks"
	"github.com/Azsael/CdkDemo/internal/ui"
	pkgtypes "github.com/Azsael/CdkDemo/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the deployed load balancers and target health",
	Long: `Show the caller identity, then each enabled builder's load balancer with its
listeners, target groups and target health. Builders that have not been
deployed are reported as such.

Examples:
  cdkdemo status
  cdkdemo status -e prod -t nz`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// deployedALBs maps each builder onto the base name of its load balancer
var deployedALBs = []struct {
	builder string
	base    string
}{
	{config.BuilderPattern, stacks.PatternALB},
	{config.BuilderRaw, stacks.RawALB},
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client, err := newClient(ctx, settings)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Current Status")
	fmt.Fprintln(w, ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Fprintf(w, "Profile:     %s\n", valueOr(settings.Profile, "(default)"))
	fmt.Fprintf(w, "Region:      %s\n", client.Region())
	fmt.Fprintf(w, "Environment: %s\n", settings.Environment)
	fmt.Fprintf(w, "Tenant:      %s\n", settings.Tenant)

	fmt.Fprint(w, "Auth:        ")
	identity, err := client.GetCallerIdentity(ctx)
	if err != nil {
		fmt.Fprintln(w, ui.BadStyle.Render("✗ Not authenticated"))
		fmt.Fprintf(w, "             %s\n", ui.MutedStyle.Render(err.Error()))
		return err
	}
	fmt.Fprintln(w, ui.GoodStyle.Render("✓ Authenticated"))
	fmt.Fprintf(w, "Account:     %s\n", identity.Account)
	fmt.Fprintf(w, "ARN:         %s\n", ui.MutedStyle.Render(identity.Arn))

	netctx := network.New(nil,
		network.WithEnvironment(settings.Environment),
		network.WithTenant(settings.Tenant),
	)
	for _, alb := range deployedALBs {
		if !settings.HasBuilder(alb.builder) {
			continue
		}
		if err := printLoadBalancer(ctx, w, client, alb.builder, netctx.ResourceName(alb.base)); err != nil {
			return err
		}
	}
	return nil
}

func printLoadBalancer(ctx context.Context, w io.Writer, client *aws.Client, builder, name string) error {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", ui.HeaderStyle.Render(builder+":"), ui.NameStyle.Render(name))

	lb, err := client.GetLoadBalancerByName(ctx, name)
	if errors.Is(err, aws.ErrNotFound) {
		fmt.Fprintln(w, ui.HintStyle.Render("  not deployed"))
		return nil
	}
	if err != nil {
		return err
	}
	ui.PrintLBTable(w, []pkgtypes.LoadBalancer{*lb})

	listeners, err := client.ListListeners(ctx, lb.ARN)
	if err != nil {
		return err
	}
	ui.PrintListenerTable(w, listeners)

	tgs, err := client.ListTargetGroups(ctx, lb.ARN)
	if err != nil {
		return err
	}
	ui.PrintTargetGroupTable(w, tgs)

	for _, tg := range tgs {
		fmt.Fprintf(w, "Target Group: %s (%s:%d)\n", tg.Name, tg.Protocol, tg.Port)

		targets, err := client.ListTargets(ctx, tg.ARN)
		if err != nil {
			fmt.Fprintf(w, "  Error listing targets: %v\n", err)
			continue
		}
		ui.PrintTargetTable(w, targets)
	}
	return nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

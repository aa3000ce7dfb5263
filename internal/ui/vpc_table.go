package ui

import (
	"fmt"
	"io"

	pkgtypes "github.com/Azsael/CdkDemo/pkg/types"
)

// PrintVPCTable writes VPCs in a formatted table
func PrintVPCTable(w io.Writer, vpcs []pkgtypes.VPC) {
	if len(vpcs) == 0 {
		write(w, HintStyle.Render("No VPCs found"), "\n")
		return
	}

	t := newBoxTable(
		[]string{"VPC ID", "Name", "CIDR", "State", "Default"},
		[]int{21, 24, 18, 12, 7},
	)
	for _, v := range vpcs {
		name := v.Name
		if name == "" {
			name = "-"
		}
		t.add(
			cell{v.ID, IDStyle},
			cell{name, NameStyle},
			cell{v.CIDR, IPStyle},
			vpcState(v.State),
			plain(formatBool(v.IsDefault)),
		)
	}

	write(w, t.String(), fmt.Sprintf("  %d VPCs\n", len(vpcs)))
}

// PrintSubnetTable writes subnets with their tier. Subnets in selected are
// marked as used by the deployment.
func PrintSubnetTable(w io.Writer, subnets []pkgtypes.Subnet, selected map[string]bool) {
	if len(subnets) == 0 {
		write(w, HintStyle.Render("No subnets found"), "\n")
		return
	}

	t := newBoxTable(
		[]string{"Subnet ID", "Name", "CIDR", "AZ", "IPs", "Tier", "Used"},
		[]int{24, 24, 18, 16, 6, 19, 4},
	)

	counts := map[string]int{}
	for _, s := range subnets {
		name := s.Name
		if name == "" {
			name = "-"
		}
		used := plain("")
		if selected[s.ID] {
			used = cell{IndicatorGood, GoodStyle}
		}
		t.add(
			cell{s.ID, IDStyle},
			cell{name, NameStyle},
			cell{s.CIDR, IPStyle},
			cell{s.AZ, AZStyle},
			cell{fmt.Sprintf("%d", s.AvailableIPs), TypeStyle},
			tierCell(s.Tier),
			used,
		)
		counts[s.Tier]++
	}

	write(w, t.String(), summary(len(subnets), "subnets",
		[]string{"public", "private-with-egress", "isolated"}, counts, TierStyles,
	))
}

func vpcState(state string) cell {
	switch state {
	case "available":
		return status(IndicatorGood, state, GoodStyle)
	case "pending":
		return status(IndicatorPending, state, PendingStyle)
	default:
		return status(IndicatorOff, state, MutedStyle)
	}
}

func tierCell(tier string) cell {
	style, ok := TierStyles[tier]
	if !ok {
		return plain("-")
	}
	return cell{tier, style}
}

package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	pkgtypes "github.com/Azsael/CdkDemo/pkg/types"
)

// PrintLBTable writes load balancers in a formatted table
func PrintLBTable(w io.Writer, lbs []pkgtypes.LoadBalancer) {
	if len(lbs) == 0 {
		write(w, HintStyle.Render("No load balancers found"), "\n")
		return
	}

	t := newBoxTable(
		[]string{"Name", "Scheme", "IP Type", "State", "DNS Name"},
		[]int{24, 15, 9, 12, 50},
	)
	for _, lb := range lbs {
		t.add(
			cell{lb.Name, NameStyle},
			cell{lb.Scheme, TypeStyle},
			cell{lb.IPAddressType, TypeStyle},
			lbState(lb.State),
			cell{lb.DNSName, IPStyle},
		)
	}

	write(w, t.String(), fmt.Sprintf("  %d load balancers\n", len(lbs)))
}

// PrintListenerTable writes load balancer listeners
func PrintListenerTable(w io.Writer, listeners []pkgtypes.Listener) {
	if len(listeners) == 0 {
		write(w, HintStyle.Render("No listeners found"), "\n")
		return
	}

	t := newBoxTable([]string{"Port", "Protocol", "Certs"}, []int{6, 8, 5})
	for _, l := range listeners {
		t.add(
			cell{fmt.Sprintf("%d", l.Port), IDStyle},
			cell{l.Protocol, TypeStyle},
			plain(fmt.Sprintf("%d", l.Certs)),
		)
	}
	write(w, t.String())
}

// PrintTargetGroupTable writes target groups
func PrintTargetGroupTable(w io.Writer, tgs []pkgtypes.TargetGroup) {
	if len(tgs) == 0 {
		write(w, HintStyle.Render("No target groups found"), "\n")
		return
	}

	t := newBoxTable(
		[]string{"Name", "Protocol", "Port", "Type", "Health Path"},
		[]int{32, 8, 6, 8, 24},
	)
	for _, tg := range tgs {
		path := tg.HealthCheckPath
		if path == "" {
			path = "-"
		}
		t.add(
			cell{tg.Name, NameStyle},
			cell{tg.Protocol, TypeStyle},
			cell{fmt.Sprintf("%d", tg.Port), IDStyle},
			cell{tg.Type, TypeStyle},
			plain(path),
		)
	}

	write(w, t.String(), fmt.Sprintf("  %d target groups\n", len(tgs)))
}

// PrintTargetTable writes targets with their health
func PrintTargetTable(w io.Writer, targets []pkgtypes.Target) {
	if len(targets) == 0 {
		write(w, HintStyle.Render("No registered targets"), "\n")
		return
	}

	t := newBoxTable(
		[]string{"Target", "Port", "AZ", "Health", "Reason"},
		[]int{20, 6, 16, 12, 32},
	)

	counts := map[string]int{}
	for _, tg := range targets {
		reason := tg.Reason
		if reason == "" {
			reason = "-"
		}
		t.add(
			cell{tg.ID, IDStyle},
			cell{fmt.Sprintf("%d", tg.Port), TypeStyle},
			cell{tg.AZ, AZStyle},
			healthState(tg.Health),
			plain(strings.TrimPrefix(reason, "Target.")),
		)
		counts[tg.Health]++
	}

	write(w, t.String(), summary(len(targets), "targets",
		[]string{"healthy", "unhealthy", "initial", "draining", "unused"}, counts,
		map[string]lipgloss.Style{"healthy": GoodStyle, "unhealthy": BadStyle, "initial": PendingStyle, "draining": PendingStyle},
	))
}

func lbState(state string) cell {
	switch state {
	case "active":
		return status(IndicatorGood, state, GoodStyle)
	case "provisioning":
		return status(IndicatorPending, state, PendingStyle)
	case "failed", "active_impaired":
		return status(IndicatorOff, state, BadStyle)
	default:
		return status(IndicatorOff, state, MutedStyle)
	}
}

func healthState(health string) cell {
	switch health {
	case "healthy":
		return status(IndicatorGood, health, GoodStyle)
	case "unhealthy":
		return status(IndicatorOff, health, BadStyle)
	case "initial", "draining":
		return status(IndicatorPending, health, PendingStyle)
	default:
		return status(IndicatorOff, health, MutedStyle)
	}
}

package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Azsael/CdkDemo/internal/preflight"
)

// PrintPreflightReport writes each check with its outcome
func PrintPreflightReport(w io.Writer, report *preflight.Report) {
	if report == nil || len(report.Checks) == 0 {
		write(w, HintStyle.Render("No checks ran"), "\n")
		return
	}

	t := newBoxTable([]string{"Check", "Result", "Detail"}, []int{28, 6, 60})
	counts := map[string]int{}
	for _, c := range report.Checks {
		t.add(
			cell{c.Name, NameStyle},
			checkStatus(c.Status),
			plain(c.Detail),
		)
		counts[string(c.Status)]++
	}

	write(w, t.String(), summary(len(report.Checks), "checks",
		[]string{string(preflight.StatusPass), string(preflight.StatusFail), string(preflight.StatusSkip)}, counts,
		map[string]lipgloss.Style{string(preflight.StatusPass): GoodStyle, string(preflight.StatusFail): BadStyle},
	))
	if report.Failed() {
		write(w, BadStyle.Render(fmt.Sprintf("  %d checks failed", report.Count(preflight.StatusFail))), "\n")
	}
}

func checkStatus(s preflight.Status) cell {
	switch s {
	case preflight.StatusPass:
		return status(IndicatorGood, string(s), GoodStyle)
	case preflight.StatusFail:
		return status(IndicatorOff, string(s), BadStyle)
	default:
		return status(IndicatorPending, string(s), MutedStyle)
	}
}

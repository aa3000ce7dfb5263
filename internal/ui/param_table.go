package ui

import (
	"fmt"
	"io"

	pkgtypes "github.com/Azsael/CdkDemo/pkg/types"
)

// PrintParameterTable writes parameter metadata, never values
func PrintParameterTable(w io.Writer, params []pkgtypes.Parameter) {
	if len(params) == 0 {
		write(w, HintStyle.Render("No parameters found"), "\n")
		return
	}

	t := newBoxTable([]string{"Name", "Type", "Version", "Last Modified"}, []int{48, 12, 7, 16})
	for _, p := range params {
		modified := "-"
		if !p.LastModified.IsZero() {
			modified = p.LastModified.Format("2006-01-02 15:04")
		}
		typeStyle := TypeStyle
		if p.Type == "SecureString" {
			typeStyle = PendingStyle
		}
		t.add(
			cell{p.Name, NameStyle},
			cell{p.Type, typeStyle},
			cell{fmt.Sprintf("%d", p.Version), IDStyle},
			plain(modified),
		)
	}
	write(w, t.String(), fmt.Sprintf("  %d parameters\n", len(params)))
}

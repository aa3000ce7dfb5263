package ui

import (
	"fmt"
	"io"
)

// NameRow is one physical resource name a stack will create
type NameRow struct {
	Builder string
	Kind    string
	Name    string
}

// PrintNameTable writes the resource names a stack will use
func PrintNameTable(w io.Writer, rows []NameRow) {
	if len(rows) == 0 {
		write(w, HintStyle.Render("No builders enabled"), "\n")
		return
	}

	t := newBoxTable([]string{"Builder", "Kind", "Name"}, []int{8, 16, 40})
	for _, r := range rows {
		t.add(
			cell{r.Builder, IDStyle},
			cell{r.Kind, TypeStyle},
			cell{r.Name, NameStyle},
		)
	}
	write(w, t.String(), fmt.Sprintf("  %d names\n", len(rows)))
}

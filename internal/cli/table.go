package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mesh-intelligence/prompter/pkg/types"
)

// listRow is one line of list output; depth indents children in tree view.
type listRow struct {
	script types.Script
	depth  int
}

// renderScripts writes rows as a table. Terminals get rounded borders;
// pipes get plain ASCII that is easy to grep.
func renderScripts(w io.Writer, rows []listRow, tty bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if tty {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"ID", "Name", "Kind", "Parent", "Size", "Speed", "Words"})
	for _, r := range rows {
		s := r.script
		name := s.Name
		if r.depth > 0 {
			name = strings.Repeat("  ", r.depth-1) + "└ " + name
		}
		tw.AppendRow(table.Row{
			s.ID,
			name,
			kind(s),
			optionalID(s.ParentID),
			optionalInt(s.FontSize),
			optionalFloat(s.ScrollSpeed),
			wordCount(s),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	tw.Render()
}

// renderScript writes the full record, content included.
func renderScript(w io.Writer, s types.Script) {
	fmt.Fprintf(w, "ID:     %d\n", s.ID)
	fmt.Fprintf(w, "Name:   %s\n", s.Name)
	fmt.Fprintf(w, "Kind:   %s\n", kind(s))
	if s.ParentID != nil {
		fmt.Fprintf(w, "Parent: %d\n", *s.ParentID)
	}
	if !s.IsGroup {
		fmt.Fprintf(w, "Size:   %s\n", optionalInt(s.FontSize))
		fmt.Fprintf(w, "Speed:  %s\n", optionalFloat(s.ScrollSpeed))
		fmt.Fprintf(w, "\n%s\n", s.Content)
	}
}

func optionalID(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func wordCount(s types.Script) string {
	if s.IsGroup {
		return "-"
	}
	return strconv.Itoa(len(strings.Fields(s.Content)))
}

package uct

import (
	"fmt"
	"io"
	"sort"

	"github.com/muesli/termenv"
)

// ChildReport summarizes one move considered from the search root.
type ChildReport[M comparable] struct {
	Move   M
	Wins   float64
	Visits float64
}

// Value is the child's win rate.
func (c ChildReport[M]) Value() float64 {
	return c.Wins / c.Visits
}

// SearchReport is the result of one Search call: enough to print a verbose
// trace and to make the move choice auditable. NodesRemaining is -1 when
// pruning did not run (root-parallel and root-parallel-style variants never
// prune, since their trees are discarded at the end of the call).
type SearchReport[M comparable] struct {
	MaxDepth       int
	NodesGenerated int
	NodesRemaining int
	Children       []ChildReport[M]
}

// WriteVerbose prints a colored trace of report to w in the style of a
// terminal search log: max depth reached, nodes generated this call, each
// root move with its visit/win tally, and the post-prune tree size when
// pruning ran.
func WriteVerbose[M comparable](w io.Writer, report SearchReport[M]) {
	p := termenv.ColorProfile()
	header := termenv.String("search report").Foreground(p.Color("6")).Bold()
	fmt.Fprintln(w, header)
	fmt.Fprintf(w, "  max depth:       %d\n", report.MaxDepth)
	fmt.Fprintf(w, "  nodes generated: %d\n", report.NodesGenerated)

	children := append([]ChildReport[M]{}, report.Children...)
	sort.Slice(children, func(i, j int) bool { return children[i].Visits > children[j].Visits })

	for _, c := range children {
		line := fmt.Sprintf("  %-16v visits=%-6.0f wins=%-8.2f value=%.3f", c.Move, c.Visits, c.Wins, c.Value())
		if c.Visits > 0 {
			fmt.Fprintln(w, termenv.String(line).Foreground(p.Color("2")))
		} else {
			fmt.Fprintln(w, termenv.String(line).Foreground(p.Color("8")))
		}
	}

	if report.NodesRemaining >= 0 {
		fmt.Fprintf(w, "  nodes remaining after prune: %d\n", report.NodesRemaining)
	}
}

// Package output renders collected generic parameters as a text report.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/genscope/genscope/internal/generics"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	typesHeader     = "=== Generic Types ==="
	lifetimesHeader = "=== Lifetimes ==="
)

// Report is the input to the text formatter.
type Report struct {
	Types     []generics.TypeParamEntry
	Lifetimes []generics.LifetimeEntry
}

// NewReport builds a report from a finished collector.
func NewReport(c *generics.Collector) Report {
	return Report{Types: c.Types(), Lifetimes: c.Lifetimes()}
}

// LifetimeGroup lists every context a lifetime name was declared in.
type LifetimeGroup struct {
	Name     string
	Contexts []string
}

// GroupLifetimes partitions entries by exact lifetime name. Contexts inside
// a group keep collection order. Callers must not depend on the order of
// the groups themselves.
func GroupLifetimes(entries []generics.LifetimeEntry) []LifetimeGroup {
	byName := orderedmap.New[string, []string]()
	for _, lt := range entries {
		contexts, _ := byName.Get(lt.Name)
		byName.Set(lt.Name, append(contexts, lt.Context))
	}

	groups := make([]LifetimeGroup, 0, byName.Len())
	for pair := byName.Oldest(); pair != nil; pair = pair.Next() {
		groups = append(groups, LifetimeGroup{Name: pair.Key, Contexts: pair.Value})
	}
	return groups
}

// FormatText renders the two report sections.
func FormatText(r Report) string {
	var sb strings.Builder

	sb.WriteString("\n" + typesHeader + "\n")
	for _, tp := range r.Types {
		fmt.Fprintf(&sb, "\nIn %s:\n", tp.Context)
		fmt.Fprintf(&sb, "  Type: %s\n", tp.Name)
		if len(tp.Bounds) > 0 {
			sb.WriteString("  Bounds:\n")
			for _, b := range tp.Bounds {
				fmt.Fprintf(&sb, "    - %s\n", strings.TrimSpace(b))
			}
		}
	}

	sb.WriteString("\n" + lifetimesHeader + "\n")
	for _, g := range GroupLifetimes(r.Lifetimes) {
		fmt.Fprintf(&sb, "\nLifetime '%s\n", g.Name)
		sb.WriteString("  Used in:\n")
		for _, ctx := range g.Contexts {
			fmt.Fprintf(&sb, "    - %s\n", ctx)
		}
	}

	return sb.String()
}

// WriteText writes the report followed by a newline.
func WriteText(w io.Writer, r Report) error {
	_, err := fmt.Fprintln(w, FormatText(r))
	return err
}

// Package generics collects generic type parameters, their trait bounds and
// lifetime parameters from a declaration tree.
//
// Every parameter is attributed to a context label of the form
// "<kind> <name>" naming the enclosing labeled declaration (by default a
// struct, trait or free function). How the label evolves while walking
// nested declarations is controlled by ContextMode.
package generics

import (
	"fmt"
	"strings"

	"github.com/genscope/genscope/internal/syntax"
)

// ContextMode selects how the current context label is tracked.
type ContextMode string

const (
	// ContextScoped keeps a stack of labels: entering a labeled declaration
	// pushes its label and leaving it restores the enclosing one.
	ContextScoped ContextMode = "scoped"

	// ContextOverwrite keeps a single label that every labeled declaration
	// overwrites and nothing restores. A nested declaration therefore leaks
	// its label to the siblings visited after it.
	ContextOverwrite ContextMode = "overwrite"
)

// ParseContextMode parses a mode name.
func ParseContextMode(s string) (ContextMode, error) {
	switch ContextMode(strings.ToLower(strings.TrimSpace(s))) {
	case ContextScoped:
		return ContextScoped, nil
	case ContextOverwrite:
		return ContextOverwrite, nil
	default:
		return "", fmt.Errorf("invalid context mode: %q (expected scoped or overwrite)", s)
	}
}

// String returns the mode name.
func (m ContextMode) String() string {
	return string(m)
}

// DefaultLabelKinds are the declaration kinds that set the context label.
var DefaultLabelKinds = []syntax.Kind{syntax.Struct, syntax.Trait, syntax.Function}

// Options configures a Collector.
type Options struct {
	Mode ContextMode
	// LabelKinds lists the declaration kinds that set the context.
	// Nil means DefaultLabelKinds.
	LabelKinds []syntax.Kind
}

// TypeParamEntry records one generic type parameter.
type TypeParamEntry struct {
	Name string
	// Bounds are the trait bounds in declaration order.
	Bounds  []string
	Context string
}

// LifetimeEntry records one lifetime parameter. Name has no leading quote.
type LifetimeEntry struct {
	Name    string
	Context string
}

// Collector walks a declaration tree and records generic parameters.
// A Collector is not safe for concurrent use.
type Collector struct {
	mode   ContextMode
	labels map[syntax.Kind]bool

	current string
	stack   []string

	types     []TypeParamEntry
	lifetimes []LifetimeEntry
}

// NewCollector creates a collector. An empty mode means ContextScoped.
func NewCollector(opts Options) *Collector {
	mode := opts.Mode
	if mode == "" {
		mode = ContextScoped
	}
	kinds := opts.LabelKinds
	if kinds == nil {
		kinds = DefaultLabelKinds
	}
	labels := make(map[syntax.Kind]bool, len(kinds))
	for _, k := range kinds {
		labels[k] = true
	}
	return &Collector{mode: mode, labels: labels}
}

// Collect walks file with a fresh collector.
func Collect(file *syntax.File, opts Options) *Collector {
	c := NewCollector(opts)
	c.VisitFile(file)
	return c
}

// SetContext replaces the current context label.
func (c *Collector) SetContext(label string) {
	c.current = label
}

// Context returns the current context label.
func (c *Collector) Context() string {
	return c.current
}

// VisitFile visits every top-level declaration in order.
func (c *Collector) VisitFile(file *syntax.File) {
	if file == nil {
		return
	}
	for _, it := range file.Items {
		c.VisitItem(it)
	}
}

// VisitItem visits a declaration, its generic parameters and then its
// nested declarations.
func (c *Collector) VisitItem(it *syntax.Item) {
	if it == nil {
		return
	}

	labeled := c.labels[it.Kind]
	if labeled {
		c.enter(Label(it))
	}

	c.VisitGenerics(it.Generics)
	for _, child := range it.Items {
		c.VisitItem(child)
	}

	if labeled {
		c.leave()
	}
}

// VisitGenerics records the parameters of one generic list in order.
// Const parameters are ignored.
func (c *Collector) VisitGenerics(g *syntax.Generics) {
	if g == nil {
		return
	}
	for _, p := range g.Params {
		switch p := p.(type) {
		case *syntax.TypeParam:
			c.types = append(c.types, TypeParamEntry{
				Name:    p.Name,
				Bounds:  traitBounds(p.Bounds),
				Context: c.current,
			})
		case *syntax.LifetimeParam:
			c.lifetimes = append(c.lifetimes, LifetimeEntry{
				Name:    p.Name,
				Context: c.current,
			})
		}
	}
}

// Types returns the recorded type parameters in collection order.
func (c *Collector) Types() []TypeParamEntry {
	return c.types
}

// Lifetimes returns the recorded lifetime parameters in collection order.
func (c *Collector) Lifetimes() []LifetimeEntry {
	return c.lifetimes
}

func (c *Collector) enter(label string) {
	if c.mode == ContextScoped {
		c.stack = append(c.stack, c.current)
	}
	c.SetContext(label)
}

func (c *Collector) leave() {
	if c.mode != ContextScoped || len(c.stack) == 0 {
		return
	}
	n := len(c.stack) - 1
	c.SetContext(c.stack[n])
	c.stack = c.stack[:n]
}

// Label returns the context label for a declaration, e.g. "struct Pair".
func Label(it *syntax.Item) string {
	return it.Kind.String() + " " + it.Name
}

// traitBounds keeps trait bounds only; outlives bounds like 'a are dropped.
func traitBounds(bounds []syntax.Bound) []string {
	var out []string
	for _, b := range bounds {
		if b.Lifetime {
			continue
		}
		out = append(out, strings.TrimSpace(b.Text))
	}
	return out
}

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/genscope/genscope/internal/generics"
)

func TestFormatText(t *testing.T) {
	t.Run("renders types with and without bounds", func(t *testing.T) {
		r := Report{
			Types: []generics.TypeParamEntry{
				{Name: "T", Bounds: []string{"Clone"}, Context: "struct Pair"},
				{Name: "U", Context: "trait Store"},
			},
		}

		want := "\n=== Generic Types ===\n" +
			"\nIn struct Pair:\n" +
			"  Type: T\n" +
			"  Bounds:\n" +
			"    - Clone\n" +
			"\nIn trait Store:\n" +
			"  Type: U\n" +
			"\n=== Lifetimes ===\n"

		if got := FormatText(r); got != want {
			t.Errorf("FormatText() =\n%q\nwant\n%q", got, want)
		}
	})

	t.Run("renders a single lifetime group", func(t *testing.T) {
		r := Report{
			Lifetimes: []generics.LifetimeEntry{
				{Name: "a", Context: "struct Pair"},
				{Name: "a", Context: "function f"},
			},
		}

		want := "\n=== Generic Types ===\n" +
			"\n=== Lifetimes ===\n" +
			"\nLifetime 'a\n" +
			"  Used in:\n" +
			"    - struct Pair\n" +
			"    - function f\n"

		if got := FormatText(r); got != want {
			t.Errorf("FormatText() =\n%q\nwant\n%q", got, want)
		}
	})

	t.Run("empty report keeps both headers", func(t *testing.T) {
		got := FormatText(Report{})
		if got != "\n=== Generic Types ===\n\n=== Lifetimes ===\n" {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("output is stable across calls", func(t *testing.T) {
		r := Report{
			Types: []generics.TypeParamEntry{{Name: "T", Context: "function f"}},
			Lifetimes: []generics.LifetimeEntry{
				{Name: "x", Context: "function f"},
				{Name: "y", Context: "function f"},
				{Name: "x", Context: "struct S"},
			},
		}
		first := FormatText(r)
		for i := 0; i < 10; i++ {
			if got := FormatText(r); got != first {
				t.Fatalf("output changed between calls:\n%s\nvs\n%s", first, got)
			}
		}
	})
}

func TestGroupLifetimes(t *testing.T) {
	entries := []generics.LifetimeEntry{
		{Name: "a", Context: "struct Pair"},
		{Name: "b", Context: "struct Holder"},
		{Name: "a", Context: "trait Store"},
		{Name: "'a", Context: "function odd"},
		{Name: "b", Context: "struct Holder"},
	}

	groups := GroupLifetimes(entries)

	// Group order is unspecified, so index by name.
	byName := make(map[string][]string)
	total := 0
	for _, g := range groups {
		if _, dup := byName[g.Name]; dup {
			t.Errorf("lifetime %q grouped twice", g.Name)
		}
		byName[g.Name] = g.Contexts
		total += len(g.Contexts)
	}

	if total != len(entries) {
		t.Errorf("groups hold %d contexts, want %d", total, len(entries))
	}

	want := map[string][]string{
		"a":  {"struct Pair", "trait Store"},
		"b":  {"struct Holder", "struct Holder"},
		"'a": {"function odd"},
	}
	if len(byName) != len(want) {
		t.Fatalf("got %d groups, want %d", len(byName), len(want))
	}
	for name, ctxs := range want {
		got := byName[name]
		if strings.Join(got, "|") != strings.Join(ctxs, "|") {
			t.Errorf("group %q = %v, want %v", name, got, ctxs)
		}
	}
}

func TestGroupLifetimes_TwoDistinct(t *testing.T) {
	// fn f<'x, 'y>()
	groups := GroupLifetimes([]generics.LifetimeEntry{
		{Name: "x", Context: "function f"},
		{Name: "y", Context: "function f"},
	})

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	for _, g := range groups {
		if len(g.Contexts) != 1 || g.Contexts[0] != "function f" {
			t.Errorf("group %q = %v", g.Name, g.Contexts)
		}
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	r := Report{Types: []generics.TypeParamEntry{{Name: "T", Context: "struct S"}}}

	if err := WriteText(&buf, r); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if buf.String() != FormatText(r)+"\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

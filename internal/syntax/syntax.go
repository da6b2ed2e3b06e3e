// Package syntax defines the declaration tree produced by the parser.
//
// The tree keeps only what generic analysis needs: declarations, their
// generic parameter lists, and the declarations nested inside them. Nothing
// here depends on tree-sitter, so trees can also be built by hand.
package syntax

// Kind identifies the kind of a declaration. Its value is the word used
// when labeling a declaration of that kind.
type Kind string

const (
	// Other is any declaration not listed below.
	Other Kind = "item"
	// Struct is a struct declaration.
	Struct Kind = "struct"
	// Trait is a trait declaration.
	Trait Kind = "trait"
	// Function is a free-standing function item.
	Function Kind = "function"
	// Enum is an enum declaration.
	Enum Kind = "enum"
	// Union is a union declaration.
	Union Kind = "union"
	// Impl is an impl block.
	Impl Kind = "impl"
	// TypeAlias is a type alias item.
	TypeAlias Kind = "type"
	// Module is an inline module.
	Module Kind = "mod"
	// Method is a function declared inside a trait or impl body.
	Method Kind = "method"
	// ForeignFunction is a function declared inside an extern block.
	ForeignFunction Kind = "fn"
	// AssociatedType is an associated type inside a trait.
	AssociatedType Kind = "associated type"
)

var allKinds = []Kind{
	Other, Struct, Trait, Function, Enum, Union, Impl,
	TypeAlias, Module, Method, ForeignFunction, AssociatedType,
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// KindFromString maps a label word back to its Kind.
// The second result is false for unknown words.
func KindFromString(s string) (Kind, bool) {
	for _, k := range allKinds {
		if string(k) == s {
			return k, true
		}
	}
	return Other, false
}

// File is the root of a parsed source file.
type File struct {
	// Path is the file the tree was parsed from (empty for in-memory input).
	Path string
	// Items are the top-level declarations in source order.
	Items []*Item
}

// Item is a single declaration.
type Item struct {
	Kind Kind
	Name string
	// Line is the 1-based line the declaration starts on.
	Line uint32
	// Generics is nil when the declaration has no generic parameter list.
	Generics *Generics
	// Items are nested declarations in traversal order.
	Items []*Item
}

// Generics is a generic parameter list, e.g. <'a, T: Clone, const N: usize>.
type Generics struct {
	Params []Param
}

// Param is one entry of a generic parameter list.
// It is one of *TypeParam, *LifetimeParam or *ConstParam.
type Param interface {
	paramName() string
}

// TypeParam is a type parameter with its inline bounds.
type TypeParam struct {
	Name   string
	Bounds []Bound
}

// LifetimeParam is a lifetime parameter. Name excludes the leading quote.
type LifetimeParam struct {
	Name string
}

// ConstParam is a const generic parameter.
type ConstParam struct {
	Name string
	Type string
}

func (p *TypeParam) paramName() string     { return p.Name }
func (p *LifetimeParam) paramName() string { return p.Name }
func (p *ConstParam) paramName() string    { return p.Name }

// Bound is a single bound attached to a type parameter, as written in source.
type Bound struct {
	Text string
	// Lifetime is true for outlives bounds such as 'a.
	Lifetime bool
}

// ParamName returns the declared name of a generic parameter.
func ParamName(p Param) string {
	if p == nil {
		return ""
	}
	return p.paramName()
}

// Walk visits item and its nested items depth-first in order.
// If fn returns false the children of that item are skipped.
func Walk(items []*Item, fn func(*Item) bool) {
	for _, it := range items {
		if it == nil {
			continue
		}
		if fn(it) {
			Walk(it.Items, fn)
		}
	}
}

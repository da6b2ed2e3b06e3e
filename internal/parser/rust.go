package parser

import (
	"strings"

	"github.com/genscope/genscope/internal/syntax"
	sitter "github.com/smacker/go-tree-sitter"
)

// RustItemKinds maps tree-sitter node types to declaration kinds.
// Functions are refined further by where they appear, see itemKind.
var RustItemKinds = map[string]syntax.Kind{
	"struct_item":             syntax.Struct,
	"trait_item":              syntax.Trait,
	"function_item":           syntax.Function,
	"function_signature_item": syntax.Function,
	"enum_item":               syntax.Enum,
	"union_item":              syntax.Union,
	"impl_item":               syntax.Impl,
	"type_item":               syntax.TypeAlias,
	"mod_item":                syntax.Module,
	"associated_type":         syntax.AssociatedType,
}

// IsRustItemNode reports whether node is a declaration the builder keeps.
func IsRustItemNode(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	_, ok := RustItemKinds[node.Type()]
	return ok
}

// builder converts a tree-sitter Rust tree into a syntax tree.
type builder struct {
	source []byte
}

// collectItems returns the declarations found below node, in document
// order, without descending into the declarations themselves.
func (b *builder) collectItems(node *sitter.Node) []*syntax.Item {
	var items []*syntax.Item
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if IsRustItemNode(child) {
			items = append(items, b.item(child))
			continue
		}
		items = append(items, b.collectItems(child)...)
	}
	return items
}

func (b *builder) item(node *sitter.Node) *syntax.Item {
	it := &syntax.Item{
		Kind: itemKind(node),
		Name: b.itemName(node),
		Line: node.StartPoint().Row + 1,
	}

	if tp := node.ChildByFieldName("type_parameters"); tp != nil {
		it.Generics = b.generics(tp)
	}

	// Generic lists and bounds never contain declarations; everything
	// else (bodies, parameter defaults, const blocks) may.
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "type_parameters", "where_clause", "trait_bounds", "visibility_modifier":
			continue
		}
		if IsRustItemNode(child) {
			it.Items = append(it.Items, b.item(child))
			continue
		}
		it.Items = append(it.Items, b.collectItems(child)...)
	}

	return it
}

// itemKind distinguishes free functions from trait/impl members and
// extern declarations.
func itemKind(node *sitter.Node) syntax.Kind {
	kind := RustItemKinds[node.Type()]
	if kind != syntax.Function {
		return kind
	}

	parent := node.Parent()
	if parent == nil || parent.Type() != "declaration_list" {
		return syntax.Function
	}
	owner := parent.Parent()
	if owner == nil {
		return syntax.Function
	}
	switch owner.Type() {
	case "impl_item", "trait_item":
		return syntax.Method
	case "foreign_mod_item":
		return syntax.ForeignFunction
	}
	return syntax.Function
}

func (b *builder) itemName(node *sitter.Node) string {
	if node.Type() == "impl_item" {
		typ := b.text(node.ChildByFieldName("type"))
		if trait := node.ChildByFieldName("trait"); trait != nil {
			return b.text(trait) + " for " + typ
		}
		return typ
	}
	return b.text(node.ChildByFieldName("name"))
}

// generics converts a type_parameters node. Both the older grammar layout
// (constrained_type_parameter, bare lifetime/type_identifier) and the newer
// one (type_parameter, lifetime_parameter) are accepted.
func (b *builder) generics(node *sitter.Node) *syntax.Generics {
	g := &syntax.Generics{}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if p := b.param(node.NamedChild(i)); p != nil {
			g.Params = append(g.Params, p)
		}
	}
	return g
}

func (b *builder) param(node *sitter.Node) syntax.Param {
	switch node.Type() {
	case "type_identifier", "metavariable":
		return &syntax.TypeParam{Name: b.text(node)}

	case "lifetime":
		return &syntax.LifetimeParam{Name: lifetimeName(b.text(node))}

	case "lifetime_parameter":
		return &syntax.LifetimeParam{Name: lifetimeName(b.text(node.ChildByFieldName("name")))}

	case "type_parameter":
		return &syntax.TypeParam{
			Name:   b.text(node.ChildByFieldName("name")),
			Bounds: b.bounds(node.ChildByFieldName("bounds")),
		}

	case "constrained_type_parameter":
		left := node.ChildByFieldName("left")
		if left != nil && left.Type() == "lifetime" {
			return &syntax.LifetimeParam{Name: lifetimeName(b.text(left))}
		}
		return &syntax.TypeParam{
			Name:   b.text(left),
			Bounds: b.bounds(node.ChildByFieldName("bounds")),
		}

	case "optional_type_parameter":
		name := node.ChildByFieldName("name")
		if name == nil {
			return nil
		}
		if name.Type() == "constrained_type_parameter" {
			return b.param(name)
		}
		return &syntax.TypeParam{Name: b.text(name)}

	case "const_parameter":
		return &syntax.ConstParam{
			Name: b.text(node.ChildByFieldName("name")),
			Type: b.text(node.ChildByFieldName("type")),
		}
	}
	return nil
}

// bounds lists the entries of a trait_bounds node in source order.
func (b *builder) bounds(node *sitter.Node) []syntax.Bound {
	if node == nil {
		return nil
	}
	var out []syntax.Bound
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "line_comment" || child.Type() == "block_comment" {
			continue
		}
		out = append(out, syntax.Bound{
			Text:     b.text(child),
			Lifetime: child.Type() == "lifetime",
		})
	}
	return out
}

func (b *builder) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(b.source)
}

func lifetimeName(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "'")
}

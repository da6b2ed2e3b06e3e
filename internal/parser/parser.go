// Package parser provides tree-sitter based parsing of Rust source files.
//
// The parser wraps the tree-sitter Rust grammar and converts the concrete
// syntax tree into the declaration tree defined by package syntax. Callers
// never see tree-sitter nodes.
package parser

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/genscope/genscope/internal/syntax"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// Parser wraps tree-sitter for Rust code parsing.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a parser configured for Rust.
func NewParser() (*Parser, error) {
	p := sitter.NewParser()
	if p == nil {
		return nil, errors.New("tree-sitter: could not allocate parser")
	}
	p.SetLanguage(rust.GetLanguage())
	return &Parser{parser: p}, nil
}

// Parse parses source code and returns its declaration tree.
// A source containing syntax errors yields a *ParseError and no tree.
func (p *Parser) Parse(source []byte) (*syntax.File, error) {
	if p.parser == nil {
		return nil, &ParseError{Message: "parser is closed"}
	}

	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &ParseError{
			Message: err.Error(),
		}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root, source)
	}

	b := &builder{source: source}
	return &syntax.File{Items: b.collectItems(root)}, nil
}

// ParseFile reads a whole file from disk and parses it.
func (p *Parser) ParseFile(path string) (*syntax.File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}

	file, err := p.Parse(source)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return nil, err
	}

	file.Path = path
	return file, nil
}

// Close releases parser resources.
// After calling Close, the parser should not be used.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
		p.parser = nil
	}
}

// syntaxError builds a ParseError pointing at the first ERROR or MISSING
// node in document order.
func syntaxError(root *sitter.Node, source []byte) *ParseError {
	bad := firstErrorNode(root)
	if bad == nil {
		bad = root
	}

	pt := bad.StartPoint()
	msg := "syntax error"
	switch {
	case bad.IsMissing():
		msg = fmt.Sprintf("syntax error: missing %q", bad.Type())
	case bad.Type() == "ERROR":
		if text := snippet(bad.Content(source)); text != "" {
			msg = fmt.Sprintf("syntax error near %q", text)
		}
	}

	return &ParseError{
		Message: msg,
		Line:    pt.Row + 1,
		Column:  pt.Column + 1,
	}
}

// firstErrorNode descends only into subtrees that report errors.
func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstErrorNode(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

const maxSnippet = 24

func snippet(s string) string {
	for i, r := range s {
		if r == '\n' {
			s = s[:i]
			break
		}
	}
	if len(s) > maxSnippet {
		s = s[:maxSnippet]
	}
	return s
}

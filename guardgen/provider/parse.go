// Package provider reads TypeScript source with tree-sitter and resolves
// type declarations into ir descriptors.
//
// A Unit is one parsed file. Stubs lists the marker-tagged guard functions
// that are paired with a type alias or interface, and a Resolver turns a
// declaration name into a descriptor, following type references within
// the unit and through relative named imports.
package provider

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsts "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/broady/assertype"
	"github.com/broady/assertype/guardgen/ir"
)

func language(path string) *sitter.Language {
	if strings.EqualFold(filepath.Ext(path), ".tsx") {
		return sitter.NewLanguage(tsts.LanguageTSX())
	}
	return sitter.NewLanguage(tsts.LanguageTypescript())
}

// Parse parses a TypeScript source unit. Files ending in .tsx use the TSX
// grammar. Any syntax error fails the parse with code syntax_error.
func Parse(path string, src []byte) (*Unit, error) {
	p := sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(language(path)); err != nil {
		return nil, fmt.Errorf("provider: %w", err)
	}

	tree := p.Parse(src, nil)
	if tree == nil {
		return nil, assertype.Errorf(assertype.CodeSyntax, "parser returned no tree").WithDetail("file", path)
	}
	root := tree.RootNode()
	if root.HasError() {
		err := syntaxError(path, root, src)
		tree.Close()
		return nil, err
	}

	u := &Unit{
		Path:    path,
		Source:  src,
		tree:    tree,
		types:   make(map[string]*typeDecl),
		imports: make(map[string]importSpec),
	}
	u.scan(root)
	return u, nil
}

func syntaxError(path string, root *sitter.Node, src []byte) error {
	node := firstNode(root, (*sitter.Node).IsMissing)
	msg := "syntax error"
	if node != nil {
		msg = fmt.Sprintf("syntax error: missing %s", node.Kind())
	} else if node = firstNode(root, (*sitter.Node).IsError); node != nil {
		text := strings.TrimSpace(sliceContent(node, src))
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i]
		}
		if text != "" {
			msg = fmt.Sprintf("syntax error: unexpected %q", text)
		}
	} else {
		node = root
	}
	loc := location(path, node)
	return assertype.NewError(assertype.CodeSyntax, msg).WithDetails(map[string]any{
		"file":   path,
		"line":   loc.Line,
		"column": loc.Column,
	})
}

// firstNode returns the earliest node in source order matching pred.
func firstNode(root *sitter.Node, pred func(*sitter.Node) bool) *sitter.Node {
	var best *sitter.Node
	walk(root, func(n *sitter.Node) {
		if pred(n) && (best == nil || n.StartByte() < best.StartByte()) {
			best = n
		}
	})
	return best
}

func walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := uint(0); i < n.ChildCount(); i++ {
		walk(n.Child(i), visit)
	}
}

func location(path string, n *sitter.Node) ir.Source {
	if n == nil {
		return ir.Source{File: path}
	}
	pos := n.StartPosition()
	return ir.Source{File: path, Line: int(pos.Row) + 1, Column: int(pos.Column) + 1}
}

func sliceContent(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	start, end := int(n.StartByte()), int(n.EndByte())
	if start < 0 || end < start || end > len(src) {
		return ""
	}
	return string(src[start:end])
}

// namedChildren returns the named children of n, without comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c == nil || c.Kind() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// firstNamed returns the first non-comment named child of n.
func firstNamed(n *sitter.Node) *sitter.Node {
	if c := namedChildren(n); len(c) > 0 {
		return c[0]
	}
	return nil
}

// childOfKind returns the first child of n with the given kind, named or
// not.
func childOfKind(n *sitter.Node, kind string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}

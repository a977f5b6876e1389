package provider

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/broady/assertype/guardgen/ir"
)

type declKind int

const (
	kindAlias declKind = iota
	kindInterface
	kindClass
	kindEnum
)

// typeDecl is a top-level declaration that introduces a type name.
type typeDecl struct {
	name     string
	kind     declKind
	nodes    []*sitter.Node // interfaces merge across declarations
	exported bool
	generic  bool
	source   ir.Source
}

// funcDecl is a top-level function declaration or overload signature.
type funcDecl struct {
	name     string
	stmt     *sitter.Node
	comments []*sitter.Node
}

type importSpec struct {
	module string
	name   string
}

// Unit is a parsed source file. Close releases the syntax tree.
type Unit struct {
	Path   string
	Source []byte

	tree    *sitter.Tree
	types   map[string]*typeDecl
	order   []*typeDecl
	funcs   []*funcDecl
	imports map[string]importSpec
}

// Close releases the syntax tree. The unit must not be used afterwards.
func (u *Unit) Close() {
	if u == nil || u.tree == nil {
		return
	}
	u.tree.Close()
	u.tree = nil
}

// Declarations returns the type aliases and interfaces of the unit in
// source order.
func (u *Unit) Declarations() []ir.Declaration {
	var out []ir.Declaration
	for _, d := range u.order {
		out = append(out, ir.Declaration{Name: d.name, Exported: d.exported, Source: d.source})
	}
	return out
}

func (u *Unit) text(n *sitter.Node) string {
	return sliceContent(n, u.Source)
}

func (u *Unit) scan(root *sitter.Node) {
	var comments []*sitter.Node
	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		if stmt.Kind() == "comment" {
			comments = append(comments, stmt)
			continue
		}
		if stmt.Kind() == "import_statement" {
			u.scanImport(stmt)
		} else if decl, exported, ok := unwrap(stmt); ok {
			u.scanDecl(stmt, decl, exported, comments)
		}
		comments = nil
	}
}

// unwrap returns the declaration inside an export or declare statement.
// Default exports are not considered.
func unwrap(stmt *sitter.Node) (decl *sitter.Node, exported, ok bool) {
	switch stmt.Kind() {
	case "export_statement":
		if childOfKind(stmt, "default") != nil {
			return nil, false, false
		}
		decl = stmt.ChildByFieldName("declaration")
		if decl == nil {
			return nil, false, false
		}
		if decl.Kind() == "ambient_declaration" {
			decl = firstNamed(decl)
		}
		return decl, true, decl != nil
	case "ambient_declaration":
		decl = firstNamed(stmt)
		return decl, false, decl != nil
	default:
		return stmt, false, true
	}
}

func (u *Unit) scanDecl(stmt, decl *sitter.Node, exported bool, comments []*sitter.Node) {
	name := u.text(decl.ChildByFieldName("name"))
	if name == "" {
		return
	}
	switch decl.Kind() {
	case "type_alias_declaration":
		u.addType(&typeDecl{name: name, kind: kindAlias}, decl, exported)
	case "interface_declaration":
		u.addType(&typeDecl{name: name, kind: kindInterface}, decl, exported)
	case "class_declaration", "abstract_class_declaration":
		u.addType(&typeDecl{name: name, kind: kindClass}, decl, exported)
	case "enum_declaration":
		u.addType(&typeDecl{name: name, kind: kindEnum}, decl, exported)
	case "function_declaration", "function_signature":
		u.funcs = append(u.funcs, &funcDecl{name: name, stmt: stmt, comments: comments})
	}
}

func (u *Unit) addType(d *typeDecl, node *sitter.Node, exported bool) {
	d.nodes = []*sitter.Node{node}
	d.exported = exported
	d.generic = node.ChildByFieldName("type_parameters") != nil
	d.source = location(u.Path, node)

	prev, ok := u.types[d.name]
	switch {
	case !ok:
		u.types[d.name] = d
		if d.kind == kindAlias || d.kind == kindInterface {
			u.order = append(u.order, d)
		}
	case prev.kind == kindInterface && d.kind == kindInterface:
		prev.merge(d)
	case prev.kind == kindClass && d.kind == kindInterface:
		// The class still resolves the name; the interface only carries
		// the tagged stub.
		if o := u.ordered(d.name); o != nil {
			o.merge(d)
		} else {
			u.order = append(u.order, d)
		}
	case d.kind == kindClass:
		// A class merged with an interface is checked as the class.
		u.types[d.name] = d
	}
}

func (u *Unit) ordered(name string) *typeDecl {
	for _, d := range u.order {
		if d.name == name {
			return d
		}
	}
	return nil
}

func (d *typeDecl) merge(other *typeDecl) {
	d.nodes = append(d.nodes, other.nodes...)
	d.exported = d.exported || other.exported
	d.generic = d.generic || other.generic
}

func (u *Unit) scanImport(stmt *sitter.Node) {
	module := jsString(u.text(stmt.ChildByFieldName("source")))
	clause := childOfKind(stmt, "import_clause")
	if module == "" || clause == nil {
		return
	}
	for _, c := range namedChildren(clause) {
		if c.Kind() != "named_imports" {
			continue
		}
		for _, spec := range namedChildren(c) {
			if spec.Kind() != "import_specifier" {
				continue
			}
			name := importName(u.text(spec.ChildByFieldName("name")))
			local := name
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				local = u.text(alias)
			}
			if name != "" && local != "" {
				u.imports[local] = importSpec{module: module, name: name}
			}
		}
	}
}

func importName(text string) string {
	if len(text) > 0 && (text[0] == '"' || text[0] == '\'') {
		return jsString(text)
	}
	return text
}

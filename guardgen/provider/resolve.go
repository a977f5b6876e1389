package provider

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/broady/assertype"
	"github.com/broady/assertype/guardgen/ir"
	"github.com/broady/assertype/guardgen/typescript"
)

// globalClasses are built-in constructors checked with instanceof.
var globalClasses = map[string]bool{
	"ArrayBuffer":       true,
	"BigInt64Array":     true,
	"BigUint64Array":    true,
	"Blob":              true,
	"DataView":          true,
	"Date":              true,
	"Error":             true,
	"EvalError":         true,
	"Float32Array":      true,
	"Float64Array":      true,
	"Int16Array":        true,
	"Int32Array":        true,
	"Int8Array":         true,
	"Map":               true,
	"Promise":           true,
	"RangeError":        true,
	"ReferenceError":    true,
	"RegExp":            true,
	"Set":               true,
	"SharedArrayBuffer": true,
	"SyntaxError":       true,
	"TypeError":         true,
	"URIError":          true,
	"URL":               true,
	"URLSearchParams":   true,
	"Uint16Array":       true,
	"Uint32Array":       true,
	"Uint8Array":        true,
	"Uint8ClampedArray": true,
	"WeakMap":           true,
	"WeakRef":           true,
	"WeakSet":           true,
}

// Keyword types. The unsupported ones carry the checker's flag name.
var keywordTypes = map[string]func() ir.TypeDescriptor{
	"string":    func() ir.TypeDescriptor { return ir.String() },
	"number":    func() ir.TypeDescriptor { return ir.Number() },
	"bigint":    func() ir.TypeDescriptor { return ir.BigInt() },
	"undefined": func() ir.TypeDescriptor { return ir.Undefined() },
	"boolean":   func() ir.TypeDescriptor { return ir.Boolean() },
	"unknown":   func() ir.TypeDescriptor { return ir.Unknown() },
	"null":      func() ir.TypeDescriptor { return ir.Null() },
	"any":       func() ir.TypeDescriptor { return ir.Unsupported("any", "Any") },
	"never":     func() ir.TypeDescriptor { return ir.Unsupported("never", "Never") },
	"void":      func() ir.TypeDescriptor { return ir.Unsupported("void", "Void") },
	"object":    func() ir.TypeDescriptor { return ir.Unsupported("object", "NonPrimitive") },
	"symbol":    func() ir.TypeDescriptor { return ir.Unsupported("symbol", "ESSymbol") },
}

// Type syntax without a runtime check, by node kind.
var unsupportedKinds = map[string]string{
	"tuple_type":             "Tuple",
	"readonly_tuple_type":    "Tuple",
	"function_type":          "Function",
	"constructor_type":       "Constructor",
	"conditional_type":       "Conditional",
	"index_type_query":       "Index",
	"lookup_type":            "IndexedAccess",
	"type_query":             "Query",
	"infer_type":             "Infer",
	"this_type":              "This",
	"existential_type":       "Any",
	"nested_type_identifier": "QualifiedName",
	"type_predicate":         "Predicate",
	"asserts":                "Predicate",
}

// Resolver turns type declarations into descriptors. Type references are
// inlined, so the result is a closed descriptor tree. Recursive types
// cannot be inlined and fail with code recursive_type.
type Resolver struct {
	unit     *Unit
	loader   *Loader
	visiting map[string]bool
	resolved map[string]ir.TypeDescriptor
}

// Resolve returns the descriptor of the type alias or interface name
// declared in the resolver's unit.
func (r *Resolver) Resolve(name string) (ir.TypeDescriptor, error) {
	d, ok := r.unit.types[name]
	if !ok {
		return nil, assertype.Errorf(assertype.CodeUnresolvedReference, "cannot find name '%s'", name).
			WithDetail("file", r.unit.Path)
	}
	return r.declaration(r.unit, d)
}

func (r *Resolver) declaration(u *Unit, d *typeDecl) (ir.TypeDescriptor, error) {
	if d.generic {
		return ir.Unsupported(d.name, "Generic"), nil
	}
	switch d.kind {
	case kindClass:
		return ir.Class(d.name), nil
	case kindEnum:
		return ir.Unsupported(d.name, "Enum"), nil
	}

	key := u.Path + "#" + d.name
	if t, ok := r.resolved[key]; ok {
		return t, nil
	}
	if r.visiting[key] {
		return nil, assertype.Errorf(assertype.CodeRecursiveType, "type '%s' references itself", d.name).
			WithDetails(map[string]any{"file": u.Path, "line": d.source.Line, "type": d.name})
	}
	r.visiting[key] = true
	defer delete(r.visiting, key)

	var (
		t   ir.TypeDescriptor
		err error
	)
	if d.kind == kindAlias {
		t, err = r.typeNode(u, d.nodes[0].ChildByFieldName("value"))
	} else {
		t, err = r.interfaceType(u, d)
	}
	if err != nil {
		return nil, err
	}
	r.resolved[key] = t
	return t, nil
}

// reference resolves a type name used in u. Local declarations shadow
// imports, which shadow globals.
func (r *Resolver) reference(u *Unit, name string, at *sitter.Node) (ir.TypeDescriptor, error) {
	if d, ok := u.types[name]; ok {
		return r.declaration(u, d)
	}
	if imp, ok := u.imports[name]; ok {
		target, err := r.loader.Import(u, imp.module)
		if err != nil {
			return nil, r.errorAt(err, u, at)
		}
		d, ok := target.types[imp.name]
		if !ok {
			return nil, r.errorAt(assertype.Errorf(assertype.CodeUnresolvedReference,
				"module '%s' has no type '%s'", imp.module, imp.name), u, at)
		}
		if d.kind == kindClass {
			// instanceof needs the name bound in this file.
			return ir.Class(name), nil
		}
		return r.declaration(target, d)
	}
	if globalClasses[name] {
		return ir.Class(name), nil
	}
	return nil, r.errorAt(assertype.Errorf(assertype.CodeUnresolvedReference, "cannot find name '%s'", name), u, at)
}

func (r *Resolver) errorAt(err error, u *Unit, at *sitter.Node) error {
	e, ok := err.(*assertype.Error)
	if !ok {
		return fmt.Errorf("%s: %w", u.Path, err)
	}
	if _, has := e.Details["file"]; has {
		return e
	}
	loc := location(u.Path, at)
	return e.WithDetails(map[string]any{"file": u.Path, "line": loc.Line})
}

func (r *Resolver) typeNode(u *Unit, n *sitter.Node) (ir.TypeDescriptor, error) {
	if n == nil {
		return ir.Unsupported("any", "Any"), nil
	}
	text := u.text(n)
	switch kind := n.Kind(); kind {
	case "predefined_type", "type_identifier":
		if f, ok := keywordTypes[text]; ok {
			return f(), nil
		}
		if kind == "predefined_type" {
			return ir.Unsupported(text, "Intrinsic"), nil
		}
		return r.reference(u, text, n)
	case "generic_type":
		return r.genericType(u, n)
	case "array_type":
		elem, err := r.typeNode(u, firstNamed(n))
		if err != nil {
			return nil, err
		}
		return ir.Array(elem), nil
	case "readonly_type", "parenthesized_type", "type_annotation":
		return r.typeNode(u, firstNamed(n))
	case "union_type":
		return r.union(u, n)
	case "intersection_type":
		return r.intersection(u, n)
	case "literal_type":
		return r.literal(u, n)
	case "template_literal_type":
		return r.template(u, n)
	case "object_type":
		return r.object(u, []*sitter.Node{n})
	default:
		if flag, ok := unsupportedKinds[kind]; ok {
			return ir.Unsupported(text, flag), nil
		}
		return ir.Unsupported(text, kind), nil
	}
}

func (r *Resolver) genericType(u *Unit, n *sitter.Node) (ir.TypeDescriptor, error) {
	nameNode := n.ChildByFieldName("name")
	name := u.text(nameNode)
	args := namedChildren(n.ChildByFieldName("type_arguments"))

	if _, local := u.types[name]; !local {
		if _, imported := u.imports[name]; !imported {
			switch {
			case (name == "Array" || name == "ReadonlyArray") && len(args) == 1:
				elem, err := r.typeNode(u, args[0])
				if err != nil {
					return nil, err
				}
				return ir.Array(elem), nil
			case name == "Readonly" && len(args) == 1:
				return r.typeNode(u, args[0])
			case name == "Record" && len(args) == 2:
				return r.record(u, args[0], args[1])
			case globalClasses[name]:
				return ir.Class(name), nil
			}
		}
	}

	if nameNode != nil && nameNode.Kind() == "type_identifier" {
		t, err := r.reference(u, name, nameNode)
		if err != nil {
			return nil, err
		}
		if c, ok := t.(*ir.ClassDescriptor); ok {
			return c, nil
		}
	}
	return ir.Unsupported(u.text(n), "Generic"), nil
}

// record expands Record<K, V> into an object shape.
func (r *Resolver) record(u *Unit, keyNode, valueNode *sitter.Node) (ir.TypeDescriptor, error) {
	key, err := r.typeNode(u, keyNode)
	if err != nil {
		return nil, err
	}
	value, err := r.typeNode(u, valueNode)
	if err != nil {
		return nil, err
	}
	keys := []ir.TypeDescriptor{key}
	if union, ok := key.(*ir.UnionDescriptor); ok {
		keys = union.Types
	}

	obj := &ir.ObjectDescriptor{}
	for _, k := range keys {
		switch k := k.(type) {
		case *ir.PrimitiveDescriptor:
			if k.PrimitiveKind == ir.PrimitiveString {
				obj.StringIndex = value
				continue
			}
		case *ir.StringLiteralDescriptor:
			setProperty(obj, ir.Prop(k.Value, value))
			continue
		case *ir.NumberLiteralDescriptor:
			setProperty(obj, ir.Prop(typescript.TypeString(k), value))
			continue
		}
		obj.PatternIndexes = append(obj.PatternIndexes, ir.PatternIndex{Key: k, Value: value})
	}
	return obj, nil
}

func (r *Resolver) union(u *Unit, n *sitter.Node) (ir.TypeDescriptor, error) {
	var members []ir.TypeDescriptor
	for _, m := range flatten(n) {
		t, err := r.typeNode(u, m)
		if err != nil {
			return nil, err
		}
		members = appendUnion(members, t)
	}
	return makeUnion(members), nil
}

func (r *Resolver) intersection(u *Unit, n *sitter.Node) (ir.TypeDescriptor, error) {
	var members []ir.TypeDescriptor
	for _, m := range flatten(n) {
		t, err := r.typeNode(u, m)
		if err != nil {
			return nil, err
		}
		switch t := t.(type) {
		case *ir.IntersectionDescriptor:
			members = append(members, t.Types...)
		case *ir.UnknownDescriptor:
		default:
			members = append(members, t)
		}
	}
	switch len(members) {
	case 0:
		return ir.Unknown(), nil
	case 1:
		return members[0], nil
	}
	return ir.Intersection(members...), nil
}

// flatten returns the operands of a chain of the same binary type
// operator, in source order.
func flatten(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, c := range namedChildren(n) {
		if c.Kind() == n.Kind() {
			out = append(out, flatten(c)...)
			continue
		}
		out = append(out, c)
	}
	return out
}

// appendUnion adds t to a union's members, flattening nested unions and
// dropping repeated primitives and literals.
func appendUnion(members []ir.TypeDescriptor, t ir.TypeDescriptor) []ir.TypeDescriptor {
	if u, ok := t.(*ir.UnionDescriptor); ok {
		for _, m := range u.Types {
			members = appendUnion(members, m)
		}
		return members
	}
	if key, ok := unitKey(t); ok {
		for _, m := range members {
			if k, ok := unitKey(m); ok && k == key {
				return members
			}
		}
	}
	return append(members, t)
}

func unitKey(t ir.TypeDescriptor) (string, bool) {
	switch t.(type) {
	case *ir.PrimitiveDescriptor, *ir.NullDescriptor, *ir.StringLiteralDescriptor,
		*ir.NumberLiteralDescriptor, *ir.BooleanLiteralDescriptor, *ir.UnknownDescriptor:
		return typescript.TypeString(t), true
	}
	return "", false
}

// makeUnion builds a union the way the checker reduces one: unknown and
// any absorb every other member, and a single member stands alone.
func makeUnion(members []ir.TypeDescriptor) ir.TypeDescriptor {
	for _, m := range members {
		switch m := m.(type) {
		case *ir.UnknownDescriptor:
			return m
		case *ir.UnsupportedDescriptor:
			if m.Flags == "Any" {
				return m
			}
		}
	}
	if len(members) == 1 {
		return members[0]
	}
	return ir.Union(members...)
}

func (r *Resolver) literal(u *Unit, n *sitter.Node) (ir.TypeDescriptor, error) {
	v := firstNamed(n)
	if v == nil {
		return ir.Unsupported(u.text(n), "Literal"), nil
	}
	text := u.text(v)
	switch v.Kind() {
	case "string":
		return ir.StringLiteral(jsString(text)), nil
	case "number":
		if f, ok := parseNumber(text); ok {
			return ir.NumberLiteral(f), nil
		}
		return ir.Unsupported(text, "BigIntLiteral"), nil
	case "true":
		return ir.BooleanLiteral(true), nil
	case "false":
		return ir.BooleanLiteral(false), nil
	case "null":
		return ir.Null(), nil
	case "undefined":
		return ir.Undefined(), nil
	case "unary_expression":
		arg := firstNamed(v)
		op := v.ChildByFieldName("operator")
		if arg != nil && arg.Kind() == "number" && op != nil {
			if f, ok := parseNumber(u.text(arg)); ok {
				switch u.text(op) {
				case "-":
					return ir.NumberLiteral(-f), nil
				case "+":
					return ir.NumberLiteral(f), nil
				}
			}
		}
	}
	return ir.Unsupported(u.text(n), "Literal"), nil
}

// template reads a template literal type. Literal placeholders are folded
// into the surrounding text, and a template without placeholders is a
// string literal.
func (r *Resolver) template(u *Unit, n *sitter.Node) (ir.TypeDescriptor, error) {
	texts := []string{""}
	var types []ir.TypeDescriptor

	pos := int(n.StartByte()) + 1 // opening backtick
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c.Kind() != "template_type" {
			continue
		}
		texts[len(texts)-1] += unescape(string(u.Source[pos:c.StartByte()]))
		pos = int(c.EndByte())

		t, err := r.typeNode(u, firstNamed(c))
		if err != nil {
			return nil, err
		}
		switch t := t.(type) {
		case *ir.StringLiteralDescriptor:
			texts[len(texts)-1] += t.Value
		case *ir.NumberLiteralDescriptor, *ir.BooleanLiteralDescriptor, *ir.NullDescriptor:
			texts[len(texts)-1] += typescript.TypeString(t)
		case *ir.PrimitiveDescriptor:
			if t.PrimitiveKind == ir.PrimitiveUndefined {
				texts[len(texts)-1] += "undefined"
				continue
			}
			types = append(types, t)
			texts = append(texts, "")
		default:
			types = append(types, t)
			texts = append(texts, "")
		}
	}
	end := int(n.EndByte()) - 1 // closing backtick
	if pos < end {
		texts[len(texts)-1] += unescape(string(u.Source[pos:end]))
	}

	if len(types) == 0 {
		return ir.StringLiteral(texts[0]), nil
	}
	return ir.Template(texts, types...), nil
}

// object reads the members of one or more object type bodies.
func (r *Resolver) object(u *Unit, bodies []*sitter.Node) (ir.TypeDescriptor, error) {
	obj := &ir.ObjectDescriptor{}
	for _, body := range bodies {
		for _, m := range namedChildren(body) {
			switch m.Kind() {
			case "property_signature", "method_signature":
				p, err := r.property(u, m)
				if err != nil {
					return nil, err
				}
				setProperty(obj, p)
			case "index_signature":
				if childOfKind(m, "mapped_type_clause") != nil {
					return ir.Unsupported(u.text(body), "Mapped"), nil
				}
				if err := r.indexSignature(u, obj, m); err != nil {
					return nil, err
				}
			case "call_signature", "construct_signature":
				return ir.Unsupported(u.text(body), "Callable"), nil
			}
		}
	}
	return obj, nil
}

func (r *Resolver) property(u *Unit, m *sitter.Node) (ir.Property, error) {
	nameNode := m.ChildByFieldName("name")
	name := u.text(nameNode)
	switch nameNode.Kind() {
	case "string":
		name = jsString(name)
	case "number":
		if f, ok := parseNumber(name); ok {
			name = typescript.TypeString(ir.NumberLiteral(f))
		}
	case "computed_property_name":
		loc := location(u.Path, nameNode)
		return ir.Property{}, assertype.Errorf(assertype.CodeUnsupportedKey,
			"computed property name '%s' is not supported", name).
			WithDetails(map[string]any{"file": u.Path, "line": loc.Line})
	}
	optional := childOfKind(m, "?") != nil

	var t ir.TypeDescriptor
	if m.Kind() == "method_signature" {
		t = ir.Unsupported(u.text(m), "Method")
	} else {
		var err error
		if t, err = r.typeNode(u, m.ChildByFieldName("type")); err != nil {
			return ir.Property{}, err
		}
	}
	if optional {
		t = makeUnion(appendUnion(appendUnion(nil, t), ir.Undefined()))
	}
	return ir.Property{Name: name, Type: t, Optional: optional}, nil
}

func (r *Resolver) indexSignature(u *Unit, obj *ir.ObjectDescriptor, m *sitter.Node) error {
	key, err := r.typeNode(u, m.ChildByFieldName("index_type"))
	if err != nil {
		return err
	}
	value, err := r.typeNode(u, childOfKind(m, "type_annotation"))
	if err != nil {
		return err
	}
	if p, ok := key.(*ir.PrimitiveDescriptor); ok && p.PrimitiveKind == ir.PrimitiveString {
		obj.StringIndex = value
		return nil
	}
	obj.PatternIndexes = append(obj.PatternIndexes, ir.PatternIndex{Key: key, Value: value})
	return nil
}

// setProperty adds p, replacing an earlier property of the same name in
// place.
func setProperty(obj *ir.ObjectDescriptor, p ir.Property) {
	for i := range obj.Properties {
		if obj.Properties[i].Name == p.Name {
			obj.Properties[i] = p
			return
		}
	}
	obj.Properties = append(obj.Properties, p)
}

// interfaceType merges an interface's own members with those it inherits.
// Own members come first; inherited members follow unless overridden.
func (r *Resolver) interfaceType(u *Unit, d *typeDecl) (ir.TypeDescriptor, error) {
	bodies := make([]*sitter.Node, 0, len(d.nodes))
	var bases []*sitter.Node
	for _, n := range d.nodes {
		bodies = append(bodies, n.ChildByFieldName("body"))
		bases = append(bases, namedChildren(childOfKind(n, "extends_type_clause"))...)
	}
	own, err := r.object(u, bodies)
	if err != nil {
		return nil, err
	}
	obj, ok := own.(*ir.ObjectDescriptor)
	if !ok {
		return own, nil
	}

	for _, b := range bases {
		bt, err := r.typeNode(u, b)
		if err != nil {
			return nil, err
		}
		base, ok := bt.(*ir.ObjectDescriptor)
		if !ok {
			if unsupported, isUnsupported := bt.(*ir.UnsupportedDescriptor); isUnsupported {
				return unsupported, nil
			}
			return ir.Unsupported(u.text(b), "Heritage"), nil
		}
		for _, p := range base.Properties {
			if _, exists := obj.Property(p.Name); !exists {
				obj.Properties = append(obj.Properties, p)
			}
		}
		if obj.StringIndex == nil {
			obj.StringIndex = base.StringIndex
		}
		for _, idx := range base.PatternIndexes {
			if !hasPatternIndex(obj, idx.Key) {
				obj.PatternIndexes = append(obj.PatternIndexes, idx)
			}
		}
	}
	return obj, nil
}

func hasPatternIndex(obj *ir.ObjectDescriptor, key ir.TypeDescriptor) bool {
	want := typescript.TypeString(key)
	for _, idx := range obj.PatternIndexes {
		if typescript.TypeString(idx.Key) == want {
			return true
		}
	}
	return false
}

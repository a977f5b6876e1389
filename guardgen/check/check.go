// Package check synthesizes runtime conformance checks from type
// descriptors.
//
// Synthesize walks a descriptor and returns the boolean expressions a value
// must satisfy. Composite descriptors recurse into their members, and any
// member that places no constraint (for example unknown) simply drops out
// of the result. Descriptors outside the supported set are reported as
// *assertype.Error values with code unsupported_type.
package check

import (
	"errors"

	"github.com/broady/assertype"
	"github.com/broady/assertype/guardgen/ir"
	"github.com/broady/assertype/guardgen/typescript"
)

// Parameter names bound by generated callbacks.
const (
	ElementParam = "e"
	KeyParam     = "k"
	ValueParam   = "v"
)

// Synthesize returns the checks value must pass to conform to t.
func Synthesize(value typescript.Expr, t ir.TypeDescriptor) (Fragments, error) {
	switch t := t.(type) {
	case *ir.PrimitiveDescriptor:
		return Fragments{typeOfIs(value, t.PrimitiveKind.String())}, nil

	case *ir.UnionDescriptor:
		if ir.IsBooleanSet(t) {
			return Fragments{typeOfIs(value, "boolean")}, nil
		}
		return combine(value, t.Types, Fragments.Disjoin)

	case *ir.ArrayDescriptor:
		return synthesizeArray(value, t)

	case *ir.ClassDescriptor:
		return Fragments{typescript.InstanceOf(value, typescript.Ident(t.ClassName))}, nil

	case *ir.ObjectDescriptor:
		return synthesizeObject(value, t)

	case *ir.IntersectionDescriptor:
		return combine(value, t.Types, Fragments.Conjoin)

	case *ir.NullDescriptor:
		return Fragments{typescript.StrictEq(value, typescript.Null())}, nil

	case *ir.StringLiteralDescriptor:
		return Fragments{typescript.StrictEq(value, typescript.Str(t.Value))}, nil

	case *ir.NumberLiteralDescriptor:
		return Fragments{typescript.StrictEq(value, typescript.Num(t.Value))}, nil

	case *ir.TemplateDescriptor:
		return synthesizeTemplate(value, t)

	case *ir.BooleanLiteralDescriptor:
		return Fragments{typescript.StrictEq(value, typescript.Bool(t.Value))}, nil

	case *ir.UnknownDescriptor:
		return nil, nil

	default:
		return nil, unsupported(assertype.CodeUnsupportedType, "type", value, t)
	}
}

func typeOfIs(value typescript.Expr, tag string) typescript.Expr {
	return typescript.StrictEq(typescript.TypeOf(value), typescript.Str(tag))
}

// combine synthesizes each member, folds each member's own fragments with
// &&, drops unconstrained members and joins the survivors with join.
func combine(value typescript.Expr, members []ir.TypeDescriptor, join func(Fragments) (typescript.Expr, bool)) (Fragments, error) {
	var survivors Fragments
	for _, m := range members {
		frags, err := Synthesize(value, m)
		if err != nil {
			return nil, err
		}
		if e, ok := frags.Conjoin(); ok {
			survivors = append(survivors, e)
		}
	}
	if e, ok := join(survivors); ok {
		return Fragments{e}, nil
	}
	return nil, nil
}

func synthesizeArray(value typescript.Expr, t *ir.ArrayDescriptor) (Fragments, error) {
	out := Fragments{typescript.Call(typescript.Prop(typescript.Ident("Array"), "isArray"), value)}

	elem := typescript.Ident(ElementParam)
	frags, err := Synthesize(elem, t.Element)
	if err != nil {
		return nil, err
	}
	if body, ok := frags.Conjoin(); ok {
		out = append(out, typescript.Method(value, "every", typescript.Arrow(body, elem)))
	}
	return out, nil
}

func synthesizeObject(value typescript.Expr, t *ir.ObjectDescriptor) (Fragments, error) {
	out := Fragments{
		typeOfIs(value, "object"),
		typescript.StrictNe(value, typescript.Null()),
	}

	if t.StringIndex != nil {
		v := typescript.Ident(ValueParam)
		frags, err := Synthesize(v, t.StringIndex)
		if err != nil {
			return nil, err
		}
		if body, ok := frags.Conjoin(); ok {
			values := typescript.Call(typescript.Prop(typescript.Ident("Object"), "values"), value)
			out = append(out, typescript.Method(values, "every", typescript.Arrow(body, v)))
		}
	}

	for _, idx := range t.PatternIndexes {
		e, ok, err := patternIndex(value, idx)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, e)
		}
	}

	for _, p := range t.Properties {
		frags, err := Synthesize(typescript.Member(value, p.Name), p.Type)
		if err != nil {
			return nil, err
		}
		if e, ok := frags.Conjoin(); ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// patternIndex checks every entry of value against a template-keyed index
// signature. The check is dropped unless both the key and the value
// constrain something.
func patternIndex(value typescript.Expr, idx ir.PatternIndex) (typescript.Expr, bool, error) {
	if _, ok := idx.Key.(*ir.TemplateDescriptor); !ok {
		return nil, false, unsupported(assertype.CodeUnsupportedKey, "key type", value, idx.Key)
	}
	k, v := typescript.Ident(KeyParam), typescript.Ident(ValueParam)

	keyFrags, err := Synthesize(k, idx.Key)
	if err != nil {
		return nil, false, err
	}
	keyCheck, ok := keyFrags.Conjoin()
	if !ok {
		return nil, false, nil
	}
	valueFrags, err := Synthesize(v, idx.Value)
	if err != nil {
		return nil, false, err
	}
	valueCheck, ok := valueFrags.Conjoin()
	if !ok {
		return nil, false, nil
	}

	entries := typescript.Call(typescript.Prop(typescript.Ident("Object"), "entries"), value)
	lambda := typescript.Arrow(typescript.And(keyCheck, valueCheck), typescript.ArrayBinding(k, v))
	return typescript.Method(entries, "every", lambda), true, nil
}

func synthesizeTemplate(value typescript.Expr, t *ir.TemplateDescriptor) (Fragments, error) {
	pattern, err := TemplatePattern(t.Texts, t.Types)
	if err != nil {
		var e *assertype.Error
		if errors.As(err, &e) {
			return nil, e.WithDetail("expr", typescript.Print(value))
		}
		return nil, err
	}
	return Fragments{typescript.Method(typescript.Regex(pattern), "test", value)}, nil
}

func unsupported(code assertype.ErrorCode, what string, value typescript.Expr, t ir.TypeDescriptor) error {
	typ, kind := describe(t)
	expr := typescript.Print(value)
	return assertype.Errorf(code, "%s '%s' on '%s' with kind '%s' is not supported", what, typ, expr, kind).
		WithDetails(map[string]any{
			"type": typ,
			"expr": expr,
			"kind": kind,
		})
}

// describe returns the display name and kind tag of a descriptor.
func describe(t ir.TypeDescriptor) (typ, kind string) {
	switch t := t.(type) {
	case nil:
		return "<nil>", "Invalid"
	case *ir.UnsupportedDescriptor:
		return t.Syntax, t.Flags
	default:
		return typescript.TypeString(t), t.Kind().String()
	}
}

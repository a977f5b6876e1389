package typescript

import (
	"strings"

	"github.com/broady/assertype/guardgen/ir"
)

// TypeString renders a descriptor as TypeScript type syntax. It is used in
// diagnostics and by the dump command, so it favors readability over
// round-tripping: nested objects are printed inline and boolean literal
// pairs collapse back to boolean.
func TypeString(t ir.TypeDescriptor) string {
	var b strings.Builder
	writeType(&b, t)
	return b.String()
}

func writeType(b *strings.Builder, t ir.TypeDescriptor) {
	switch t := t.(type) {
	case nil:
		b.WriteString("unknown")
	case *ir.PrimitiveDescriptor:
		b.WriteString(t.PrimitiveKind.String())
	case *ir.NullDescriptor:
		b.WriteString("null")
	case *ir.UnknownDescriptor:
		b.WriteString("unknown")
	case *ir.StringLiteralDescriptor:
		b.WriteString(quoteString(t.Value))
	case *ir.NumberLiteralDescriptor:
		b.WriteString(formatNumber(t.Value))
	case *ir.BooleanLiteralDescriptor:
		if t.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *ir.ClassDescriptor:
		b.WriteString(t.ClassName)
	case *ir.ArrayDescriptor:
		switch t.Element.(type) {
		case *ir.UnionDescriptor, *ir.IntersectionDescriptor:
			b.WriteByte('(')
			writeType(b, t.Element)
			b.WriteByte(')')
		default:
			writeType(b, t.Element)
		}
		b.WriteString("[]")
	case *ir.UnionDescriptor:
		writeUnion(b, t)
	case *ir.IntersectionDescriptor:
		for i, m := range t.Types {
			if i > 0 {
				b.WriteString(" & ")
			}
			if u, ok := m.(*ir.UnionDescriptor); ok && !ir.IsBooleanSet(u) {
				b.WriteByte('(')
				writeType(b, m)
				b.WriteByte(')')
				continue
			}
			writeType(b, m)
		}
	case *ir.ObjectDescriptor:
		writeObject(b, t)
	case *ir.TemplateDescriptor:
		b.WriteByte('`')
		for i, text := range t.Texts {
			b.WriteString(strings.ReplaceAll(text, "`", "\\`"))
			if i < len(t.Types) {
				b.WriteString("${")
				writeType(b, t.Types[i])
				b.WriteByte('}')
			}
		}
		b.WriteByte('`')
	case *ir.UnsupportedDescriptor:
		b.WriteString(t.Syntax)
	default:
		b.WriteString(t.Kind().String())
	}
}

func writeUnion(b *strings.Builder, u *ir.UnionDescriptor) {
	if ir.IsBooleanSet(u) && len(u.Types) == 2 {
		b.WriteString("boolean")
		return
	}
	var sawFalse, sawTrue bool
	for _, m := range u.Types {
		if bl, ok := m.(*ir.BooleanLiteralDescriptor); ok {
			sawFalse = sawFalse || !bl.Value
			sawTrue = sawTrue || bl.Value
		}
	}
	collapse := sawFalse && sawTrue
	first := true
	wroteBoolean := false
	for _, m := range u.Types {
		if _, ok := m.(*ir.BooleanLiteralDescriptor); ok && collapse {
			if wroteBoolean {
				continue
			}
			if !first {
				b.WriteString(" | ")
			}
			b.WriteString("boolean")
			wroteBoolean = true
			first = false
			continue
		}
		if !first {
			b.WriteString(" | ")
		}
		first = false
		if _, ok := m.(*ir.IntersectionDescriptor); ok {
			b.WriteByte('(')
			writeType(b, m)
			b.WriteByte(')')
			continue
		}
		writeType(b, m)
	}
}

func writeObject(b *strings.Builder, o *ir.ObjectDescriptor) {
	if len(o.Properties) == 0 && o.StringIndex == nil && len(o.PatternIndexes) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{ ")
	if o.StringIndex != nil {
		b.WriteString("[key: string]: ")
		writeType(b, o.StringIndex)
		b.WriteString("; ")
	}
	for _, idx := range o.PatternIndexes {
		b.WriteString("[key: ")
		writeType(b, idx.Key)
		b.WriteString("]: ")
		writeType(b, idx.Value)
		b.WriteString("; ")
	}
	for _, p := range o.Properties {
		b.WriteString(propertyKey(p.Name))
		if p.Optional {
			b.WriteByte('?')
		}
		b.WriteString(": ")
		writeType(b, optionalValue(p))
		b.WriteString("; ")
	}
	b.WriteByte('}')
}

// optionalValue strips the undefined member added for an optional
// property so that x?: T prints as written.
func optionalValue(p ir.Property) ir.TypeDescriptor {
	u, ok := p.Type.(*ir.UnionDescriptor)
	if !p.Optional || !ok || len(u.Types) < 2 {
		return p.Type
	}
	last, ok := u.Types[len(u.Types)-1].(*ir.PrimitiveDescriptor)
	if !ok || last.PrimitiveKind != ir.PrimitiveUndefined {
		return p.Type
	}
	if len(u.Types) == 2 {
		return u.Types[0]
	}
	return ir.Union(u.Types[:len(u.Types)-1]...)
}

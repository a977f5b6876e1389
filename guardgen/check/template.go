package check

import (
	"strings"

	"github.com/broady/assertype"
	"github.com/broady/assertype/guardgen/ir"
)

// regexSpecial holds the characters escaped in literal template text.
const regexSpecial = `$^\.*+?()[]{}|/`

// TemplatePattern translates a template literal type into an anchored
// regular expression literal, delimiters included. Texts and types
// interleave as texts[0] types[0] texts[1] ... texts[n].
//
// Placeholders must be string or bigint; anything else fails with code
// unsupported_placeholder.
func TemplatePattern(texts []string, types []ir.TypeDescriptor) (string, error) {
	var b strings.Builder
	b.WriteString("/^")
	for i, text := range texts {
		writeEscaped(&b, text)
		if i < len(types) {
			p, err := placeholder(types[i])
			if err != nil {
				return "", err
			}
			b.WriteString(p)
		}
	}
	b.WriteString("$/")
	return b.String(), nil
}

func writeEscaped(b *strings.Builder, text string) {
	for _, r := range text {
		switch {
		case strings.ContainsRune(regexSpecial, r):
			b.WriteByte('\\')
			b.WriteRune(r)
		// Line terminators cannot appear inside a regex literal.
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\u2028':
			b.WriteString(`\u2028`)
		case r == '\u2029':
			b.WriteString(`\u2029`)
		default:
			b.WriteRune(r)
		}
	}
}

func placeholder(t ir.TypeDescriptor) (string, error) {
	if p, ok := t.(*ir.PrimitiveDescriptor); ok {
		switch p.PrimitiveKind {
		case ir.PrimitiveBigInt:
			return `-?\d+`, nil
		case ir.PrimitiveString:
			return `.*`, nil
		}
	}
	typ, kind := describe(t)
	return "", assertype.Errorf(assertype.CodeUnsupportedPlaceholder,
		"type '%s' in template literal with kind '%s' is not supported", typ, kind).
		WithDetails(map[string]any{"type": typ, "kind": kind})
}

package check

import (
	"testing"

	"github.com/broady/assertype"
	"github.com/broady/assertype/guardgen/ir"
)

func TestTemplatePattern(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		types []ir.TypeDescriptor
		want  string
	}{
		{
			name:  "bigint placeholder",
			texts: []string{"id-", ""},
			types: []ir.TypeDescriptor{ir.BigInt()},
			want:  `/^id--?\d+$/`,
		},
		{
			name:  "string placeholder",
			texts: []string{"", "@example.com"},
			types: []ir.TypeDescriptor{ir.String()},
			want:  `/^.*@example\.com$/`,
		},
		{
			name:  "escapes metacharacters",
			texts: []string{"v1.", "$", "(a|b)[c]{d}*+?^\\/"},
			types: []ir.TypeDescriptor{ir.String(), ir.BigInt()},
			want:  `/^v1\..*\$-?\d+\(a\|b\)\[c\]\{d\}\*\+\?\^\\\/$/`,
		},
		{
			name:  "no placeholders",
			texts: []string{"fixed"},
			want:  `/^fixed$/`,
		},
		{
			name:  "adjacent placeholders",
			texts: []string{"", "", ""},
			types: []ir.TypeDescriptor{ir.String(), ir.String()},
			want:  `/^.*.*$/`,
		},
		{
			name:  "line break",
			texts: []string{"a\nb"},
			want:  `/^a\nb$/`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TemplatePattern(tt.texts, tt.types)
			if err != nil {
				t.Fatalf("TemplatePattern() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("TemplatePattern() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTemplatePatternUnsupportedPlaceholder(t *testing.T) {
	for _, typ := range []ir.TypeDescriptor{
		ir.Number(),
		ir.StringLiteral("a"),
		ir.Union(ir.StringLiteral("a"), ir.StringLiteral("b")),
		ir.Undefined(),
	} {
		_, err := TemplatePattern([]string{"x", ""}, []ir.TypeDescriptor{typ})
		if !assertype.Is(err, assertype.CodeUnsupportedPlaceholder) {
			t.Errorf("placeholder %T: error = %v, want unsupported_placeholder", typ, err)
		}
	}
}

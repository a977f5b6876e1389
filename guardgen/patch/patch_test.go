package patch

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/broady/assertype"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		edits []Edit
		want  string
	}{
		{
			name: "no edits",
			src:  "abc",
			want: "abc",
		},
		{
			name:  "single replacement",
			src:   "let a = 1;",
			edits: []Edit{{Start: 8, End: 9, Text: "42"}},
			want:  "let a = 42;",
		},
		{
			name:  "keeps leading whitespace",
			src:   "x;\n\n  old\ny;",
			edits: []Edit{{Start: 2, End: 9, Text: "new"}},
			want:  "x;\n\n  new\ny;",
		},
		{
			name:  "all whitespace range inserts at end",
			src:   "a   b",
			edits: []Edit{{Start: 1, End: 4, Text: "+"}},
			want:  "a   +b",
		},
		{
			name:  "insertion",
			src:   "ab",
			edits: []Edit{{Start: 1, End: 1, Text: "X"}},
			want:  "aXb",
		},
		{
			name:  "deletion",
			src:   "a[gone]b",
			edits: []Edit{{Start: 1, End: 7, Text: ""}},
			want:  "ab",
		},
		{
			name: "adjacent edits",
			src:  "aaabbb",
			edits: []Edit{
				{Start: 0, End: 3, Text: "1"},
				{Start: 3, End: 6, Text: "22222"},
			},
			want: "122222",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply([]byte(tt.src), tt.edits)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Two stubs: the first replacement shrinks its range, the second grows
// it, and the second must land where the first's negative delta puts it.
func TestApplyShrinkThenGrow(t *testing.T) {
	src := "type A = string;\n" +
		"/** @assertype */ function A(v) { return false; }\n" +
		"type B = number;\n" +
		"/** @assertype */ function B(v) {}\n"

	firstStart := strings.Index(src, "string;") + len("string;")
	firstEnd := strings.Index(src, "false; }") + len("false; }")
	secondStart := strings.Index(src, "number;") + len("number;")
	secondEnd := strings.LastIndex(src, "{}") + len("{}")

	short := "function A(){}"
	long := "/** @ts-ignore @assertype */ // eslint-disable-next-line\nfunction B(v): v is B {\n    return typeof v === \"number\";\n}"

	got, err := Apply([]byte(src), []Edit{
		{Start: firstStart, End: firstEnd, Text: short},
		{Start: secondStart, End: secondEnd, Text: long},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := "type A = string;\n" + short + "\n" +
		"type B = number;\n" + long + "\n"
	if string(got) != want {
		t.Errorf("Apply() =\n%s\nwant\n%s", got, want)
	}
}

// naive applies edits back to front, which needs no offset bookkeeping.
func naive(src string, edits []Edit) string {
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		start := e.Start
		for start < e.End && strings.ContainsRune(" \t\r\n", rune(src[start])) {
			start++
		}
		src = src[:start] + e.Text + src[e.End:]
	}
	return src
}

func TestApplyMatchesNaiveSplicing(t *testing.T) {
	for k := 1; k <= 8; k++ {
		t.Run(fmt.Sprintf("%d stubs", k), func(t *testing.T) {
			var b strings.Builder
			var edits []Edit
			for i := 0; i < k; i++ {
				fmt.Fprintf(&b, "type T%d = { n: %d };", i, i)
				start := b.Len()
				b.WriteString(strings.Repeat("\n", i%3+1))
				fmt.Fprintf(&b, "/** @assertype */ function T%d(v) {%s}", i, strings.Repeat(" ", i*3))
				edits = append(edits, Edit{
					Start: start,
					End:   b.Len(),
					Text:  fmt.Sprintf("function T%d() { return %s; }", i, strings.Repeat("x", (i*7)%11)),
				})
				b.WriteString("\n")
			}
			src := b.String()

			got, err := Apply([]byte(src), edits)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if want := naive(src, edits); string(got) != want {
				t.Errorf("Apply() =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestApplyOverlap(t *testing.T) {
	_, err := Apply([]byte("0123456789"), []Edit{
		{Start: 2, End: 6, Text: "x"},
		{Start: 4, End: 8, Text: "y"},
	})
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("error = %v, want ErrOverlap", err)
	}
	if !assertype.Is(err, assertype.CodeOverlappingEdits) {
		t.Errorf("error code = %v, want overlapping_edits", err)
	}
}

func TestApplyOutOfRange(t *testing.T) {
	for _, e := range []Edit{
		{Start: -1, End: 2},
		{Start: 3, End: 2},
		{Start: 0, End: 11},
	} {
		if _, err := Apply([]byte("0123456789"), []Edit{e}); err == nil {
			t.Errorf("Apply(%+v) succeeded, want error", e)
		}
	}
}

func TestPatcher(t *testing.T) {
	src := []byte("aa bb cc")
	p := New(src)
	if err := p.Apply(Edit{Start: 0, End: 2, Text: "AAAA"}); err != nil {
		t.Fatal(err)
	}
	if got := p.translate(3); got != 5 {
		t.Errorf("translate(3) = %d, want 5", got)
	}
	if err := p.Apply(Edit{Start: 2, End: 5, Text: "B"}); err != nil {
		t.Fatal(err)
	}
	if got := string(p.Bytes()); got != "AAAA B cc" {
		t.Errorf("Bytes() = %q", got)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
	if string(src) != "aa bb cc" {
		t.Errorf("source mutated: %q", src)
	}
}

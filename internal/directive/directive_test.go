package directive

import (
	"reflect"
	"testing"

	"github.com/broady/assertype"
)

func TestTags(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    []Tag
	}{
		{
			name:    "single",
			comment: "/** @assertype */",
			want:    []Tag{{Name: "assertype"}},
		},
		{
			name:    "generated header",
			comment: "/** @ts-ignore @assertype */",
			want:    []Tag{{Name: "ts-ignore"}, {Name: "assertype"}},
		},
		{
			name:    "with arguments",
			comment: "/** @assertype param=value  export=false */",
			want:    []Tag{{Name: "assertype", Text: "param=value export=false"}},
		},
		{
			name: "multi-line",
			comment: `/**
 * Checks a user record.
 *
 * @deprecated use User instead
 * @assertype
 */`,
			want: []Tag{{Name: "deprecated", Text: "use User instead"}, {Name: "assertype"}},
		},
		{
			name:    "email address is not a tag",
			comment: "/** contact me@example.com @assertype */",
			want:    []Tag{{Name: "assertype"}},
		},
		{
			name:    "no tags",
			comment: "/** just docs */",
			want:    nil,
		},
		{
			name:    "block comment",
			comment: "/* @assertype */",
			want:    nil,
		},
		{
			name:    "line comment",
			comment: "// @assertype",
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tags(tt.comment)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tags() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	no := false
	tests := []struct {
		name     string
		comments []string
		marker   string
		want     *Directive
	}{
		{
			name:     "plain marker",
			comments: []string{"/** @assertype */"},
			marker:   DefaultMarker,
			want:     &Directive{Marker: "assertype"},
		},
		{
			name:     "marker after line comment",
			comments: []string{"/** @ts-ignore @assertype */", "// eslint-disable-next-line"},
			marker:   DefaultMarker,
			want:     &Directive{Marker: "assertype"},
		},
		{
			name:     "options",
			comments: []string{"/** @assertype param=input export=false */"},
			marker:   DefaultMarker,
			want: &Directive{
				Marker:  "assertype",
				Args:    "param=input export=false",
				Options: Options{Param: "input", Export: &no},
			},
		},
		{
			name:     "trailing description",
			comments: []string{"/**\n * @assertype\n * Checks that a value is a Foo.\n */"},
			marker:   DefaultMarker,
			want:     &Directive{Marker: "assertype"},
		},
		{
			name:     "options mixed with description",
			comments: []string{"/** @assertype param=x checks x = y */"},
			marker:   DefaultMarker,
			want:     &Directive{Marker: "assertype", Args: "param=x", Options: Options{Param: "x"}},
		},
		{
			name:     "custom marker",
			comments: []string{"/** @assertype */", "/** @guard */"},
			marker:   "guard",
			want:     &Directive{Marker: "guard"},
		},
		{
			name:     "missing",
			comments: []string{"/** @param v the value */"},
			marker:   DefaultMarker,
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(tt.comments, tt.marker)
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Find() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindInvalid(t *testing.T) {
	tests := []string{
		"/** @assertype export=maybe */",
		"/** @assertype param=class */",
		"/** @assertype param=1x */",
		"/** @assertype color=red */",
	}
	for _, comment := range tests {
		_, err := Find([]string{comment}, DefaultMarker)
		if !assertype.Is(err, assertype.CodeInvalidDirective) {
			t.Errorf("Find(%q) error = %v, want invalid_directive", comment, err)
		}
	}
}

func TestDirectiveHeader(t *testing.T) {
	d, err := Find([]string{"/** @assertype */"}, DefaultMarker)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := d.Header(), "/** @ts-ignore @assertype */ // eslint-disable-next-line"; got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}

	d, err = Find([]string{"/** @assertype param=x */"}, DefaultMarker)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := d.Header(), "/** @ts-ignore @assertype param=x */ // eslint-disable-next-line"; got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}
	if d.String() != "@assertype param=x" {
		t.Errorf("String() = %q", d.String())
	}

	// The header must parse back to the same directive.
	again, err := Find([]string{"/** @ts-ignore @assertype param=x */"}, DefaultMarker)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(again, d) {
		t.Errorf("header round trip = %+v, want %+v", again, d)
	}

	// A description after the marker is not carried into the header.
	d, err = Find([]string{"/**\n * @assertype param=x\n * Checks that a value is a Foo.\n */"}, DefaultMarker)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := d.Header(), "/** @ts-ignore @assertype param=x */ // eslint-disable-next-line"; got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}
}

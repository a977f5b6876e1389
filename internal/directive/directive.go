// Package directive parses assertype marker tags from JSDoc comments.
//
// A marker is a block tag on the stub function's leading JSDoc comment:
//
//	/** @assertype */
//	/** @assertype param=value export=false */
//
// Arguments are optional key=value pairs. Other text after the tag, such
// as a description, is ignored. The tag name is configurable; "assertype"
// is the default.
package directive

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/broady/assertype"
	"github.com/broady/assertype/guardgen/typescript"
)

// DefaultMarker is the tag name that opts a stub into generation.
const DefaultMarker = "assertype"

var decoder = schema.NewDecoder()

// Directive is a parsed marker tag.
type Directive struct {
	// Marker is the tag name without the leading @.
	Marker string

	// Args holds the key=value arguments following the tag, space
	// separated. It is re-emitted verbatim in the generated header.
	Args string

	// Options holds the decoded arguments.
	Options Options
}

// Options are the key=value arguments a marker tag accepts.
type Options struct {
	// Param overrides the guard's parameter name.
	Param string `schema:"param"`

	// Export overrides whether the guard is exported. By default the
	// guard follows the type declaration.
	Export *bool `schema:"export"`
}

// Tag is a single JSDoc block tag.
type Tag struct {
	Name string
	Text string
}

// isJSDoc reports whether comment is a /** ... */ block.
func isJSDoc(comment string) bool {
	return strings.HasPrefix(comment, "/**") && strings.HasSuffix(comment, "*/") && len(comment) >= 5
}

// Tags returns the block tags in a JSDoc comment, in order. A tag starts
// at an @ that begins the comment body or follows whitespace, so
// "/** @ts-ignore @assertype */" holds two tags.
func Tags(comment string) []Tag {
	if !isJSDoc(comment) {
		return nil
	}
	body := comment[3 : len(comment)-2]

	var lines []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		lines = append(lines, line)
	}
	body = strings.Join(lines, "\n")

	var tags []Tag
	cur := -1
	var text strings.Builder
	flush := func() {
		if cur >= 0 {
			tags[cur].Text = strings.Join(strings.Fields(text.String()), " ")
		}
		text.Reset()
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '@' && (i == 0 || isSpace(body[i-1])) {
			j := i + 1
			for j < len(body) && isTagChar(body[j]) {
				j++
			}
			if j > i+1 {
				flush()
				tags = append(tags, Tag{Name: body[i+1 : j]})
				cur = len(tags) - 1
				i = j - 1
				continue
			}
		}
		if cur >= 0 {
			text.WriteByte(c)
		}
	}
	flush()
	return tags
}

// Find returns the first marker tag in comments, or nil. Comments that
// are not JSDoc blocks are ignored.
func Find(comments []string, marker string) (*Directive, error) {
	for _, c := range comments {
		for _, tag := range Tags(c) {
			if tag.Name != marker {
				continue
			}
			return parse(marker, tag.Text)
		}
	}
	return nil, nil
}

func parse(marker, text string) (*Directive, error) {
	d := &Directive{Marker: marker}

	values := url.Values{}
	var args []string
	for _, field := range strings.Fields(text) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			continue
		}
		values.Add(key, value)
		args = append(args, field)
	}
	if len(args) == 0 {
		return d, nil
	}
	d.Args = strings.Join(args, " ")
	if err := decoder.Decode(&d.Options, values); err != nil {
		return nil, assertype.Errorf(assertype.CodeInvalidDirective, "@%s: %v", marker, err)
	}
	if d.Options.Param != "" && !typescript.IsBindingName(d.Options.Param) {
		return nil, assertype.Errorf(assertype.CodeInvalidDirective,
			"@%s: param %q is not a valid identifier", marker, d.Options.Param)
	}
	return d, nil
}

// Header returns the comment line that replaces the stub's JSDoc.
func (d *Directive) Header() string {
	return typescript.Header(d.Marker, d.Args)
}

func (d *Directive) String() string {
	if d.Args == "" {
		return "@" + d.Marker
	}
	return fmt.Sprintf("@%s %s", d.Marker, d.Args)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isTagChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-' || c == '$'
}

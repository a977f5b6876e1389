package provider

import (
	"fmt"
	"sort"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/broady/assertype"
	"github.com/broady/assertype/guardgen/ir"
	"github.com/broady/assertype/internal/directive"
)

// Stub is a marker-tagged function paired with the type declaration of
// the same name.
type Stub struct {
	// Name is the declared type name, which is also the function name.
	Name string

	// Exported is true when the guard should be exported. It follows the
	// type declaration unless the directive overrides it.
	Exported bool

	// Directive is the parsed marker tag.
	Directive *directive.Directive

	// Source is the location of the type declaration.
	Source ir.Source

	// Start and End delimit the original text to replace: from the JSDoc
	// comment carrying the marker through the end of the function.
	Start int
	End   int
}

// Stubs returns the stubs of the unit in source order. Declarations
// without a tagged function are skipped. Generic declarations are skipped
// with a warning, since a guard cannot be written for an open type.
func (u *Unit) Stubs(marker string) ([]Stub, []ir.Warning, error) {
	var (
		stubs    []Stub
		warnings []ir.Warning
	)
	for _, d := range u.order {
		fn, dir, comment, err := u.taggedFunc(d.name, marker)
		if err != nil {
			return nil, nil, err
		}
		if fn == nil {
			continue
		}
		if d.generic {
			src := d.source
			warnings = append(warnings, ir.Warning{
				Code:     "generic_declaration",
				Message:  fmt.Sprintf("skipping %s: generic declarations have no runtime guard", d.name),
				Source:   &src,
				TypeName: d.name,
			})
			continue
		}

		exported := d.exported
		if dir.Options.Export != nil {
			exported = *dir.Options.Export
		}
		stubs = append(stubs, Stub{
			Name:      d.name,
			Exported:  exported,
			Directive: dir,
			Source:    d.source,
			Start:     int(comment.StartByte()),
			End:       int(fn.stmt.EndByte()),
		})
	}
	sort.Slice(stubs, func(i, j int) bool { return stubs[i].Start < stubs[j].Start })
	return stubs, warnings, nil
}

// taggedFunc finds the first function named name whose leading comments
// carry the marker tag. It also returns the comment holding the tag.
func (u *Unit) taggedFunc(name, marker string) (*funcDecl, *directive.Directive, *sitter.Node, error) {
	for _, fn := range u.funcs {
		if fn.name != name {
			continue
		}
		for _, c := range fn.comments {
			dir, err := directive.Find([]string{u.text(c)}, marker)
			if err != nil {
				loc := location(u.Path, c)
				return nil, nil, nil, assertype.InFile(withLine(err, loc.Line), u.Path)
			}
			if dir != nil {
				return fn, dir, c, nil
			}
		}
	}
	return nil, nil, nil, nil
}

func withLine(err error, line int) error {
	if e, ok := err.(*assertype.Error); ok {
		return e.WithDetail("line", line)
	}
	return err
}

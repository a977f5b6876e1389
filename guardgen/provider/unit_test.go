package provider

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/assertype"
	"github.com/broady/assertype/guardgen/ir"
	"github.com/broady/assertype/internal/directive"
)

const stubSource = `// Copyright header stays put.
export type User = { name: string };

/** @assertype */
export function User(v: unknown): v is User { return false; }

interface Point { x: number }
/** Docs are kept. */
/** @ts-ignore @assertype */ // eslint-disable-next-line
function Point(v) {}

type Other = string;
function Other(v) {}

type Gen<T> = { v: T };
/** @assertype */
function Gen(v) {}

export type Hidden = null;
/** @assertype export=false param=value */
export function Hidden(value: unknown): value is Hidden;
`

func TestStubs(t *testing.T) {
	u, err := Parse("stubs.ts", []byte(stubSource))
	require.NoError(t, err)
	defer u.Close()

	stubs, warnings, err := u.Stubs(directive.DefaultMarker)
	require.NoError(t, err)
	require.Len(t, stubs, 3)

	user := stubs[0]
	assert.Equal(t, "User", user.Name)
	assert.True(t, user.Exported)
	assert.Equal(t, strings.Index(stubSource, "/** @assertype */\nexport function User"), user.Start)
	assert.Equal(t, strings.Index(stubSource, "return false; }")+len("return false; }"), user.End)
	assert.Equal(t, 2, user.Source.Line)

	point := stubs[1]
	assert.Equal(t, "Point", point.Name)
	assert.False(t, point.Exported)
	assert.Equal(t, strings.Index(stubSource, "/** @ts-ignore"), point.Start)
	assert.Equal(t, strings.Index(stubSource, "function Point(v) {}")+len("function Point(v) {}"), point.End)
	assert.Equal(t, "/** @ts-ignore @assertype */ // eslint-disable-next-line", point.Directive.Header())

	hidden := stubs[2]
	assert.Equal(t, "Hidden", hidden.Name)
	assert.False(t, hidden.Exported)
	assert.Equal(t, "value", hidden.Directive.Options.Param)
	assert.True(t, strings.HasSuffix(strings.TrimSuffix(stubSource[hidden.Start:hidden.End], ";"), "value is Hidden"))

	require.Len(t, warnings, 1)
	assert.Equal(t, "generic_declaration", warnings[0].Code)
	assert.Equal(t, "Gen", warnings[0].TypeName)
}

func TestStubsCustomMarker(t *testing.T) {
	src := `type A = string;
/** @guard */
function A(v) {}
/** @assertype */
function A(v) {}
`
	u, err := Parse("a.ts", []byte(src))
	require.NoError(t, err)
	defer u.Close()

	stubs, _, err := u.Stubs("guard")
	require.NoError(t, err)
	require.Len(t, stubs, 1)
	assert.Equal(t, strings.Index(src, "/** @guard */"), stubs[0].Start)
}

func TestStubsInvalidDirective(t *testing.T) {
	src := "type A = string;\n/** @assertype param=class */\nfunction A(v) {}\n"
	u, err := Parse("a.ts", []byte(src))
	require.NoError(t, err)
	defer u.Close()

	_, _, err = u.Stubs(directive.DefaultMarker)
	e := assertype.Describe(err)
	require.NotNil(t, e)
	assert.Equal(t, assertype.CodeInvalidDirective, e.Code)
	assert.Equal(t, "a.ts", e.Details["file"])
	assert.Equal(t, 2, e.Details["line"])
}

func TestStubsClassMergedWithInterface(t *testing.T) {
	for name, src := range map[string]string{
		"class first":     "class X {}\ninterface X { a: number }\n/** @assertype */\nfunction X(v) {}\n",
		"interface first": "interface X { a: number }\nclass X {}\n/** @assertype */\nfunction X(v) {}\n",
		"split interface": "class X {}\ninterface X { a: number }\nexport interface X { b: string }\n/** @assertype */\nfunction X(v) {}\n",
	} {
		t.Run(name, func(t *testing.T) {
			l := NewLoader()
			defer l.Close()
			u, err := l.Parse("x.ts", []byte(src))
			require.NoError(t, err)

			stubs, _, err := u.Stubs(directive.DefaultMarker)
			require.NoError(t, err)
			require.Len(t, stubs, 1)
			assert.Equal(t, "X", stubs[0].Name)

			got, err := l.Resolver(u).Resolve("X")
			require.NoError(t, err)
			assert.Equal(t, ir.Class("X"), got)
		})
	}
}

func TestDeclarations(t *testing.T) {
	u, err := Parse("stubs.ts", []byte(stubSource))
	require.NoError(t, err)
	defer u.Close()

	var names []string
	for _, d := range u.Declarations() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"User", "Point", "Other", "Gen", "Hidden"}, names)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("bad.ts", []byte("type A = {\n  x: number\n\ntype B = ;"))
	require.Error(t, err)
	e := assertype.Describe(err)
	assert.Equal(t, assertype.CodeSyntax, e.Code)
	assert.Equal(t, "bad.ts", e.Details["file"])
	assert.NotZero(t, e.Details["line"])
}

func TestParseTSX(t *testing.T) {
	src := `type Props = { title: string };
/** @assertype */
function Props(v) {}
export const App = (p: Props) => <h1>{p.title}</h1>;
`
	u, err := Parse("app.tsx", []byte(src))
	require.NoError(t, err)
	defer u.Close()

	stubs, _, err := u.Stubs(directive.DefaultMarker)
	require.NoError(t, err)
	require.Len(t, stubs, 1)
	assert.Equal(t, "Props", stubs[0].Name)
}

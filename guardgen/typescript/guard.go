package typescript

import (
	"bytes"
	"fmt"
)

// DefaultParam is the name of the guard's single parameter.
const DefaultParam = "v"

const indent = "    "

// Guard describes a generated type guard function.
type Guard struct {
	// Name is the function name and the asserted type.
	Name string
	// Param is the parameter name. Empty means DefaultParam.
	Param string
	// Export adds the export modifier.
	Export bool
	// Header is the comment line printed above the function, without
	// its trailing newline. Empty means Header("assertype", "").
	Header string
	// Body is the boolean expression returned by the guard.
	Body Expr
}

// Header returns the comment line that marks a generated guard. It
// suppresses type errors in the function body and re-emits the marker tag
// so that the stub is found again on the next run.
func Header(marker, args string) string {
	tag := "@" + marker
	if args != "" {
		tag += " " + args
	}
	return fmt.Sprintf("/** @ts-ignore %s */ // eslint-disable-next-line", tag)
}

// PrintGuard renders the guard as TypeScript source:
//
//	/** @ts-ignore @assertype */ // eslint-disable-next-line
//	export function Name(v): v is Name {
//	    return <body>;
//	}
//
// The result has no trailing newline.
func PrintGuard(g Guard) string {
	param := g.Param
	if param == "" {
		param = DefaultParam
	}
	header := g.Header
	if header == "" {
		header = Header("assertype", "")
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteByte('\n')
	if g.Export {
		buf.WriteString("export ")
	}
	fmt.Fprintf(&buf, "function %s(%s): %s is %s {\n", g.Name, param, param, g.Name)
	buf.WriteString(indent)
	buf.WriteString("return ")
	buf.WriteString(Print(g.Body))
	buf.WriteString(";\n}")
	return buf.String()
}

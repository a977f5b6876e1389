// Package typescript builds and prints the JavaScript expressions and
// TypeScript declarations that make up generated type guards.
package typescript

// Expr is a JavaScript expression node. Nodes are immutable and may be
// shared between trees.
type Expr interface {
	precedence() int
	write(p *printer)
}

// Binding is an arrow function parameter: an identifier or an array
// destructuring pattern.
type Binding interface {
	binding()
	writeBinding(p *printer)
}

// Operator precedence levels, following the ECMAScript grammar.
const (
	precArrow      = 2
	precOr         = 4
	precAnd        = 5
	precEquality   = 10
	precRelational = 11
	precUnary      = 15
	precMember     = 18
	precPrimary    = 20
)

// Identifier is a name reference such as v or Array.
type Identifier struct {
	Name string
}

// StringLiteral is a double-quoted string literal.
type StringLiteral struct {
	Value string
}

// NumericLiteral is a number literal.
type NumericLiteral struct {
	Value float64
}

// Keyword is one of null, true or false.
type Keyword struct {
	Text string
}

// RegexLiteral is a regular expression literal including its slashes and
// flags, e.g. /^a$/.
type RegexLiteral struct {
	Text string
}

// TypeOfExpr is typeof Operand.
type TypeOfExpr struct {
	Operand Expr
}

// BinaryExpr is Left Op Right.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

// PropertyAccess is Object.Name.
type PropertyAccess struct {
	Object Expr
	Name   string
}

// ElementAccess is Object[Key].
type ElementAccess struct {
	Object Expr
	Key    Expr
}

// CallExpr is Callee(Args...).
type CallExpr struct {
	Callee Expr
	Args   []Expr
}

// ArrowFunc is (Params...) => Body with an expression body.
type ArrowFunc struct {
	Params []Binding
	Body   Expr
}

// ArrayBindingPattern is [a, b] in parameter position.
type ArrayBindingPattern struct {
	Elements []*Identifier
}

func (*Identifier) binding()          {}
func (*ArrayBindingPattern) binding() {}

func (*Identifier) precedence() int     { return precPrimary }
func (*StringLiteral) precedence() int  { return precPrimary }
func (*Keyword) precedence() int        { return precPrimary }
func (*RegexLiteral) precedence() int   { return precPrimary }
func (*TypeOfExpr) precedence() int     { return precUnary }
func (*PropertyAccess) precedence() int { return precMember }
func (*ElementAccess) precedence() int  { return precMember }
func (*CallExpr) precedence() int       { return precMember }
func (*ArrowFunc) precedence() int      { return precArrow }

func (n *NumericLiteral) precedence() int {
	if n.Value < 0 {
		return precUnary
	}
	return precPrimary
}

func (b *BinaryExpr) precedence() int {
	switch b.Op {
	case "||":
		return precOr
	case "&&":
		return precAnd
	case "===", "!==", "==", "!=":
		return precEquality
	case "instanceof", "in", "<", ">", "<=", ">=":
		return precRelational
	default:
		return precArrow
	}
}

// Ident returns an identifier reference.
func Ident(name string) *Identifier { return &Identifier{Name: name} }

// Str returns a string literal.
func Str(v string) *StringLiteral { return &StringLiteral{Value: v} }

// Num returns a numeric literal.
func Num(v float64) *NumericLiteral { return &NumericLiteral{Value: v} }

// Null returns the null literal.
func Null() *Keyword { return &Keyword{Text: "null"} }

// True returns the true literal.
func True() *Keyword { return &Keyword{Text: "true"} }

// False returns the false literal.
func False() *Keyword { return &Keyword{Text: "false"} }

// Bool returns true or false.
func Bool(v bool) *Keyword {
	if v {
		return True()
	}
	return False()
}

// Regex returns a regular expression literal. text must include the
// delimiting slashes.
func Regex(text string) *RegexLiteral { return &RegexLiteral{Text: text} }

// TypeOf returns typeof e.
func TypeOf(e Expr) *TypeOfExpr { return &TypeOfExpr{Operand: e} }

// StrictEq returns l === r.
func StrictEq(l, r Expr) *BinaryExpr { return &BinaryExpr{Op: "===", Left: l, Right: r} }

// StrictNe returns l !== r.
func StrictNe(l, r Expr) *BinaryExpr { return &BinaryExpr{Op: "!==", Left: l, Right: r} }

// And returns l && r.
func And(l, r Expr) *BinaryExpr { return &BinaryExpr{Op: "&&", Left: l, Right: r} }

// Or returns l || r.
func Or(l, r Expr) *BinaryExpr { return &BinaryExpr{Op: "||", Left: l, Right: r} }

// InstanceOf returns l instanceof r.
func InstanceOf(l, r Expr) *BinaryExpr { return &BinaryExpr{Op: "instanceof", Left: l, Right: r} }

// Prop returns obj.name. The caller guarantees name is an identifier.
func Prop(obj Expr, name string) *PropertyAccess { return &PropertyAccess{Object: obj, Name: name} }

// Elem returns obj[key].
func Elem(obj, key Expr) *ElementAccess { return &ElementAccess{Object: obj, Key: key} }

// Call returns callee(args...).
func Call(callee Expr, args ...Expr) *CallExpr { return &CallExpr{Callee: callee, Args: args} }

// Method returns obj.name(args...).
func Method(obj Expr, name string, args ...Expr) *CallExpr {
	return Call(Prop(obj, name), args...)
}

// Arrow returns an arrow function with an expression body.
func Arrow(body Expr, params ...Binding) *ArrowFunc { return &ArrowFunc{Params: params, Body: body} }

// ArrayBinding returns an array destructuring pattern.
func ArrayBinding(elems ...*Identifier) *ArrayBindingPattern {
	return &ArrayBindingPattern{Elements: elems}
}

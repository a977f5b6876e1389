package typescript

import "strings"

type printer struct {
	strings.Builder
}

// Print renders an expression as JavaScript source. Output is
// deterministic: parentheses are inserted only where precedence requires
// them, with && and || treated as left-associative.
func Print(e Expr) string {
	var p printer
	e.write(&p)
	return p.String()
}

// child writes e, parenthesized when its precedence is below min.
func (p *printer) child(e Expr, min int) {
	if e.precedence() < min {
		p.WriteByte('(')
		e.write(p)
		p.WriteByte(')')
		return
	}
	e.write(p)
}

func (n *Identifier) write(p *printer)     { p.WriteString(n.Name) }
func (n *StringLiteral) write(p *printer)  { p.WriteString(quoteString(n.Value)) }
func (n *NumericLiteral) write(p *printer) { p.WriteString(formatNumber(n.Value)) }
func (n *Keyword) write(p *printer)        { p.WriteString(n.Text) }
func (n *RegexLiteral) write(p *printer)   { p.WriteString(n.Text) }

func (n *TypeOfExpr) write(p *printer) {
	p.WriteString("typeof ")
	p.child(n.Operand, precUnary)
}

func (n *BinaryExpr) write(p *printer) {
	prec := n.precedence()
	p.child(n.Left, prec)
	p.WriteByte(' ')
	p.WriteString(n.Op)
	p.WriteByte(' ')
	p.child(n.Right, prec+1)
}

func (n *PropertyAccess) write(p *printer) {
	p.child(n.Object, precMember)
	p.WriteByte('.')
	p.WriteString(n.Name)
}

func (n *ElementAccess) write(p *printer) {
	p.child(n.Object, precMember)
	p.WriteByte('[')
	n.Key.write(p)
	p.WriteByte(']')
}

func (n *CallExpr) write(p *printer) {
	p.child(n.Callee, precMember)
	p.WriteByte('(')
	for i, arg := range n.Args {
		if i > 0 {
			p.WriteString(", ")
		}
		p.child(arg, precArrow)
	}
	p.WriteByte(')')
}

func (n *ArrowFunc) write(p *printer) {
	if len(n.Params) == 1 {
		if id, ok := n.Params[0].(*Identifier); ok {
			p.WriteString(id.Name)
			p.WriteString(" => ")
			p.child(n.Body, precArrow)
			return
		}
	}
	p.WriteByte('(')
	for i, param := range n.Params {
		if i > 0 {
			p.WriteString(", ")
		}
		param.writeBinding(p)
	}
	p.WriteString(") => ")
	p.child(n.Body, precArrow)
}

func (n *Identifier) writeBinding(p *printer) { p.WriteString(n.Name) }

func (n *ArrayBindingPattern) writeBinding(p *printer) {
	p.WriteByte('[')
	for i, el := range n.Elements {
		if i > 0 {
			p.WriteString(", ")
		}
		p.WriteString(el.Name)
	}
	p.WriteByte(']')
}

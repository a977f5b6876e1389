package ir

// NullDescriptor represents the null type.
type NullDescriptor struct{ exprBase }

// Kind returns KindNull.
func (d *NullDescriptor) Kind() DescriptorKind { return KindNull }

// Null returns a NullDescriptor.
func Null() *NullDescriptor { return &NullDescriptor{} }

// UnknownDescriptor represents the top type. It always passes.
type UnknownDescriptor struct{ exprBase }

// Kind returns KindUnknown.
func (d *UnknownDescriptor) Kind() DescriptorKind { return KindUnknown }

// Unknown returns an UnknownDescriptor.
func Unknown() *UnknownDescriptor { return &UnknownDescriptor{} }

// StringLiteralDescriptor represents a string literal type ("a").
type StringLiteralDescriptor struct {
	exprBase
	Value string
}

// Kind returns KindStringLiteral.
func (d *StringLiteralDescriptor) Kind() DescriptorKind { return KindStringLiteral }

// StringLiteral returns a StringLiteralDescriptor.
func StringLiteral(v string) *StringLiteralDescriptor {
	return &StringLiteralDescriptor{Value: v}
}

// NumberLiteralDescriptor represents a numeric literal type (42, -1.5).
type NumberLiteralDescriptor struct {
	exprBase
	Value float64
}

// Kind returns KindNumberLiteral.
func (d *NumberLiteralDescriptor) Kind() DescriptorKind { return KindNumberLiteral }

// NumberLiteral returns a NumberLiteralDescriptor.
func NumberLiteral(v float64) *NumberLiteralDescriptor {
	return &NumberLiteralDescriptor{Value: v}
}

// BooleanLiteralDescriptor represents true or false as a type.
type BooleanLiteralDescriptor struct {
	exprBase
	Value bool
}

// Kind returns KindBooleanLiteral.
func (d *BooleanLiteralDescriptor) Kind() DescriptorKind { return KindBooleanLiteral }

// BooleanLiteral returns a BooleanLiteralDescriptor.
func BooleanLiteral(v bool) *BooleanLiteralDescriptor {
	return &BooleanLiteralDescriptor{Value: v}
}

// Boolean returns the boolean type, which is the union false | true.
func Boolean() *UnionDescriptor {
	return Union(BooleanLiteral(false), BooleanLiteral(true))
}

// IsBooleanSet reports whether every member of u is a boolean literal.
func IsBooleanSet(u *UnionDescriptor) bool {
	if len(u.Types) == 0 {
		return false
	}
	for _, t := range u.Types {
		if _, ok := t.(*BooleanLiteralDescriptor); !ok {
			return false
		}
	}
	return true
}

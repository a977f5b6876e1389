package ir

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	KindPrimitive      DescriptorKind = iota // string, number, bigint, undefined
	KindArray                                // T[] / Array<T>
	KindClass                                // instance of a named class
	KindObject                               // object literal type or interface
	KindUnion                                // T1 | T2 | ...
	KindIntersection                         // T1 & T2 & ...
	KindNull                                 // null
	KindStringLiteral                        // "a"
	KindNumberLiteral                        // 42
	KindBooleanLiteral                       // true / false
	KindTemplate                             // `id-${bigint}`
	KindUnknown                              // unknown
	KindUnsupported                          // anything the generator cannot check
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindArray:
		return "Array"
	case KindClass:
		return "Class"
	case KindObject:
		return "Object"
	case KindUnion:
		return "Union"
	case KindIntersection:
		return "Intersection"
	case KindNull:
		return "Null"
	case KindStringLiteral:
		return "StringLiteral"
	case KindNumberLiteral:
		return "NumberLiteral"
	case KindBooleanLiteral:
		return "BooleanLiteral"
	case KindTemplate:
		return "TemplateLiteral"
	case KindUnknown:
		return "Unknown"
	case KindUnsupported:
		return "Unsupported"
	default:
		return "Invalid"
	}
}

// TypeDescriptor is the base interface for all type descriptors.
// Descriptors are immutable once built.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

type exprBase struct{}

func (exprBase) sealed() {}

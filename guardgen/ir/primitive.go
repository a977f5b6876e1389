package ir

// PrimitiveKind identifies a primitive that is checked with typeof.
type PrimitiveKind int

const (
	PrimitiveString PrimitiveKind = iota
	PrimitiveNumber
	PrimitiveBigInt
	PrimitiveUndefined
)

// String returns the typeof tag of the primitive kind.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveString:
		return "string"
	case PrimitiveNumber:
		return "number"
	case PrimitiveBigInt:
		return "bigint"
	case PrimitiveUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// PrimitiveDescriptor represents a primitive whose runtime check is a
// typeof comparison.
type PrimitiveDescriptor struct {
	exprBase
	PrimitiveKind PrimitiveKind
}

// Kind returns KindPrimitive.
func (d *PrimitiveDescriptor) Kind() DescriptorKind { return KindPrimitive }

// String returns a PrimitiveDescriptor for string.
func String() *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveString}
}

// Number returns a PrimitiveDescriptor for number.
func Number() *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveNumber}
}

// BigInt returns a PrimitiveDescriptor for bigint.
func BigInt() *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveBigInt}
}

// Undefined returns a PrimitiveDescriptor for undefined.
func Undefined() *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveUndefined}
}

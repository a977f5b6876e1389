package ir

// ArrayDescriptor represents an array of a single element type.
// Tuples are not arrays; providers report them as UnsupportedDescriptor.
type ArrayDescriptor struct {
	exprBase

	// Element is the array element type.
	Element TypeDescriptor
}

// Kind returns KindArray.
func (d *ArrayDescriptor) Kind() DescriptorKind { return KindArray }

// Array returns an ArrayDescriptor.
func Array(element TypeDescriptor) *ArrayDescriptor {
	return &ArrayDescriptor{Element: element}
}

// ClassDescriptor represents an instance of a class, checked with instanceof.
// The name must resolve in the scope of the file the guard is written to.
type ClassDescriptor struct {
	exprBase
	ClassName string
}

// Kind returns KindClass.
func (d *ClassDescriptor) Kind() DescriptorKind { return KindClass }

// Class returns a ClassDescriptor.
func Class(name string) *ClassDescriptor {
	return &ClassDescriptor{ClassName: name}
}

// UnionDescriptor represents a union of types (T1 | T2 | ...).
type UnionDescriptor struct {
	exprBase

	// Types contains the union members in source order.
	Types []TypeDescriptor
}

// Kind returns KindUnion.
func (d *UnionDescriptor) Kind() DescriptorKind { return KindUnion }

// Union returns a UnionDescriptor.
func Union(types ...TypeDescriptor) *UnionDescriptor {
	return &UnionDescriptor{Types: types}
}

// IntersectionDescriptor represents an intersection of types (T1 & T2 & ...).
type IntersectionDescriptor struct {
	exprBase
	Types []TypeDescriptor
}

// Kind returns KindIntersection.
func (d *IntersectionDescriptor) Kind() DescriptorKind { return KindIntersection }

// Intersection returns an IntersectionDescriptor.
func Intersection(types ...TypeDescriptor) *IntersectionDescriptor {
	return &IntersectionDescriptor{Types: types}
}

// UnsupportedDescriptor stands in for a type the provider could read but
// that has no runtime check (any, never, tuples, function types, ...).
// Providers emit it instead of failing so that the error is raised by the
// check synthesizer, which knows the expression being checked.
type UnsupportedDescriptor struct {
	exprBase

	// Syntax is the type as written in source.
	Syntax string

	// Flags names the category of the type, e.g. "Any" or "Tuple".
	Flags string
}

// Kind returns KindUnsupported.
func (d *UnsupportedDescriptor) Kind() DescriptorKind { return KindUnsupported }

// Unsupported returns an UnsupportedDescriptor.
func Unsupported(syntax, flags string) *UnsupportedDescriptor {
	return &UnsupportedDescriptor{Syntax: syntax, Flags: flags}
}

package ir

// ObjectDescriptor represents a plain object shape: an object literal type
// or an interface, with inherited members already merged in.
type ObjectDescriptor struct {
	exprBase

	// Properties contains named properties in declaration order.
	// Names are unique within a descriptor.
	Properties []Property

	// StringIndex is the value type of a [key: string] index signature,
	// or nil.
	StringIndex TypeDescriptor

	// PatternIndexes contains the remaining index signatures, typically
	// keyed by template literal types.
	PatternIndexes []PatternIndex
}

// Kind returns KindObject.
func (d *ObjectDescriptor) Kind() DescriptorKind { return KindObject }

// Property is a single named property of an object shape.
type Property struct {
	Name string
	Type TypeDescriptor

	// Optional records the ? modifier. Providers already widen Type with
	// undefined; the flag is kept for display.
	Optional bool
}

// PatternIndex is an index signature whose key is not plain string.
type PatternIndex struct {
	Key   TypeDescriptor
	Value TypeDescriptor
}

// Property returns the property with the given name, if present.
func (d *ObjectDescriptor) Property(name string) (Property, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Object returns an ObjectDescriptor with the given properties.
func Object(props ...Property) *ObjectDescriptor {
	return &ObjectDescriptor{Properties: props}
}

// Prop returns a Property.
func Prop(name string, t TypeDescriptor) Property {
	return Property{Name: name, Type: t}
}

package ir

// Declaration is a named type declaration (type alias or interface) paired
// with the information guard generation needs about it.
type Declaration struct {
	// Name is the declared type name.
	Name string

	// Exported reports whether the declaration carries the export modifier.
	Exported bool

	// Type is the resolved structural type.
	Type TypeDescriptor

	// Source location of the declaration name.
	Source Source
}

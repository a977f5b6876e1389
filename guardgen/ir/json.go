package ir

import "github.com/go-json-experiment/json"

// JSON serialization support for IR types, used by `assertype dump`.
// All types include a "kind" field for type discrimination.

// MarshalJSON implements json.Marshaler for PrimitiveDescriptor.
func (d *PrimitiveDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind          string `json:"kind"`
		PrimitiveKind string `json:"primitiveKind"`
	}{
		Kind:          "primitive",
		PrimitiveKind: d.PrimitiveKind.String(),
	})
}

// MarshalJSON implements json.Marshaler for ArrayDescriptor.
func (d *ArrayDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string         `json:"kind"`
		Element TypeDescriptor `json:"element"`
	}{
		Kind:    "array",
		Element: d.Element,
	})
}

// MarshalJSON implements json.Marshaler for ClassDescriptor.
func (d *ClassDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
	}{
		Kind: "class",
		Name: d.ClassName,
	})
}

// MarshalJSON implements json.Marshaler for ObjectDescriptor.
func (d *ObjectDescriptor) MarshalJSON() ([]byte, error) {
	type property struct {
		Name     string         `json:"name"`
		Type     TypeDescriptor `json:"type"`
		Optional bool           `json:"optional,omitzero"`
	}
	type index struct {
		Key   TypeDescriptor `json:"key"`
		Value TypeDescriptor `json:"value"`
	}
	props := make([]property, len(d.Properties))
	for i, p := range d.Properties {
		props[i] = property{Name: p.Name, Type: p.Type, Optional: p.Optional}
	}
	var indexes []index
	for _, pi := range d.PatternIndexes {
		indexes = append(indexes, index{Key: pi.Key, Value: pi.Value})
	}
	return json.Marshal(&struct {
		Kind           string         `json:"kind"`
		Properties     []property     `json:"properties"`
		StringIndex    TypeDescriptor `json:"stringIndex,omitempty"`
		PatternIndexes []index        `json:"patternIndexes,omitempty"`
	}{
		Kind:           "object",
		Properties:     props,
		StringIndex:    d.StringIndex,
		PatternIndexes: indexes,
	})
}

// MarshalJSON implements json.Marshaler for UnionDescriptor.
func (d *UnionDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string           `json:"kind"`
		Types []TypeDescriptor `json:"types"`
	}{
		Kind:  "union",
		Types: d.Types,
	})
}

// MarshalJSON implements json.Marshaler for IntersectionDescriptor.
func (d *IntersectionDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string           `json:"kind"`
		Types []TypeDescriptor `json:"types"`
	}{
		Kind:  "intersection",
		Types: d.Types,
	})
}

// MarshalJSON implements json.Marshaler for NullDescriptor.
func (d *NullDescriptor) MarshalJSON() ([]byte, error) {
	return []byte(`{"kind":"null"}`), nil
}

// MarshalJSON implements json.Marshaler for UnknownDescriptor.
func (d *UnknownDescriptor) MarshalJSON() ([]byte, error) {
	return []byte(`{"kind":"unknown"}`), nil
}

// MarshalJSON implements json.Marshaler for StringLiteralDescriptor.
func (d *StringLiteralDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}{
		Kind:  "stringLiteral",
		Value: d.Value,
	})
}

// MarshalJSON implements json.Marshaler for NumberLiteralDescriptor.
func (d *NumberLiteralDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string  `json:"kind"`
		Value float64 `json:"value"`
	}{
		Kind:  "numberLiteral",
		Value: d.Value,
	})
}

// MarshalJSON implements json.Marshaler for BooleanLiteralDescriptor.
func (d *BooleanLiteralDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string `json:"kind"`
		Value bool   `json:"value"`
	}{
		Kind:  "booleanLiteral",
		Value: d.Value,
	})
}

// MarshalJSON implements json.Marshaler for TemplateDescriptor.
func (d *TemplateDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string           `json:"kind"`
		Texts []string         `json:"texts"`
		Types []TypeDescriptor `json:"types"`
	}{
		Kind:  "template",
		Texts: d.Texts,
		Types: d.Types,
	})
}

// MarshalJSON implements json.Marshaler for UnsupportedDescriptor.
func (d *UnsupportedDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind   string `json:"kind"`
		Syntax string `json:"syntax"`
		Flags  string `json:"flags"`
	}{
		Kind:   "unsupported",
		Syntax: d.Syntax,
		Flags:  d.Flags,
	})
}

// MarshalJSON implements json.Marshaler for Declaration.
func (d Declaration) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Name     string         `json:"name"`
		Exported bool           `json:"exported"`
		Type     TypeDescriptor `json:"type"`
		File     string         `json:"file,omitempty"`
		Line     int            `json:"line,omitzero"`
	}{
		Name:     d.Name,
		Exported: d.Exported,
		Type:     d.Type,
		File:     d.Source.File,
		Line:     d.Source.Line,
	})
}

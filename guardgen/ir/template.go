package ir

// TemplateDescriptor represents a template literal type such as
// `id-${bigint}`. Texts always has one more element than Types: the
// pattern is Texts[0] Types[0] Texts[1] ... Types[n-1] Texts[n].
type TemplateDescriptor struct {
	exprBase
	Texts []string
	Types []TypeDescriptor
}

// Kind returns KindTemplate.
func (d *TemplateDescriptor) Kind() DescriptorKind { return KindTemplate }

// Template returns a TemplateDescriptor.
func Template(texts []string, types ...TypeDescriptor) *TemplateDescriptor {
	return &TemplateDescriptor{Texts: texts, Types: types}
}

package typescript

// Reserved words that cannot be used as a binding name.
var reservedWords = map[string]bool{
	"await":      true,
	"break":      true,
	"case":       true,
	"catch":      true,
	"class":      true,
	"const":      true,
	"continue":   true,
	"debugger":   true,
	"default":    true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"enum":       true,
	"export":     true,
	"extends":    true,
	"false":      true,
	"finally":    true,
	"for":        true,
	"function":   true,
	"if":         true,
	"implements": true,
	"import":     true,
	"in":         true,
	"instanceof": true,
	"interface":  true,
	"let":        true,
	"new":        true,
	"null":       true,
	"package":    true,
	"private":    true,
	"protected":  true,
	"public":     true,
	"return":     true,
	"static":     true,
	"super":      true,
	"switch":     true,
	"this":       true,
	"throw":      true,
	"true":       true,
	"try":        true,
	"typeof":     true,
	"var":        true,
	"void":       true,
	"while":      true,
	"with":       true,
	"yield":      true,
}

// IsIdentifier reports whether name matches [A-Za-z_$][A-Za-z0-9_$]*.
// Such names are accessed with dot notation; anything else needs a
// bracketed string key.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '$':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// IsBindingName reports whether name can be used as a parameter name.
func IsBindingName(name string) bool {
	return IsIdentifier(name) && !reservedWords[name]
}

// Member returns obj.name when name is an identifier and obj["name"]
// otherwise.
func Member(obj Expr, name string) Expr {
	if IsIdentifier(name) {
		return Prop(obj, name)
	}
	return Elem(obj, Str(name))
}

// propertyKey renders an object type member name, quoting it if needed.
func propertyKey(name string) string {
	if IsIdentifier(name) {
		return name
	}
	return quoteString(name)
}

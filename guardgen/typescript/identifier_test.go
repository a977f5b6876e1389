package typescript

import "testing"

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a", true},
		{"_private", true},
		{"$ref", true},
		{"camelCase123", true},
		{"", false},
		{"1abc", false},
		{"a-b", false},
		{"a b", false},
		{"café", false},
		{"class", true},
	}
	for _, tt := range tests {
		if got := IsIdentifier(tt.name); got != tt.want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsBindingName(t *testing.T) {
	if !IsBindingName("value") {
		t.Error("value should be a binding name")
	}
	for _, name := range []string{"class", "typeof", "", "9"} {
		if IsBindingName(name) {
			t.Errorf("IsBindingName(%q) = true", name)
		}
	}
}

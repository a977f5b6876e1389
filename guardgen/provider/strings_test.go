package provider

import "testing"

func TestJSString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"abc"`, "abc"},
		{`'it\'s'`, "it's"},
		{`"a\nb"`, "a\nb"},
		{`"\x41B\u{43}"`, "ABC"},
		{`"😀"`, "😀"},
		{`"\q"`, "q"},
		{`""`, ""},
	}
	for _, tt := range tests {
		if got := jsString(tt.in); got != tt.want {
			t.Errorf("jsString(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{"0x1F", 31, true},
		{"0b101", 5, true},
		{"0o17", 15, true},
		{"1_000_000", 1000000, true},
		{"1.5e3", 1500, true},
		{".5", 0.5, true},
		{"10n", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

package assertype

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestNewError(t *testing.T) {
	err := NewError(CodeUnsupportedType, "type 'any' is not supported")
	if err.Code != CodeUnsupportedType {
		t.Errorf("expected code %s, got %s", CodeUnsupportedType, err.Code)
	}
	if err.Message != "type 'any' is not supported" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(CodeUnresolvedReference, "cannot find name '%s'", "Foo")
	if err.Code != CodeUnresolvedReference {
		t.Errorf("expected code %s, got %s", CodeUnresolvedReference, err.Code)
	}
	if err.Message != "cannot find name 'Foo'" {
		t.Errorf("expected formatted message, got %s", err.Message)
	}
}

func TestErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "bare",
			err:  NewError(CodeInternal, "something went wrong"),
			want: "internal: something went wrong",
		},
		{
			name: "with file",
			err:  NewError(CodeSyntax, "unexpected token").WithDetail("file", "a.ts"),
			want: "a.ts: syntax_error: unexpected token",
		},
		{
			name: "with file and line",
			err: NewError(CodeSyntax, "unexpected token").WithDetails(map[string]any{
				"file": "a.ts",
				"line": 7,
			}),
			want: "a.ts:7: syntax_error: unexpected token",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithDetailDoesNotMutate(t *testing.T) {
	base := NewError(CodeUnsupportedType, "x")
	withType := base.WithDetail("type", "any")
	if base.Details != nil {
		t.Errorf("base details mutated: %v", base.Details)
	}
	if withType.Details["type"] != "any" {
		t.Errorf("detail missing: %v", withType.Details)
	}
	if got := withType.WithDetails(nil); got != withType {
		t.Error("WithDetails(nil) should return the receiver")
	}
}

func TestInFile(t *testing.T) {
	err := InFile(NewError(CodeRecursiveType, "loop"), "types.ts")
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Details["file"] != "types.ts" {
		t.Errorf("file detail = %v", e.Details["file"])
	}

	// An existing file detail wins.
	again := InFile(err, "other.ts")
	if !errors.As(again, &e) || e.Details["file"] != "types.ts" {
		t.Errorf("file detail overwritten: %v", e.Details)
	}

	plain := InFile(errors.New("boom"), "x.ts")
	if plain.Error() != "x.ts: boom" {
		t.Errorf("plain error = %q", plain.Error())
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewError(CodeUnsupportedKey, "number keys"))
	if !Is(err, CodeUnsupportedKey) {
		t.Error("Is should see through wrapping")
	}
	if Is(err, CodeUnsupportedType) {
		t.Error("Is matched the wrong code")
	}
	if Is(errors.New("plain"), CodeInternal) {
		t.Error("plain errors carry no code")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		wantCode ErrorCode
		wantMsg  string
	}{
		{
			name:     "nil error",
			input:    nil,
			wantCode: "",
		},
		{
			name:     "passthrough",
			input:    fmt.Errorf("ctx: %w", NewError(CodeUnsupportedPlaceholder, "number in template")),
			wantCode: CodeUnsupportedPlaceholder,
			wantMsg:  "number in template",
		},
		{
			name:     "generic error",
			input:    errors.New("something failed"),
			wantCode: CodeInternal,
			wantMsg:  "something failed",
		},
		{
			name:     "joined errors",
			input:    errors.Join(NewError(CodeSyntax, "a"), errors.New("b")),
			wantCode: CodeSyntax,
			wantMsg:  "syntax_error: a; b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.input)
			if tt.input == nil {
				if got != nil {
					t.Errorf("Describe(nil) = %v, want nil", got)
				}
				return
			}
			if got.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", got.Message, tt.wantMsg)
			}
		})
	}
}

func TestDescribeValidationErrors(t *testing.T) {
	type cfg struct {
		Marker string `validate:"required"`
		Jobs   int    `validate:"gte=0"`
	}
	err := validator.New().Struct(cfg{Jobs: -1})
	if err == nil {
		t.Fatal("expected validation error")
	}
	got := Describe(err)
	if got.Code != CodeInvalidConfig {
		t.Errorf("code = %s, want %s", got.Code, CodeInvalidConfig)
	}
	if !strings.Contains(got.Message, "Marker: required") {
		t.Errorf("message %q missing Marker", got.Message)
	}
	if !strings.Contains(got.Message, "Jobs: must be at least 0") {
		t.Errorf("message %q missing Jobs", got.Message)
	}
}

func TestFormat(t *testing.T) {
	err := NewError(CodeUnsupportedType, "type 'any' on 'v.x' is not supported").WithDetails(map[string]any{
		"file": "a.ts",
		"type": "any",
		"expr": "v.x",
	})
	want := "a.ts: unsupported_type: type 'any' on 'v.x' is not supported\n  expr: v.x\n  type: any"
	if got := Format(err); got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}
	if Format(nil) != "" {
		t.Error("Format(nil) should be empty")
	}
}

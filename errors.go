// Package assertype holds the error envelope shared by the guard generator
// packages and the command line tool.
package assertype

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeUnsupportedType        ErrorCode = "unsupported_type"
	CodeUnsupportedPlaceholder ErrorCode = "unsupported_placeholder"
	CodeUnsupportedKey         ErrorCode = "unsupported_key"
	CodeUnresolvedReference    ErrorCode = "unresolved_reference"
	CodeRecursiveType          ErrorCode = "recursive_type"
	CodeSyntax                 ErrorCode = "syntax_error"
	CodeInvalidDirective       ErrorCode = "invalid_directive"
	CodeInvalidConfig          ErrorCode = "invalid_config"
	CodeOverlappingEdits       ErrorCode = "overlapping_edits"
	CodeInternal               ErrorCode = "internal"
)

// Error is the error envelope for every fatal generation failure.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if file, ok := e.Details["file"].(string); ok && file != "" {
		if line, ok := e.Details["line"].(int); ok && line > 0 {
			return fmt.Sprintf("%s:%d: %s: %s", file, line, e.Code, e.Message)
		}
		return fmt.Sprintf("%s: %s: %s", file, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// WithDetails returns a new Error with the provided map merged into details.
func (e *Error) WithDetails(details map[string]any) *Error {
	if len(details) == 0 {
		return e
	}
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: merged,
	}
}

// InFile returns a copy of err annotated with a file name, unless err
// already names one.
func InFile(err error, file string) error {
	var e *Error
	if !errors.As(err, &e) {
		return fmt.Errorf("%s: %w", file, err)
	}
	if _, ok := e.Details["file"]; ok {
		return err
	}
	return e.WithDetail("file", file)
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// Describe maps any error to an *Error suitable for display.
func Describe(err error) *Error {
	if err == nil {
		return nil
	}

	// errors.Join: take the code of the first error, keep all messages.
	// This precedes errors.As, which stops at the first *Error.
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		errs := u.Unwrap()
		if len(errs) > 0 {
			first := Describe(errs[0])
			msgs := make([]string, len(errs))
			for i, e := range errs {
				msgs[i] = e.Error()
			}
			return &Error{
				Code:    first.Code,
				Message: strings.Join(msgs, "; "),
				Details: first.Details,
			}
		}
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		details := make(map[string]any)
		messages := make([]string, 0, len(valErrs))
		for _, ve := range valErrs {
			msg := formatValidationError(ve)
			details[ve.Field()] = msg
			messages = append(messages, ve.Field()+": "+msg)
		}
		return &Error{
			Code:    CodeInvalidConfig,
			Message: strings.Join(messages, "; "),
			Details: details,
		}
	}

	return NewError(CodeInternal, err.Error())
}

// Format renders an error for terminal output: the summary line followed by
// sorted detail lines.
func Format(err error) string {
	e := Describe(err)
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Error())
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		if k == "file" || k == "line" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  %s: %v", k, e.Details[k])
	}
	return b.String()
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "jsident":
		return "must be a valid JavaScript identifier"
	case "file":
		return "must be an existing file"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

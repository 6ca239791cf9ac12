package gateway

import "fmt"

// ValidationError is a local pre-call failure: a required field is missing or
// mistyped. The message always names the field; no remote call has been made
// when one of these is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func missingField(name string) error {
	return &ValidationError{Field: name, Reason: "is required"}
}

func invalidField(name, reason string) error {
	return &ValidationError{Field: name, Reason: reason}
}

// UnknownToolError is returned when dispatch cannot resolve a tool name.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %q", e.Name)
}

// UnknownModeError is returned for a mode value outside the supported set.
// Field records which argument carried the value ("mode" or the deprecated
// "hash_mode"); callers pattern-match on the resulting message prefix, so the
// wording is a compatibility contract.
type UnknownModeError struct {
	Field string
	Value string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("Unknown %s: %q", e.Field, e.Value)
}

package main

import (
	"errors"
	"fmt"
	"strings"
)

// errSilentExit makes the process exit with status 1 after the command has
// already reported the outcome (an invalid document, differing documents).
var errSilentExit = errors.New("exit status 1")

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "validate", "normalize")
	Cause       string   // The underlying cause (e.g., "unknown type")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewTypeError creates an error for a missing or unknown --type
func NewTypeError(operation, typeName string, known []string) *CLIError {
	cause := fmt.Sprintf("unknown type %q", typeName)
	if typeName == "" {
		cause = "no type given"
	}
	return &CLIError{
		Operation: operation,
		Cause:     cause,
		Suggestions: []string{
			fmt.Sprintf("Use --type with one of: %s", strings.Join(known, ", ")),
			"Or set NANOMODEL_TYPE / 'type' in nanomodel.yaml",
			"Run 'nanomodel types' to see every schema",
		},
	}
}

// NewDocumentError creates an error for unreadable or unwritable documents
func NewDocumentError(operation, path string, err error) *CLIError {
	return &CLIError{
		Operation:  operation,
		Cause:      fmt.Sprintf("cannot process %s", path),
		Details:    err.Error(),
		Underlying: err,
		Suggestions: []string{
			"Check that the file exists and is a JSON or YAML object",
			"Use --format when the extension does not tell the format",
		},
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation, issue string, err error) *CLIError {
	return &CLIError{
		Operation:  operation,
		Cause:      fmt.Sprintf("configuration error: %s", issue),
		Underlying: err,
	}
}

package tmx

import "fmt"

// FailureKind is a machine-readable category for document-level parse
// failures.
type FailureKind string

// Parse failure kinds.
const (
	// SyntaxFailure means the input text is not well-formed XML.
	SyntaxFailure FailureKind = "SYNTAX_FAILURE"

	// SchemaFailure means the XML is well-formed but the expected root
	// element is absent.
	SchemaFailure FailureKind = "SCHEMA_FAILURE"
)

// ParseError is returned by [Decode] when a document cannot be loaded at
// all. Individual malformed elements inside a loadable document never
// produce a ParseError; they are skipped and logged instead.
type ParseError struct {
	Kind    FailureKind // failure category
	Message string      // human-readable message
	Cause   error       // underlying parser error (optional)
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

func newParseError(kind FailureKind, cause error, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// ExportError is returned by [Encode] when the assembled document fails its
// post-hoc well-formedness re-check.
type ExportError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("EXPORT_FAILURE: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("EXPORT_FAILURE: %s", e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

package escape

import "fmt"

// UnsupportedTypeError is returned when a Go value has no SQL literal form.
// It indicates a caller bug rather than a data problem.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("escape: unsupported value type %s", e.Type)
}

// InvalidIdentifierError is returned when an identifier has an unsupported
// shape or cannot be quoted safely.
type InvalidIdentifierError struct {
	Identifier string
	Reason     string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("escape: invalid identifier %s: %s", e.Identifier, e.Reason)
}

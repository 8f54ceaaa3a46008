package client

import "fmt"

// ConstructionError is returned by Open when the session cannot be set up.
// Stage names the failing step ("connect", "select database", "set charset", ...).
type ConstructionError struct {
	Stage string
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("client: %s: %v", e.Stage, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

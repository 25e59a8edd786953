package store

import (
	"fmt"
	"strings"
)

// BuildError reports that the store destination could not be created or
// written.
type BuildError struct {
	Path string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("store build failed at %s: %v", e.Path, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// SchemaError reports that an opened store does not carry the required
// tables or columns, or that the schema could not be inspected at all.
type SchemaError struct {
	// Missing lists absent tables ("orders") or columns ("orders.status").
	Missing []string
	Err     error
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("store schema mismatch: missing %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("store schema could not be inspected: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ReadError reports a failed query or row parse against an opened store
// whose schema passed inspection.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("store read failed: %v", e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

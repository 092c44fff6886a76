package domain

import "fmt"

// ErrCircularReference - a $ref chain that leads back to itself cannot be inlined
type ErrCircularReference struct {
	Path string
}

func (e *ErrCircularReference) Error() string {
	return fmt.Sprintf("circular reference detected: %s", e.Path)
}

// ErrInvalidReference - a $ref value that cannot be parsed as a URI with an optional JSON pointer fragment
type ErrInvalidReference struct {
	Ref    string
	Reason string
}

func (e *ErrInvalidReference) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid reference: %s", e.Ref)
	}
	return fmt.Sprintf("invalid reference: %s (%s)", e.Ref, e.Reason)
}

// ErrUnresolvedPointer - the pointer of a $ref names a location that does not exist in the target document
type ErrUnresolvedPointer struct {
	Ref   string
	Token string
}

func (e *ErrUnresolvedPointer) Error() string {
	return fmt.Sprintf("error resolving $ref pointer %q: token %q does not exist", e.Ref, e.Token)
}

// ErrFileNotFound - a referenced document is missing from the backing store
type ErrFileNotFound struct {
	Path string
}

func (e *ErrFileNotFound) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// ErrOpenAPIParse wraps any failure of OpenAPI dereferencing.
// The host shows its text as the broken module's diagnostic.
type ErrOpenAPIParse struct {
	Err error
}

func (e *ErrOpenAPIParse) Error() string {
	return fmt.Sprintf("[yamlmodule] OpenAPI parse error:\n%v", e.Err)
}

func (e *ErrOpenAPIParse) Unwrap() error {
	return e.Err
}

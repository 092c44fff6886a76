package domain

import (
	"context"

	"gopkg.in/yaml.v3"
)

// Config contains resolver configuration
type Config struct {
	MaxFileSize int64
	MaxDepth    int
}

// FileLoader reads data documents from the backing store
type FileLoader interface {
	Load(ctx context.Context, path string) ([]byte, error)
	// List returns the base names of the regular files in dir matching pattern.
	List(ctx context.Context, dir string, pattern string) ([]string, error)
}

// Parser turns document bytes into an order-preserving node tree.
// A nil node with a nil error is never returned; empty input yields a null scalar.
type Parser interface {
	Parse(data []byte) (*yaml.Node, error)
}

// DereferenceRequest describes one dereference run
type DereferenceRequest struct {
	Document *yaml.Node
	// Location is the path or URL of Document; relative refs resolve against it.
	Location string
	Version  string
}

// DereferenceCallback receives the result of an asynchronous dereference
type DereferenceCallback func(doc *yaml.Node, err error)

// AsyncDereferencer inlines every $ref of a document and reports through a callback
type AsyncDereferencer interface {
	DereferenceAsync(ctx context.Context, req DereferenceRequest, done DereferenceCallback)
}

// Dereferencer is the blocking form of AsyncDereferencer
type Dereferencer interface {
	Dereference(ctx context.Context, req DereferenceRequest) (*yaml.Node, error)
}

// DirectiveStore records import directives by resolved file path
type DirectiveStore interface {
	AddConst(path string)
	IsConst(path string) bool
	SetOpenAPIVersion(path, version string)
	OpenAPIVersion(path string) (string, bool)
}

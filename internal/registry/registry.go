// Package registry records the directives attached to data-document imports.
package registry

import (
	"sync"

	"github.com/miorlan/yamlmodule/internal/domain"
)

// Registry is the directive store shared by every import site of a project.
//
// Const requests are keyed by resolved path. The OpenAPI version is a single
// value for the whole registry unless path scoping is enabled: once any
// import asks for OpenAPI treatment, every data document is rendered in
// OpenAPI mode.
type Registry struct {
	mu             sync.RWMutex
	pathScoped     bool
	constImports   map[string]struct{}
	openAPIVersion string
	versionByPath  map[string]string
}

// New creates an empty registry. With pathScoped set, OpenAPI versions are
// recorded per path instead of globally.
func New(pathScoped bool) *Registry {
	return &Registry{
		pathScoped:    pathScoped,
		constImports:  make(map[string]struct{}),
		versionByPath: make(map[string]string),
	}
}

var _ domain.DirectiveStore = (*Registry)(nil)

func (r *Registry) AddConst(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constImports[path] = struct{}{}
}

func (r *Registry) IsConst(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constImports[path]
	return ok
}

// SetOpenAPIVersion records the requested version. Last writer wins.
func (r *Registry) SetOpenAPIVersion(path, version string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pathScoped {
		r.versionByPath[path] = version
		return
	}
	r.openAPIVersion = version
}

// OpenAPIVersion returns the version that applies to path.
func (r *Registry) OpenAPIVersion(path string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.pathScoped {
		v, ok := r.versionByPath[path]
		return v, ok && v != ""
	}
	return r.openAPIVersion, r.openAPIVersion != ""
}

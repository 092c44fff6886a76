package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_Const(t *testing.T) {
	r := New(false)

	assert.False(t, r.IsConst("/src/a.yaml"))

	r.AddConst("/src/a.yaml")
	r.AddConst("/src/a.yaml")

	assert.True(t, r.IsConst("/src/a.yaml"))
	assert.False(t, r.IsConst("/src/b.yaml"))
}

func TestRegistry_OpenAPIVersion_Global(t *testing.T) {
	r := New(false)

	_, ok := r.OpenAPIVersion("/src/a.yaml")
	assert.False(t, ok)

	r.SetOpenAPIVersion("/src/a.yaml", "3.0.0")
	v, ok := r.OpenAPIVersion("/src/b.yaml")
	assert.True(t, ok, "version set for one file applies to every file")
	assert.Equal(t, "3.0.0", v)

	r.SetOpenAPIVersion("/src/c.yaml", "3.1.0")
	v, _ = r.OpenAPIVersion("/src/a.yaml")
	assert.Equal(t, "3.1.0", v, "last writer wins")
}

func TestRegistry_OpenAPIVersion_PathScoped(t *testing.T) {
	r := New(true)

	r.SetOpenAPIVersion("/src/a.yaml", "3.0.0")

	v, ok := r.OpenAPIVersion("/src/a.yaml")
	assert.True(t, ok)
	assert.Equal(t, "3.0.0", v)

	_, ok = r.OpenAPIVersion("/src/b.yaml")
	assert.False(t, ok)
}

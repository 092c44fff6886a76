package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/miorlan/yamlmodule/internal/domain"
	"gopkg.in/yaml.v3"
)

// OpenAPITypeImport is the first line of every OpenAPI-mode module.
const OpenAPITypeImport = "import type { OpenAPI } from 'openapi-types'"

// Module describes one synthetic module.
type Module struct {
	// Value is the exported tree; nil renders as undefined.
	Value   *yaml.Node
	Const   bool
	OpenAPI bool
}

// ModuleWriter renders synthetic module text
type ModuleWriter struct{}

// NewModuleWriter создает новый ModuleWriter
func NewModuleWriter() *ModuleWriter {
	return &ModuleWriter{}
}

// Write renders m into w
func (mw *ModuleWriter) Write(w io.Writer, m Module) error {
	text, err := mw.Render(m)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// Render returns the module text for m.
//
// The suffix is always separated from the value by one space, so a module
// without the const suffix ends in a trailing space.
func (mw *ModuleWriter) Render(m Module) (string, error) {
	value := "undefined"
	if m.Value != nil {
		var err error
		if value, err = Stringify(m.Value); err != nil {
			return "", fmt.Errorf("failed to stringify document: %w", err)
		}
	}

	suffix := ""
	if m.Const {
		suffix = domain.ConstSuffix
	}

	var buf strings.Builder
	if m.OpenAPI {
		buf.WriteString(OpenAPITypeImport)
		buf.WriteString("\nconst parsed = ")
		buf.WriteString(value)
		buf.WriteString(" ")
		buf.WriteString(suffix)
		buf.WriteString("\nexport default parsed")
		return buf.String(), nil
	}

	buf.WriteString("export default ")
	buf.WriteString(value)
	buf.WriteString(" ")
	buf.WriteString(suffix)
	return buf.String(), nil
}

package usecase

import (
	"github.com/miorlan/yamlmodule/host"
	"github.com/miorlan/yamlmodule/internal/domain"
)

// importDeclaration returns the import statement a specifier belongs to:
// its parent, or failing that its grandparent.
func importDeclaration(n host.Node) *host.ImportDeclaration {
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	if decl, ok := parent.(*host.ImportDeclaration); ok {
		return decl
	}
	grandparent := parent.Parent()
	if grandparent == nil {
		return nil
	}
	decl, _ := grandparent.(*host.ImportDeclaration)
	return decl
}

// stringAttribute returns the value of the named import attribute when it
// is a string literal.
func stringAttribute(n host.Node, name string) (string, bool) {
	decl := importDeclaration(n)
	if decl == nil || decl.Attributes == nil {
		return "", false
	}
	for _, attr := range decl.Attributes.Elements {
		if attr == nil || attr.Name == nil || attr.Name.Text != name {
			continue
		}
		lit, ok := attr.Value.(*host.StringLiteral)
		if !ok {
			return "", false
		}
		return lit.Text, true
	}
	return "", false
}

// hasStringAttribute reports whether the named attribute is present with a
// non-empty value, or equal to want when want is given.
func hasStringAttribute(n host.Node, name, want string) bool {
	value, ok := stringAttribute(n, name)
	if !ok {
		return false
	}
	if want != "" {
		return value == want
	}
	return value != ""
}

// ReadDirective extracts the treatment requested by the attributes of the
// import that owns specifier.
func ReadDirective(specifier host.Node, defaultVersion string) domain.Directive {
	var d domain.Directive
	d.Const = hasStringAttribute(specifier, domain.AttributeConst, "true")
	d.OpenAPI = hasStringAttribute(specifier, domain.AttributeOpenAPI, "true") ||
		hasStringAttribute(specifier, domain.AttributeOpenAPIVersion, "")
	if d.OpenAPI {
		d.OpenAPIVersion = defaultVersion
		if v, ok := stringAttribute(specifier, domain.AttributeOpenAPIVersion); ok && v != "" {
			d.OpenAPIVersion = v
		}
	}
	return d
}

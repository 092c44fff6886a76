package domain

// Import attribute names recognised on data-document imports.
const (
	AttributeConst          = "const"
	AttributeOpenAPI        = "openAPI"
	AttributeOpenAPIVersion = "openAPIVersion"
)

// DefaultOpenAPIVersion is used when OpenAPI treatment is requested without
// an explicit version.
const DefaultOpenAPIVersion = "3.1.0"

// ConstSuffix narrows an exported value to its literal type.
const ConstSuffix = "as const"

// Directive is the treatment requested by the attributes of one import.
type Directive struct {
	Const          bool
	OpenAPI        bool
	OpenAPIVersion string
}

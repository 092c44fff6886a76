package domain

import "strings"

// DataDocumentPattern matches the base names of data documents on disk.
const DataDocumentPattern = "*.{yaml,yml}"

// IsDataDocument reports whether a specifier or file name ends in .yaml or
// .yml, ignoring case.
func IsDataDocument(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

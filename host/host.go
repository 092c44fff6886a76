// Package host describes the capability surface of the code-intelligence
// engine that the plugin extends. Nothing here is implemented by the plugin;
// the engine supplies these values and the plugin overrides a subset of them.
package host

// ScriptKind classifies a source file for the host analyzer.
type ScriptKind int

const (
	ScriptKindUnknown ScriptKind = iota
	ScriptKindJS
	ScriptKindJSX
	ScriptKindTS
	ScriptKindTSX
	ScriptKindExternal
	ScriptKindJSON
	ScriptKindDeferred
)

// Extension is the extension the host assigns to a resolved module.
type Extension string

const (
	ExtensionTs   Extension = ".ts"
	ExtensionTsx  Extension = ".tsx"
	ExtensionDts  Extension = ".d.ts"
	ExtensionJs   Extension = ".js"
	ExtensionJSON Extension = ".json"
)

// Snapshot is an immutable view of a file's text.
type Snapshot interface {
	GetText(start, end int) string
	GetLength() int
}

type stringSnapshot string

func (s stringSnapshot) GetText(start, end int) string {
	return string(s)[start:end]
}

func (s stringSnapshot) GetLength() int {
	return len(s)
}

// ScriptSnapshotFromString wraps text as a Snapshot.
func ScriptSnapshotFromString(text string) Snapshot {
	return stringSnapshot(text)
}

// SnapshotText returns the full text of a snapshot.
func SnapshotText(s Snapshot) string {
	if s == nil {
		return ""
	}
	return s.GetText(0, s.GetLength())
}

// ResolvedModule is a successful module resolution.
type ResolvedModule struct {
	ResolvedFileName        string
	Extension               Extension
	IsExternalLibraryImport bool
}

// ResolvedModuleWithFailedLookupLocations is the per-specifier record
// returned by batch resolution. FailedLookupLocations lists every candidate
// path the host probed, in probe order.
type ResolvedModuleWithFailedLookupLocations struct {
	ResolvedModule        *ResolvedModule
	FailedLookupLocations []string
	AffectingLocations    []string
}

// CompilerOptions carries the subset of project options passed through
// resolution.
type CompilerOptions struct {
	BaseURL          string
	ModuleResolution string
	Paths            map[string][]string
}

// ResolvedProjectReference identifies a referenced project, when any.
type ResolvedProjectReference struct {
	SourceFile string
}

// ResolveModuleNameLiteralsFunc is the host's batch resolution operation.
type ResolveModuleNameLiteralsFunc func(
	literals []StringLiteralLike,
	containingFile string,
	redirectedReference *ResolvedProjectReference,
	options *CompilerOptions,
	containingSourceFile *SourceFile,
	reusedNames []StringLiteralLike,
) []*ResolvedModuleWithFailedLookupLocations

// LanguageServiceHost holds the function slots the host's analyzer reads on
// every request. Plugins replace slots in place; a nil GetScriptKind means
// the host has no script-kind classifier.
type LanguageServiceHost struct {
	GetScriptKind             func(fileName string) ScriptKind
	GetScriptSnapshot         func(fileName string) (Snapshot, error)
	FileExists                func(fileName string) bool
	ResolveModuleNameLiterals ResolveModuleNameLiteralsFunc
}

// Logger is the host project's log sink.
type Logger interface {
	Info(msg string)
}

// Project is the host project a plugin instance is created for.
type Project interface {
	CompilerOptions() *CompilerOptions
	Logger() Logger
}

// PluginCreateInfo is passed to a plugin once per project.
type PluginCreateInfo struct {
	Project             Project
	LanguageService     LanguageService
	LanguageServiceHost *LanguageServiceHost
	Config              map[string]interface{}
}

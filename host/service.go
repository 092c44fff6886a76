package host

// ScriptElementKind names the kind of a completion entry.
type ScriptElementKind string

const (
	ScriptElementKindUnknown   ScriptElementKind = ""
	ScriptElementKindScript    ScriptElementKind = "script"
	ScriptElementKindDirectory ScriptElementKind = "directory"
	ScriptElementKindExternal  ScriptElementKind = "external module name"
)

// ScriptElementKindScriptElement is the kind used for file suggestions.
const ScriptElementKindScriptElement = ScriptElementKindScript

// CompletionEntry is one completion suggestion.
type CompletionEntry struct {
	Name          string
	Kind          ScriptElementKind
	KindModifiers string
	SortText      string
}

// CompletionInfo is the result of a completion request.
type CompletionInfo struct {
	IsGlobalCompletion      bool
	IsMemberCompletion      bool
	IsNewIdentifierLocation bool
	Entries                 []CompletionEntry
}

// GetCompletionsAtPositionOptions tunes a completion request.
type GetCompletionsAtPositionOptions struct {
	TriggerCharacter             string
	IncludeCompletionsForModules bool
}

// FormatCodeSettings carries editor formatting preferences.
type FormatCodeSettings struct {
	IndentSize       int
	ConvertTabs      bool
	NewLineCharacter string
}

// QuickInfo is hover information at a position.
type QuickInfo struct {
	Kind          ScriptElementKind
	TextSpan      TextRange
	DisplayString string
}

// Diagnostic is a problem reported for a file.
type Diagnostic struct {
	FileName string
	Start    int
	Length   int
	Message  string
	Code     int
}

// Program is the host's view of the files of a project.
type Program interface {
	GetSourceFile(fileName string) *SourceFile
}

// LanguageService is the set of editor operations a host serves.
type LanguageService interface {
	GetCompletionsAtPosition(fileName string, position int, options *GetCompletionsAtPositionOptions, formatting *FormatCodeSettings) *CompletionInfo
	GetQuickInfoAtPosition(fileName string, position int) *QuickInfo
	GetSemanticDiagnostics(fileName string) []Diagnostic
	GetProgram() Program
	Dispose()
}

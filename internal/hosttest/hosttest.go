// Package hosttest provides an in-memory host for exercising the plugin:
// a toolkit over a tiny import-only AST, a project rooted in a real
// directory and a language service with canned completions.
package hosttest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/miorlan/yamlmodule/host"
)

// Toolkit implements host.Toolkit for files built by Project.
type Toolkit struct{}

var _ host.Toolkit = Toolkit{}

func (Toolkit) TokenAtPosition(file *host.SourceFile, pos int) host.Node {
	for _, stmt := range file.Statements {
		decl, ok := stmt.(*host.ImportDeclaration)
		if !ok || pos < decl.Pos() || pos >= decl.End() {
			continue
		}
		if spec := decl.ModuleSpecifier; spec != nil && pos >= spec.Pos() && pos < spec.End() {
			return spec
		}
		return decl
	}
	return file
}

func (Toolkit) IsModuleSpecifierLike(n host.Node) bool {
	if _, ok := n.(host.StringLiteralLike); !ok {
		return false
	}
	decl, ok := n.Parent().(*host.ImportDeclaration)
	return ok && decl.ModuleSpecifier == n
}

// Logger records every message it receives.
type Logger struct {
	mu       sync.Mutex
	messages []string
}

func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

// Messages returns a copy of the recorded messages.
func (l *Logger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

// Contains reports whether any recorded message contains s.
func (l *Logger) Contains(s string) bool {
	for _, m := range l.Messages() {
		if strings.Contains(m, s) {
			return true
		}
	}
	return false
}

// Project is a host project whose files live in Dir.
type Project struct {
	Dir     string
	Options *host.CompilerOptions
	Log     *Logger

	files map[string]*host.SourceFile
	// Resolutions counts calls to the native resolver.
	Resolutions int
}

var _ host.Project = (*Project)(nil)

// NewProject creates a project rooted at dir.
func NewProject(dir string) *Project {
	return &Project{
		Dir:     dir,
		Options: &host.CompilerOptions{ModuleResolution: "bundler"},
		Log:     &Logger{},
		files:   make(map[string]*host.SourceFile),
	}
}

func (p *Project) CompilerOptions() *host.CompilerOptions { return p.Options }

func (p *Project) Logger() host.Logger { return p.Log }

// Path returns the absolute path of name inside the project.
func (p *Project) Path(name string) string {
	return filepath.Join(p.Dir, name)
}

// WriteFile writes a file into the project directory.
func (p *Project) WriteFile(name, content string) string {
	path := p.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		panic(err)
	}
	return path
}

// SourceFile returns the parsed source of fileName, creating it if needed.
func (p *Project) SourceFile(fileName string) *host.SourceFile {
	path := p.Path(fileName)
	sf, ok := p.files[path]
	if !ok {
		sf = &host.SourceFile{FileName: path}
		p.files[path] = sf
	}
	return sf
}

// AddImport appends `import x from '<specifier>' with { attrs }` to fileName
// and returns the specifier literal. Attributes are emitted in key order.
func (p *Project) AddImport(fileName, specifier string, attrs map[string]string) *host.StringLiteral {
	sf := p.SourceFile(fileName)

	start := sf.Loc.End
	var text strings.Builder
	text.WriteString("import x from ")
	specPos := start + text.Len()
	text.WriteString("'" + specifier + "'")
	specEnd := start + text.Len()

	decl := &host.ImportDeclaration{}
	decl.ParentNode = sf
	lit := &host.StringLiteral{Text: specifier}
	lit.Loc = host.TextRange{Pos: specPos, End: specEnd}
	lit.ParentNode = decl
	decl.ModuleSpecifier = lit

	if len(attrs) > 0 {
		clause := &host.ImportAttributes{}
		clause.ParentNode = decl
		clause.Loc.Pos = start + text.Len()
		text.WriteString(" with {")

		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				text.WriteString(",")
			}
			attr := &host.ImportAttribute{}
			attr.ParentNode = clause
			attr.Loc.Pos = start + text.Len()
			name := &host.Identifier{Text: k}
			name.ParentNode = attr
			value := &host.StringLiteral{Text: attrs[k]}
			value.ParentNode = attr
			text.WriteString(" " + k + ": '" + attrs[k] + "'")
			attr.Loc.End = start + text.Len()
			attr.Name = name
			attr.Value = value
			clause.Elements = append(clause.Elements, attr)
		}
		text.WriteString(" }")
		clause.Loc.End = start + text.Len()
		decl.Attributes = clause
	}
	text.WriteString("\n")

	decl.Loc = host.TextRange{Pos: start, End: start + text.Len()}
	sf.Statements = append(sf.Statements, decl)
	sf.Text += text.String()
	sf.Loc.End = len(sf.Text)
	return lit
}

// Host returns a fresh set of host slots backed by the project directory.
func (p *Project) Host() *host.LanguageServiceHost {
	return &host.LanguageServiceHost{
		GetScriptKind: func(fileName string) host.ScriptKind {
			switch strings.ToLower(filepath.Ext(fileName)) {
			case ".ts":
				return host.ScriptKindTS
			case ".tsx":
				return host.ScriptKindTSX
			case ".js":
				return host.ScriptKindJS
			case ".json":
				return host.ScriptKindJSON
			}
			return host.ScriptKindUnknown
		},
		GetScriptSnapshot: func(fileName string) (host.Snapshot, error) {
			if sf, ok := p.files[fileName]; ok {
				return host.ScriptSnapshotFromString(sf.Text), nil
			}
			data, err := os.ReadFile(fileName)
			if err != nil {
				return nil, nil
			}
			return host.ScriptSnapshotFromString(string(data)), nil
		},
		FileExists: func(fileName string) bool {
			info, err := os.Stat(fileName)
			return err == nil && !info.IsDir()
		},
		ResolveModuleNameLiterals: p.resolve,
	}
}

// resolve mimics bundler resolution: relative specifiers are probed with
// TypeScript extensions appended, data documents first as declaration
// siblings.
func (p *Project) resolve(
	literals []host.StringLiteralLike,
	containingFile string,
	_ *host.ResolvedProjectReference,
	_ *host.CompilerOptions,
	_ *host.SourceFile,
	_ []host.StringLiteralLike,
) []*host.ResolvedModuleWithFailedLookupLocations {
	p.Resolutions++
	out := make([]*host.ResolvedModuleWithFailedLookupLocations, 0, len(literals))
	for _, lit := range literals {
		out = append(out, p.resolveOne(lit.LiteralText(), containingFile))
	}
	return out
}

func (p *Project) resolveOne(specifier, containingFile string) *host.ResolvedModuleWithFailedLookupLocations {
	dir := filepath.Dir(containingFile)
	base := filepath.Join(dir, specifier)
	if !strings.HasPrefix(specifier, ".") && !filepath.IsAbs(specifier) {
		base = filepath.Join(dir, "node_modules", specifier)
	}

	var candidates []string
	if ext := filepath.Ext(base); ext != "" {
		candidates = append(candidates, strings.TrimSuffix(base, ext)+".d"+ext+".ts")
	}
	candidates = append(candidates, base+".ts", base+".tsx", base+".d.ts")

	if ext := filepath.Ext(base); ext == ".ts" || ext == ".tsx" {
		if _, err := os.Stat(base); err == nil {
			return &host.ResolvedModuleWithFailedLookupLocations{
				ResolvedModule: &host.ResolvedModule{ResolvedFileName: base, Extension: host.Extension(ext)},
			}
		}
	}
	return &host.ResolvedModuleWithFailedLookupLocations{FailedLookupLocations: candidates}
}

// LanguageService is a host language service with canned completions.
type LanguageService struct {
	Project *Project
	// Completions is returned (as a copy) by GetCompletionsAtPosition; nil
	// means the host has nothing to offer.
	Completions *host.CompletionInfo
	Diagnostics []host.Diagnostic
	Disposed    bool
}

var _ host.LanguageService = (*LanguageService)(nil)

// NewLanguageService creates a language service for p.
func NewLanguageService(p *Project) *LanguageService {
	return &LanguageService{Project: p}
}

func (s *LanguageService) GetCompletionsAtPosition(fileName string, position int, options *host.GetCompletionsAtPositionOptions, formatting *host.FormatCodeSettings) *host.CompletionInfo {
	if s.Completions == nil {
		return nil
	}
	info := *s.Completions
	info.Entries = append([]host.CompletionEntry(nil), s.Completions.Entries...)
	return &info
}

func (s *LanguageService) GetQuickInfoAtPosition(fileName string, position int) *host.QuickInfo {
	return &host.QuickInfo{Kind: host.ScriptElementKindScript, DisplayString: fileName}
}

func (s *LanguageService) GetSemanticDiagnostics(fileName string) []host.Diagnostic {
	return s.Diagnostics
}

func (s *LanguageService) GetProgram() host.Program {
	return program{files: s.Project.files}
}

func (s *LanguageService) Dispose() {
	s.Disposed = true
}

type program struct {
	files map[string]*host.SourceFile
}

func (p program) GetSourceFile(fileName string) *host.SourceFile {
	return p.files[fileName]
}

// CreateInfo bundles the project, a fresh host and service for plugin creation.
func (p *Project) CreateInfo(service *LanguageService, config map[string]interface{}) *host.PluginCreateInfo {
	return &host.PluginCreateInfo{
		Project:             p,
		LanguageService:     service,
		LanguageServiceHost: p.Host(),
		Config:              config,
	}
}

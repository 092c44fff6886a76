package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/miorlan/yamlmodule/host"
	"github.com/miorlan/yamlmodule/internal/domain"
	"github.com/miorlan/yamlmodule/internal/infrastructure/writer"
	"github.com/rs/zerolog"
)

// SnapshotSynthesizer serves data documents to the host as typed modules.
// Nothing is cached: every request reads and parses the file again.
type SnapshotSynthesizer struct {
	original     host.LanguageServiceHost
	loader       domain.FileLoader
	parser       domain.Parser
	dereferencer domain.Dereferencer
	directives   domain.DirectiveStore
	writer       *writer.ModuleWriter
	logger       zerolog.Logger
}

// NewSnapshotSynthesizer creates a synthesizer. original holds the host slots
// as they were before the plugin replaced them.
func NewSnapshotSynthesizer(
	original host.LanguageServiceHost,
	loader domain.FileLoader,
	parser domain.Parser,
	dereferencer domain.Dereferencer,
	directives domain.DirectiveStore,
	logger zerolog.Logger,
) *SnapshotSynthesizer {
	return &SnapshotSynthesizer{
		original:     original,
		loader:       loader,
		parser:       parser,
		dereferencer: dereferencer,
		directives:   directives,
		writer:       writer.NewModuleWriter(),
		logger:       logger,
	}
}

// Snapshot has the signature of the host's GetScriptSnapshot slot. A nil
// snapshot with a nil error means the file does not exist.
func (s *SnapshotSynthesizer) Snapshot(fileName string) (host.Snapshot, error) {
	if !domain.IsDataDocument(fileName) {
		if s.original.GetScriptSnapshot == nil {
			return nil, nil
		}
		return s.original.GetScriptSnapshot(fileName)
	}

	text, ok, err := s.Synthesize(context.Background(), fileName)
	if err != nil || !ok {
		return nil, err
	}
	return host.ScriptSnapshotFromString(text), nil
}

// Synthesize builds the module text for a data document. ok is false when
// the file does not exist.
//
// A document that fails to parse is logged and rendered as an undefined
// export. A dereference failure is returned as *domain.ErrOpenAPIParse.
func (s *SnapshotSynthesizer) Synthesize(ctx context.Context, fileName string) (text string, ok bool, err error) {
	if s.original.FileExists != nil && !s.original.FileExists(fileName) {
		return "", false, nil
	}

	data, err := s.loader.Load(ctx, fileName)
	if err != nil {
		var notFound *domain.ErrFileNotFound
		if errors.As(err, &notFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load %s: %w", fileName, err)
	}

	module := writer.Module{Const: s.directives.IsConst(fileName)}

	doc, err := s.parser.Parse(data)
	if err != nil {
		s.logger.Info().Err(err).Str("file", fileName).Msg("YAML parse error")
	} else {
		module.Value = doc
	}

	if version, enabled := s.directives.OpenAPIVersion(fileName); enabled {
		dereferenced, err := s.dereferencer.Dereference(ctx, domain.DereferenceRequest{
			Document: module.Value,
			Location: fileName,
			Version:  version,
		})
		if err != nil {
			return "", false, &domain.ErrOpenAPIParse{Err: err}
		}
		module.Value = dereferenced
		module.OpenAPI = true
	}

	text, err = s.writer.Render(module)
	if err != nil {
		return "", false, fmt.Errorf("failed to render %s: %w", fileName, err)
	}
	return text, true, nil
}

// ScriptKind has the signature of the host's GetScriptKind slot: data
// documents are TypeScript, everything else is up to the host.
func (s *SnapshotSynthesizer) ScriptKind(fileName string) host.ScriptKind {
	if s.original.GetScriptKind == nil {
		return host.ScriptKindUnknown
	}
	if domain.IsDataDocument(fileName) {
		return host.ScriptKindTS
	}
	return s.original.GetScriptKind(fileName)
}

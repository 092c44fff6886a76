package usecase

import (
	"context"
	"path/filepath"

	"github.com/miorlan/yamlmodule/host"
	"github.com/miorlan/yamlmodule/internal/domain"
	"github.com/rs/zerolog"
)

const (
	// dataDocumentKindModifiers is shown next to every injected entry
	dataDocumentKindModifiers = ".yaml"
	// dataDocumentSortText sorts injected entries after the host's own
	dataDocumentSortText = "11"
)

// CompletionAugmenter adds sibling data documents to completions requested
// inside a module specifier.
type CompletionAugmenter struct {
	toolkit host.Toolkit
	native  host.ResolveModuleNameLiteralsFunc
	project host.Project
	loader  domain.FileLoader
	logger  zerolog.Logger
}

// NewCompletionAugmenter creates an augmenter. native must be the host's own
// resolver so that completion never records directives.
func NewCompletionAugmenter(
	toolkit host.Toolkit,
	native host.ResolveModuleNameLiteralsFunc,
	project host.Project,
	loader domain.FileLoader,
	logger zerolog.Logger,
) *CompletionAugmenter {
	return &CompletionAugmenter{
		toolkit: toolkit,
		native:  native,
		project: project,
		loader:  loader,
		logger:  logger,
	}
}

// Augment appends data-document entries to info in place and returns it.
// A nil info stays nil.
func (a *CompletionAugmenter) Augment(ctx context.Context, program host.Program, fileName string, position int, info *host.CompletionInfo) *host.CompletionInfo {
	if info == nil || program == nil || a.native == nil {
		return info
	}
	sourceFile := program.GetSourceFile(fileName)
	if sourceFile == nil {
		return info
	}
	token := a.toolkit.TokenAtPosition(sourceFile, position)
	if token == nil || !a.toolkit.IsModuleSpecifierLike(token) {
		return info
	}
	literal, ok := token.(host.StringLiteralLike)
	if !ok {
		return info
	}

	var options *host.CompilerOptions
	if a.project != nil {
		options = a.project.CompilerOptions()
	}
	results := a.native([]host.StringLiteralLike{literal}, fileName, nil, options, sourceFile, nil)
	if len(results) == 0 || results[0] == nil || len(results[0].FailedLookupLocations) == 0 {
		return info
	}

	dir := filepath.Dir(results[0].FailedLookupLocations[0])
	names, err := a.loader.List(ctx, dir, domain.DataDocumentPattern)
	if err != nil {
		a.logger.Warn().Err(err).Str("dir", dir).Msg("failed to list data documents")
		return info
	}

	for _, name := range names {
		info.Entries = append(info.Entries, host.CompletionEntry{
			Name:          name,
			Kind:          host.ScriptElementKindScriptElement,
			KindModifiers: dataDocumentKindModifiers,
			SortText:      dataDocumentSortText,
		})
	}
	return info
}

// LanguageService forwards every operation to the host's service and adds
// data documents to specifier completions.
type LanguageService struct {
	host.LanguageService
	augmenter *CompletionAugmenter
}

// NewLanguageService wraps inner
func NewLanguageService(inner host.LanguageService, augmenter *CompletionAugmenter) *LanguageService {
	return &LanguageService{LanguageService: inner, augmenter: augmenter}
}

func (s *LanguageService) GetCompletionsAtPosition(fileName string, position int, options *host.GetCompletionsAtPositionOptions, formatting *host.FormatCodeSettings) *host.CompletionInfo {
	info := s.LanguageService.GetCompletionsAtPosition(fileName, position, options, formatting)
	if info == nil {
		return nil
	}
	return s.augmenter.Augment(context.Background(), s.LanguageService.GetProgram(), fileName, position, info)
}

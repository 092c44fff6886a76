package usecase

import (
	"path"
	"strings"

	"github.com/miorlan/yamlmodule/host"
	"github.com/miorlan/yamlmodule/internal/domain"
	"github.com/rs/zerolog"
)

// ResolutionInterceptor resolves data-document specifiers the host cannot
// and records their directives.
type ResolutionInterceptor struct {
	native         host.ResolveModuleNameLiteralsFunc
	directives     domain.DirectiveStore
	defaultVersion string
	logger         zerolog.Logger
}

// NewResolutionInterceptor создает перехватчик поверх нативного резолвера хоста
func NewResolutionInterceptor(
	native host.ResolveModuleNameLiteralsFunc,
	directives domain.DirectiveStore,
	defaultVersion string,
	logger zerolog.Logger,
) *ResolutionInterceptor {
	if defaultVersion == "" {
		defaultVersion = domain.DefaultOpenAPIVersion
	}
	return &ResolutionInterceptor{
		native:         native,
		directives:     directives,
		defaultVersion: defaultVersion,
		logger:         logger,
	}
}

// Resolve has the signature of host.ResolveModuleNameLiteralsFunc.
//
// Data-document specifiers get a synthesized record pointing at the path the
// host probed as its second candidate, minus the extension the host
// appended. Everything else passes through.
func (i *ResolutionInterceptor) Resolve(
	literals []host.StringLiteralLike,
	containingFile string,
	redirectedReference *host.ResolvedProjectReference,
	options *host.CompilerOptions,
	containingSourceFile *host.SourceFile,
	reusedNames []host.StringLiteralLike,
) []*host.ResolvedModuleWithFailedLookupLocations {
	results := i.native(literals, containingFile, redirectedReference, options, containingSourceFile, reusedNames)

	out := make([]*host.ResolvedModuleWithFailedLookupLocations, len(results))
	for idx, result := range results {
		out[idx] = result
		if idx >= len(literals) || literals[idx] == nil {
			continue
		}
		literal := literals[idx]
		if !domain.IsDataDocument(literal.LiteralText()) {
			continue
		}
		if result == nil || len(result.FailedLookupLocations) < 2 {
			i.logger.Warn().
				Str("specifier", literal.LiteralText()).
				Str("containing_file", containingFile).
				Msg("no lookup candidates for data document, keeping host resolution")
			continue
		}

		resolvedFileName := trimExtension(result.FailedLookupLocations[1])
		i.record(resolvedFileName, ReadDirective(literal, i.defaultVersion))

		resolved := *result
		resolved.ResolvedModule = &host.ResolvedModule{
			ResolvedFileName:        resolvedFileName,
			Extension:               host.ExtensionTs,
			IsExternalLibraryImport: false,
		}
		out[idx] = &resolved
	}
	return out
}

func (i *ResolutionInterceptor) record(path string, d domain.Directive) {
	if d.Const {
		i.directives.AddConst(path)
		i.logger.Debug().Str("file", path).Msg("const import recorded")
	}
	if d.OpenAPI {
		i.directives.SetOpenAPIVersion(path, d.OpenAPIVersion)
		i.logger.Debug().Str("file", path).Str("openapi_version", d.OpenAPIVersion).Msg("openapi import recorded")
	}
}

// trimExtension drops the last extension: /dir/spec.yaml.ts -> /dir/spec.yaml
func trimExtension(location string) string {
	return strings.TrimSuffix(location, path.Ext(location))
}

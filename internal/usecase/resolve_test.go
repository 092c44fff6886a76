package usecase

import (
	"testing"

	"github.com/miorlan/yamlmodule/host"
	"github.com/miorlan/yamlmodule/internal/domain"
	"github.com/miorlan/yamlmodule/internal/hosttest"
	"github.com/miorlan/yamlmodule/internal/registry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterceptor(p *hosttest.Project, reg *registry.Registry) *ResolutionInterceptor {
	return NewResolutionInterceptor(p.Host().ResolveModuleNameLiterals, reg, "", zerolog.Nop())
}

func resolveOne(i *ResolutionInterceptor, p *hosttest.Project, lit host.StringLiteralLike) *host.ResolvedModuleWithFailedLookupLocations {
	results := i.Resolve([]host.StringLiteralLike{lit}, p.Path("index.ts"), nil, p.Options, p.SourceFile("index.ts"), nil)
	return results[0]
}

func TestResolutionInterceptor_DataDocument(t *testing.T) {
	p := hosttest.NewProject(t.TempDir())
	reg := registry.New(false)
	i := newInterceptor(p, reg)

	lit := p.AddImport("index.ts", "./spec.yaml", nil)
	got := resolveOne(i, p, lit)

	require.NotNil(t, got.ResolvedModule)
	assert.Equal(t, p.Path("spec.yaml"), got.ResolvedModule.ResolvedFileName)
	assert.Equal(t, host.ExtensionTs, got.ResolvedModule.Extension)
	assert.False(t, got.ResolvedModule.IsExternalLibraryImport)
	assert.NotEmpty(t, got.FailedLookupLocations, "host lookup trail is kept")

	assert.False(t, reg.IsConst(p.Path("spec.yaml")))
	_, ok := reg.OpenAPIVersion(p.Path("spec.yaml"))
	assert.False(t, ok)
}

func TestResolutionInterceptor_PassThrough(t *testing.T) {
	p := hosttest.NewProject(t.TempDir())
	p.WriteFile("util.ts", "export const x = 1\n")
	i := newInterceptor(p, registry.New(false))

	results := i.Resolve(
		[]host.StringLiteralLike{
			p.AddImport("index.ts", "./util.ts", nil),
			p.AddImport("index.ts", "./missing", map[string]string{"const": "true"}),
			p.AddImport("index.ts", "./Config.YML", nil),
		},
		p.Path("index.ts"), nil, p.Options, p.SourceFile("index.ts"), nil,
	)

	require.Len(t, results, 3)
	require.NotNil(t, results[0].ResolvedModule)
	assert.Equal(t, p.Path("util.ts"), results[0].ResolvedModule.ResolvedFileName)
	assert.Nil(t, results[1].ResolvedModule, "non data documents keep the host result")
	require.NotNil(t, results[2].ResolvedModule, "suffix match ignores case")
	assert.Equal(t, p.Path("Config.YML"), results[2].ResolvedModule.ResolvedFileName)
}

func TestResolutionInterceptor_Directives(t *testing.T) {
	tests := []struct {
		name        string
		attrs       map[string]string
		wantConst   bool
		wantVersion string
	}{
		{
			name: "no attributes",
		},
		{
			name:      "const",
			attrs:     map[string]string{"const": "true"},
			wantConst: true,
		},
		{
			name:  "const false",
			attrs: map[string]string{"const": "false"},
		},
		{
			name:        "openapi default version",
			attrs:       map[string]string{"openAPI": "true"},
			wantVersion: domain.DefaultOpenAPIVersion,
		},
		{
			name:  "openapi false",
			attrs: map[string]string{"openAPI": "false"},
		},
		{
			name:        "openapi with empty version",
			attrs:       map[string]string{"openAPI": "true", "openAPIVersion": ""},
			wantVersion: domain.DefaultOpenAPIVersion,
		},
		{
			name:        "version alone enables openapi",
			attrs:       map[string]string{"openAPIVersion": "3.0.3"},
			wantVersion: "3.0.3",
		},
		{
			name:        "all",
			attrs:       map[string]string{"const": "true", "openAPI": "true", "openAPIVersion": "3.0.0"},
			wantConst:   true,
			wantVersion: "3.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := hosttest.NewProject(t.TempDir())
			reg := registry.New(false)
			i := newInterceptor(p, reg)

			resolveOne(i, p, p.AddImport("index.ts", "./spec.yaml", tt.attrs))

			assert.Equal(t, tt.wantConst, reg.IsConst(p.Path("spec.yaml")))
			version, ok := reg.OpenAPIVersion(p.Path("spec.yaml"))
			assert.Equal(t, tt.wantVersion != "", ok)
			assert.Equal(t, tt.wantVersion, version)
		})
	}
}

func TestResolutionInterceptor_ConstFromEitherImportSite(t *testing.T) {
	for _, constFirst := range []bool{true, false} {
		p := hosttest.NewProject(t.TempDir())
		reg := registry.New(false)
		i := newInterceptor(p, reg)

		plain := p.AddImport("index.ts", "./data.yaml", nil)
		withConst := p.AddImport("index.ts", "./data.yaml", map[string]string{"const": "true"})

		order := []host.StringLiteralLike{plain, withConst}
		if constFirst {
			order = []host.StringLiteralLike{withConst, plain}
		}
		for _, lit := range order {
			resolveOne(i, p, lit)
		}
		resolveOne(i, p, plain)

		assert.True(t, reg.IsConst(p.Path("data.yaml")), "constFirst=%v", constFirst)
	}
}

func TestResolutionInterceptor_TooFewLookups(t *testing.T) {
	reg := registry.New(false)
	native := func(literals []host.StringLiteralLike, _ string, _ *host.ResolvedProjectReference, _ *host.CompilerOptions, _ *host.SourceFile, _ []host.StringLiteralLike) []*host.ResolvedModuleWithFailedLookupLocations {
		return []*host.ResolvedModuleWithFailedLookupLocations{{FailedLookupLocations: []string{"/only/one.ts"}}}
	}
	i := NewResolutionInterceptor(native, reg, "", zerolog.Nop())

	p := hosttest.NewProject(t.TempDir())
	lit := p.AddImport("index.ts", "./spec.yaml", map[string]string{"const": "true"})
	results := i.Resolve([]host.StringLiteralLike{lit}, p.Path("index.ts"), nil, nil, nil, nil)

	require.Len(t, results, 1)
	assert.Nil(t, results[0].ResolvedModule)
	assert.False(t, reg.IsConst("/only/one"))
}

func TestReadDirective_GrandparentDeclaration(t *testing.T) {
	decl := &host.ImportDeclaration{}
	attr := &host.ImportAttribute{Name: &host.Identifier{Text: "const"}, Value: &host.StringLiteral{Text: "true"}}
	decl.Attributes = &host.ImportAttributes{Elements: []*host.ImportAttribute{attr}}

	wrapper := &host.Identifier{}
	wrapper.ParentNode = decl
	lit := &host.StringLiteral{Text: "./x.yaml"}
	lit.ParentNode = wrapper

	d := ReadDirective(lit, domain.DefaultOpenAPIVersion)
	assert.True(t, d.Const)
	assert.False(t, d.OpenAPI)
}

func TestReadDirective_NonStringValueIgnored(t *testing.T) {
	decl := &host.ImportDeclaration{}
	attr := &host.ImportAttribute{Name: &host.Identifier{Text: "const"}, Value: &host.Identifier{Text: "true"}}
	decl.Attributes = &host.ImportAttributes{Elements: []*host.ImportAttribute{attr}}
	lit := &host.StringLiteral{Text: "./x.yaml"}
	lit.ParentNode = decl

	assert.False(t, ReadDirective(lit, domain.DefaultOpenAPIVersion).Const)
}

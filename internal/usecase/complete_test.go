package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/miorlan/yamlmodule/host"
	"github.com/miorlan/yamlmodule/internal/hosttest"
	"github.com/miorlan/yamlmodule/internal/infrastructure/loader"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFileLoader struct {
	listErr error
	listed  []string
}

func (m *mockFileLoader) Load(ctx context.Context, path string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (m *mockFileLoader) List(ctx context.Context, dir string, pattern string) ([]string, error) {
	m.listed = append(m.listed, dir)
	return nil, m.listErr
}

func hostCompletions() *host.CompletionInfo {
	return &host.CompletionInfo{
		Entries: []host.CompletionEntry{{Name: "util", Kind: host.ScriptElementKindScript, SortText: "11"}},
	}
}

func completionProject(t *testing.T) (*hosttest.Project, *hosttest.LanguageService) {
	p := hosttest.NewProject(t.TempDir())
	p.WriteFile("b.yml", "b: 2\n")
	p.WriteFile("a.yaml", "a: 1\n")
	p.WriteFile("c.txt", "c\n")
	p.WriteFile("util.ts", "export const x = 1\n")
	p.WriteFile("nested/d.yaml", "d: 4\n")

	service := hosttest.NewLanguageService(p)
	service.Completions = hostCompletions()
	return p, service
}

func TestCompletionAugmenter_AddsSiblingDataDocuments(t *testing.T) {
	p, service := completionProject(t)
	lit := p.AddImport("index.ts", "./a", nil)

	a := NewCompletionAugmenter(hosttest.Toolkit{}, p.Host().ResolveModuleNameLiterals, p, loader.NewFileLoader(), zerolog.Nop())
	info := a.Augment(context.Background(), service.GetProgram(), p.Path("index.ts"), lit.Pos()+1, hostCompletions())

	require.NotNil(t, info)
	require.Len(t, info.Entries, 3)
	assert.Equal(t, "util", info.Entries[0].Name)
	assert.Equal(t, host.CompletionEntry{
		Name:          "a.yaml",
		Kind:          host.ScriptElementKindScriptElement,
		KindModifiers: ".yaml",
		SortText:      "11",
	}, info.Entries[1])
	assert.Equal(t, "b.yml", info.Entries[2].Name)
	assert.Equal(t, ".yaml", info.Entries[2].KindModifiers)
}

func TestCompletionAugmenter_LeavesOtherRequestsAlone(t *testing.T) {
	p, service := completionProject(t)
	lit := p.AddImport("index.ts", "./a", nil)
	a := NewCompletionAugmenter(hosttest.Toolkit{}, p.Host().ResolveModuleNameLiterals, p, loader.NewFileLoader(), zerolog.Nop())

	t.Run("nil host result", func(t *testing.T) {
		assert.Nil(t, a.Augment(context.Background(), service.GetProgram(), p.Path("index.ts"), lit.Pos()+1, nil))
	})

	t.Run("outside a specifier", func(t *testing.T) {
		info := a.Augment(context.Background(), service.GetProgram(), p.Path("index.ts"), 0, hostCompletions())
		assert.Equal(t, hostCompletions(), info)
	})

	t.Run("unknown file", func(t *testing.T) {
		info := a.Augment(context.Background(), service.GetProgram(), p.Path("other.ts"), 0, hostCompletions())
		assert.Equal(t, hostCompletions(), info)
	})
}

func TestCompletionAugmenter_ListFailure(t *testing.T) {
	p, service := completionProject(t)
	lit := p.AddImport("index.ts", "./a", nil)
	files := &mockFileLoader{listErr: errors.New("permission denied")}

	a := NewCompletionAugmenter(hosttest.Toolkit{}, p.Host().ResolveModuleNameLiterals, p, files, zerolog.Nop())
	info := a.Augment(context.Background(), service.GetProgram(), p.Path("index.ts"), lit.Pos()+1, hostCompletions())

	assert.Equal(t, hostCompletions(), info)
	assert.Equal(t, []string{p.Dir}, files.listed)
}

func TestCompletionAugmenter_UsesNativeResolver(t *testing.T) {
	p, service := completionProject(t)
	lit := p.AddImport("index.ts", "./a", map[string]string{"const": "true"})

	a := NewCompletionAugmenter(hosttest.Toolkit{}, p.Host().ResolveModuleNameLiterals, p, loader.NewFileLoader(), zerolog.Nop())
	a.Augment(context.Background(), service.GetProgram(), p.Path("index.ts"), lit.Pos()+1, hostCompletions())

	assert.Equal(t, 1, p.Resolutions)
}

func TestLanguageService_Decorator(t *testing.T) {
	p, service := completionProject(t)
	lit := p.AddImport("index.ts", "./a", nil)
	a := NewCompletionAugmenter(hosttest.Toolkit{}, p.Host().ResolveModuleNameLiterals, p, loader.NewFileLoader(), zerolog.Nop())
	decorated := NewLanguageService(service, a)

	info := decorated.GetCompletionsAtPosition(p.Path("index.ts"), lit.Pos()+1, nil, nil)
	require.NotNil(t, info)
	assert.Len(t, info.Entries, 3)

	// the host's canned result is not modified
	assert.Len(t, service.Completions.Entries, 1)

	quick := decorated.GetQuickInfoAtPosition(p.Path("index.ts"), 0)
	require.NotNil(t, quick)
	assert.Equal(t, p.Path("index.ts"), quick.DisplayString)

	service.Completions = nil
	assert.Nil(t, decorated.GetCompletionsAtPosition(p.Path("index.ts"), lit.Pos()+1, nil, nil))

	decorated.Dispose()
	assert.True(t, service.Disposed)
}

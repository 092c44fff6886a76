// Package yamlmodule is a language-service plugin that lets TypeScript code
// import YAML data documents as typed modules.
//
// The plugin is created once per project. It replaces three slots of the
// host's LanguageServiceHost (resolution, snapshots, script kind) and wraps
// the host's LanguageService to add data documents to import completions.
//
// Example:
//
//	plugin := yamlmodule.Init(toolkit)
//	service := plugin.Create(info)
package yamlmodule

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/miorlan/yamlmodule/host"
	"github.com/miorlan/yamlmodule/internal/domain"
	"github.com/miorlan/yamlmodule/internal/infrastructure/loader"
	"github.com/miorlan/yamlmodule/internal/infrastructure/parser"
	"github.com/miorlan/yamlmodule/internal/infrastructure/resolver"
	"github.com/miorlan/yamlmodule/internal/registry"
	"github.com/miorlan/yamlmodule/internal/usecase"
	"github.com/rs/zerolog"
	"github.com/viant/afs"
)

// Directive is the treatment requested for one data document.
type Directive = domain.Directive

// Errors surfaced by the plugin.
type (
	ErrFileNotFound      = domain.ErrFileNotFound
	ErrOpenAPIParse      = domain.ErrOpenAPIParse
	ErrCircularReference = domain.ErrCircularReference
)

// EnvLogLevel names the environment variable read for the default log level.
const EnvLogLevel = "YAMLMODULE_LOG_LEVEL"

// Option represents a configuration option for the plugin
type Option func(*Config)

// Config holds the configuration for the plugin
type Config struct {
	Logger                *zerolog.Logger
	LogLevel              zerolog.Level
	DefaultOpenAPIVersion string
	PathScopedOpenAPI     bool
	MaxFileSize           int64
	MaxDepth              int
	HTTPTimeout           time.Duration
	FileSystem            afs.Service
}

// WithLogger sends plugin records to logger instead of the host project log
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = &logger
	}
}

// WithLogLevel sets the minimum level of plugin records
func WithLogLevel(level zerolog.Level) Option {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// WithDefaultOpenAPIVersion sets the version used by `openAPI: 'true'` imports
// that name no version
func WithDefaultOpenAPIVersion(version string) Option {
	return func(c *Config) {
		c.DefaultOpenAPIVersion = version
	}
}

// WithPathScopedOpenAPI limits OpenAPI treatment to the documents imported
// with OpenAPI attributes. By default one such import switches every data
// document of the project to OpenAPI mode.
func WithPathScopedOpenAPI(scoped bool) Option {
	return func(c *Config) {
		c.PathScopedOpenAPI = scoped
	}
}

// WithMaxFileSize sets the maximum size of a referenced document in bytes (0 = unlimited)
func WithMaxFileSize(size int64) Option {
	return func(c *Config) {
		c.MaxFileSize = size
	}
}

// WithMaxDepth sets the maximum nesting depth of $ref expansion (0 = unlimited)
func WithMaxDepth(depth int) Option {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// WithHTTPTimeout sets the timeout for fetching remote $ref documents
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithFileSystem sets the storage data documents are read and listed from
func WithFileSystem(fs afs.Service) Option {
	return func(c *Config) {
		c.FileSystem = fs
	}
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	c := &Config{
		LogLevel:              zerolog.InfoLevel,
		DefaultOpenAPIVersion: domain.DefaultOpenAPIVersion,
		MaxFileSize:           0, // unlimited
		MaxDepth:              0, // unlimited
		HTTPTimeout:           30 * time.Second,
	}
	if env := os.Getenv(EnvLogLevel); env != "" {
		if level, err := zerolog.ParseLevel(env); err == nil {
			c.LogLevel = level
		}
	}
	return c
}

func newConfig(opts []Option) *Config {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return config
}

func (c *Config) fileLoader() domain.FileLoader {
	if c.FileSystem != nil {
		return loader.NewFileLoaderWithService(c.FileSystem)
	}
	return loader.NewFileLoader()
}

func (c *Config) dereferencer(yamlParser domain.Parser, logger zerolog.Logger) domain.Dereferencer {
	client := &http.Client{Timeout: c.HTTPTimeout}
	async := resolver.NewResolver(yamlParser, client, domain.Config{
		MaxFileSize: c.MaxFileSize,
		MaxDepth:    c.MaxDepth,
	}, logger)
	return resolver.NewSync(async)
}

// Plugin creates per-project plugin instances
type Plugin struct {
	toolkit host.Toolkit
	opts    []Option
}

// Init returns the plugin module. toolkit is the host's syntax toolkit.
func Init(toolkit host.Toolkit, opts ...Option) *Plugin {
	return &Plugin{toolkit: toolkit, opts: opts}
}

// Create installs the plugin into one project.
//
// info.LanguageServiceHost is modified in place: resolution, snapshot and
// script-kind slots are replaced by wrappers that delegate to the previous
// functions. The returned service forwards everything to
// info.LanguageService except completions.
func (p *Plugin) Create(info *host.PluginCreateInfo) host.LanguageService {
	config := newConfig(p.opts)
	configErr := config.applyPluginConfig(info.Config)

	logger := config.logger(info.Project)
	if configErr != nil {
		logger.Warn().Err(configErr).Msg("ignoring invalid plugin configuration")
	}

	lsh := info.LanguageServiceHost
	original := *lsh

	directives := registry.New(config.PathScopedOpenAPI)
	files := config.fileLoader()
	yamlParser := parser.NewParser()

	synthesizer := usecase.NewSnapshotSynthesizer(
		original,
		files,
		yamlParser,
		config.dereferencer(yamlParser, logger),
		directives,
		logger,
	)
	lsh.GetScriptKind = synthesizer.ScriptKind
	lsh.GetScriptSnapshot = synthesizer.Snapshot

	if original.ResolveModuleNameLiterals == nil {
		logger.Warn().Msg("host has no module resolver, data document imports stay unresolved")
	} else {
		interceptor := usecase.NewResolutionInterceptor(
			original.ResolveModuleNameLiterals,
			directives,
			config.DefaultOpenAPIVersion,
			logger,
		)
		lsh.ResolveModuleNameLiterals = interceptor.Resolve
	}

	augmenter := usecase.NewCompletionAugmenter(
		p.toolkit,
		original.ResolveModuleNameLiterals,
		info.Project,
		files,
		logger,
	)

	logger.Debug().
		Bool("path_scoped_openapi", config.PathScopedOpenAPI).
		Str("default_openapi_version", config.DefaultOpenAPIVersion).
		Msg("plugin created")
	return usecase.NewLanguageService(info.LanguageService, augmenter)
}

// Render returns the module text the plugin would serve for the data
// document at path when imported with directive d.
//
// Example:
//
//	text, err := yamlmodule.Render(ctx, "spec.yaml", yamlmodule.Directive{Const: true})
func Render(ctx context.Context, path string, d Directive, opts ...Option) (string, error) {
	config := newConfig(opts)
	logger := config.logger(nil)

	directives := registry.New(true)
	if d.Const {
		directives.AddConst(path)
	}
	if d.OpenAPI || d.OpenAPIVersion != "" {
		version := d.OpenAPIVersion
		if version == "" {
			version = config.DefaultOpenAPIVersion
		}
		directives.SetOpenAPIVersion(path, version)
	}

	yamlParser := parser.NewParser()
	synthesizer := usecase.NewSnapshotSynthesizer(
		host.LanguageServiceHost{},
		config.fileLoader(),
		yamlParser,
		config.dereferencer(yamlParser, logger),
		directives,
		logger,
	)

	text, ok, err := synthesizer.Synthesize(ctx, path)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &domain.ErrFileNotFound{Path: path}
	}
	return text, nil
}

// List returns the names of the data documents in dir, as offered by
// import completion.
func List(ctx context.Context, dir string, opts ...Option) ([]string, error) {
	config := newConfig(opts)
	names, err := config.fileLoader().List(ctx, dir, domain.DataDocumentPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list data documents: %w", err)
	}
	return names, nil
}

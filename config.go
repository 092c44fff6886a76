package yamlmodule

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// pluginConfig is the per-project configuration block the host passes to
// Create, e.g. from the plugins section of tsconfig.json.
type pluginConfig struct {
	LogLevel          string `yaml:"logLevel"`
	OpenAPIVersion    string `yaml:"openAPIVersion"`
	PathScopedOpenAPI *bool  `yaml:"pathScopedOpenAPI"`
	MaxDepth          *int   `yaml:"maxDepth"`
	HTTPTimeout       string `yaml:"httpTimeout"`
}

// decodePluginConfig maps the host's untyped configuration onto pluginConfig.
// Unknown keys are ignored.
func decodePluginConfig(raw map[string]interface{}) (*pluginConfig, error) {
	var pc pluginConfig
	if len(raw) == 0 {
		return &pc, nil
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plugin config: %w", err)
	}
	if err := yaml.Unmarshal(data, &pc); err != nil {
		return nil, fmt.Errorf("failed to decode plugin config: %w", err)
	}
	return &pc, nil
}

// applyPluginConfig overrides c with the values present in raw. Invalid
// values leave the corresponding setting untouched.
func (c *Config) applyPluginConfig(raw map[string]interface{}) error {
	pc, err := decodePluginConfig(raw)
	if err != nil {
		return err
	}

	if pc.LogLevel != "" {
		level, err := zerolog.ParseLevel(pc.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid logLevel %q: %w", pc.LogLevel, err)
		}
		c.LogLevel = level
	}
	if pc.OpenAPIVersion != "" {
		c.DefaultOpenAPIVersion = pc.OpenAPIVersion
	}
	if pc.PathScopedOpenAPI != nil {
		c.PathScopedOpenAPI = *pc.PathScopedOpenAPI
	}
	if pc.MaxDepth != nil {
		if *pc.MaxDepth < 0 {
			return fmt.Errorf("invalid maxDepth %d", *pc.MaxDepth)
		}
		c.MaxDepth = *pc.MaxDepth
	}
	if pc.HTTPTimeout != "" {
		timeout, err := time.ParseDuration(pc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("invalid httpTimeout %q: %w", pc.HTTPTimeout, err)
		}
		c.HTTPTimeout = timeout
	}
	return nil
}

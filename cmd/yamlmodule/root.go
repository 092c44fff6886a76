package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "yamlmodule",
		Short: "Render YAML data documents as typed TypeScript modules",
		Long: `yamlmodule shows what the language-service plugin serves for a YAML
data document imported from TypeScript.

Examples:
  yamlmodule render config.yaml --const
  yamlmodule render api.yaml --openapi --openapi-version 3.0.3
  yamlmodule list ./src`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to $YAMLMODULE_LOG_LEVEL or warn")

	logger := func() zerolog.Logger {
		level := zerolog.WarnLevel
		if env := os.Getenv("YAMLMODULE_LOG_LEVEL"); env != "" {
			if l, err := zerolog.ParseLevel(env); err == nil {
				level = l
			}
		}
		if logLevel != "" {
			if l, err := zerolog.ParseLevel(logLevel); err == nil {
				level = l
			}
		}
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	root.AddCommand(
		newRenderCmd(logger),
		newListCmd(logger),
		newVersionCmd(),
	)
	return root
}

package main

import (
	"fmt"

	"github.com/miorlan/yamlmodule"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRenderCmd(logger func() zerolog.Logger) *cobra.Command {
	var (
		asConst        bool
		openAPI        bool
		openAPIVersion string
		maxDepth       int
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print the module text for a data document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			d := yamlmodule.Directive{
				Const:          asConst,
				OpenAPI:        openAPI || openAPIVersion != "",
				OpenAPIVersion: openAPIVersion,
			}

			text, err := yamlmodule.Render(cmd.Context(), args[0], d,
				yamlmodule.WithLogger(log),
				yamlmodule.WithLogLevel(log.GetLevel()),
				yamlmodule.WithMaxDepth(maxDepth),
			)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asConst, "const", false, "narrow the export with `as const`")
	cmd.Flags().BoolVar(&openAPI, "openapi", false, "dereference the document as an OpenAPI definition")
	cmd.Flags().StringVar(&openAPIVersion, "openapi-version", "", "OpenAPI version (implies --openapi)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum $ref nesting depth (0 = unlimited)")
	return cmd
}

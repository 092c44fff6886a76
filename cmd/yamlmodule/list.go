package main

import (
	"fmt"

	"github.com/miorlan/yamlmodule"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newListCmd(logger func() zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List the data documents import completion offers in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			names, err := yamlmodule.List(cmd.Context(), dir, yamlmodule.WithLogger(logger()))
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

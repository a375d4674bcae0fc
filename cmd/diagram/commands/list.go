package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/v0idhrt/boxdiagram/internal/catalog"
	"github.com/v0idhrt/boxdiagram/internal/surface"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists the built-in diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, d := range catalog.List() {
				fmt.Fprintf(out, "%s\t%s\n", bold(d.Name), d.Title)
				fmt.Fprintf(out, "\t%s\n", subtle(d.Description))
			}
			return nil
		},
	}
}

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "Lists the supported output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range surface.Formats() {
				fmt.Fprintf(cmd.OutOrStdout(), ".%s\t%s\n", f.Extension(), f.ContentType())
			}
			return nil
		},
	}
}

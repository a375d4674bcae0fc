// Package commands implements the diagram command line.
package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/v0idhrt/boxdiagram/internal/common/config"
	"github.com/v0idhrt/boxdiagram/internal/common/middleware"
)

var (
	success = color.New(color.FgGreen).SprintFunc()
	subtle  = color.New(color.FgHiBlack).SprintFunc()
	bold    = color.New(color.Bold).SprintFunc()
)

// NewRootCommand assembles the command tree.
func NewRootCommand() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:   "diagram",
		Short: "Render built-in box-and-arrow diagrams",
		Long: `diagram renders the built-in architecture diagrams to PNG, JPEG or SVG.
The output format follows the extension of the output file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			middleware.SetLogLevel(cfg.LogLevel)
		},
	}

	root.AddCommand(newListCommand(), newRenderCommand(cfg), newFormatsCommand())
	return root
}

// Execute runs the command line with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

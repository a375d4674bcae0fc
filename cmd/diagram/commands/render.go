package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3/log"
	"github.com/spf13/cobra"

	"github.com/v0idhrt/boxdiagram/internal/catalog"
	"github.com/v0idhrt/boxdiagram/internal/common/config"
	"github.com/v0idhrt/boxdiagram/internal/surface"
)

func newRenderCommand(cfg *config.Config) *cobra.Command {
	var (
		output string
		dpi    float64
	)

	cmd := &cobra.Command{
		Use:   "render <name>",
		Short: "Renders a built-in diagram to a file",
		Long: `Renders a built-in diagram. The format is taken from the extension of --output
(.png, .jpg, .jpeg or .svg). Without --output the file is <name>.<DEFAULT_FORMAT>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				format, err := surface.ParseFormat(cfg.DefaultFormat)
				if err != nil {
					return err
				}
				output = d.Name + "." + format.Extension()
			}
			if _, err := surface.FormatFor(output); err != nil {
				return err
			}
			if dpi < 0 {
				return fmt.Errorf("--dpi must be positive, got %g", dpi)
			}

			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("mkdir output dir: %w", err)
				}
			}

			log.Debugf("[RENDER] %s -> %s (dpi %g)", d.Name, output, dpi)
			if err := d.Render(surface.Open, output, dpi); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", success("rendered"), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; its extension selects the format")
	cmd.Flags().Float64Var(&dpi, "dpi", 0, "output resolution (default: the diagram's own)")
	return cmd
}

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"apidocs/internal/config"
	"apidocs/internal/htmlgen"
)

func newRenderHTMLCmd(configPath *string) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "render-html",
		Short: "Re-render the HTML index and all version pages",
		Long: `Re-render derives the version list from the snapshots on disk and rewrites
the root index plus every version's detail page. No snapshots are touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if outputDir != "" {
				if err := cfg.Update(map[string]any{"output_dir": outputDir}); err != nil {
					return err
				}
			}

			renderer := htmlgen.New(cfg, slog.Default())
			if err := renderer.RenderAll(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Regenerated HTML index at %s\n", renderer.IndexPath())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Override the configured output directory")

	return cmd
}

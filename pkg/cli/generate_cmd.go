package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"apidocs/internal/config"
	"apidocs/internal/generate"
	"apidocs/internal/htmlgen"
)

func newGenerateCmd(configPath *string) *cobra.Command {
	var (
		appName    string
		force      bool
		doValidate bool
	)

	cmd := &cobra.Command{
		Use:   "generate <locator>",
		Short: "Generate a new documentation snapshot",
		Long: `Generate loads the application's schema document, allocates the next
version identifier and persists the snapshot (YAML, JSON, metadata), then
re-renders the HTML index.

The locator is the path to an OpenAPI document file; embedders may instead
register an application by name and pass --app.`,
		Example: `  # Snapshot an exported OpenAPI document
  apidocs generate api/openapi.yaml

  # Regenerate the latest version in place
  apidocs generate api/openapi.yaml --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locator := ""
			if len(args) > 0 {
				locator = args[0]
			}
			if locator == "" && appName == "" {
				return fmt.Errorf("either a locator argument or --app is required")
			}
			return runGenerate(cmd, *configPath, locator, appName, force, doValidate)
		},
	}

	cmd.Flags().StringVarP(&appName, "app", "a", "", "Name of a registered application")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing snapshot for the allocated version")
	cmd.Flags().BoolVar(&doValidate, "validate", true, "Validate the generated snapshot")

	return cmd
}

func runGenerate(cmd *cobra.Command, configPath, locator, appName string, force, doValidate bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	gen := generate.New(cfg, slog.Default())
	gen.GeneratorVersion = version

	out, err := gen.Generate(cmd.Context(), locator, appName, force)
	if err != nil {
		return err
	}

	if doValidate {
		result := gen.Validate(out.Version)
		if !result.Valid {
			return fmt.Errorf("generated snapshot failed validation: %v", result.Errors)
		}
		for _, warning := range result.Warnings {
			slog.Warn("generated snapshot warning", "version", out.Version, "warning", warning)
		}
	}

	renderer := htmlgen.New(cfg, slog.Default())
	if err := renderer.RenderVersionPage(out.Version); err != nil {
		return err
	}
	if err := renderer.RenderIndex(); err != nil {
		return err
	}

	absOut, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		absOut = cfg.OutputDir
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated API documentation version %s\n", out.Version)
	fmt.Fprintf(cmd.OutOrStdout(), "Output directory: %s\n", absOut)
	fmt.Fprintf(cmd.OutOrStdout(), "Index: file://%s\n", filepath.Join(filepath.Dir(absOut), "index.html"))
	return nil
}

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"apidocs/internal/config"
	"apidocs/internal/generate"
)

func newValidateCmd(configPath *string) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [version]",
		Short: "Validate persisted snapshots",
		Long: `Validate checks the structural well-formedness of one version's snapshot,
or of every version when none is given. Warnings do not fail validation
unless --strict is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			gen := generate.New(cfg, slog.Default())

			var versions []string
			if len(args) == 1 {
				versions = args
			} else {
				versions = gen.ExistingVersions()
			}
			if len(versions) == 0 {
				slog.Warn("no versions found to validate")
				return nil
			}

			allValid := true
			for _, ver := range versions {
				result := gen.Validate(ver)
				switch {
				case result.Valid:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", ver)
					for _, warning := range result.Warnings {
						fmt.Fprintf(cmd.OutOrStdout(), "  warning: %s\n", warning)
						if strict {
							allValid = false
						}
					}
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid\n", ver)
					for _, e := range result.Errors {
						fmt.Fprintf(cmd.OutOrStdout(), "  error: %s\n", e)
					}
					allValid = false
				}
			}

			if !allValid {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")

	return cmd
}

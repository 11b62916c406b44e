package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apidocs/internal/config"
)

func newInitCmd() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateChoiceFlag(cmd.Flags(), "format", "yaml", "json"); err != nil {
				return err
			}

			path := "apidocs." + format
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			if err := config.Default().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Configuration format (yaml, json)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")

	return cmd
}

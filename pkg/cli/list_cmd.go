package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"apidocs/internal/config"
	"apidocs/internal/generate"
)

// versionDetail is the serialisable row for detailed listings.
type versionDetail struct {
	Version     string `json:"version" yaml:"version"`
	GeneratedAt string `json:"generated_at,omitempty" yaml:"generated_at,omitempty"`
	Routes      int    `json:"routes" yaml:"routes"`
	ModulePath  string `json:"module_path,omitempty" yaml:"module_path,omitempty"`
}

func newListCmd(configPath *string) *cobra.Command {
	var (
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List generated documentation versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateChoiceFlag(cmd.Flags(), "format", "table", "json", "yaml"); err != nil {
				return err
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			gen := generate.New(cfg, slog.Default())
			versions := gen.ExistingVersions()

			if detailed {
				details := make([]versionDetail, 0, len(versions))
				for _, ver := range versions {
					details = append(details, detailRow(gen, ver))
				}
				return writeDetailed(cmd.OutOrStdout(), format, details)
			}
			return writePlain(cmd.OutOrStdout(), format, versions)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, json, yaml)")
	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "Include metadata per version")

	return cmd
}

func detailRow(gen *generate.Generator, ver string) versionDetail {
	row := versionDetail{Version: ver}
	if meta := gen.Info(ver); meta != nil {
		if !meta.GeneratedAt.IsZero() {
			row.GeneratedAt = meta.GeneratedAt.Format(time.RFC3339)
		}
		row.Routes = meta.RoutesCount
		row.ModulePath = meta.ModulePath
	}
	return row
}

// writePlain emits just the version identifiers: one per line for tables,
// wrapped under a "versions" key for structured formats.
func writePlain(w io.Writer, format string, versions []string) error {
	switch format {
	case "json":
		return encodeJSON(w, map[string]any{"versions": versions})
	case "yaml":
		return encodeYAML(w, map[string]any{"versions": versions})
	default:
		for _, ver := range versions {
			fmt.Fprintln(w, ver)
		}
		return nil
	}
}

func writeDetailed(w io.Writer, format string, details []versionDetail) error {
	switch format {
	case "json":
		return encodeJSON(w, details)
	case "yaml":
		return encodeYAML(w, details)
	default:
		fmt.Fprintf(w, "%-10s %-22s %-8s %s\n", "VERSION", "GENERATED", "ROUTES", "MODULE")
		for _, d := range details {
			generated := d.GeneratedAt
			if generated == "" {
				generated = "unknown"
			}
			fmt.Fprintf(w, "%-10s %-22s %-8d %s\n", d.Version, generated, d.Routes, d.ModulePath)
		}
		return nil
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Package generate orchestrates one documentation generation: resolve the
// application, pick a version, and persist the snapshot.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"apidocs/internal/appsource"
	"apidocs/internal/config"
	"apidocs/internal/snapshot"
	"apidocs/internal/version"
)

// GenerationError wraps any failure during snapshot generation with its
// underlying cause attached.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate documentation snapshot: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// Outcome reports what a generation did.
type Outcome struct {
	Version string
	Skipped bool
}

// Generator drives the generation pipeline for one resolved configuration.
type Generator struct {
	Config *config.Config
	Logger *slog.Logger

	// GeneratorVersion is stamped into metadata; the CLI sets it to the
	// build version.
	GeneratorVersion string
}

// New returns a Generator for cfg.
func New(cfg *config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{Config: cfg, Logger: logger}
}

// Generate loads the application behind locator/appName, allocates a version
// and writes the snapshot. With force false an existing snapshot is left
// untouched and reported as skipped. Collaborator failures are re-signalled
// as *GenerationError carrying the original cause.
func (g *Generator) Generate(ctx context.Context, locator, appName string, force bool) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	app, err := appsource.Load(locator, appName)
	if err != nil {
		return Outcome{}, &GenerationError{Cause: err}
	}

	doc, err := app.Schema()
	if err != nil {
		return Outcome{}, &GenerationError{Cause: err}
	}

	for _, warning := range advisories(doc, app.RouteCount()) {
		g.Logger.Warn("application advisory", "warning", warning)
	}

	ver := g.nextVersion()
	versionDir := filepath.Join(g.Config.OutputDir, ver)

	now := time.Now()
	meta := snapshot.Metadata{
		GeneratedAt:      now,
		Generator:        snapshot.Generator,
		GeneratorVersion: g.GeneratorVersion,
		GenerationID:     uuid.NewString(),
		ModulePath:       locator,
		AppName:          appName,
		RoutesCount:      app.RouteCount(),
		Config: snapshot.MetadataConfig{
			OutputDir:   g.Config.OutputDir,
			Title:       g.Config.Title,
			Description: g.Config.Description,
		},
	}

	writer := &snapshot.Writer{
		Title:       g.Config.Title,
		Description: g.Config.Description,
		Contact:     g.Config.Contact,
		License:     g.Config.License,
		Servers:     g.Config.Servers,
	}

	skipped, err := writer.Write(doc, versionDir, meta, force)
	if err != nil {
		return Outcome{}, &GenerationError{Cause: err}
	}
	if skipped {
		g.Logger.Info("snapshot already exists, skipping generation", "version", ver)
	} else {
		g.Logger.Info("snapshot generated", "version", ver, "dir", versionDir)
	}

	return Outcome{Version: ver, Skipped: skipped}, nil
}

// nextVersion picks the version identifier for this run: the configured fixed
// version when auto-increment is off, otherwise one past the highest on disk.
func (g *Generator) nextVersion() string {
	if !g.Config.AutoIncrement {
		return g.Config.Version
	}
	return version.Next(g.Config.OutputDir, g.Config.VersionPrefix)
}

// ExistingVersions lists complete snapshots in the output directory.
func (g *Generator) ExistingVersions() []string {
	return snapshot.ListVersions(g.Config.OutputDir, g.Config.VersionPrefix)
}

// Info returns the metadata for one version, or nil when absent. Unparseable
// metadata is logged at warning level and treated as absent.
func (g *Generator) Info(ver string) *snapshot.Metadata {
	meta, err := snapshot.LoadMetadata(g.Config.OutputDir, ver)
	if err != nil {
		g.Logger.Warn("failed to load snapshot metadata", "version", ver, "error", err)
		return nil
	}
	return meta
}

// Validate checks one version's persisted snapshot.
func (g *Generator) Validate(ver string) snapshot.Result {
	return snapshot.Validate(g.Config.OutputDir, ver)
}

// advisories returns non-blocking warnings about the application's schema,
// mirroring the persisted-snapshot validation checks.
func advisories(doc snapshot.Document, routes int) []string {
	var warnings []string
	if routes == 0 {
		warnings = append(warnings, "application has no routes defined")
	}
	info, _ := doc["info"].(map[string]any)
	if title, _ := info["title"].(string); title == "" {
		warnings = append(warnings, "application has no title defined")
	}
	if ver, _ := info["version"].(string); ver == "" {
		warnings = append(warnings, "application has no version defined")
	}
	return warnings
}

// Package htmlgen renders the static HTML surface: a root index listing every
// snapshot version and one Swagger UI detail page per version. Both views are
// derived purely from on-disk snapshots on every render; the HTML is never the
// source of truth for which versions exist.
package htmlgen

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	gomponents "maragu.dev/gomponents"

	"apidocs/internal/config"
	"apidocs/internal/snapshot"
)

// VersionInfo pairs a version identifier with its metadata, which may be
// absent. Absent metadata renders with placeholders, never excludes a version.
type VersionInfo struct {
	Version string
	Meta    *snapshot.Metadata
}

// Renderer writes the static HTML tree for one output directory.
type Renderer struct {
	outputDir     string
	title         string
	description   string
	versionPrefix string
	swaggerUI     map[string]any
	logger        *slog.Logger
}

// New builds a Renderer from the resolved configuration.
func New(cfg *config.Config, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		outputDir:     cfg.OutputDir,
		title:         cfg.Title,
		description:   cfg.Description,
		versionPrefix: cfg.VersionPrefix,
		swaggerUI:     cfg.SwaggerUI,
		logger:        logger,
	}
}

// Versions returns every on-disk version with its metadata, newest first.
func (r *Renderer) Versions() []VersionInfo {
	ids := snapshot.ListVersions(r.outputDir, r.versionPrefix)

	infos := make([]VersionInfo, 0, len(ids))
	// ListVersions sorts ascending; walk backwards for the newest-first index.
	for i := len(ids) - 1; i >= 0; i-- {
		meta, err := snapshot.LoadMetadata(r.outputDir, ids[i])
		if err != nil {
			r.logger.Warn("failed to load snapshot metadata", "version", ids[i], "error", err)
		}
		infos = append(infos, VersionInfo{Version: ids[i], Meta: meta})
	}
	return infos
}

// IndexPath is where the root index document is written: one level above the
// output directory, so version artifacts live underneath it.
func (r *Renderer) IndexPath() string {
	return filepath.Join(filepath.Dir(r.outputDir), "index.html")
}

// RenderIndex writes the root index listing all versions. An empty version
// set renders an explicit empty state rather than failing.
func (r *Renderer) RenderIndex() error {
	page := indexPage(r.title, r.description, filepath.Base(r.outputDir), r.Versions())
	if err := writeNode(r.IndexPath(), page); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	return nil
}

// RenderVersionPage writes the detail view for one version. The page loads
// the version's primary schema file by relative path into Swagger UI.
func (r *Renderer) RenderVersionPage(ver string) error {
	opts, err := r.swaggerOptions()
	if err != nil {
		return err
	}
	page := versionPage(ver, opts)
	if err := writeNode(filepath.Join(r.outputDir, ver, "index.html"), page); err != nil {
		return fmt.Errorf("render version page %s: %w", ver, err)
	}
	return nil
}

// RenderAll re-renders the index and every version's detail page. Version
// pages are independent, so they render concurrently.
func (r *Renderer) RenderAll() error {
	var g errgroup.Group
	for _, ver := range snapshot.ListVersions(r.outputDir, r.versionPrefix) {
		ver := ver
		g.Go(func() error { return r.RenderVersionPage(ver) })
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return r.RenderIndex()
}

// swaggerOptions merges the configured Swagger UI options over the viewer
// defaults and serialises them for embedding.
func (r *Renderer) swaggerOptions() (string, error) {
	merged := map[string]any{
		"deepLinking":            true,
		"displayRequestDuration": true,
		"docExpansion":           "none",
		"filter":                 true,
		"tryItOutEnabled":        true,
	}
	for k, v := range r.swaggerUI {
		merged[k] = v
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return "", fmt.Errorf("marshal swagger ui options: %w", err)
	}
	return string(data), nil
}

// formatGenerated renders a metadata timestamp for the index table.
func formatGenerated(meta *snapshot.Metadata) string {
	if meta == nil || meta.GeneratedAt.IsZero() {
		return "unknown"
	}
	return meta.GeneratedAt.Format("2006-01-02 15:04")
}

// formatRoutes renders a route count for the index table.
func formatRoutes(meta *snapshot.Metadata) string {
	if meta == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", meta.RoutesCount)
}

func formatNow() string {
	return time.Now().Format(time.RFC3339)
}

func writeNode(path string, node gomponents.Node) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path) //nolint:gosec // path derived from configured output dir
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck
	if err := node.Render(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Package snapshot persists and reads versioned schema document snapshots.
//
// A snapshot is one version directory holding the schema document in two
// serialisations plus a metadata sidecar. Snapshots are written once and only
// ever replaced wholesale under an explicit force request; nothing here
// deletes them. The writer commits each file through a temp-file-and-rename so
// readers never observe a half-written file, but cross-file atomicity is best
// effort: only the primary YAML file's presence decides whether a snapshot
// exists.
package snapshot

import "time"

// File names inside a version directory.
const (
	SpecFileYAML = "api_config.yaml" // primary, human-editable
	SpecFileJSON = "api_config.json" // secondary, machine interop
	MetadataFile = "metadata.json"
)

// Generator is the identity string stamped into generated documents.
const Generator = "apidocs"

// Document is the schema document: an arbitrary nested mapping describing an
// API's operations, parameters, and models.
type Document = map[string]any

// MetadataConfig is the output-facing slice of the resolved configuration
// recorded alongside each snapshot.
type MetadataConfig struct {
	OutputDir   string `json:"output_dir"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Metadata is the sidecar record written next to each schema document.
type Metadata struct {
	GeneratedAt      time.Time      `json:"generated_at"`
	Generator        string         `json:"generator"`
	GeneratorVersion string         `json:"generator_version,omitempty"`
	GenerationID     string         `json:"generation_id,omitempty"`
	ModulePath       string         `json:"module_path"`
	AppName          string         `json:"app_name"`
	RoutesCount      int            `json:"routes_count"`
	Config           MetadataConfig `json:"config"`
}

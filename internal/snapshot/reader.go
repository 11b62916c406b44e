package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"apidocs/internal/version"
)

// ListVersions enumerates version directories under outputDir that hold a
// complete snapshot (primary YAML file present), ascending by numeric suffix.
// A missing outputDir yields an empty list.
func ListVersions(outputDir, prefix string) []string {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil
	}

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, ok := version.Number(entry.Name(), prefix); !ok {
			continue
		}
		if Exists(filepath.Join(outputDir, entry.Name())) {
			versions = append(versions, entry.Name())
		}
	}
	version.Sort(versions, prefix)
	return versions
}

// LoadMetadata reads the metadata sidecar for a version. A missing file is
// not an error: the result is simply absent (nil, nil). A present but
// unparseable file returns the parse error so the caller can log it at
// warning level and still treat the metadata as absent.
func LoadMetadata(outputDir, ver string) (*Metadata, error) {
	path := filepath.Join(outputDir, ver, MetadataFile)
	data, err := os.ReadFile(path) //nolint:gosec // path derived from configured output dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &meta, nil
}

// LoadDocument reads the primary YAML serialisation of a snapshot.
func LoadDocument(versionDir string) (Document, error) {
	path := filepath.Join(versionDir, SpecFileYAML)
	data, err := os.ReadFile(path) //nolint:gosec // path derived from configured output dir
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// LoadDocumentJSON reads the secondary JSON serialisation of a snapshot.
func LoadDocumentJSON(versionDir string) (Document, error) {
	path := filepath.Join(versionDir, SpecFileJSON)
	data, err := os.ReadFile(path) //nolint:gosec // path derived from configured output dir
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Writer persists snapshots. The descriptive fields are applied to the
// document's info section when the introspected schema leaves them empty.
type Writer struct {
	Title       string
	Description string
	Contact     map[string]any
	License     map[string]any
	Servers     []any
}

// Exists reports whether a snapshot already occupies versionDir. Existence is
// keyed on the primary YAML file alone; a stale or missing metadata sidecar
// does not make a snapshot new again.
func Exists(versionDir string) bool {
	_, err := os.Stat(filepath.Join(versionDir, SpecFileYAML))
	return err == nil
}

// Write enhances doc in place and persists it into versionDir together with
// its metadata sidecar. When the snapshot already exists and force is false,
// nothing is written and skipped is true. Write never touches any directory
// other than versionDir.
func (w *Writer) Write(doc Document, versionDir string, meta Metadata, force bool) (skipped bool, err error) {
	if !force && Exists(versionDir) {
		return true, nil
	}

	if err := os.MkdirAll(versionDir, 0o750); err != nil {
		return false, fmt.Errorf("create version directory %s: %w", versionDir, err)
	}

	w.enhance(doc, meta.GeneratedAt)

	yamlData, err := yaml.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("marshal %s: %w", SpecFileYAML, err)
	}
	if err := writeFileAtomic(filepath.Join(versionDir, SpecFileYAML), yamlData); err != nil {
		return false, err
	}

	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return false, fmt.Errorf("marshal %s: %w", SpecFileJSON, err)
	}
	if err := writeFileAtomic(filepath.Join(versionDir, SpecFileJSON), jsonData); err != nil {
		return false, err
	}

	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return false, fmt.Errorf("marshal %s: %w", MetadataFile, err)
	}
	if err := writeFileAtomic(filepath.Join(versionDir, MetadataFile), metaData); err != nil {
		return false, err
	}

	return false, nil
}

// enhance fills descriptive info fields from configuration when the document
// lacks them and stamps generator identity and generation time.
func (w *Writer) enhance(doc Document, generatedAt time.Time) {
	info, ok := doc["info"].(map[string]any)
	if !ok {
		info = map[string]any{}
		doc["info"] = info
	}

	if title, _ := info["title"].(string); title == "" {
		info["title"] = w.Title
	}
	if desc, _ := info["description"].(string); desc == "" {
		info["description"] = w.Description
	}

	info["x-generated-by"] = Generator
	info["x-generated-at"] = generatedAt.Format(time.RFC3339)

	if w.Contact != nil {
		info["contact"] = w.Contact
	}
	if w.License != nil {
		info["license"] = w.License
	}
	if w.Servers != nil {
		doc["servers"] = w.Servers
	}
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so a crash mid-write cannot leave a torn file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o640); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

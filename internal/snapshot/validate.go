package snapshot

import (
	"fmt"
	"path/filepath"
)

// Result is the outcome of validating one snapshot. It is data, never an
// error return: a snapshot is valid iff Errors is empty, and callers decide
// separately whether to fail on Warnings (strict mode).
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Validate checks structural well-formedness of one version's persisted
// schema document. A missing or unparseable primary file and a missing
// schema-version marker are errors; missing descriptive info fields and an
// empty paths section are warnings.
func Validate(outputDir, ver string) Result {
	versionDir := filepath.Join(outputDir, ver)

	if !Exists(versionDir) {
		return Result{
			Valid:  false,
			Errors: []string{fmt.Sprintf("spec file not found: %s", filepath.Join(versionDir, SpecFileYAML))},
		}
	}

	doc, err := LoadDocument(versionDir)
	if err != nil {
		return Result{
			Valid:  false,
			Errors: []string{fmt.Sprintf("failed to parse spec: %v", err)},
		}
	}

	var errs, warns []string

	if marker, _ := doc["openapi"].(string); marker == "" {
		errs = append(errs, "missing OpenAPI version")
	}

	info, _ := doc["info"].(map[string]any)
	if title, _ := info["title"].(string); title == "" {
		warns = append(warns, "missing API title")
	}
	if ver, _ := info["version"].(string); ver == "" {
		warns = append(warns, "missing API version")
	}

	if paths, _ := doc["paths"].(map[string]any); len(paths) == 0 {
		warns = append(warns, "no API paths defined")
	}

	return Result{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}

package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() Document {
	return Document{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":   "T",
			"version": "1.0.0",
		},
		"paths": map[string]any{
			"/items":  map[string]any{"get": map[string]any{"summary": "List items"}},
			"/users":  map[string]any{"get": map[string]any{"summary": "List users"}},
			"/health": map[string]any{"get": map[string]any{"summary": "Health"}},
		},
	}
}

func sampleMeta(dir string) Metadata {
	return Metadata{
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Generator:   Generator,
		ModulePath:  "api/openapi.yaml",
		AppName:     "app",
		RoutesCount: 3,
		Config: MetadataConfig{
			OutputDir:   dir,
			Title:       "T",
			Description: "D",
		},
	}
}

func TestWriteCreatesAllArtifacts(t *testing.T) {
	out := t.TempDir()
	versionDir := filepath.Join(out, "v1")
	w := &Writer{Title: "T", Description: "D"}

	skipped, err := w.Write(sampleDoc(), versionDir, sampleMeta(out), false)
	require.NoError(t, err)
	assert.False(t, skipped)

	for _, name := range []string{SpecFileYAML, SpecFileJSON, MetadataFile} {
		_, err := os.Stat(filepath.Join(versionDir, name))
		assert.NoError(t, err, name)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(versionDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestWriteSkipsExisting(t *testing.T) {
	out := t.TempDir()
	versionDir := filepath.Join(out, "v1")
	w := &Writer{Title: "T", Description: "D"}

	_, err := w.Write(sampleDoc(), versionDir, sampleMeta(out), false)
	require.NoError(t, err)

	metaPath := filepath.Join(versionDir, MetadataFile)
	before, err := os.Stat(metaPath)
	require.NoError(t, err)

	skipped, err := w.Write(sampleDoc(), versionDir, sampleMeta(out), false)
	require.NoError(t, err)
	assert.True(t, skipped)

	after, err := os.Stat(metaPath)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "skipped write must not touch metadata")
}

func TestWriteForceOverwrites(t *testing.T) {
	out := t.TempDir()
	versionDir := filepath.Join(out, "v1")
	w := &Writer{Title: "T", Description: "D"}

	meta := sampleMeta(out)
	_, err := w.Write(sampleDoc(), versionDir, meta, false)
	require.NoError(t, err)

	meta2 := meta
	meta2.GeneratedAt = meta.GeneratedAt.Add(time.Minute)
	skipped, err := w.Write(sampleDoc(), versionDir, meta2, true)
	require.NoError(t, err)
	assert.False(t, skipped)

	reloaded, err := LoadMetadata(out, "v1")
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.True(t, reloaded.GeneratedAt.After(meta.GeneratedAt), "forced write must advance the metadata timestamp")
}

func TestEnhanceFillsInfoDefaults(t *testing.T) {
	out := t.TempDir()
	versionDir := filepath.Join(out, "v1")
	w := &Writer{
		Title:       "Config Title",
		Description: "Config Description",
		Contact:     map[string]any{"name": "Support"},
		License:     map[string]any{"name": "MIT"},
		Servers:     []any{map[string]any{"url": "https://api.example.com"}},
	}

	doc := Document{"openapi": "3.1.0", "paths": map[string]any{}}
	_, err := w.Write(doc, versionDir, sampleMeta(out), false)
	require.NoError(t, err)

	loaded, err := LoadDocument(versionDir)
	require.NoError(t, err)

	info, ok := loaded["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Config Title", info["title"])
	assert.Equal(t, "Config Description", info["description"])
	assert.Equal(t, Generator, info["x-generated-by"])
	assert.NotEmpty(t, info["x-generated-at"])
	assert.Equal(t, map[string]any{"name": "Support"}, info["contact"])
	assert.Equal(t, map[string]any{"name": "MIT"}, info["license"])
	require.Len(t, loaded["servers"], 1)
}

func TestEnhanceKeepsExistingInfo(t *testing.T) {
	out := t.TempDir()
	versionDir := filepath.Join(out, "v1")
	w := &Writer{Title: "Config Title", Description: "Config Description"}

	_, err := w.Write(sampleDoc(), versionDir, sampleMeta(out), false)
	require.NoError(t, err)

	loaded, err := LoadDocument(versionDir)
	require.NoError(t, err)
	info := loaded["info"].(map[string]any)
	assert.Equal(t, "T", info["title"], "document title wins over config")
}

func TestRoundTripYAMLAndJSON(t *testing.T) {
	out := t.TempDir()
	versionDir := filepath.Join(out, "v1")
	w := &Writer{Title: "T", Description: "D"}

	_, err := w.Write(sampleDoc(), versionDir, sampleMeta(out), false)
	require.NoError(t, err)

	fromYAML, err := LoadDocument(versionDir)
	require.NoError(t, err)
	fromJSON, err := LoadDocumentJSON(versionDir)
	require.NoError(t, err)

	// Logically equal structures through both serialisations.
	assert.Equal(t, fromYAML["openapi"], fromJSON["openapi"])
	assert.Equal(t,
		fromYAML["info"].(map[string]any)["title"],
		fromJSON["info"].(map[string]any)["title"])

	yamlPaths := fromYAML["paths"].(map[string]any)
	jsonPaths := fromJSON["paths"].(map[string]any)
	require.Len(t, jsonPaths, len(yamlPaths))
	for path := range yamlPaths {
		assert.Contains(t, jsonPaths, path)
	}
}

func TestListVersions(t *testing.T) {
	out := t.TempDir()
	w := &Writer{Title: "T", Description: "D"}

	for _, ver := range []string{"v1", "v2", "v10"} {
		_, err := w.Write(sampleDoc(), filepath.Join(out, ver), sampleMeta(out), false)
		require.NoError(t, err)
	}
	// Directory without a spec file is not a version.
	require.NoError(t, os.MkdirAll(filepath.Join(out, "v5"), 0o750))
	// Non-numeric suffix is ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(out, "vnext"), 0o750))

	assert.Equal(t, []string{"v1", "v2", "v10"}, ListVersions(out, "v"))
}

func TestListVersionsMissingDir(t *testing.T) {
	assert.Empty(t, ListVersions(filepath.Join(t.TempDir(), "nope"), "v"))
}

func TestLoadMetadataAbsent(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(out, "v1"), 0o750))

	meta, err := LoadMetadata(out, "v1")
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestLoadMetadataCorrupt(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(out, "v1"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(out, "v1", MetadataFile), []byte("{not json"), 0o600))

	meta, err := LoadMetadata(out, "v1")
	require.Error(t, err)
	assert.Nil(t, meta)
}

func TestValidateHealthySnapshot(t *testing.T) {
	out := t.TempDir()
	w := &Writer{Title: "T", Description: "D"}
	_, err := w.Write(sampleDoc(), filepath.Join(out, "v1"), sampleMeta(out), false)
	require.NoError(t, err)

	res := Validate(out, "v1")
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateMissingPathsIsWarning(t *testing.T) {
	out := t.TempDir()
	w := &Writer{Title: "T", Description: "D"}
	doc := Document{
		"openapi": "3.1.0",
		"info":    map[string]any{"title": "T", "version": "1.0.0"},
	}
	_, err := w.Write(doc, filepath.Join(out, "v1"), sampleMeta(out), false)
	require.NoError(t, err)

	res := Validate(out, "v1")
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.NotEmpty(t, res.Warnings)
}

func TestValidateMissingOpenAPIMarkerIsError(t *testing.T) {
	out := t.TempDir()
	w := &Writer{Title: "T", Description: "D"}
	doc := Document{
		"info":  map[string]any{"title": "T", "version": "1.0.0"},
		"paths": map[string]any{"/x": map[string]any{}},
	}
	_, err := w.Write(doc, filepath.Join(out, "v1"), sampleMeta(out), false)
	require.NoError(t, err)

	res := Validate(out, "v1")
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Errors)
}

func TestValidateMissingSnapshot(t *testing.T) {
	res := Validate(t.TempDir(), "v1")
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "not found")
}

func TestValidateUnparseableSpec(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(out, "v1"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(out, "v1", SpecFileYAML), []byte(":\n\t- bad"), 0o600))

	res := Validate(out, "v1")
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Errors)
}

// Package config resolves tool configuration from defaults and an optional
// on-disk config file (YAML, JSON, or an INI-style [apidocs] section).
package config

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors returned by Load.
var (
	// ErrNotFound is returned when an explicitly given config path does not exist.
	ErrNotFound = errors.New("config file not found")
	// ErrUnsupportedFormat is returned for config file extensions we cannot parse.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// searchFiles is the ordered list of conventional config filenames probed in
// the working directory when no explicit path is given.
var searchFiles = []string{
	"apidocs.yaml",
	"apidocs.yml",
	"apidocs.json",
	"apidocs.cfg",
	".apidocs.yaml",
	".apidocs.yml",
}

// sectionKey is the top-level key a config file may nest its settings under.
const sectionKey = "apidocs"

// Config holds the resolved configuration. Known options live in named fields;
// unrecognised keys are preserved in Extra and reachable through Value.
type Config struct {
	OutputDir      string
	Title          string
	Description    string
	VersionPrefix  string
	Version        string // fixed version used when AutoIncrement is off
	AutoIncrement  bool
	IncludeSchemas bool
	SwaggerUI      map[string]any
	Contact        map[string]any
	License        map[string]any
	Servers        []any

	Extra map[string]any

	// Path is the config file the settings were loaded from, empty when
	// running on built-in defaults only.
	Path string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir:      "docs/api",
		Title:          "API Documentation",
		Description:    "Generated API documentation",
		VersionPrefix:  "v",
		Version:        "v1",
		AutoIncrement:  true,
		IncludeSchemas: true,
		SwaggerUI: map[string]any{
			"deepLinking":            true,
			"displayRequestDuration": true,
			"docExpansion":           "none",
			"filter":                 true,
			"showExtensions":         true,
			"showCommonExtensions":   true,
		},
		Extra: map[string]any{},
	}
}

// Load resolves the configuration. An explicit path must exist; otherwise the
// conventional filenames are probed in order and the first hit wins. The
// resolved output directory is created eagerly so later snapshot writes cannot
// fail on a missing root.
func Load(explicitPath string) (*Config, error) {
	cfg := Default()

	path, err := findFile(explicitPath)
	if err != nil {
		return nil, err
	}

	if path != "" {
		raw, err := parseFile(path)
		if err != nil {
			return nil, err
		}
		cfg.merge(raw)
		cfg.Path = path
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, explicitPath)
		}
		return explicitPath, nil
	}
	for _, name := range searchFiles {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

func parseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		return unwrapSection(raw), nil
	case ".json":
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		return unwrapSection(raw), nil
	case ".cfg", ".ini":
		return parseINI(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// unwrapSection descends into the apidocs: key if present, so both flat and
// sectioned files work.
func unwrapSection(raw map[string]any) map[string]any {
	if section, ok := raw[sectionKey].(map[string]any); ok {
		return section
	}
	return raw
}

// parseINI reads a flat KEY = VALUE file and returns the [apidocs] section.
// Values that parse as JSON (numbers, booleans, arrays, objects) are decoded;
// everything else stays a string. Comments (#, ;) and blank lines are skipped.
func parseINI(data []byte) (map[string]any, error) {
	out := map[string]any{}
	inSection := false

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inSection = strings.TrimSpace(line[1:len(line)-1]) == sectionKey
			continue
		}
		if !inSection {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			out[key] = decoded
		} else {
			out[key] = value
		}
	}
	return out, scanner.Err()
}

// merge applies loaded values over the defaults, key by key. The merge is
// shallow at the top level: a loaded swagger_ui_config replaces the default
// map wholesale. Unknown keys land in Extra.
func (c *Config) merge(raw map[string]any) {
	for key, value := range raw {
		switch key {
		case "output_dir":
			if s, ok := value.(string); ok {
				c.OutputDir = s
			}
		case "title":
			if s, ok := value.(string); ok {
				c.Title = s
			}
		case "description":
			if s, ok := value.(string); ok {
				c.Description = s
			}
		case "version_prefix":
			if s, ok := value.(string); ok {
				c.VersionPrefix = s
			}
		case "version":
			if s, ok := value.(string); ok {
				c.Version = s
			}
		case "auto_increment":
			if b, ok := value.(bool); ok {
				c.AutoIncrement = b
			}
		case "include_schemas":
			if b, ok := value.(bool); ok {
				c.IncludeSchemas = b
			}
		case "swagger_ui_config":
			if m, ok := asStringMap(value); ok {
				c.SwaggerUI = m
			}
		case "contact":
			if m, ok := asStringMap(value); ok {
				c.Contact = m
			}
		case "license":
			if m, ok := asStringMap(value); ok {
				c.License = m
			}
		case "servers":
			if s, ok := value.([]any); ok {
				c.Servers = s
			}
		default:
			c.Extra[key] = value
		}
	}
}

// asStringMap normalises yaml/json decoded maps to map[string]any.
func asStringMap(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = v
		}
		return out, true
	}
	return nil, false
}

// EnsureOutputDir creates the output directory tree if it does not exist.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.OutputDir, 0o750); err != nil {
		return fmt.Errorf("create output directory %s: %w", c.OutputDir, err)
	}
	return nil
}

// Value returns any configuration value by its file key, falling back to def.
// Named fields are reachable under their canonical keys.
func (c *Config) Value(key string, def any) any {
	switch key {
	case "output_dir":
		return c.OutputDir
	case "title":
		return c.Title
	case "description":
		return c.Description
	case "version_prefix":
		return c.VersionPrefix
	case "version":
		return c.Version
	case "auto_increment":
		return c.AutoIncrement
	case "include_schemas":
		return c.IncludeSchemas
	case "swagger_ui_config":
		return c.SwaggerUI
	case "contact":
		return mapOrDefault(c.Contact, def)
	case "license":
		return mapOrDefault(c.License, def)
	case "servers":
		if c.Servers == nil {
			return def
		}
		return c.Servers
	}
	if v, ok := c.Extra[key]; ok {
		return v
	}
	return def
}

func mapOrDefault(m map[string]any, def any) any {
	if m == nil {
		return def
	}
	return m
}

// Update merges partial settings over the current state in memory and
// re-ensures the output directory. The file on disk is untouched.
func (c *Config) Update(partial map[string]any) error {
	c.merge(partial)
	return c.EnsureOutputDir()
}

// Save serialises the current state back to a YAML or JSON file, nested under
// the apidocs section so the result round-trips through Load.
func (c *Config) Save(path string) error {
	if path == "" {
		path = c.Path
		if path == "" {
			path = searchFiles[0]
		}
	}

	wrapped := map[string]any{sectionKey: c.toMap()}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(wrapped)
	case ".json":
		data, err = json.MarshalIndent(wrapped, "", "  ")
	default:
		return fmt.Errorf("%w for saving: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// toMap flattens the config back to its file representation.
func (c *Config) toMap() map[string]any {
	out := map[string]any{
		"output_dir":      c.OutputDir,
		"title":           c.Title,
		"description":     c.Description,
		"version_prefix":  c.VersionPrefix,
		"auto_increment":  c.AutoIncrement,
		"include_schemas": c.IncludeSchemas,
	}
	if !c.AutoIncrement {
		out["version"] = c.Version
	}
	if c.SwaggerUI != nil {
		out["swagger_ui_config"] = c.SwaggerUI
	}
	if c.Contact != nil {
		out["contact"] = c.Contact
	}
	if c.License != nil {
		out["license"] = c.License
	}
	if c.Servers != nil {
		out["servers"] = c.Servers
	}
	for k, v := range c.Extra {
		out[k] = v
	}
	return out
}

package appsource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apidocs/internal/snapshot"
)

const specYAML = `openapi: 3.0.3
info:
  title: T
  version: 1.0.0
paths:
  /items:
    get:
      summary: List items
      responses:
        "200":
          description: OK
  /users:
    get:
      summary: List users
      responses:
        "200":
          description: OK
  /health:
    get:
      summary: Health
      responses:
        "200":
          description: OK
`

func writeSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(specYAML), 0o600))
	return path
}

func TestLoadSpecFile(t *testing.T) {
	app, err := Load(writeSpec(t), "")
	require.NoError(t, err)

	assert.Equal(t, 3, app.RouteCount())

	doc, err := app.Schema()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc["openapi"])
	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "T", info["title"])
	assert.Len(t, doc["paths"], 3)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	require.ErrorIs(t, err, ErrLoad)
}

func TestLoadUnparseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: [broken"), 0o600))

	_, err := Load(path, "")
	require.ErrorIs(t, err, ErrLoad)
}

func TestLoadRegisteredApp(t *testing.T) {
	Register("myapp", Static{
		Doc:    snapshot.Document{"openapi": "3.1.0"},
		Routes: 7,
	})
	t.Cleanup(func() { Unregister("myapp") })

	app, err := Load("", "myapp")
	require.NoError(t, err)
	assert.Equal(t, 7, app.RouteCount())
}

func TestLoadRegisteredNameAbsent(t *testing.T) {
	_, err := Load("", "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadRegisteredWrongType(t *testing.T) {
	Register("notanapp", 42)
	t.Cleanup(func() { Unregister("notanapp") })

	_, err := Load("", "notanapp")
	require.ErrorIs(t, err, ErrWrongType)
}

func TestRegisteredNameFallsBackToLocator(t *testing.T) {
	// Name given but unregistered: the file locator still resolves.
	app, err := Load(writeSpec(t), "app")
	require.NoError(t, err)
	assert.Equal(t, 3, app.RouteCount())
}

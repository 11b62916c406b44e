package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCommand executes the CLI with args and returns its stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := newRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// chdir switches into dir for the duration of the test, restoring the
// previous working directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// setupWorkspace chdirs into a fresh directory and writes a config file
// pointing the output directory inside it. It returns the output directory.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	cfgYAML := "apidocs:\n  output_dir: docs/api\n  title: Test API\n"
	require.NoError(t, os.WriteFile("apidocs.yaml", []byte(cfgYAML), 0o600))
	return filepath.Join(dir, "docs", "api")
}

// writeSpecFile writes a minimal three-route OpenAPI document and returns its
// path.
func writeSpecFile(t *testing.T) string {
	t.Helper()
	spec := `openapi: 3.0.3
info:
  title: Test API
  version: 1.0.0
paths:
  /users:
    get:
      responses:
        "200":
          description: OK
  /users/{id}:
    get:
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: OK
  /health:
    get:
      responses:
        "200":
          description: OK
`
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(spec), 0o600))
	return path
}

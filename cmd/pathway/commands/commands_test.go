package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRouteFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLintCmd_OK(t *testing.T) {
	path := writeRouteFile(t, `
routes:
  - method: GET
    path: /user/{id}
  - method: GET
    path: /files/{path*}
`)
	cmd := newLintCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "2 route(s) OK")
}

func TestLintCmd_ReportsFailures(t *testing.T) {
	path := writeRouteFile(t, `
routes:
  - method: GET
    path: /user/{id
  - method: GET
    path: /{a}/{a}
`)
	cmd := newLintCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 invalid route(s)")
	assert.Contains(t, out.String(), "must end with '}'")
	assert.Contains(t, out.String(), "duplicate parameter name")
}

func TestRoutesCmd_Table(t *testing.T) {
	path := writeRouteFile(t, `
routes:
  - method: GET
    path: /user/{id}
`)
	cmd := newRoutesCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "/user/{id}")
	assert.Contains(t, out.String(), "/user/?")
}

func TestRoutesCmd_Grouped(t *testing.T) {
	path := writeRouteFile(t, `
routes:
  - method: GET
    path: /user/{id}
  - method: POST
    path: /user/{name}
`)
	cmd := newRoutesCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{path, "--group"})

	require.NoError(t, cmd.Execute())
	// Both routes collapse into one fingerprint group.
	assert.Contains(t, out.String(), "/user/?")
	assert.Contains(t, out.String(), "GET")
	assert.Contains(t, out.String(), "POST")
}

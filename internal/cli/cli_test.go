package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func decodeResponse(t *testing.T, out string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp
}

func TestOrdersAddAndList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "spares.db")

	out, err := runCLI(t, "--db", dbPath, "--format", "json",
		"orders", "add", "--make", "TOYOTA", "--model", "CAMRY", "--year", "2019",
		"--part", "front bumper", "--part", "hood")
	require.NoError(t, err)
	resp := decodeResponse(t, out)

	data := resp.Data.(map[string]any)
	car := data["car"].(map[string]any)
	carID := car["id"].(string)
	require.NotEmpty(t, carID)
	require.Len(t, data["parts"].([]any), 2)

	out, err = runCLI(t, "--db", dbPath, "--format", "json", "orders", "list")
	require.NoError(t, err)
	resp = decodeResponse(t, out)
	require.Len(t, resp.Data.([]any), 1)

	out, err = runCLI(t, "--db", dbPath, "orders", "show", carID)
	require.NoError(t, err)
	assert.Contains(t, out, "TOYOTA CAMRY (2019)")
	assert.Contains(t, out, "FRONT BUMPER")
}

func TestOrdersShow_NotFound(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "spares.db")

	_, err := runCLI(t, "--db", dbPath, "orders", "show", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestOffersUpdateDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "spares.db")

	out, err := runCLI(t, "--db", dbPath, "--format", "json",
		"orders", "add", "--make", "TOYOTA", "--model", "CAMRY", "--part", "bumper")
	require.NoError(t, err)
	data := decodeResponse(t, out).Data.(map[string]any)
	carID := data["car"].(map[string]any)["id"].(string)
	partID := data["parts"].([]any)[0].(map[string]any)["id"].(string)

	out, err = runCLI(t, "--db", dbPath, "--format", "json",
		"offers", "add", partID,
		"--shop", "Al Futtaim", "--phone", "+971 50 123 4567", "--price", "450")
	require.NoError(t, err)
	offer := decodeResponse(t, out).Data.(map[string]any)
	assert.Equal(t, "971501234567", offer["phone"], "phone stored digits-only")

	out, err = runCLI(t, "--db", dbPath, "--format", "json", "contacts", "list")
	require.NoError(t, err)
	contacts := decodeResponse(t, out).Data.([]any)
	require.Len(t, contacts, 1)
	contact := contacts[0].(map[string]any)
	assert.Equal(t, "Al Futtaim", contact["name"])
	assert.Equal(t, []any{"TOYOTA"}, contact["makes"])

	// Deleting the order leaves the directory alone.
	_, err = runCLI(t, "--db", dbPath, "orders", "delete", carID)
	require.NoError(t, err)

	out, err = runCLI(t, "--db", dbPath, "--format", "json", "contacts", "list")
	require.NoError(t, err)
	require.Len(t, decodeResponse(t, out).Data.([]any), 1)

	// contacts delete is the only removal path.
	_, err = runCLI(t, "--db", dbPath, "contacts", "delete", "+971 (50) 123-45-67")
	require.NoError(t, err)

	out, err = runCLI(t, "--db", dbPath, "--format", "json", "contacts", "list")
	require.NoError(t, err)
	assert.Empty(t, decodeResponse(t, out).Data)
}

func TestOffersAdd_MissingPart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "spares.db")

	_, err := runCLI(t, "--db", dbPath, "offers", "add", "missing",
		"--shop", "Shop", "--phone", "971501234567")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestOrdersImport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "spares.db")
	sheetPath := filepath.Join(dir, "sheet.yaml")
	require.NoError(t, os.WriteFile(sheetPath, []byte(`
orders:
  - make: TOYOTA
    model: CAMRY
    parts: [bumper, hood]
  - make: NISSAN
    model: PATROL
`), 0o644))

	out, err := runCLI(t, "--db", dbPath, "orders", "import", sheetPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 order(s)")

	out, err = runCLI(t, "--db", dbPath, "--format", "json", "orders", "list")
	require.NoError(t, err)
	require.Len(t, decodeResponse(t, out).Data.([]any), 2)
}

func TestOrdersImport_InvalidSheetWritesNothing(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "spares.db")
	sheetPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(sheetPath, []byte("orders:\n  - make: TOYOTA\n"), 0o644))

	_, err := runCLI(t, "--db", dbPath, "orders", "import", sheetPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	out, err := runCLI(t, "--db", dbPath, "--format", "json", "orders", "list")
	require.NoError(t, err)
	assert.Empty(t, decodeResponse(t, out).Data)
}

func TestInvalidFormat(t *testing.T) {
	_, err := runCLI(t, "--format", "xml", "orders", "list")
	assert.Error(t, err)
}

func TestUnopenableDatabase(t *testing.T) {
	_, err := runCLI(t, "--db", filepath.Join(t.TempDir(), "no-such-dir", "spares.db"),
		"orders", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no scenario files under testdata")

	for _, file := range files {
		name := filepath.Base(file)
		t.Run(name, func(t *testing.T) {
			RunFile(t, file)
		})
	}
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "steps:\n  - op: delete_car\n    id: c1\n"},
		{"no steps", "name: x\nsteps: []\n"},
		{"unknown op", "name: x\nsteps:\n  - op: explode\n"},
		{"put_car without car", "name: x\nsteps:\n  - op: put_car\n"},
		{"save_offer without for_car", "name: x\nsteps:\n  - op: save_offer\n    offer: {part_id: p1, shop: S, phone: \"1\"}\n"},
		{"delete without id", "name: x\nsteps:\n  - op: delete_part\n"},
		{"unknown expect_error", "name: x\nsteps:\n  - op: delete_car\n    id: c1\n    expect_error: boom\n"},
		{"unknown field typo", "name: x\nstep:\n  - op: delete_car\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

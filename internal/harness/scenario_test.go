package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/mixed_stack.yaml")
	require.NoError(t, err)

	assert.Equal(t, "mixed_stack", scenario.Name)
	assert.Len(t, scenario.Commits, 3)
	assert.Equal(t, "Widget rework", scenario.Titles["g7f3c2d1"])
	assert.True(t, scenario.Expect.Valid)
	assert.Len(t, scenario.Expect.Units, 2)
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does_not_exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: has a typo
commits:
  - hash: aaa1111111
    subject: A
expectation:
  valid: true
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "description: d\ncommits:\n  - hash: aaa\n    subject: A\nexpect:\n  valid: false\n  violation:\n    group_id: g\n",
			wantErr: "name is required",
		},
		{
			name:    "no commits",
			yaml:    "name: n\ndescription: d\nexpect:\n  valid: false\n  violation:\n    group_id: g\n",
			wantErr: "commits list is required",
		},
		{
			name:    "duplicate hash",
			yaml:    "name: n\ndescription: d\ncommits:\n  - hash: aaa\n    subject: A\n  - hash: aaa\n    subject: B\nexpect:\n  valid: false\n  violation:\n    group_id: g\n",
			wantErr: "duplicate hash",
		},
		{
			name:    "valid without units",
			yaml:    "name: n\ndescription: d\ncommits:\n  - hash: aaa\n    subject: A\nexpect:\n  valid: true\n",
			wantErr: "units list is required",
		},
		{
			name:    "invalid without violation",
			yaml:    "name: n\ndescription: d\ncommits:\n  - hash: aaa\n    subject: A\nexpect:\n  valid: false\n",
			wantErr: "violation is required",
		},
		{
			name:    "bad unit type",
			yaml:    "name: n\ndescription: d\ncommits:\n  - hash: aaa\n    subject: A\nexpect:\n  valid: true\n  units:\n    - type: pair\n      id: x\n      commits: [aaa]\n",
			wantErr: "type must be single or group",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

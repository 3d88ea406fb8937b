// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	path := writeRegistry(t, `{
		"version": "1.0.0",
		"tasks": [
			{
				"id": "vendor-dispatch",
				"taskType": "dispatch-request",
				"category": "vendor",
				"inputSchema": {"type": "object", "required": ["query"]},
				"errorCodes": ["UNSUPPORTED_VENDOR", "TRANSPORT_FAILED"]
			}
		]
	}`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", reg.Version)
	require.Len(t, reg.Tasks, 1)
	assert.Equal(t, "dispatch-request", reg.Tasks[0].TaskType)
	assert.Contains(t, reg.Tasks[0].ErrorCodes, "UNSUPPORTED_VENDOR")
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestFindByTaskType(t *testing.T) {
	reg := &TaskRegistry{
		Tasks: []Task{
			{ID: "a", TaskType: "check-subscription"},
			{ID: "b", TaskType: "dispatch-request"},
		},
	}

	found := reg.FindByTaskType("dispatch-request")
	require.NotNil(t, found)
	assert.Equal(t, "b", found.ID)

	assert.Nil(t, reg.FindByTaskType("missing"))
}

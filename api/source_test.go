package api

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFixtureFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadFixtureFileJSON(t *testing.T) {
	data, err := json.Marshal(DefaultFixtures())
	require.NoError(t, err)

	f, err := LoadFixtureFile(writeFixtureFile(t, "fixtures.json", data))
	require.NoError(t, err)
	assert.Equal(t, DefaultFixtures(), f)
}

func TestLoadFixtureFileYAML(t *testing.T) {
	data, err := yaml.Marshal(DefaultFixtures())
	require.NoError(t, err)

	f, err := LoadFixtureFile(writeFixtureFile(t, "fixtures.yml", data))
	require.NoError(t, err)
	assert.Equal(t, DefaultFixtures(), f)
}

func TestLoadFixtureFileHandWrittenYAML(t *testing.T) {
	path := writeFixtureFile(t, "fixtures.yaml", []byte(`
equipment:
  - id: EQP-010
    name: Conveyor
    status: Warning
    temperature: 61.5
    vibration: 0.9
    pressure: 180
failurePredictions:
  - date: Today
    probability: 40
    trend: 38
`))

	f, err := LoadFixtureFile(path)
	require.NoError(t, err)
	require.Len(t, f.Equipment, 1)
	assert.Equal(t, StatusWarning, f.Equipment[0].Status)
	assert.Equal(t, 61.5, f.Equipment[0].Temperature)
	assert.Empty(t, f.Alerts)
	require.Len(t, f.FailurePredictions, 1)
}

func TestLoadFixtureFileErrors(t *testing.T) {
	_, err := LoadFixtureFile(filepath.Join(t.TempDir(), "missing.json"))
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeServer, apiErr.Type)

	_, err = LoadFixtureFile(writeFixtureFile(t, "fixtures.toml", []byte("x=1")))
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeUser, apiErr.Type)

	_, err = LoadFixtureFile(writeFixtureFile(t, "fixtures.json", []byte(`{"gadgets": []}`)))
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeUser, apiErr.Type)
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bares.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
log_level = "info"
data_dir  = "data"
jobs      = 4
format    = "json"
color     = "never"

[messages]
DivisionByZero = "div0"
`)
	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		LogLevel: "info",
		DataDir:  "data",
		Jobs:     4,
		Format:   "json",
		Color:    "never",
		Messages: map[string]string{"DivisionByZero": "div0"},
	}, cfg)
}

func TestLoadConfigMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.toml")

	cfg, err := loadConfig(missing, false)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)

	_, err = loadConfig(missing, true)
	assert.Error(t, err)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, "jobs = 2\nthreads = 4\n")
	_, err := loadConfig(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threads")
}

func TestConfigMessagesAndFlagPrecedence(t *testing.T) {
	path := writeConfig(t, `
format = "json"

[messages]
DivisionByZero = "div0"
`)
	// the flag wins over the file
	out, err := execute(t, "1/0\n", "--config", path, "--format", "text", "-")
	require.NoError(t, err)
	assert.Equal(t, "div0\n", out)

	out, err = execute(t, "1/0\n", "--config", path, "-")
	require.NoError(t, err)
	assert.JSONEq(t, `{"line":1,"input":"1/0","error":{"code":7,"name":"DivisionByZero","message":"div0"}}`, out)
}

func TestConfigUnknownMessageName(t *testing.T) {
	path := writeConfig(t, "[messages]\nDivideByZero = \"x\"\n")
	_, err := execute(t, "1\n", "--config", path, "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DivideByZero")
}

func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bares.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
jobs: 3
format: json
messages:
  NumericOverflow: "overflow"
`), 0o644))

	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, map[string]string{"NumericOverflow": "overflow"}, cfg.Messages)

	require.NoError(t, os.WriteFile(path, []byte("threads: 4\n"), 0o644))
	_, err = loadConfig(path, true)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, nil, 0o644))
	cfg, err = loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestInvalidSettingsReportedTogether(t *testing.T) {
	_, err := execute(t, "1\n", "--format", "xml", "--jobs", "0", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `output format "xml"`)
	assert.Contains(t, err.Error(), "jobs must be at least 1")
}

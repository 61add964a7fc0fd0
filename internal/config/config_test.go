package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9090,
		"max_upload_bytes": 1048576,
		"allowed_extensions": [".pdf", ".txt"],
		"log_level": "debug"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	assert.Equal(t, []string{".pdf", ".txt"}, cfg.AllowedExtensions)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Empty(t, cfg.CatalogPath)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	catalogFile := writeConfig(t, `{}`)

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty is valid", cfg: Config{}},
		{name: "defaults are valid", cfg: Defaults()},
		{name: "existing catalog", cfg: Config{CatalogPath: catalogFile}},
		{name: "port too large", cfg: Config{Port: 70000}, wantErr: "'port'"},
		{name: "negative upload limit", cfg: Config{MaxUploadBytes: -1}, wantErr: "'max_upload_bytes'"},
		{name: "unknown log level", cfg: Config{LogLevel: "verbose"}, wantErr: "'log_level'"},
		{name: "extension without dot", cfg: Config{AllowedExtensions: []string{"pdf"}}, wantErr: "allowed_extensions"},
		{name: "missing catalog", cfg: Config{CatalogPath: "/nonexistent/catalog.json"}, wantErr: "catalog file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 3000, AllowedExtensions: []string{".txt"}}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 3000, merged.Port)
	assert.Equal(t, []string{".txt"}, merged.AllowedExtensions)
	assert.Equal(t, int64(5<<20), merged.MaxUploadBytes)
	assert.Equal(t, 100_000, merged.MaxTextChars)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, "*", merged.CORSOrigin)
}

func TestMergeWithDefaults_DoesNotShareSlices(t *testing.T) {
	defaults := Defaults()
	merged := (&Config{}).MergeWithDefaults(defaults)

	merged.AllowedExtensions[0] = ".exe"
	assert.Equal(t, ".pdf", defaults.AllowedExtensions[0])
}

func TestApplyEnv(t *testing.T) {
	cfg := Config{Port: 3000}
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvPort:     "9999",
		EnvCatalog:  "/etc/catalog.json",
		EnvLogLevel: "WARN",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "/etc/catalog.json", cfg.CatalogPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	cfg := Config{}
	err := cfg.ApplyEnv(envMap(map[string]string{EnvPort: "eighty"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{"port": 9090, "log_level": "debug"}`)

	cfg, err := Load(path, envMap(map[string]string{EnvPort: "7070"}))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Defaults().AllowedExtensions, cfg.AllowedExtensions)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("", envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_InvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, `{"port": -5}`), envMap(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'port'")
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "debug"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{}).SlogLevel())
}

func TestIsAllowedExtension(t *testing.T) {
	cfg := Defaults()

	assert.True(t, cfg.IsAllowedExtension(".pdf"))
	assert.True(t, cfg.IsAllowedExtension(".DOCX"))
	assert.False(t, cfg.IsAllowedExtension(".exe"))
	assert.False(t, cfg.IsAllowedExtension(""))
}

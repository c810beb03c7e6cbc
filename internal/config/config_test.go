package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"addr": ":9090",
		"analyzer_url": "http://ats.local",
		"analyzer_rps": 1.5,
		"storage": "sqlite",
		"storage_path": "builder.db",
		"verbose": true
	}`

	cfg, err := LoadConfig(writeConfig(t, "config.json", content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "http://ats.local", cfg.AnalyzerURL)
	assert.Equal(t, 1.5, cfg.AnalyzerRPS)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, "builder.db", cfg.StoragePath)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := `
addr: ":7070"
storage: postgres
database_url: postgres://localhost/builder
analyzer_burst: 3
`
	for _, name := range []string{"config.yaml", "config.YML"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, name, content))
			require.NoError(t, err)

			assert.Equal(t, ":7070", cfg.Addr)
			assert.Equal(t, StoragePostgres, cfg.Storage)
			assert.Equal(t, "postgres://localhost/builder", cfg.DatabaseURL)
			assert.Equal(t, 3, cfg.AnalyzerBurst)
		})
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.json", `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.yaml", "addr: [unterminated"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
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
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "zero config", cfg: Config{}},
		{name: "defaults", cfg: Defaults()},
		{name: "memory", cfg: Config{Storage: StorageMemory}},
		{name: "file without path", cfg: Config{Storage: StorageFile}, wantErr: "storage_path"},
		{name: "sqlite without path", cfg: Config{Storage: StorageSQLite}, wantErr: "storage_path"},
		{name: "postgres without url", cfg: Config{Storage: StoragePostgres}, wantErr: "database_url"},
		{name: "unknown storage", cfg: Config{Storage: "redis"}, wantErr: "unknown storage"},
		{name: "negative rps", cfg: Config{AnalyzerRPS: -1}, wantErr: "analyzer_rps"},
		{name: "negative burst", cfg: Config{AnalyzerBurst: -1}, wantErr: "analyzer_burst"},
		{name: "bad analyzer url", cfg: Config{AnalyzerURL: "ftp://x"}, wantErr: "analyzer_url"},
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

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAddr:        ":1234",
		EnvAnalyzerURL: "https://ats.example.com",
		EnvAnalyzerRPS: "0.5",
		EnvStorage:     StorageMemory,
		EnvVerbose:     "true",
	}
	cfg := Config{Addr: ":8080", StoragePath: "keep.json"}

	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, ":1234", cfg.Addr)
	assert.Equal(t, "https://ats.example.com", cfg.AnalyzerURL)
	assert.Equal(t, 0.5, cfg.AnalyzerRPS)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "keep.json", cfg.StoragePath)
	assert.True(t, cfg.Verbose)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	var cfg Config
	err := cfg.ApplyEnv(func(k string) string {
		if k == EnvAnalyzerRPS {
			return "fast"
		}
		return ""
	})
	assert.Error(t, err)

	err = cfg.ApplyEnv(func(k string) string {
		if k == EnvVerbose {
			return "sometimes"
		}
		return ""
	})
	assert.Error(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{Addr: ":9000", Storage: StorageSQLite}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, ":9000", merged.Addr)
	assert.Equal(t, StorageSQLite, merged.Storage)
	assert.Equal(t, Defaults().StoragePath, merged.StoragePath)
	assert.Equal(t, Defaults().AnalyzerURL, merged.AnalyzerURL)
	assert.Equal(t, 2.0, merged.AnalyzerRPS)
	assert.Equal(t, 4, merged.AnalyzerBurst)
	assert.Equal(t, ":9000", cfg.Addr, "receiver must not change")
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{Addr: ":9000"}
	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, *cfg, merged)
}

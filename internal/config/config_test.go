package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 0.5, cfg.Engine.MatchThreshold)
	assert.Equal(t, 3, cfg.Engine.PreviewGrounds)
	assert.Equal(t, 0.65, cfg.Calibration.AccuracyThreshold)
	assert.Equal(t, 1.05, cfg.Calibration.NudgeFactor)
	assert.Equal(t, 24*time.Hour, cfg.Calibration.Interval)
	assert.Equal(t, "appeal", cfg.Redis.KeyPrefix)
	assert.Equal(t, -1, cfg.Kafka.RequiredAcks)
}

func TestApplyDefaults_DoesNotOverwrite(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Engine.MatchThreshold = 0.7
	ApplyDefaults(cfg)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 0.7, cfg.Engine.MatchThreshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = -1 }, true},
		{"bad threshold", func(c *Config) { c.Engine.MatchThreshold = 1.5 }, true},
		{"bad accuracy", func(c *Config) { c.Calibration.AccuracyThreshold = 1.0 }, true},
		{"bad nudge", func(c *Config) { c.Calibration.NudgeFactor = 0.9 }, true},
		{"redis enabled without addr", func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }, true},
		{"kafka enabled without brokers", func(c *Config) { c.Kafka.Enabled = true }, true},
		{"minio enabled without endpoint", func(c *Config) { c.MinIO.Enabled = true }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "appeals", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/appeals?sslmode=disable", db.DSN())
}

func TestLoad_FileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\nlog:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset fields still receive defaults.
	assert.Equal(t, 0.5, cfg.Engine.MatchThreshold)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APPEAL_SERVER_PORT", "7070")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() { MustLoad("/nonexistent/config.yaml") })
}

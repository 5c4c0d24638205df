// Package config provides configuration loading, defaults, and validation.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all engine settings.
const envPrefix = "APPEAL"

// newViper builds a pre-configured Viper instance: YAML file type, APPEAL_
// env prefix, automatic env binding, and a key replacer mapping "." → "_" so
// that nested keys like "database.host" resolve to "APPEAL_DATABASE_HOST".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// registerKeys seeds viper with every supported key so that environment-only
// overrides survive Unmarshal (viper ignores env values for keys it has never
// seen).  The seeded values are the production defaults, so ApplyDefaults is
// a no-op for anything registered here.
func registerKeys(v *viper.Viper) {
	def := Default()
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.read_timeout", def.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", def.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", def.Server.ShutdownTimeout)

	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	v.SetDefault("database.host", def.Database.Host)
	v.SetDefault("database.port", def.Database.Port)
	v.SetDefault("database.user", def.Database.User)
	v.SetDefault("database.password", def.Database.Password)
	v.SetDefault("database.db_name", def.Database.DBName)
	v.SetDefault("database.ssl_mode", def.Database.SSLMode)
	v.SetDefault("database.max_conns", def.Database.MaxConns)
	v.SetDefault("database.min_conns", def.Database.MinConns)
	v.SetDefault("database.conn_max_lifetime", def.Database.ConnMaxLifetime)
	v.SetDefault("database.migration_path", def.Database.MigrationPath)

	v.SetDefault("redis.enabled", def.Redis.Enabled)
	v.SetDefault("redis.addr", def.Redis.Addr)
	v.SetDefault("redis.password", def.Redis.Password)
	v.SetDefault("redis.db", def.Redis.DB)
	v.SetDefault("redis.pool_size", def.Redis.PoolSize)
	v.SetDefault("redis.dial_timeout", def.Redis.DialTimeout)
	v.SetDefault("redis.read_timeout", def.Redis.ReadTimeout)
	v.SetDefault("redis.write_timeout", def.Redis.WriteTimeout)
	v.SetDefault("redis.session_ttl", def.Redis.SessionTTL)
	v.SetDefault("redis.key_prefix", def.Redis.KeyPrefix)

	v.SetDefault("kafka.enabled", def.Kafka.Enabled)
	v.SetDefault("kafka.brokers", def.Kafka.Brokers)
	v.SetDefault("kafka.topic_prefix", def.Kafka.TopicPrefix)
	v.SetDefault("kafka.batch_timeout", def.Kafka.BatchTimeout)
	v.SetDefault("kafka.required_acks", def.Kafka.RequiredAcks)

	v.SetDefault("minio.enabled", def.MinIO.Enabled)
	v.SetDefault("minio.endpoint", def.MinIO.Endpoint)
	v.SetDefault("minio.access_key", def.MinIO.AccessKey)
	v.SetDefault("minio.secret_key", def.MinIO.SecretKey)
	v.SetDefault("minio.bucket", def.MinIO.Bucket)
	v.SetDefault("minio.use_ssl", def.MinIO.UseSSL)

	v.SetDefault("engine.match_threshold", def.Engine.MatchThreshold)
	v.SetDefault("engine.preview_grounds", def.Engine.PreviewGrounds)

	v.SetDefault("calibration.accuracy_threshold", def.Calibration.AccuracyThreshold)
	v.SetDefault("calibration.nudge_factor", def.Calibration.NudgeFactor)
	v.SetDefault("calibration.min_samples", def.Calibration.MinSamples)
	v.SetDefault("calibration.interval", def.Calibration.Interval)
}

// Load reads the YAML file at configPath, merges APPEAL_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from APPEAL_* environment variables,
// with no config file required.  Preferred for containerised deployments.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the newly parsed Config
// whenever the file changes on disk.  Intended for hot-reloading non-critical
// settings such as log level and engine thresholds; callers apply only the
// safe subset of changes at runtime.
//
// Watch is non-blocking; the watching goroutine is managed by viper.  A
// changed file that fails to parse or validate does not trigger onChange.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; errors are ignored here. Callers should call Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			// Invalid config on disk; keep running with the previous one.
			return
		}
		onChange(cfg)
	})
}

// MustLoad wraps Load and panics on any error.  For use in main() where a
// config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

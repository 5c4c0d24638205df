// Package config defines all configuration structures for the appeal engine.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the appeal
// outcome history store.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// DSN renders the pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// RedisConfig holds Redis connection parameters for the session snapshot store.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds event producer parameters.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	TopicPrefix  string        `mapstructure:"topic_prefix"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	RequiredAcks int           `mapstructure:"required_acks"`
}

// MinIOConfig holds object-storage parameters for rendered documents.
type MinIOConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
}

// EngineConfig holds scoring and matcher tunables.  The weight constants
// themselves live in versioned snapshots inside internal/prediction; only the
// operational knobs are configurable.
type EngineConfig struct {
	// MatchThreshold is the minimum keyword weight for a ground to survive
	// matching.  Kept configurable for offline experiments; defaults to 0.5.
	MatchThreshold float64 `mapstructure:"match_threshold"`

	// PreviewGrounds caps the number of grounds shown in the reason-stage
	// preview reply.
	PreviewGrounds int `mapstructure:"preview_grounds"`
}

// CalibrationConfig holds the offline weight-calibration parameters.
type CalibrationConfig struct {
	// AccuracyThreshold below which global weights are nudged upward.
	AccuracyThreshold float64 `mapstructure:"accuracy_threshold"`

	// NudgeFactor is the multiplicative adjustment applied on a failed
	// threshold check.
	NudgeFactor float64 `mapstructure:"nudge_factor"`

	// MinSamples is the minimum outcome count required before a calibration
	// run is allowed to adjust anything.
	MinSamples int `mapstructure:"min_samples"`

	// Interval between automatic calibration runs in cmd/worker.
	Interval time.Duration `mapstructure:"interval"`
}

// Config is the root configuration aggregate.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
	MinIO       MinIOConfig       `mapstructure:"minio"`
	Engine      EngineConfig      `mapstructure:"engine"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
}

// Validate checks cross-field consistency.  Defaults are applied before
// validation, so only genuinely contradictory settings fail here.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Engine.MatchThreshold < 0 || c.Engine.MatchThreshold > 1 {
		return fmt.Errorf("engine.match_threshold %v must be in [0,1]", c.Engine.MatchThreshold)
	}
	if c.Calibration.AccuracyThreshold <= 0 || c.Calibration.AccuracyThreshold >= 1 {
		return fmt.Errorf("calibration.accuracy_threshold %v must be in (0,1)", c.Calibration.AccuracyThreshold)
	}
	if c.Calibration.NudgeFactor <= 1.0 {
		return fmt.Errorf("calibration.nudge_factor %v must exceed 1.0", c.Calibration.NudgeFactor)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr required when redis is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers required when kafka is enabled")
	}
	if c.MinIO.Enabled && c.MinIO.Endpoint == "" {
		return fmt.Errorf("minio.endpoint required when minio is enabled")
	}
	return nil
}

package config

import "time"

// ApplyDefaults fills zero-valued fields with production defaults.  It is
// idempotent and never overwrites an explicitly set value.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "appeal"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "appealcore"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Database.MinConns == 0 {
		cfg.Database.MinConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}
	if cfg.Database.MigrationPath == "" {
		cfg.Database.MigrationPath = "file://migrations"
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}
	if cfg.Redis.SessionTTL == 0 {
		cfg.Redis.SessionTTL = 72 * time.Hour
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "appeal"
	}

	if cfg.Kafka.TopicPrefix == "" {
		cfg.Kafka.TopicPrefix = "appeal"
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = 100 * time.Millisecond
	}
	if cfg.Kafka.RequiredAcks == 0 {
		cfg.Kafka.RequiredAcks = -1 // all
	}

	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = "appeal-documents"
	}

	if cfg.Engine.MatchThreshold == 0 {
		cfg.Engine.MatchThreshold = 0.5
	}
	if cfg.Engine.PreviewGrounds == 0 {
		cfg.Engine.PreviewGrounds = 3
	}

	if cfg.Calibration.AccuracyThreshold == 0 {
		cfg.Calibration.AccuracyThreshold = 0.65
	}
	if cfg.Calibration.NudgeFactor == 0 {
		cfg.Calibration.NudgeFactor = 1.05
	}
	if cfg.Calibration.MinSamples == 0 {
		cfg.Calibration.MinSamples = 50
	}
	if cfg.Calibration.Interval == 0 {
		cfg.Calibration.Interval = 24 * time.Hour
	}
}

// Default returns a fully defaulted configuration, useful in tests and for
// the CLI when no config file is supplied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

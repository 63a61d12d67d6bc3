package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Generator GeneratorConfig `mapstructure:"generator" validate:"required"`
	Worksheet WorksheetConfig `mapstructure:"worksheet" validate:"required"`
	Challenge ChallengeConfig `mapstructure:"challenge" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of in-flight requests.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// GeneratorConfig controls the drill generator shared by every surface.
type GeneratorConfig struct {
	// Algorithm selects the seed stream: "splitmix" or the legacy "sine".
	Algorithm     string `mapstructure:"algorithm" validate:"oneof=splitmix sine"`
	MaxOperations int    `mapstructure:"max_operations" validate:"gte=1,lte=1000"`
}

// WorksheetConfig contains settings for printable worksheet generation.
type WorksheetConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"gte=1,lte=64"`
	MaxProblems int `mapstructure:"max_problems" validate:"gte=1,lte=500"`
}

// ChallengeConfig contains settings for live ticking-number challenges.
type ChallengeConfig struct {
	DefaultCadenceMillis int `mapstructure:"default_cadence_ms" validate:"gte=100,lte=60000"`
}

// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Intake        IntakeConfig       `mapstructure:"intake"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Directory     DirectoryConfig    `mapstructure:"directory"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // seconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // seconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig holds settings for the signed-agreement object store.
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// IntakeConfig holds the policy constants of the submission pipeline.
// The duplicate window and expiration offset are business constants that
// default to 24h and 30 days respectively.
type IntakeConfig struct {
	AllowedOrigins        []string `mapstructure:"allowed_origins"`
	AllowedOriginSuffixes []string `mapstructure:"allowed_origin_suffixes"`
	DuplicateWindowHours  int      `mapstructure:"duplicate_window_hours"`
	ExpirationDays        int      `mapstructure:"expiration_days"`
	MinUserAgentLength    int      `mapstructure:"min_user_agent_length"`
	RateLimitPerMinute    int      `mapstructure:"rate_limit_per_minute"`
}

// NotificationConfig holds settings for the two outbound intake emails.
// An empty FromEmail or Region disables notifications without error.
type NotificationConfig struct {
	Email struct {
		Enabled       bool   `mapstructure:"enabled"`
		FromEmail     string `mapstructure:"from_email"`
		ProviderInbox string `mapstructure:"provider_inbox"`
		TimeoutMS     int    `mapstructure:"timeout_ms"`
	} `mapstructure:"email"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// DirectoryConfig points at the provider directory service.
type DirectoryConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

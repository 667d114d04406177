package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	HTTP          HTTPConfig         `mapstructure:"http"`
	Artifacts     ArtifactsConfig    `mapstructure:"artifacts"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Audit         AuditConfig        `mapstructure:"audit"`
	Cache         CacheConfig        `mapstructure:"cache"`
	Camunda       CamundaConfig      `mapstructure:"camunda"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port    int `mapstructure:"port"`
	Timeout int `mapstructure:"timeout"` // milliseconds
}

// ArtifactsConfig locates the serialized transformer bundle exported by the
// offline training pipeline.
type ArtifactsConfig struct {
	Dir string `mapstructure:"dir"`
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

// AuditConfig controls the prediction audit log. The service runs without it.
type AuditConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// CacheConfig controls the Redis prediction result cache.
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	TTL     int  `mapstructure:"ttl"` // seconds
}

// CamundaConfig controls the optional predict-churn job worker.
type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// NotificationConfig controls churn alert delivery.
type NotificationConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	Region         string  `mapstructure:"region"`
	TopicARN       string  `mapstructure:"topic_arn"`
	EmailFrom      string  `mapstructure:"email_from"`
	EmailTo        string  `mapstructure:"email_to"`
	MinProbability float64 `mapstructure:"min_probability"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

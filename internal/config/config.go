package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Log          LogConfig          `yaml:"log"`
	JWT          JWTConfig          `yaml:"jwt"`
	Capacity     CapacityConfig     `yaml:"capacity"`
	Directory    DirectoryConfig    `yaml:"directory"`
	Notification NotificationConfig `yaml:"notification"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
}

// ServerConfig contains gRPC and HTTP listener settings
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	HTTPPort int    `yaml:"http_port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	Database      string `yaml:"database"`
	SSLMode       string `yaml:"ssl_mode"`
	RunMigrations bool   `yaml:"run_migrations"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// JWTConfig contains token settings. An empty secret disables authentication.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// CapacityConfig selects where confirmed counts come from.
type CapacityConfig struct {
	Mode          string `yaml:"mode"`    // "local" or "remote"
	Address       string `yaml:"address"` // gRPC address of the counting service
	TimeoutMS     int    `yaml:"timeout_ms"`
	AtomicReserve *bool  `yaml:"atomic_reserve"`
}

// DirectoryConfig selects where users and events are looked up.
type DirectoryConfig struct {
	Mode                string `yaml:"mode"`
	Address             string `yaml:"address"`
	TimeoutMS           int    `yaml:"timeout_ms"`
	UserCacheTTLSeconds int    `yaml:"user_cache_ttl_seconds"`
}

// NotificationConfig contains requester notification settings
type NotificationConfig struct {
	Provider       string `yaml:"provider"` // "none" or "sendgrid"
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	CapacityAudit string `yaml:"capacity_audit"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, applies environment overrides and validates the result
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("GRPC_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("HTTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.HTTPPort)
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Capacity and directory topology
	if val := os.Getenv("COUNTER_MODE"); val != "" {
		c.Capacity.Mode = val
	}
	if val := os.Getenv("COUNTER_ADDRESS"); val != "" {
		c.Capacity.Address = val
	}
	if val := os.Getenv("DIRECTORY_MODE"); val != "" {
		c.Directory.Mode = val
	}
	if val := os.Getenv("DIRECTORY_ADDRESS"); val != "" {
		c.Directory.Address = val
	}

	// Notification
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Notification.SendGridAPIKey = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = c.Server.Port + 1
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 || c.Server.HTTPPort == c.Server.Port {
		return fmt.Errorf("invalid http port: %d", c.Server.HTTPPort)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	// JWT validation
	if c.JWT.Secret != "" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Capacity validation
	if c.Capacity.Mode == "" {
		c.Capacity.Mode = ModeLocal
	}
	if err := validateMode("capacity", c.Capacity.Mode, c.Capacity.Address); err != nil {
		return err
	}
	if c.Capacity.TimeoutMS <= 0 {
		c.Capacity.TimeoutMS = 1000
	}
	if c.Capacity.AtomicReserve == nil {
		enabled := true
		c.Capacity.AtomicReserve = &enabled
	}

	// Directory validation
	if c.Directory.Mode == "" {
		c.Directory.Mode = ModeLocal
	}
	if err := validateMode("directory", c.Directory.Mode, c.Directory.Address); err != nil {
		return err
	}
	if c.Directory.TimeoutMS <= 0 {
		c.Directory.TimeoutMS = 2000
	}
	if c.Directory.UserCacheTTLSeconds < 0 {
		return fmt.Errorf("user cache ttl must not be negative")
	}

	// Notification validation
	switch c.Notification.Provider {
	case "":
		c.Notification.Provider = "none"
	case "none":
	case "sendgrid":
		if c.Notification.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid api key is required")
		}
		if c.Notification.FromEmail == "" {
			return fmt.Errorf("notification from_email is required")
		}
	default:
		return fmt.Errorf("unsupported notification provider: %s", c.Notification.Provider)
	}

	// Scheduler defaults
	if c.Scheduler.CapacityAudit == "" {
		c.Scheduler.CapacityAudit = "0 */15 * * * *" // every 15 minutes
	}

	return nil
}

func validateMode(section, mode, address string) error {
	switch mode {
	case ModeLocal:
		return nil
	case ModeRemote:
		if address == "" {
			return fmt.Errorf("%s address is required in remote mode", section)
		}
		return nil
	default:
		return fmt.Errorf("invalid %s mode: %s", section, mode)
	}
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the gRPC server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetHTTPAddress returns the HTTP server address
func (c *Config) GetHTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

// CounterTimeout bounds every remote confirmed-count call.
func (c *Config) CounterTimeout() time.Duration {
	return time.Duration(c.Capacity.TimeoutMS) * time.Millisecond
}

func (c *Config) DirectoryTimeout() time.Duration {
	return time.Duration(c.Directory.TimeoutMS) * time.Millisecond
}

func (c *Config) UserCacheTTL() time.Duration {
	return time.Duration(c.Directory.UserCacheTTLSeconds) * time.Second
}

// AtomicReserveEnabled reports whether confirmed inserts go through the
// store's check-and-insert path. It only applies when counting locally.
func (c *Config) AtomicReserveEnabled() bool {
	return c.Capacity.Mode == ModeLocal && c.Capacity.AtomicReserve != nil && *c.Capacity.AtomicReserve
}

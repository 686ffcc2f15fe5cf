package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Board     BoardConfig     `yaml:"board"`
	Client    ClientConfig    `yaml:"client"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host                   string  `yaml:"host"`
	Port                   int     `yaml:"port"`
	ReadTimeoutSeconds     int     `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int     `yaml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int     `yaml:"shutdown_timeout_seconds"`
	RateLimitPerSecond     float64 `yaml:"rate_limit_per_second"` // 0 disables limiting
	RateLimitBurst         int     `yaml:"rate_limit_burst"`
}

// DatabaseConfig contains PostgreSQL connection settings.
// URL, when set, wins over the individual fields.
type DatabaseConfig struct {
	Driver        string `yaml:"driver"` // "postgres" (lib/pq) or "pgx"
	URL           string `yaml:"url"`
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	Database      string `yaml:"database"`
	SSLMode       string `yaml:"ssl_mode"`
	NotifyChannel string `yaml:"notify_channel"` // empty disables the change listener
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// BoardConfig contains list and timeline presentation settings
type BoardConfig struct {
	PageSize      int    `yaml:"page_size"`
	TimelineWidth int    `yaml:"timeline_width"` // pixels
	MinRows       int    `yaml:"min_rows"`
	DefaultView   string `yaml:"default_view"` // week, month or year
}

// ClientConfig contains settings for the Go API client
type ClientConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ReportDueReturns        string `yaml:"report_due_returns"`
	ReportUpcomingStarts    string `yaml:"report_upcoming_starts"`
	RecordFleetStatus       string `yaml:"record_fleet_status"`
	UpcomingStartWindowDays int    `yaml:"upcoming_start_window_days"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Config from YAML bytes, applies environment overrides and validates it.
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
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.Database.URL = val
	}
	if val := os.Getenv("DB_DRIVER"); val != "" {
		c.Database.Driver = val
	}
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
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Client
	if val := os.Getenv("API_BASE_URL"); val != "" {
		c.Client.BaseURL = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
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
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 5
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 10
	}
	if c.Server.ShutdownTimeoutSeconds == 0 {
		c.Server.ShutdownTimeoutSeconds = 20
	}
	if c.Server.RateLimitPerSecond < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	if c.Server.RateLimitPerSecond > 0 && c.Server.RateLimitBurst <= 0 {
		c.Server.RateLimitBurst = int(c.Server.RateLimitPerSecond * 2)
		if c.Server.RateLimitBurst < 1 {
			c.Server.RateLimitBurst = 1
		}
	}

	// Database validation: credentials are required at startup
	switch c.Database.Driver {
	case "":
		c.Database.Driver = "postgres"
	case "postgres", "pgx":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.URL != "" {
		u, err := url.Parse(c.Database.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid database url")
		}
		if u.User == nil || u.User.Username() == "" {
			return fmt.Errorf("database url must include credentials")
		}
	} else {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database password is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "require"
		}
	}

	// Board defaults
	if c.Board.PageSize == 0 {
		c.Board.PageSize = 25
	}
	if c.Board.TimelineWidth == 0 {
		c.Board.TimelineWidth = 1200
	}
	if c.Board.MinRows == 0 {
		c.Board.MinRows = 15
	}
	if c.Board.DefaultView == "" {
		c.Board.DefaultView = "month"
	}
	switch c.Board.DefaultView {
	case "week", "month", "year":
	default:
		return fmt.Errorf("invalid default view: %s", c.Board.DefaultView)
	}
	if c.Board.PageSize < 0 || c.Board.TimelineWidth < 0 || c.Board.MinRows < 0 {
		return fmt.Errorf("board settings must not be negative")
	}

	// Client defaults
	if c.Client.BaseURL == "" {
		c.Client.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.Client.TimeoutSeconds == 0 {
		c.Client.TimeoutSeconds = 10
	}

	// Scheduler defaults
	if c.Scheduler.ReportDueReturns == "" {
		c.Scheduler.ReportDueReturns = "0 0 6 * * *" // 6 AM UTC
	}
	if c.Scheduler.ReportUpcomingStarts == "" {
		c.Scheduler.ReportUpcomingStarts = "0 15 6 * * *" // 6:15 AM UTC
	}
	if c.Scheduler.RecordFleetStatus == "" {
		c.Scheduler.RecordFleetStatus = "0 */5 * * * *" // every 5 minutes
	}
	if c.Scheduler.UpcomingStartWindowDays == 0 {
		c.Scheduler.UpcomingStartWindowDays = 2
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Database,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSeconds) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

func (c *Config) ClientTimeout() time.Duration {
	return time.Duration(c.Client.TimeoutSeconds) * time.Second
}

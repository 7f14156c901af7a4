package config

import (
	"errors"
	"fmt"
	"os"

	"renvask/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Backup     BackupConfig     `yaml:"backup"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	API        APIConfig        `yaml:"api"`
	Booking    BookingConfig    `yaml:"booking"`
	Notify     NotifyConfig     `yaml:"notify"`
	Google     GoogleConfig     `yaml:"google"`
	Exports    ExportConfig     `yaml:"exports"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

// BookingConfig drives slot generation and flow limits.
type BookingConfig struct {
	Teams             int    `yaml:"teams"`
	WeekdayOpenHour   int    `yaml:"weekday_open_hour"`
	WeekdayCloseHour  int    `yaml:"weekday_close_hour"`
	SaturdayOpenHour  int    `yaml:"saturday_open_hour"`
	SaturdayCloseHour int    `yaml:"saturday_close_hour"`
	MaxBookingDays    int    `yaml:"max_booking_days"`
	Timezone          string `yaml:"timezone"`
	SessionTTLSeconds int    `yaml:"session_ttl_seconds"`
	RateLimitRequests int    `yaml:"rate_limit_requests"`
	RateLimitWindow   int    `yaml:"rate_limit_window"`
}

type APIConfig struct {
	Enabled   bool               `yaml:"enabled"`
	HTTP      APIHTTPConfig      `yaml:"http"`
	Auth      APIAuthConfig      `yaml:"auth"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIHTTPConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type APIAuthConfig struct {
	Enabled      bool           `yaml:"enabled"`
	HeaderAPIKey string         `yaml:"header_api_key"`
	HeaderExtra  string         `yaml:"header_extra"`
	APIKeys      []APIClientKey `yaml:"api_keys"`
}

type APIClientKey struct {
	Key         string   `yaml:"key"`
	Extra       string   `yaml:"extra"`
	Name        string   `yaml:"name"`
	Permissions []string `yaml:"permissions"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type NotifyConfig struct {
	TelegramToken string  `yaml:"telegram_token"`
	ManagerChats  []int64 `yaml:"manager_chats"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Schedule      string `yaml:"schedule"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type GoogleConfig struct {
	GoogleCredentialsFile string `yaml:"credentials_file"`
	BookingSpreadSheetID  string `yaml:"bookings_spreadsheet_id"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; the environment may already be populated.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Expand ${VARS} before parsing so secrets stay out of the YAML.
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	b := c.Booking
	if b.WeekdayOpenHour >= b.WeekdayCloseHour {
		return fmt.Errorf("weekday hours invalid: open %d >= close %d", b.WeekdayOpenHour, b.WeekdayCloseHour)
	}
	if b.SaturdayOpenHour >= b.SaturdayCloseHour {
		return fmt.Errorf("saturday hours invalid: open %d >= close %d", b.SaturdayOpenHour, b.SaturdayCloseHour)
	}
	if b.Teams <= 0 {
		return errors.New("booking.teams must be positive")
	}

	seen := make(map[string]bool, len(c.API.Auth.APIKeys))
	for _, k := range c.API.Auth.APIKeys {
		if k.Key == "" {
			return fmt.Errorf("api key for client '%s' is empty", k.Name)
		}
		if seen[k.Key] {
			return fmt.Errorf("duplicate api key for client '%s'", k.Name)
		}
		seen[k.Key] = true
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.API.HTTP.Port == 0 {
		c.API.HTTP.Port = 8080
	}
	if !c.API.HTTP.Enabled && c.API.Enabled {
		c.API.HTTP.Enabled = true
	}
	if c.API.Auth.HeaderAPIKey == "" {
		c.API.Auth.HeaderAPIKey = "x-api-key"
	}
	if c.API.Auth.HeaderExtra == "" {
		c.API.Auth.HeaderExtra = "x-api-extra"
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}

	// Booking defaults: weekdays 08-18, Saturday 08-14, Sunday closed.
	if c.Booking.Teams == 0 {
		c.Booking.Teams = models.DefaultTeams
	}
	if c.Booking.WeekdayOpenHour == 0 {
		c.Booking.WeekdayOpenHour = 8
	}
	if c.Booking.WeekdayCloseHour == 0 {
		c.Booking.WeekdayCloseHour = 18
	}
	if c.Booking.SaturdayOpenHour == 0 {
		c.Booking.SaturdayOpenHour = 8
	}
	if c.Booking.SaturdayCloseHour == 0 {
		c.Booking.SaturdayCloseHour = 14
	}
	if c.Booking.MaxBookingDays == 0 {
		c.Booking.MaxBookingDays = models.DefaultMaxBookingDays
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "Europe/Copenhagen"
	}
	if c.Booking.SessionTTLSeconds == 0 {
		c.Booking.SessionTTLSeconds = models.DefaultSessionTTL
	}
	if c.Booking.RateLimitRequests == 0 {
		c.Booking.RateLimitRequests = models.RateLimitRequests
	}
	if c.Booking.RateLimitWindow == 0 {
		c.Booking.RateLimitWindow = models.RateLimitWindow
	}
}

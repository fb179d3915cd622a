package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих файл конфигурации
const EnvPrefix = "SMC_"

var (
	// ErrLoadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrLoadConfig = errors.New("config: failed to load")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server" envPrefix:"SERVER_"`
	Database    DatabaseConfig    `toml:"database" envPrefix:"DATABASE_"`
	Logs        LogsConfig        `toml:"logs" envPrefix:"LOGS_"`
	Metrics     MetricsConfig     `toml:"metrics" envPrefix:"METRICS_"`
	Scheduling  SchedulingConfig  `toml:"scheduling" envPrefix:"SCHEDULING_"`
	Flows       FlowsConfig       `toml:"flows" envPrefix:"FLOWS_"`
	RateLimit   RateLimitConfig   `toml:"rate_limit" envPrefix:"RATE_LIMIT_"`
	GoogleMeet  GoogleMeetConfig  `toml:"google_meet" envPrefix:"GOOGLE_MEET_"`
	LinkService LinkServiceConfig `toml:"link_service" envPrefix:"LINK_SERVICE_"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"HOST"`
	Port            int    `toml:"port" env:"PORT"`
	User            string `toml:"user" env:"USER"`
	Password        string `toml:"password" env:"PASSWORD"`
	DBName          string `toml:"dbname" env:"NAME"`
	SSLMode         string `toml:"sslmode" env:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file" env:"FILE"`
	Level string `toml:"level" env:"LEVEL"`
}

// MetricsConfig параметры prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"ENABLED"`
	ServiceName string `toml:"service_name" env:"SERVICE_NAME"`
	Path        string `toml:"path" env:"PATH"`
}

// SchedulingConfig параметры генерации слотов
type SchedulingConfig struct {
	EnvelopeStart          string `toml:"envelope_start" env:"ENVELOPE_START"`
	EnvelopeEnd            string `toml:"envelope_end" env:"ENVELOPE_END"`
	GranularityMinutes     int    `toml:"granularity_minutes" env:"GRANULARITY_MINUTES"`
	HorizonDays            int    `toml:"horizon_days" env:"HORIZON_DAYS"`
	ZeroAvailabilityPolicy string `toml:"zero_availability_policy" env:"ZERO_AVAILABILITY_POLICY"`
	Timezone               string `toml:"timezone" env:"TIMEZONE"`
}

// Location возвращает часовой пояс хоста
func (c SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// FlowsConfig параметры хранилища сценариев бронирования
type FlowsConfig struct {
	TTLMinutes             int `toml:"ttl_minutes" env:"TTL_MINUTES"`
	CleanupIntervalSeconds int `toml:"cleanup_interval_seconds" env:"CLEANUP_INTERVAL_SECONDS"`
}

// RateLimitConfig ограничение частоты изменяющих запросов по IP клиента
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled" env:"ENABLED"`
	RequestsPerSecond float64 `toml:"requests_per_second" env:"REQUESTS_PER_SECOND"`
	Burst             int     `toml:"burst" env:"BURST"`
}

// GoogleMeetConfig учетные данные Google Calendar для ссылок Meet
type GoogleMeetConfig struct {
	Enabled      bool   `toml:"enabled" env:"ENABLED"`
	ClientID     string `toml:"client_id" env:"CLIENT_ID"`
	ClientSecret string `toml:"client_secret" env:"CLIENT_SECRET"`
	RefreshToken string `toml:"refresh_token" env:"REFRESH_TOKEN"`
	CalendarID   string `toml:"calendar_id" env:"CALENDAR_ID"`
	Timeout      int    `toml:"timeout" env:"TIMEOUT"` // секунды
}

// LinkServiceConfig шлюз конференций для zoom и teams
type LinkServiceConfig struct {
	Enabled   bool     `toml:"enabled" env:"ENABLED"`
	URL       string   `toml:"url" env:"URL"`
	Timeout   int      `toml:"timeout" env:"TIMEOUT"` // секунды
	Platforms []string `toml:"platforms" env:"PLATFORMS" envSeparator:","`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "scheduling",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "scheduling-service",
			Path:        "/metrics",
		},
		Scheduling: SchedulingConfig{
			EnvelopeStart:          "09:00",
			EnvelopeEnd:            "17:00",
			GranularityMinutes:     15,
			HorizonDays:            14,
			ZeroAvailabilityPolicy: "admit",
			Timezone:               "UTC",
		},
		Flows: FlowsConfig{
			TTLMinutes:             30,
			CleanupIntervalSeconds: 60,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 5,
			Burst:             10,
		},
		GoogleMeet: GoogleMeetConfig{
			CalendarID: "primary",
			Timeout:    10,
		},
		LinkService: LinkServiceConfig{
			Timeout:   5,
			Platforms: []string{"zoom", "teams"},
		},
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем TOML файл,
// затем .env и переменные окружения с префиксом SMC_
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrLoadConfig, err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}

	start, errStart := types.TimeString(c.Scheduling.EnvelopeStart).Minutes()
	end, errEnd := types.TimeString(c.Scheduling.EnvelopeEnd).Minutes()
	switch {
	case errStart != nil || errEnd != nil:
		problems = append(problems, "scheduling envelope must be HH:MM")
	case start >= end:
		problems = append(problems, "scheduling.envelope_start must be before envelope_end")
	}
	if c.Scheduling.GranularityMinutes <= 0 {
		problems = append(problems, "scheduling.granularity_minutes must be positive")
	}
	if c.Scheduling.HorizonDays <= 0 || c.Scheduling.HorizonDays > 90 {
		problems = append(problems, "scheduling.horizon_days must be between 1 and 90")
	}
	switch c.Scheduling.ZeroAvailabilityPolicy {
	case "admit", "deny":
	default:
		problems = append(problems, fmt.Sprintf("scheduling.zero_availability_policy %q must be admit or deny",
			c.Scheduling.ZeroAvailabilityPolicy))
	}
	if _, err := c.Scheduling.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("scheduling.timezone %q is unknown", c.Scheduling.Timezone))
	}

	if c.Flows.TTLMinutes <= 0 {
		problems = append(problems, "flows.ttl_minutes must be positive")
	}
	if c.Flows.CleanupIntervalSeconds <= 0 {
		problems = append(problems, "flows.cleanup_interval_seconds must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		problems = append(problems, "rate_limit requires positive requests_per_second and burst")
	}

	if c.GoogleMeet.Enabled &&
		(c.GoogleMeet.ClientID == "" || c.GoogleMeet.ClientSecret == "" || c.GoogleMeet.RefreshToken == "") {
		problems = append(problems, "google_meet requires client_id, client_secret and refresh_token")
	}
	if c.LinkService.Enabled {
		if c.LinkService.URL == "" {
			problems = append(problems, "link_service.url is required")
		}
		for _, p := range c.LinkService.Platforms {
			if p != "zoom" && p != "teams" {
				problems = append(problems, fmt.Sprintf("link_service platform %q must be zoom or teams", p))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS          CORSConfig
	Log           LogConfig
	Listing       ListingConfig
	Mutations     MutationsConfig
	Confirmations ConfirmationsConfig
	Dashboard     DashboardConfig
	Exports       ExportsConfig
	Metrics       MetricsConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ListingConfig bounds the page sizes accepted by list endpoints.
type ListingConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// MutationsConfig tunes the add workflow.
type MutationsConfig struct {
	SubmitDelay time.Duration
}

// ConfirmationsConfig controls how long a destructive action waits for a decision.
type ConfirmationsConfig struct {
	TTL time.Duration
}

// DashboardConfig carries labels shown on the overview.
type DashboardConfig struct {
	ActiveSemester string
}

// ExportsConfig toggles CSV/PDF downloads.
type ExportsConfig struct {
	Enabled bool
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c != nil && c.Env == EnvProduction
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

// FromViper builds a Config from an existing viper instance after applying
// the defaults. Callers that bind flags into v use it instead of Load.
func FromViper(v *viper.Viper) *Config {
	setDefaults(v)
	return fromViper(v)
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return FromViper(viper.New())
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	defaultSize := v.GetInt("DEFAULT_PAGE_SIZE")
	if defaultSize <= 0 {
		defaultSize = 10
	}
	maxSize := v.GetInt("MAX_PAGE_SIZE")
	if maxSize < defaultSize {
		maxSize = defaultSize
	}
	cfg.Listing = ListingConfig{
		DefaultPageSize: defaultSize,
		MaxPageSize:     maxSize,
	}

	cfg.Mutations = MutationsConfig{
		SubmitDelay: parseDuration(v.GetString("SUBMIT_DELAY"), 500*time.Millisecond),
	}

	cfg.Confirmations = ConfirmationsConfig{
		TTL: parseDuration(v.GetString("CONFIRMATION_TTL"), 5*time.Minute),
	}

	cfg.Dashboard = DashboardConfig{
		ActiveSemester: v.GetString("ACTIVE_SEMESTER"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("ENABLE_METRICS"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DEFAULT_PAGE_SIZE", 10)
	v.SetDefault("MAX_PAGE_SIZE", 50)
	v.SetDefault("SUBMIT_DELAY", "500ms")
	v.SetDefault("CONFIRMATION_TTL", "5m")
	v.SetDefault("ACTIVE_SEMESTER", "1st Semester 2026-2027")

	v.SetDefault("ENABLE_EXPORTS", true)
	v.SetDefault("ENABLE_METRICS", true)
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

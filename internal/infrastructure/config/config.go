package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Locale   LocaleConfig   `mapstructure:"locale"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	StaticDir    string        `mapstructure:"static_dir"`
}

// StoreConfig holds product store configuration
type StoreConfig struct {
	Path               string        `mapstructure:"path"`
	Pretty             bool          `mapstructure:"pretty"`
	TombstoneRetention time.Duration `mapstructure:"tombstone_retention"`
}

// SyncConfig holds sync event relay configuration
type SyncConfig struct {
	EventTTL      time.Duration `mapstructure:"event_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	MaxEvents     int           `mapstructure:"max_events"`
	RetainEvents  int           `mapstructure:"retain_events"`
	PollLimit     int           `mapstructure:"poll_limit"`
}

// LocaleConfig holds localization configuration
type LocaleConfig struct {
	DefaultCountry string `mapstructure:"default_country"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
	RateLimitRequests  int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	// Configure viper
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults()

	// Bind environment variables
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "Shopfront")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)

	// Server defaults
	viper.SetDefault("server.port", 3001)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.static_dir", "")

	// Store defaults
	viper.SetDefault("store.path", "data/products.json")
	viper.SetDefault("store.pretty", true)
	viper.SetDefault("store.tombstone_retention", "168h")

	// Sync relay defaults
	viper.SetDefault("sync.event_ttl", "5m")
	viper.SetDefault("sync.sweep_interval", "60s")
	viper.SetDefault("sync.max_events", 100)
	viper.SetDefault("sync.retain_events", 50)
	viper.SetDefault("sync.poll_limit", 50)

	// Locale defaults
	viper.SetDefault("locale.default_country", "gb")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "json")
	viper.SetDefault("logger.output", "stdout")
	viper.SetDefault("logger.filename", "")

	// Security defaults
	viper.SetDefault("security.cors_allowed_origins", "*")
	viper.SetDefault("security.rate_limit_requests", 100)
	viper.SetDefault("security.rate_limit_window", "1m")

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
}

func bindEnvVars() {
	// App
	viper.BindEnv("app.name", "APP_NAME")
	viper.BindEnv("app.version", "APP_VERSION")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("app.debug", "APP_DEBUG")

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	viper.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	viper.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")
	viper.BindEnv("server.static_dir", "SERVER_STATIC_DIR")

	// Store
	viper.BindEnv("store.path", "STORE_PATH")
	viper.BindEnv("store.pretty", "STORE_PRETTY")
	viper.BindEnv("store.tombstone_retention", "STORE_TOMBSTONE_RETENTION")

	// Sync relay
	viper.BindEnv("sync.event_ttl", "SYNC_EVENT_TTL")
	viper.BindEnv("sync.sweep_interval", "SYNC_SWEEP_INTERVAL")
	viper.BindEnv("sync.max_events", "SYNC_MAX_EVENTS")
	viper.BindEnv("sync.retain_events", "SYNC_RETAIN_EVENTS")
	viper.BindEnv("sync.poll_limit", "SYNC_POLL_LIMIT")

	// Locale
	viper.BindEnv("locale.default_country", "LOCALE_DEFAULT_COUNTRY")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.format", "LOG_FORMAT")
	viper.BindEnv("logger.output", "LOG_OUTPUT")
	viper.BindEnv("logger.filename", "LOG_FILENAME")

	// Security
	viper.BindEnv("security.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	viper.BindEnv("security.rate_limit_requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("security.rate_limit_window", "RATE_LIMIT_WINDOW")

	// Metrics
	viper.BindEnv("metrics.enabled", "ENABLE_METRICS")
}

// Validate checks the configuration for values the server cannot run with.
func Validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	if cfg.Store.Path == "" {
		return fmt.Errorf("store path is required")
	}

	if cfg.Sync.EventTTL <= 0 {
		return fmt.Errorf("sync event TTL must be positive")
	}

	if cfg.Sync.SweepInterval <= 0 {
		return fmt.Errorf("sync sweep interval must be positive")
	}

	if cfg.Sync.RetainEvents <= 0 || cfg.Sync.RetainEvents > cfg.Sync.MaxEvents {
		return fmt.Errorf("sync retain_events must be positive and not exceed max_events")
	}

	if cfg.Sync.PollLimit <= 0 {
		return fmt.Errorf("sync poll limit must be positive")
	}

	return nil
}

// Address returns the listen address for the HTTP server
func (cfg *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}

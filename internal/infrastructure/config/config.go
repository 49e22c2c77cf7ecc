package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	DevServer DevServerConfig `mapstructure:"devserver"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig holds the backend connection configuration
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig holds the persisted session configuration
type SessionConfig struct {
	File string `mapstructure:"file"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// DevServerConfig holds the reference backend configuration
type DevServerConfig struct {
	Port              int           `mapstructure:"port"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	JWTExpiresIn      time.Duration `mapstructure:"jwt_expires_in"`
	JWTIssuer         string        `mapstructure:"jwt_issuer"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
	MetricsEnabled    bool          `mapstructure:"metrics_enabled"`
	SeedData          bool          `mapstructure:"seed_data"`
}

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "Crewdeck")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")

	// API defaults
	viper.SetDefault("api.base_url", "http://localhost:8080")
	viper.SetDefault("api.timeout", "30s")

	// Session defaults
	viper.SetDefault("session.file", defaultSessionFile())

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output", "stderr")

	// Devserver defaults
	viper.SetDefault("devserver.port", 8080)
	viper.SetDefault("devserver.jwt_secret", "local-development-secret")
	viper.SetDefault("devserver.jwt_expires_in", "24h")
	viper.SetDefault("devserver.jwt_issuer", "crewdeck-devserver")
	viper.SetDefault("devserver.rate_limit_requests", 100)
	viper.SetDefault("devserver.rate_limit_window", "1m")
	viper.SetDefault("devserver.metrics_enabled", true)
	viper.SetDefault("devserver.seed_data", true)
}

func bindEnvVars() {
	// App
	viper.BindEnv("app.name", "APP_NAME")
	viper.BindEnv("app.version", "APP_VERSION")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")

	// API
	viper.BindEnv("api.base_url", "API_BASE_URL")
	viper.BindEnv("api.timeout", "API_TIMEOUT")

	// Session
	viper.BindEnv("session.file", "SESSION_FILE")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.format", "LOG_FORMAT")
	viper.BindEnv("logger.output", "LOG_OUTPUT")

	// Devserver
	viper.BindEnv("devserver.port", "DEVSERVER_PORT")
	viper.BindEnv("devserver.jwt_secret", "DEVSERVER_JWT_SECRET")
	viper.BindEnv("devserver.jwt_expires_in", "DEVSERVER_JWT_EXPIRES_IN")
	viper.BindEnv("devserver.jwt_issuer", "DEVSERVER_JWT_ISSUER")
	viper.BindEnv("devserver.rate_limit_requests", "DEVSERVER_RATE_LIMIT_REQUESTS")
	viper.BindEnv("devserver.rate_limit_window", "DEVSERVER_RATE_LIMIT_WINDOW")
	viper.BindEnv("devserver.metrics_enabled", "DEVSERVER_METRICS_ENABLED")
	viper.BindEnv("devserver.seed_data", "DEVSERVER_SEED_DATA")
}

func validateConfig(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}

	if !strings.HasPrefix(cfg.API.BaseURL, "http://") && !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		return fmt.Errorf("api base url must be an http(s) URL")
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}

	if cfg.Session.File == "" {
		return fmt.Errorf("session file path is required")
	}

	if cfg.DevServer.Port <= 0 || cfg.DevServer.Port > 65535 {
		return fmt.Errorf("devserver port must be between 1 and 65535")
	}

	return nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".crewdeck", "session.json")
	}
	return filepath.Join(dir, "crewdeck", "session.json")
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}

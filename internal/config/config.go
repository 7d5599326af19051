package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string   `mapstructure:"-"`   // Telegram API token loaded from environment
	Quiz             Quiz     `mapstructure:"quiz"`
	HTTP             HTTP     `mapstructure:"http"`
	DB               DB       `mapstructure:"database"`
	Sessions         Sessions `mapstructure:"sessions"`
}

// Sessions controls eviction of idle in-memory quiz sessions.
type Sessions struct {
	MaxIdle       time.Duration `mapstructure:"max_idle"`       // sessions untouched for longer are dropped
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec of the eviction job
}

// Quiz contains the widget defaults and where question sets come from.
type Quiz struct {
	Title         string `mapstructure:"title"`          // header title when a set has none
	Host          string `mapstructure:"host"`           // container selector
	Enumerate     bool   `mapstructure:"enumerate"`      // number the questions
	QuestionsPath string `mapstructure:"questions_path"` // question set file or directory
	DefaultSet    string `mapstructure:"default_set"`    // set started when none is named
}

// HTTP contains web host parameters.
type HTTP struct {
	Addr            string   `mapstructure:"addr"`             // listen address
	CORSOrigins     []string `mapstructure:"cors_origins"`     // origins allowed to embed the widget
	CORSCredentials bool     `mapstructure:"cors_credentials"` // send the session cookie cross-origin; needs explicit origins
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Enabled reports whether a database is configured.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// TelegramToken returns the bot token if it is configured.
func (c *Config) TelegramToken() (string, error) {
	if c.TelegramAPIToken == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return c.TelegramAPIToken, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Values already present in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")
	_ = v.BindEnv("quiz.questions_path", "QUIZ_QUESTIONS_PATH")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("quiz.title", "ysQuiz")
	v.SetDefault("quiz.host", ".ysquiz")
	v.SetDefault("quiz.enumerate", true)
	v.SetDefault("quiz.questions_path", "assets/questions")
	v.SetDefault("quiz.default_set", "sample")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("http.cors_credentials", false)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("sessions.max_idle", "2h")
	v.SetDefault("sessions.sweep_schedule", "@every 10m")
}

func fromViper(v *viper.Viper) (*Config, error) {
	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	// Each binary checks the ones it needs.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	return &cfg, nil
}

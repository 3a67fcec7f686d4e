package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env    string       `mapstructure:"env"` // local, production ...
	Server ServerConfig `mapstructure:"server"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Canvas CanvasConfig `mapstructure:"canvas"`
	CORS   CORSConfig   `mapstructure:"cors"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type OpenAIConfig struct {
	APIKey  string        `mapstructure:"-"` // environment only
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CanvasConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// AIEnabled reports whether the /ai endpoints can reach the provider
func (c *Config) AIEnabled() bool {
	return strings.TrimSpace(c.OpenAI.APIKey) != ""
}

// IsProduction reports whether the production logger should be used
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from an optional config file and the environment.
// An empty configFile searches ./config.yaml and ./config/config.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetDefault("env", "local")
	v.SetDefault("server.port", "5001")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.timeout", "60s")
	v.SetDefault("canvas.timeout", "30s")
	v.SetDefault("cors.allowed_origin", "*")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("openai.model", "OPENAI_MODEL")
	_ = v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	_ = v.BindEnv("openai.timeout", "OPENAI_TIMEOUT")
	_ = v.BindEnv("canvas.timeout", "CANVAS_TIMEOUT")
	_ = v.BindEnv("cors.allowed_origin", "CORS_ALLOWED_ORIGIN")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.OpenAI.APIKey = v.GetString("openai_api_key")

	if cfg.Server.Port == "" {
		return nil, errors.New("server port must not be empty")
	}
	if cfg.Canvas.Timeout <= 0 {
		return nil, fmt.Errorf("canvas timeout must be positive, got %s", cfg.Canvas.Timeout)
	}
	if cfg.OpenAI.Timeout <= 0 {
		return nil, fmt.Errorf("openai timeout must be positive, got %s", cfg.OpenAI.Timeout)
	}

	return &cfg, nil
}

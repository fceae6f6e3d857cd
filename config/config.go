package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/avant-atelier/backend/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Gemini  GeminiConfig
	Cache   CacheConfig
	Search  SearchConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	StaticDir      string   `mapstructure:"static_dir"`
	ServeStatic    bool     `mapstructure:"serve_static"`
}

// CatalogConfig holds catalog source configuration
type CatalogConfig struct {
	BaseURL string              `mapstructure:"base_url"`
	Sources []domain.SourceSpec `mapstructure:"sources"`
}

// GeminiConfig holds generative API configuration
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds chat reply cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// SearchConfig holds search and chat-context tuning
type SearchConfig struct {
	PreviewLimit    int           `mapstructure:"preview_limit"`
	ChatContextSize int           `mapstructure:"chat_context_size"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/avant-atelier/")

	// Environment variable settings
	v.SetEnvPrefix("AVANT")
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.static_dir", ".")
	v.SetDefault("server.serve_static", true)

	// Catalog defaults: same files the storefront pages read, fetched from
	// the origin this server exposes unless overridden.
	v.SetDefault("catalog.base_url", "http://localhost:3000")
	v.SetDefault("catalog.sources", []map[string]string{
		{"file": "Tops.json", "tag": "top"},
		{"file": "Bottoms.json", "tag": "bottom"},
		{"file": "Accessories.json", "tag": "accessory"},
		{"file": "NewArrivals.json", "tag": "new"},
	})

	// Gemini defaults
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")

	// Cache defaults
	v.SetDefault("cache.ttl", "15m")

	// Search defaults
	v.SetDefault("search.preview_limit", 5)
	v.SetDefault("search.chat_context_size", 12)
	v.SetDefault("search.session_ttl", "30m")
}

// validate validates the configuration
func validate(config *Config) error {
	if len(config.Catalog.Sources) == 0 {
		return fmt.Errorf("at least one catalog source is required")
	}

	for _, src := range config.Catalog.Sources {
		if src.File == "" {
			return fmt.Errorf("catalog source with empty file name")
		}
		if src.Tag == "" {
			return fmt.Errorf("catalog source %q has no tag", src.File)
		}
	}

	if config.Search.PreviewLimit <= 0 {
		return fmt.Errorf("search preview limit must be positive, got: %d", config.Search.PreviewLimit)
	}

	if config.Search.ChatContextSize <= 0 {
		return fmt.Errorf("chat context size must be positive, got: %d", config.Search.ChatContextSize)
	}

	return nil
}

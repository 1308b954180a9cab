package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	applogger "PortfolioPulse/pkg/logger"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Summarizer backends.
const (
	SummarizerClaude = "claude"
	SummarizerGemini = "gemini"
)

// Cache backends.
const (
	CacheNone    = "none"
	CacheMemory  = "memory"
	CacheRedis   = "redis"
	CacheLayered = "layered"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"120s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Log     applogger.Config `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Quote struct {
		APIKey        string        `yaml:"api_key"`
		BaseURL       string        `yaml:"base_url" default:"https://api.twelvedata.com" validate:"required,url"`
		OutputSize    int           `yaml:"output_size" default:"260" validate:"gte=1,lte=5000"`
		Timeout       time.Duration `yaml:"timeout" default:"10s"`
		RatePerMinute int           `yaml:"rate_per_minute" validate:"gte=0"`
	} `yaml:"quote"`
	Fundamentals struct {
		APIKey        string        `yaml:"api_key"`
		BaseURL       string        `yaml:"base_url" default:"https://finnhub.io/api/v1" validate:"required,url"`
		Timeout       time.Duration `yaml:"timeout" default:"10s"`
		RatePerMinute int           `yaml:"rate_per_minute" validate:"gte=0"`
	} `yaml:"fundamentals"`
	Summarizer struct {
		Provider    string        `yaml:"provider" default:"claude" validate:"oneof=claude gemini"`
		APIKey      string        `yaml:"api_key"`
		Model       string        `yaml:"model"`
		MaxTokens   int           `yaml:"max_tokens" default:"2048" validate:"gte=1"`
		Temperature float32       `yaml:"temperature"`
		Timeout     time.Duration `yaml:"timeout" default:"60s"`
		BaseURL     string        `yaml:"base_url"`
	} `yaml:"summarizer"`
	Dashboard struct {
		Workers int `yaml:"workers" default:"1" validate:"gte=1,lte=32"`
	} `yaml:"dashboard"`
	News struct {
		BriefLimit      int `yaml:"brief_limit" default:"12" validate:"gte=1"`
		ListLimit       int `yaml:"list_limit" default:"5" validate:"gte=1"`
		DefaultDaysBack int `yaml:"default_days_back" default:"3" validate:"gte=1"`
		Workers         int `yaml:"workers" default:"1" validate:"gte=1,lte=32"`
	} `yaml:"news"`
	Brief struct {
		RateLimit struct {
			Capacity     float64 `yaml:"capacity" default:"10" validate:"gte=0"`
			RefillPerSec float64 `yaml:"refill_per_sec" default:"0.2" validate:"gte=0"`
		} `yaml:"rate_limit"`
	} `yaml:"brief"`
	Cache struct {
		Backend   string        `yaml:"backend" default:"none" validate:"oneof=none memory redis layered"`
		TTL       time.Duration `yaml:"ttl" default:"5m"`
		MemoryTTL time.Duration `yaml:"memory_ttl" default:"1m"`
		Redis     struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"portfoliopulse"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Assets []AssetConfig `yaml:"assets" validate:"dive"`
}

// AssetConfig is one tracked instrument as declared in YAML.
type AssetConfig struct {
	Name           string `yaml:"name" validate:"required"`
	Ticker         string `yaml:"ticker" validate:"required"`
	Exchange       string `yaml:"exchange"`
	Strategy       string `yaml:"strategy" validate:"required"`
	ProviderSymbol string `yaml:"provider_symbol"`
}

var validate = validator.New()

// Default returns a configuration populated only with defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads .env (if present) and config from YAML, then overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.ApplyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides settings with environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("TWELVE_DATA_API_KEY"); v != "" {
		c.Quote.APIKey = v
	}
	if v := getenv("FINNHUB_API_KEY"); v != "" {
		c.Fundamentals.APIKey = v
	}
	if v := getenv("SUMMARIZER_PROVIDER"); v != "" {
		c.Summarizer.Provider = strings.ToLower(v)
	}
	switch c.Summarizer.Provider {
	case SummarizerClaude:
		if v := getenv("ANTHROPIC_API_KEY"); v != "" {
			c.Summarizer.APIKey = v
		}
	case SummarizerGemini:
		if v := getenv("GEMINI_API_KEY"); v != "" {
			c.Summarizer.APIKey = v
		}
	}
	if v := getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.Assets))
	for _, a := range c.Assets {
		if _, dup := seen[a.Ticker]; dup {
			return fmt.Errorf("assets: duplicate ticker %q", a.Ticker)
		}
		seen[a.Ticker] = struct{}{}
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-forecast-collection/internal/common"
)

// Provider names accepted in PROVIDERS.
var knownProviders = map[string]bool{
	"accuweather":    true,
	"nws":            true,
	"climacell":      true,
	"openweathermap": true,
	"weatherchannel": true,
}

type AppConfig struct {
	AccuWeatherAPIKey    string `yaml:"accuweather_api_key"`
	ClimaCellAPIKey      string `yaml:"climacell_api_key"`
	OpenWeatherMapAPIKey string `yaml:"openweathermap_api_key"`
	NWSUserAgent         string `yaml:"nws_user_agent"`

	// Providers enabled for this process, in reporting order.
	Providers []string `yaml:"providers"`

	HTTP     HTTPConfig     `yaml:"http"`
	Cache    CacheConfig    `yaml:"location_cache"`
	Location LocationConfig `yaml:"default_location"`

	LogLevel string `yaml:"log_level"`
	Port     string `yaml:"port"`
}

// HTTPConfig controls the outgoing provider requests.
type HTTPConfig struct {
	Timeout          time.Duration `yaml:"timeout"`
	RPS              float64       `yaml:"rps"`
	Burst            int           `yaml:"burst"`
	RetryMax         int           `yaml:"retry_max"`
	RetryInitial     time.Duration `yaml:"retry_initial"`
	RetryMaxInterval time.Duration `yaml:"retry_max_interval"`
}

// CacheConfig selects the AccuWeather location key cache backend.
type CacheConfig struct {
	Backend   string `yaml:"backend"`
	Path      string `yaml:"path"`
	RedisAddr string `yaml:"redis_addr"`
}

// LocationConfig is used when a request carries no coordinates.
type LocationConfig struct {
	Latitude  float64 `yaml:"lat"`
	Longitude float64 `yaml:"lon"`
}

func defaults() *AppConfig {
	return &AppConfig{
		Providers: []string{"accuweather", "nws", "climacell", "openweathermap"},
		HTTP: HTTPConfig{
			Timeout:          10 * time.Second,
			RPS:              5,
			Burst:            5,
			RetryMax:         3,
			RetryInitial:     500 * time.Millisecond,
			RetryMaxInterval: 5 * time.Second,
		},
		Cache: CacheConfig{
			Backend: "memory",
			Path:    ".cache/location_keys.json",
		},
		Location: LocationConfig{Latitude: 42.3601, Longitude: -71.0589},
		LogLevel: "info",
		Port:     "8080",
	}
}

// Load reads configuration from an optional YAML file and the environment,
// with sensible defaults. Environment variables win over the file.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *AppConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *AppConfig) error {
	cfg.AccuWeatherAPIKey = getenvDefault("ACCUWEATHER_API_KEY", cfg.AccuWeatherAPIKey)
	cfg.ClimaCellAPIKey = getenvDefault("CLIMACELL_API_KEY", cfg.ClimaCellAPIKey)
	cfg.OpenWeatherMapAPIKey = getenvDefault("OPENWEATHERMAP_API_KEY", cfg.OpenWeatherMapAPIKey)
	cfg.NWSUserAgent = getenvDefault("NWS_USER_AGENT", cfg.NWSUserAgent)

	if v := os.Getenv("PROVIDERS"); v != "" {
		cfg.Providers = common.SplitList(v)
	}

	var err error
	if cfg.HTTP.Timeout, err = getenvDuration("HTTP_TIMEOUT", cfg.HTTP.Timeout); err != nil {
		return err
	}
	if cfg.HTTP.RetryInitial, err = getenvDuration("RETRY_INITIAL", cfg.HTTP.RetryInitial); err != nil {
		return err
	}
	if cfg.HTTP.RetryMaxInterval, err = getenvDuration("RETRY_MAX_INTERVAL", cfg.HTTP.RetryMaxInterval); err != nil {
		return err
	}
	cfg.HTTP.RetryMax = getenvInt("RETRY_MAX", cfg.HTTP.RetryMax)
	cfg.HTTP.Burst = getenvInt("PROVIDER_BURST", cfg.HTTP.Burst)
	cfg.HTTP.RPS = getenvFloat("PROVIDER_RPS", cfg.HTTP.RPS)

	cfg.Cache.Backend = getenvDefault("LOCATION_CACHE", cfg.Cache.Backend)
	cfg.Cache.Path = getenvDefault("LOCATION_CACHE_PATH", cfg.Cache.Path)
	cfg.Cache.RedisAddr = getenvDefault("REDIS_ADDR", cfg.Cache.RedisAddr)

	cfg.Location.Latitude = getenvFloat("DEFAULT_LAT", cfg.Location.Latitude)
	cfg.Location.Longitude = getenvFloat("DEFAULT_LON", cfg.Location.Longitude)

	cfg.LogLevel = getenvDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.Port = getenvDefault("PORT", cfg.Port)
	return nil
}

// Validate checks for values the rest of the application cannot work with.
func (c *AppConfig) Validate() error {
	if len(c.Providers) == 0 {
		return errors.New("at least one provider must be enabled")
	}
	for _, p := range c.Providers {
		if !knownProviders[p] {
			return fmt.Errorf("unknown provider %q", p)
		}
	}
	if c.HTTP.RetryMax < 0 {
		return errors.New("RETRY_MAX must not be negative")
	}
	if c.HTTP.RetryInitial <= 0 {
		return errors.New("RETRY_INITIAL must be positive")
	}
	switch c.Cache.Backend {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("unknown LOCATION_CACHE backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required when LOCATION_CACHE=redis")
	}
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 || c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return errors.New("default location is out of range")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

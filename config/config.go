// Package config loads market finder settings from defaults, an optional
// YAML file and MARKETFINDER_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"market-finder/logging"
)

const envPrefix = "MARKETFINDER"

// Cache drivers.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       logging.Config  `mapstructure:"log"`
	Data      DataConfig      `mapstructure:"data"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// RequestTimeout bounds handler work and must stay below WriteTimeout
	// so the client still receives the 504.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// CacheConfig selects where lookup results are cached.
type CacheConfig struct {
	Driver    string        `mapstructure:"driver"`
	RedisAddr string        `mapstructure:"redis_addr"`
	Prefix    string        `mapstructure:"prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
	// MaxEntries bounds the memory driver.
	MaxEntries int `mapstructure:"max_entries"`
}

// RateLimitConfig is the per-client token bucket.
type RateLimitConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Refill   time.Duration `mapstructure:"refill"`
}

// DataConfig points at an optional reference dataset overriding the
// embedded one.
type DataConfig struct {
	Path string `mapstructure:"path"`
}

// Options tweak Load. Overrides are applied last, typically from CLI flags.
type Options struct {
	ConfigFile string
	Overrides  map[string]any
}

// Load reads configuration from file and env. Env var overrides use prefix MARKETFINDER_.
func Load(opts Options) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	cfgPath := opts.ConfigFile
	if cfgPath == "" {
		cfgPath = os.Getenv(envPrefix + "_CONFIG")
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "market-finder"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicitly named file must exist
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	for key, val := range opts.Overrides {
		v.Set(key, val)
	}

	return decode(v)
}

// Default returns the built-in defaults, ignoring files and environment.
// It panics if the defaults cannot be decoded.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	c, err := decode(v)
	if err != nil {
		panic(fmt.Sprintf("config: invalid built-in defaults: %v", err))
	}
	return c
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("cache.driver", CacheMemory)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.prefix", "marketfinder:")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.max_entries", 4096)
	v.SetDefault("rate_limit.capacity", 60)
	v.SetDefault("rate_limit.refill", time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("data.path", "")
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return errors.New("config: server timeouts must be positive")
	}
	if c.Server.RequestTimeout <= 0 || c.Server.RequestTimeout >= c.Server.WriteTimeout {
		return errors.New("config: server.request_timeout must be positive and below server.write_timeout")
	}
	switch c.Cache.Driver {
	case CacheMemory:
		if c.Cache.MaxEntries <= 0 {
			return errors.New("config: cache.max_entries must be positive for the memory driver")
		}
	case CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New("config: cache.redis_addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("config: unknown cache driver %q", c.Cache.Driver)
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.Refill <= 0 {
		return errors.New("config: rate_limit.capacity and rate_limit.refill must be positive")
	}
	return nil
}

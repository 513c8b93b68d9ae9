// Package config loads service settings from the environment, a .env file
// and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverGorm   = "gorm"
	DriverRedis  = "redis"
)

type Config struct {
	Port   string `yaml:"port"`
	AppEnv string `yaml:"app_env"`

	StoreDriver string `yaml:"store_driver"`
	DatabaseURL string `yaml:"database_url"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	NATSURL         string        `yaml:"nats_url"`
	NATSConnTimeout time.Duration `yaml:"nats_conn_timeout"`

	SessionSecret string   `yaml:"session_secret"`
	FrontendURLs  []string `yaml:"frontend_urls"`
	TemplatesDir  string   `yaml:"templates_dir"`

	SearchCacheSize int           `yaml:"search_cache_size"`
	SearchCacheTTL  time.Duration `yaml:"search_cache_ttl"`
	ImportMaxBytes  int64         `yaml:"import_max_bytes"`
}

// IsDevelopment reports whether APP_ENV selects development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// UsesPostgres reports whether DatabaseURL looks like a postgres DSN;
// anything else is treated as a sqlite file path.
func (c *Config) UsesPostgres() bool {
	dsn := strings.TrimSpace(c.DatabaseURL)
	return strings.HasPrefix(dsn, "postgres") || strings.Contains(dsn, "host=")
}

// Load reads .env (if present), an optional YAML file named by CONFIG_FILE,
// and the environment. Environment variables win over YAML values, and
// defaults fill whatever is still unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg = fileCfg
	}

	cfg.Port = getEnvString("PORT", cfg.Port, "8080")
	cfg.AppEnv = getEnvString("APP_ENV", cfg.AppEnv, "production")

	cfg.StoreDriver = strings.ToLower(getEnvString("STORE_DRIVER", cfg.StoreDriver, DriverGorm))
	cfg.DatabaseURL = getEnvString("DATABASE_URL", cfg.DatabaseURL, "skills.db")

	cfg.RedisAddr = getEnvString("REDIS_ADDR", cfg.RedisAddr, "localhost:6379")
	cfg.RedisPassword = getEnvString("REDIS_PASSWORD", cfg.RedisPassword, "")
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB, 0)

	cfg.NATSURL = getEnvString("NATS_URL", cfg.NATSURL, "")
	cfg.NATSConnTimeout = getEnvDuration("NATS_CONN_TIMEOUT", cfg.NATSConnTimeout, 10*time.Second)

	cfg.SessionSecret = getEnvString("SESSION_SECRET", cfg.SessionSecret, "secret_key_change_me")
	if v, ok := os.LookupEnv("FRONTEND_URLS"); ok {
		cfg.FrontendURLs = splitList(v)
	}
	cfg.TemplatesDir = getEnvString("TEMPLATES_DIR", cfg.TemplatesDir, "./web/templates")

	cfg.SearchCacheSize = getEnvInt("SEARCH_CACHE_SIZE", cfg.SearchCacheSize, 256)
	cfg.SearchCacheTTL = getEnvDuration("SEARCH_CACHE_TTL", cfg.SearchCacheTTL, time.Minute)
	cfg.ImportMaxBytes = int64(getEnvInt("IMPORT_MAX_BYTES", int(cfg.ImportMaxBytes), 1<<20))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverGorm, DriverRedis:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.SearchCacheSize <= 0 {
		return fmt.Errorf("SEARCH_CACHE_SIZE must be positive, got %d", c.SearchCacheSize)
	}
	if c.ImportMaxBytes <= 0 {
		return fmt.Errorf("IMPORT_MAX_BYTES must be positive, got %d", c.ImportMaxBytes)
	}
	return nil
}

func loadFile(path string) (*Config, error) {
	// #nosec G304 -- path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func getEnvString(key, current, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if current != "" {
		return current
	}
	return defaultValue
}

func getEnvInt(key string, current, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	if current != 0 {
		return current
	}
	return defaultValue
}

func getEnvDuration(key string, current, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	if current != 0 {
		return current
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

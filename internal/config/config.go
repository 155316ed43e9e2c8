package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the medguide service configuration.
type Config struct {
	HTTP struct {
		Addr string
	}
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    struct {
		TTL time.Duration
	}
	Log struct {
		Level  string
		Format string
	}
	UploadDir  string
	SeedSample bool
}

// DatabaseConfig selects the backing store.
// URL wins when set; otherwise a postgres DSN is assembled from the discrete fields.
type DatabaseConfig struct {
	Driver   string // "sqlite" or "postgres"
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// RedisConfig configures the optional catalog cache.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// GetDSN returns the driver-specific data source name.
func (c *DatabaseConfig) GetDSN() string {
	if c.Driver == "sqlite" {
		return sqlitePath(c.URL)
	}
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":5000")

	defaultURL := "sqlite:///medicine_guide.db"
	if os.Getenv("VERCEL") != "" {
		defaultURL = "sqlite:///:memory:"
	}
	cfg.Database.URL = getEnv("DATABASE_URL", "")
	cfg.Database.Driver = getEnv("DB_DRIVER", "")
	if cfg.Database.URL == "" && cfg.Database.Driver != "postgres" {
		cfg.Database.URL = defaultURL
	}
	if cfg.Database.Driver == "" {
		driver, err := driverFromURL(cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		cfg.Database.Driver = driver
	}
	if cfg.Database.Driver != "sqlite" && cfg.Database.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "medguide")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Enabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)
	cfg.Cache.TTL = time.Duration(parseInt(getEnv("CACHE_TTL", "300"), 300)) * time.Second

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.UploadDir = getEnv("UPLOAD_FOLDER", "uploads")
	cfg.SeedSample = getEnv("SEED_SAMPLE", "true") == "true"

	return cfg, nil
}

func driverFromURL(url string) (string, error) {
	switch {
	case strings.HasPrefix(url, "sqlite:"):
		return "sqlite", nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "postgres", nil
	default:
		return "", fmt.Errorf("cannot infer database driver from DATABASE_URL %q", url)
	}
}

// sqlitePath reads SQLAlchemy-style URLs: sqlite:///rel.db is relative,
// sqlite:////abs/file.db is absolute, sqlite:// and sqlite:///:memory: are in-memory.
func sqlitePath(url string) string {
	p := strings.TrimPrefix(url, "sqlite:")
	p = strings.TrimPrefix(p, "//")
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == ":memory:" {
		return ":memory:"
	}
	return p
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

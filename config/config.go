package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverSupabase = "supabase"
	DriverMemory   = "memory"
)

// Config holds every setting read from the environment by both binaries.
type Config struct {
	Port        string
	AppURL      string
	LogLevel    string
	CORSOrigins string
	StoreDriver string
	Bucket      string
	DatabaseURL string
	Supabase    SupabaseConfig
	RateLimit   RateLimitConfig
	Metrics     MetricsConfig
	Processor   ProcessorConfig
}

type SupabaseConfig struct {
	URL        string
	ServiceKey string
	JWTSecret  string
}

// RateLimitConfig applies to the unauthenticated /api/public routes, per client IP.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

type MetricsConfig struct {
	User string
	Pass string
}

type ProcessorConfig struct {
	GRPCAddr     string // where the API dials the processor health service
	HealthAddr   string // where the processor listens
	Workers      int
	QueueSize    int
	PollInterval time.Duration
}

// Load reads .env when present, then the environment, and applies defaults.
func Load() (*Config, error) {
	// A missing .env is the normal case in containers.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		AppURL:      strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		StoreDriver: getEnv("STORE_DRIVER", DriverSupabase),
		Bucket:      getEnv("STORAGE_BUCKET", "testimonials"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Supabase: SupabaseConfig{
			URL:        strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
			ServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
			JWTSecret:  os.Getenv("SUPABASE_JWT_SECRET"),
		},
		Metrics: MetricsConfig{
			User: os.Getenv("METRICS_USER"),
			Pass: os.Getenv("METRICS_PASS"),
		},
		Processor: ProcessorConfig{
			GRPCAddr:   os.Getenv("PROCESSOR_GRPC_ADDR"),
			HealthAddr: getEnv("PROCESSOR_HEALTH_ADDR", ":50051"),
		},
	}

	var err error
	if cfg.RateLimit.PerSecond, err = getFloat("PUBLIC_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = getInt("PUBLIC_RATE_BURST", 30); err != nil {
		return nil, err
	}
	if cfg.Processor.Workers, err = getInt("PROCESSOR_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.Processor.QueueSize, err = getInt("PROCESSOR_QUEUE_SIZE", 100); err != nil {
		return nil, err
	}
	if cfg.Processor.PollInterval, err = getDuration("PROCESSOR_POLL_INTERVAL", 2*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverSupabase:
		var missing []string
		if c.Supabase.URL == "" {
			missing = append(missing, "SUPABASE_URL")
		}
		if c.Supabase.ServiceKey == "" {
			missing = append(missing, "SUPABASE_SERVICE_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.Supabase.JWTSecret == "" {
		return errors.New("SUPABASE_JWT_SECRET is required to verify access tokens")
	}
	if c.Processor.Workers < 1 {
		return errors.New("PROCESSOR_WORKERS must be at least 1")
	}
	return nil
}

// PublicURL returns the submitter-facing URL for a path on the web app.
func (c *Config) PublicURL(path string) string {
	return c.AppURL + "/" + strings.TrimLeft(path, "/")
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
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

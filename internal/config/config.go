package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/farmer-shop/internal/pricing"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	ProductsFile       string
	StaticDir          string
	TaxRate            decimal.Decimal
	VendorName         string
	CORSAllowedOrigins []string
	RedisURL           string
	CatalogCacheTTL    time.Duration
	CatalogURL         string
	InvoiceDir         string
	RateLimitPerMinute int
	BodyLimitBytes     int64
	IdempotencyTTL     time.Duration
	ShutdownTimeout    time.Duration
	Obs                ObsConfig
}

// ObsConfig groups logging, metrics and tracing settings.
type ObsConfig struct {
	LogFormat            string
	LogLevel             string
	EnablePrometheus     bool
	MetricsNamespace     string
	HistogramBuckets     string
	EnableTracing        bool
	OTLPEndpoint         string
	TracingExporter      string
	TracingSamplingRatio float64
	ServiceName          string
	ServiceVersion       string
	EnablePprof          bool
	PprofUser            string
	PprofPass            string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	taxRate, err := pricing.ParseRate(valueOrDefault(k.String("TAX_RATE"), "0.05"))
	if err != nil {
		return nil, fmt.Errorf("TAX_RATE: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "3000"),
		ProductsFile:       valueOrDefault(k.String("PRODUCTS_FILE"), "products.json"),
		StaticDir:          strings.TrimSpace(k.String("STATIC_DIR")),
		TaxRate:            taxRate,
		VendorName:         valueOrDefault(k.String("VENDOR_NAME"), "Farmer Shop"),
		CORSAllowedOrigins: splitAndTrim(valueOrDefault(k.String("CORS_ALLOWED_ORIGINS"), "*")),
		RedisURL:           strings.TrimSpace(k.String("REDIS_URL")),
		CatalogCacheTTL:    parseDuration(k.String("CATALOG_CACHE_TTL"), "1m"),
		CatalogURL:         strings.TrimRight(valueOrDefault(k.String("CATALOG_URL"), "http://localhost:3000"), "/"),
		InvoiceDir:         valueOrDefault(k.String("INVOICE_DIR"), "."),
		RateLimitPerMinute: parseInt(k.String("RATE_LIMIT_PER_MINUTE"), 120),
		BodyLimitBytes:     int64(parseInt(k.String("BODY_LIMIT_BYTES"), 64<<10)),
		IdempotencyTTL:     parseDuration(k.String("IDEMPOTENCY_TTL"), "10m"),
		ShutdownTimeout:    parseDuration(k.String("SHUTDOWN_TIMEOUT"), "10s"),
		Obs: ObsConfig{
			LogFormat:            valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
			LogLevel:             valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
			EnablePrometheus:     parseBoolDefault(k.String("OBS_ENABLE_PROMETHEUS"), true),
			MetricsNamespace:     valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "shop"),
			HistogramBuckets:     k.String("OBS_HISTOGRAM_BUCKETS"),
			EnableTracing:        parseBoolDefault(k.String("OBS_ENABLE_TRACING"), false),
			OTLPEndpoint:         strings.TrimSpace(k.String("OBS_OTLP_ENDPOINT")),
			TracingExporter:      valueOrDefault(k.String("OBS_TRACING_EXPORTER"), "otlp"),
			TracingSamplingRatio: parseFloat(k.String("OBS_TRACING_SAMPLING_RATIO"), 1.0),
			ServiceName:          valueOrDefault(k.String("OBS_SERVICE_NAME"), "farmer-shop"),
			ServiceVersion:       valueOrDefault(k.String("OBS_SERVICE_VERSION"), "dev"),
			EnablePprof:          parseBoolDefault(k.String("OBS_ENABLE_PPROF"), false),
			PprofUser:            strings.TrimSpace(k.String("SECURE_PPROF_BASIC_AUTH_USER")),
			PprofPass:            strings.TrimSpace(k.String("SECURE_PPROF_BASIC_AUTH_PASS")),
		},
	}

	if cfg.RateLimitPerMinute < 0 {
		cfg.RateLimitPerMinute = 0
	}
	if cfg.BodyLimitBytes <= 0 {
		cfg.BodyLimitBytes = 64 << 10
	}
	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "3000"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBoolDefault(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

// MustLoad is Load for entrypoints that cannot start without configuration.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}

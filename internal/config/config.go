package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the admin BFF.
type Config struct {
	Server       ServerConfig  `yaml:"server"`
	Tenants      ServiceConfig `yaml:"tenants"`
	Orders       ServiceConfig `yaml:"orders"`
	Shipping     ServiceConfig `yaml:"shipping"`
	CustomDomain ServiceConfig `yaml:"custom_domain"`
	Settings     ServiceConfig `yaml:"settings"`
	Auth         AuthConfig    `yaml:"auth"`
	Cache        CacheConfig   `yaml:"cache"`
	Audit        AuditConfig   `yaml:"audit"`
	Redis        RedisConfig   `yaml:"redis"`
	CORS         CORSConfig    `yaml:"cors"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection.
func (c ServerConfig) GetHost() string {
	// In a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// ServiceConfig holds the base URL and timeout for one backend service.
type ServiceConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	// MaxRetries applies to idempotent GETs issued by the service client.
	// Proxy forwarding always uses a single attempt regardless of this value.
	MaxRetries int `yaml:"max_retries"`
}

// Timeout returns the configured timeout as a duration.
func (c ServiceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AuthConfig holds JWT verification configuration.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	// DevMode skips token verification and trusts X-User-ID headers.
	DevMode bool `yaml:"dev_mode"`
}

// CacheConfig holds the tenant-slug and settings cache tuning.
type CacheConfig struct {
	SlugTTLSeconds     int `yaml:"slug_ttl_seconds"`
	SlugMaxEntries     int `yaml:"slug_max_entries"`
	SettingsTTLSeconds int `yaml:"settings_ttl_seconds"`
	SettingsMaxEntries int `yaml:"settings_max_entries"`
}

// SlugTTL returns the tenant-slug cache TTL as a duration.
func (c CacheConfig) SlugTTL() time.Duration {
	return time.Duration(c.SlugTTLSeconds) * time.Second
}

// SettingsTTL returns the settings-document cache TTL as a duration.
func (c CacheConfig) SettingsTTL() time.Duration {
	return time.Duration(c.SettingsTTLSeconds) * time.Second
}

// AuditConfig holds the mutation audit-log settings. The audit log is
// optional: with an empty DatabaseURL, entries go nowhere.
type AuditConfig struct {
	Enabled     bool   `yaml:"enabled"`
	DatabaseURL string `yaml:"database_url"`
}

// RedisConfig holds the optional shared settings-cache backend.
type RedisConfig struct {
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// CORSConfig holds allowed browser origins for the dashboard.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads and parses the configuration file, then applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}

	// Hardcoded localhost fallbacks for development; real deployments set
	// the *_SERVICE_URL environment variables.
	applyServiceDefaults(&c.Tenants, "http://localhost:4001")
	applyServiceDefaults(&c.Orders, "http://localhost:4002")
	applyServiceDefaults(&c.Shipping, "http://localhost:4003")
	applyServiceDefaults(&c.CustomDomain, "http://localhost:4004")
	applyServiceDefaults(&c.Settings, "http://localhost:4005")

	if c.Cache.SlugTTLSeconds == 0 {
		c.Cache.SlugTTLSeconds = 60
	}
	if c.Cache.SlugMaxEntries == 0 {
		c.Cache.SlugMaxEntries = 4096
	}
	if c.Cache.SettingsTTLSeconds == 0 {
		c.Cache.SettingsTTLSeconds = 60
	}
	if c.Cache.SettingsMaxEntries == 0 {
		c.Cache.SettingsMaxEntries = 1024
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
}

func applyServiceDefaults(s *ServiceConfig, fallbackURL string) {
	if s.BaseURL == "" {
		s.BaseURL = fallbackURL
	}
	if s.TimeoutSeconds == 0 {
		s.TimeoutSeconds = 15
	}
	if s.MaxRetries == 0 {
		s.MaxRetries = 2
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in deployment.
// A missing config file is not an error: the BFF can run on env vars alone.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cfg = &Config{}
		cfg.applyDefaults()
	}

	// Service URL overrides
	if v := os.Getenv("TENANT_SERVICE_URL"); v != "" {
		cfg.Tenants.BaseURL = v
	}
	if v := os.Getenv("ORDERS_SERVICE_URL"); v != "" {
		cfg.Orders.BaseURL = v
	}
	if v := os.Getenv("SHIPPING_SERVICE_URL"); v != "" {
		cfg.Shipping.BaseURL = v
	}
	if v := os.Getenv("CUSTOM_DOMAIN_SERVICE_URL"); v != "" {
		cfg.CustomDomain.BaseURL = v
	}
	if v := os.Getenv("SETTINGS_SERVICE_URL"); v != "" {
		cfg.Settings.BaseURL = v
	}

	// Auth overrides
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if os.Getenv("DEV_MODE") == "true" || os.Getenv("ENVIRONMENT") == "development" {
		cfg.Auth.DevMode = true
	}

	// Audit log (critical for deployment where config.yaml has local defaults)
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Audit.DatabaseURL = v
		cfg.Audit.Enabled = true
	}

	// Shared settings cache
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
		cfg.Redis.Enabled = true
	}

	return cfg, nil
}

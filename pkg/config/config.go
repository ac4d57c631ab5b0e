package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string          `yaml:"environment" default:"development"`
	Server      ServerConfig    `yaml:"server"`
	Logging     LoggingConfig   `yaml:"logging"`
	CORS        CORSConfig      `yaml:"cors"`
	Auth        AuthConfig      `yaml:"auth"`
	Providers   ProvidersConfig `yaml:"providers"`
	Billing     BillingConfig   `yaml:"billing"`
	Firebase    FirebaseConfig  `yaml:"firebase"`
	Redis       RedisConfig     `yaml:"redis"`
	Kafka       KafkaConfig     `yaml:"kafka"`
	ClickHouse  ClickHouse      `yaml:"clickhouse"`
	Analytics   AnalyticsConfig `yaml:"analytics"`
}

type ServerConfig struct {
	Host            string          `yaml:"host" default:"0.0.0.0"`
	Port            int             `yaml:"port" default:"8080"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" default:"30s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" default:"10s"`
	SlowRequest     time.Duration   `yaml:"slow_request" default:"3s"`
	// TrustedProxies lists the CIDRs allowed to set X-Forwarded-For. Empty
	// means the peer address is the client.
	TrustedProxies  []string        `yaml:"trusted_proxies"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig is a per-client token bucket. Capacity 0 disables it.
type RateLimitConfig struct {
	Capacity     float64 `yaml:"capacity" default:"30"`
	RefillPerSec float64 `yaml:"refill_per_sec" default:"0.5"`
}

type LoggingConfig struct {
	Level            string        `yaml:"level" default:"info"`
	Format           string        `yaml:"format" default:"json"`
	Output           string        `yaml:"output" default:"stdout"`
	CollectTopic     string        `yaml:"collect_topic"`
	CollectInterval  time.Duration `yaml:"collect_interval" default:"30s"`
	CollectThreshold int           `yaml:"collect_threshold" default:"100"`
}

type CORSConfig struct {
	Enforce        bool     `yaml:"enforce"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxAge         int      `yaml:"max_age" default:"86400"`
}

type AuthConfig struct {
	RequireIDToken     bool         `yaml:"require_id_token"`
	// BindCustomTokenUID makes /api/auth/token mint a custom token only for
	// the uid of the caller's ID token.
	BindCustomTokenUID bool         `yaml:"bind_custom_token_uid"`
	Google             GoogleConfig `yaml:"google"`
}

type GoogleConfig struct {
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	RedirectURI  string        `yaml:"redirect_uri"`
	TokenURL     string        `yaml:"token_url" default:"https://oauth2.googleapis.com/token"`
	Timeout      time.Duration `yaml:"timeout" default:"10s"`
}

type ProvidersConfig struct {
	Listings  ListingsProviderConfig  `yaml:"listings"`
	Aggregate AggregateProviderConfig `yaml:"aggregate"`
}

type ListingsProviderConfig struct {
	Enabled    bool          `yaml:"enabled" default:"true"`
	APIKey     string        `yaml:"api_key"`
	BaseURL    string        `yaml:"base_url" default:"https://auto.dev/api"`
	Timeout    time.Duration `yaml:"timeout" default:"5s"`
	StrictMake bool          `yaml:"strict_make" default:"true"`
}

type AggregateProviderConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url" default:"https://marketvalues.vinaudit.com"`
	Timeout time.Duration `yaml:"timeout" default:"5s"`
}

type BillingConfig struct {
	SecretKey       string        `yaml:"secret_key"`
	WebhookSecret   string        `yaml:"webhook_secret"`
	PriceID         string        `yaml:"price_id" default:"price_1N9ZQaL5pL8dc9xK0WXXEKY9"`
	BaseURL         string        `yaml:"base_url"`
	PortalReturnURL string        `yaml:"portal_return_url"`
	PriceCacheTTL   time.Duration `yaml:"price_cache_ttl" default:"10m"`
	WebhookDedupTTL time.Duration `yaml:"webhook_dedup_ttl" default:"24h"`
}

type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	ClientEmail     string `yaml:"client_email"`
	PrivateKey      string `yaml:"private_key"`
	CredentialsFile string `yaml:"credentials_file"`
}

type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Host     string        `yaml:"host" default:"localhost"`
	Port     int           `yaml:"port" default:"6379"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix" default:"raptor"`
	PoolSize int           `yaml:"pool_size" default:"10"`
	// LocalTTL caps how long an entry is served from process memory before
	// Redis is consulted again.
	LocalTTL time.Duration `yaml:"local_ttl" default:"1m"`
}

type KafkaConfig struct {
	Brokers      []string      `yaml:"brokers"`
	LookupTopic  string        `yaml:"lookup_topic" default:"raptor.valuation.lookups"`
	RequiredAcks int           `yaml:"required_acks" default:"-1"`
	Compression  string        `yaml:"compression" default:"snappy"`
	Producer     KafkaProducer `yaml:"producer"`
	Consumer     KafkaConsumer `yaml:"consumer"`
}

type KafkaProducer struct {
	MaxAttempts  int           `yaml:"max_attempts" default:"3"`
	Linger       time.Duration `yaml:"linger" default:"500ms"`
	BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
	BatchSize    int           `yaml:"batch_size" default:"100"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
	Async        bool          `yaml:"async" default:"true"`
	AutoCreate   bool          `yaml:"auto_create_topics"`
}

type KafkaConsumer struct {
	GroupID     string        `yaml:"group_id" default:"raptor-lookups"`
	OffsetReset string        `yaml:"auto_offset_reset" default:"earliest"`
	Workers     int           `yaml:"workers" default:"2"`
	BufferSize  int           `yaml:"buffer_size" default:"256"`
	RetryMax    int           `yaml:"retry_max" default:"3"`
	BackoffMin  time.Duration `yaml:"backoff_min" default:"100ms"`
	BackoffMax  time.Duration `yaml:"backoff_max" default:"5s"`
	DLQTopic    string        `yaml:"dlq_topic"`
	MinBytes    int           `yaml:"min_bytes" default:"1"`
	MaxBytes    int           `yaml:"max_bytes" default:"10485760"`
}

type ClickHouse struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port" default:"9000"`
	Database         string        `yaml:"database" default:"raptor"`
	User             string        `yaml:"user" default:"default"`
	Password         string        `yaml:"password"`
	UseHTTP          bool          `yaml:"use_http"`
	AsyncInsert      bool          `yaml:"async_insert" default:"true"`
	WaitForAsync     bool          `yaml:"wait_for_async_insert"`
	DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
	ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout     time.Duration `yaml:"write_timeout" default:"10s"`
	MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"30s"`
}

type AnalyticsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Table   string `yaml:"table" default:"valuation_lookups"`
}

// Load reads a YAML file on top of the struct defaults and validates it.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML on top of the struct defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Default returns a config populated only from `default` tags.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides secrets and endpoints
// with environment variables.
func LoadWithEnv(path string) (*Config, error) {
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

// ApplyEnv overrides fields from the given lookup (os.Getenv in production).
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&c.Environment, "APP_ENV")
	set(&c.Providers.Listings.APIKey, "AUTO_DEV_API_KEY")
	set(&c.Providers.Aggregate.APIKey, "VINAUDIT_API_KEY")
	set(&c.Auth.Google.ClientID, "GOOGLE_CLIENT_ID")
	set(&c.Auth.Google.ClientSecret, "GOOGLE_CLIENT_SECRET")
	set(&c.Auth.Google.RedirectURI, "GOOGLE_REDIRECT_URI")
	set(&c.Billing.SecretKey, "STRIPE_SECRET_KEY")
	set(&c.Billing.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	set(&c.Billing.BaseURL, "BASE_URL")
	set(&c.Firebase.ProjectID, "FIREBASE_PROJECT_ID")
	set(&c.Firebase.ClientEmail, "FIREBASE_CLIENT_EMAIL")
	set(&c.Firebase.CredentialsFile, "FIREBASE_CREDENTIALS_FILE")
	if v := getenv("FIREBASE_PRIVATE_KEY"); v != "" {
		// keys pasted into env files carry escaped newlines
		c.Firebase.PrivateKey = strings.ReplaceAll(v, `\n`, "\n")
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Redis.Host = host
		if n, err := strconv.Atoi(port); ok && err == nil {
			c.Redis.Port = n
		}
		c.Redis.Enabled = true
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORS.AllowedOrigins = splitList(v)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks structural problems that make the process unable to start.
// Missing provider credentials are reported by Warnings instead.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Providers.Listings.Timeout <= 0 || c.Providers.Aggregate.Timeout <= 0 {
		return fmt.Errorf("providers timeouts must be positive")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be 'json' or 'console', got '%s'", c.Logging.Format)
	}
	if c.CORS.Enforce && len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("cors.allowed_origins cannot be empty when cors.enforce is set")
	}
	if c.Analytics.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers is required when analytics is enabled")
		}
		if c.ClickHouse.Host == "" {
			return fmt.Errorf("clickhouse.host is required when analytics is enabled")
		}
	}
	if c.Logging.CollectTopic != "" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when logging.collect_topic is set")
	}
	return nil
}

// Warnings lists missing credentials. Requests that need them fail with a
// configuration error instead of blocking startup.
func (c *Config) Warnings() []string {
	var w []string
	if c.Providers.Listings.Enabled && c.Providers.Listings.APIKey == "" {
		w = append(w, "providers.listings is enabled but api_key is not set")
	}
	if c.Providers.Aggregate.APIKey == "" {
		w = append(w, "providers.aggregate.api_key is not set")
	}
	if c.Auth.Google.ClientID == "" || c.Auth.Google.ClientSecret == "" {
		w = append(w, "auth.google client credentials are not set")
	}
	if c.Billing.SecretKey == "" || c.Billing.WebhookSecret == "" {
		w = append(w, "billing secret_key or webhook_secret is not set")
	}
	if c.Billing.BaseURL == "" {
		w = append(w, "billing.base_url is not set")
	}
	if c.Firebase.ProjectID == "" {
		w = append(w, "firebase.project_id is not set")
	}
	return w
}

// KafkaEnabled reports whether any component needs a producer.
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0 && (c.Analytics.Enabled || c.Logging.CollectTopic != "")
}

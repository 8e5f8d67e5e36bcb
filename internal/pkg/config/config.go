package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment. Settings that differ per deployment
// (port, database, secrets) are required; the rest carry defaults. Redis,
// object storage and Kafka stay off while their address is empty.
type Config struct {
	Server  ServerConfig
	App     AppConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	Redis   RedisConfig
	Storage StorageConfig
	Kafka   KafkaConfig
	Outbox  OutboxConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type AppConfig struct {
	// Applied to naive booking timestamps (no offset in the request)
	TimeZone       string `envconfig:"APP_TIME_ZONE" default:"Asia/Kolkata"`
	PreventOverlap bool   `envconfig:"BOOKING_PREVENT_OVERLAP" default:"false"`
	Currency       string `envconfig:"APP_CURRENCY" default:"INR"`
}

type DBConfig struct {
	Host     string `envconfig:"PGHOST" default:"localhost"`
	Port     string `envconfig:"PGPORT" default:"5432"`
	User     string `envconfig:"PGUSER" required:"true"`
	Password string `envconfig:"PGPASSWORD" required:"true"`
	DBName   string `envconfig:"PGDATABASE" default:"rental"`
	SSLMode  string `envconfig:"PGSSLMODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
	AddSource      bool   `envconfig:"LOG_ADD_SOURCE" default:"false"`
}

type JWTConfig struct {
	Secret     string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer     string        `envconfig:"JWT_ISSUER" default:"vehicle-rental"`
	AccessTTL  time.Duration `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
	RefreshTTL time.Duration `envconfig:"JWT_REFRESH_TOKEN_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type RedisConfig struct {
	Addr        string        `envconfig:"REDIS_ADDR" default:""`
	Password    string        `envconfig:"REDIS_PASSWORD" default:""`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	CatalogTTL  time.Duration `envconfig:"REDIS_CATALOG_TTL" default:"5m"`
	DialTimeout time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"3s"`
}

type StorageConfig struct {
	Endpoint      string `envconfig:"STORAGE_ENDPOINT" default:""`
	AccessKey     string `envconfig:"STORAGE_ACCESS_KEY" default:""`
	SecretKey     string `envconfig:"STORAGE_SECRET_KEY" default:""`
	Bucket        string `envconfig:"STORAGE_BUCKET" default:"vehicles"`
	UseSSL        bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicBaseURL string `envconfig:"STORAGE_PUBLIC_BASE_URL" default:""`
	MaxImageBytes int64  `envconfig:"STORAGE_MAX_IMAGE_BYTES" default:"10485760"`
}

type KafkaConfig struct {
	Brokers     []string `envconfig:"KAFKA_BROKERS" default:""`
	ClientID    string   `envconfig:"KAFKA_CLIENT_ID" default:"vehicle-rental"`
	TopicPrefix string   `envconfig:"KAFKA_TOPIC_PREFIX" default:""`
	Version     string   `envconfig:"KAFKA_VERSION" default:"3.6.0"`
}

type OutboxConfig struct {
	Enabled   bool          `envconfig:"OUTBOX_ENABLED" default:"true"`
	Interval  time.Duration `envconfig:"OUTBOX_INTERVAL" default:"1s"`
	BatchSize int32         `envconfig:"OUTBOX_BATCH_SIZE" default:"20"`
	MaxTries  int32         `envconfig:"OUTBOX_MAX_TRIES" default:"8"`
}

// BuildDSN renders a postgres URL; credentials are escaped.
func (c DBConfig) BuildDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	q.Set("timezone", c.TimeZone)
	u.RawQuery = q.Encode()
	return u.String()
}

func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c KafkaConfig) Enabled() bool {
	for _, b := range c.Brokers {
		if b != "" {
			return true
		}
	}
	return false
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations envconfig cannot express.
func (c Config) Validate() error {
	if _, err := time.LoadLocation(c.App.TimeZone); err != nil {
		return fmt.Errorf("APP_TIME_ZONE: %w", err)
	}
	if len(c.JWT.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 bytes")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL < c.JWT.AccessTTL {
		return fmt.Errorf("JWT token durations: access %s, refresh %s", c.JWT.AccessTTL, c.JWT.RefreshTTL)
	}
	if c.Storage.MaxImageBytes <= 0 {
		return fmt.Errorf("STORAGE_MAX_IMAGE_BYTES must be positive")
	}
	if c.Outbox.Enabled && (c.Outbox.BatchSize <= 0 || c.Outbox.MaxTries <= 0) {
		return fmt.Errorf("outbox batch size and max tries must be positive")
	}
	return nil
}

// NewTestConfig leaves DB empty; tests point it at their own database.
func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: time.Second,
		},
		App: AppConfig{
			TimeZone: "UTC",
			Currency: "INR",
		},
		Log: LogConfig{
			Level:      "error",
			TimeZone:   "UTC",
			TimeFormat: time.DateTime,
		},
		JWT: JWTConfig{
			Secret:     "test-secret-key-for-e2e-only",
			Issuer:     "vehicle-rental-test",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 24 * time.Hour,
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Storage: StorageConfig{
			Bucket:        "vehicles",
			MaxImageBytes: 10 << 20,
		},
		Outbox: OutboxConfig{
			Enabled:   false,
			Interval:  time.Second,
			BatchSize: 20,
			MaxTries:  8,
		},
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreDynamo = "dynamo"
	StoreMemory = "memory"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"3000"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	Debug   bool   `env:"DEBUG" envDefault:"false"`

	// StoreDriver selects the persistence backend: "dynamo" or "memory".
	StoreDriver string `env:"STORE_DRIVER" envDefault:"dynamo"`

	AWSRegion      string       `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSEndpointURL string       `env:"AWS_ENDPOINT_URL"` // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string       `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey   string       `env:"AWS_SECRET_ACCESS_KEY"`
	DynamoTables   DynamoTables `envPrefix:"DYNAMO_TABLE_"`

	S3BucketName   string        `env:"S3_BUCKET_NAME" envDefault:"vendor-documents"`
	DocumentURLTTL time.Duration `env:"DOCUMENT_URL_TTL" envDefault:"15m"`

	JWTPrivateKeyPath string `env:"JWT_PRIVATE_KEY_PATH" envDefault:"./private_key.pem"`
	JWTPublicKeyPath  string `env:"JWT_PUBLIC_KEY_PATH" envDefault:"./public_key.pem"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"localhost"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"1025"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"noreply@vendorapp.local"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPTLS      string `env:"SMTP_TLS" envDefault:"opportunistic"` // opportunistic | mandatory | none

	SNSRegion              string `env:"SNS_REGION" envDefault:"us-east-1"`
	DocumentEventsTopicARN string `env:"DOCUMENT_EVENTS_TOPIC_ARN"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-Ip.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users     string `env:"USERS" envDefault:"users"`
	Sessions  string `env:"SESSIONS" envDefault:"sessions"`
	OTPs      string `env:"OTPS" envDefault:"otps"`
	Documents string `env:"DOCUMENTS" envDefault:"documents"`
	Wallets   string `env:"WALLETS" envDefault:"wallets"`
}

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.StoreDriver {
	case StoreDynamo, StoreMemory:
	default:
		return nil, fmt.Errorf("parse env: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

// ExposeErrorDetails reports whether 500 responses may carry the underlying error text.
func (c *Config) ExposeErrorDetails() bool { return c.Debug || !c.IsProduction() }

package config

import (
	"time"

	"github.com/acadium/dashboard/internal/client/avatar"
	"github.com/acadium/dashboard/internal/client/cache"
)

// Config holds runtime settings for the Acadium dashboard client.
//
// Units: CacheTTL and AvatarURLTTL are time.Duration values.
type Config struct {
	StorePath   string `envconfig:"STORE_PATH"`
	PostgresDSN string `envconfig:"POSTGRES_DSN"`
	JWTSecret   string `envconfig:"JWT_SECRET"`
	LogLevel    string `envconfig:"LOG_LEVEL"`

	// RemoteMigrate applies the bundled Postgres schema at startup. Only for
	// local and test databases.
	RemoteMigrate bool `envconfig:"REMOTE_MIGRATE"`

	CacheTTL time.Duration `envconfig:"CACHE_TTL"`

	S3Region       string        `envconfig:"S3_REGION"`
	S3Bucket       string        `envconfig:"S3_BUCKET"`
	S3BaseEndpoint string        `envconfig:"S3_BASE_ENDPOINT"`
	S3AccessKey    string        `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey    string        `envconfig:"S3_SECRET_KEY"`
	AvatarURLTTL   time.Duration `envconfig:"AVATAR_URL_TTL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorePath = ".acadium/acadium.db"
	c.LogLevel = "info"
	c.CacheTTL = cache.DefaultTTL
	c.S3Region = "us-east-1"
	c.AvatarURLTTL = avatar.DefaultURLTTL
}

// Avatar returns the avatar resolver settings.
func (c *Config) Avatar() avatar.Config {
	return avatar.Config{
		Region:       c.S3Region,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		URLTTL:       c.AvatarURLTTL,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

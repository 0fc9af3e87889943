package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/acadium/dashboard/internal/flagx"
	"github.com/acadium/dashboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify durations either as
// strings like "30m" or as integer nanoseconds. Pointer fields distinguish
// "absent" from "empty"; only present keys override the running Config.
type JsonConfig struct {
	StorePath      *string         `json:"store_path"`
	PostgresDSN    *string         `json:"postgres_dsn"`
	JWTSecret      *string         `json:"jwt_secret"`
	LogLevel       *string         `json:"log_level"`
	RemoteMigrate  *bool           `json:"remote_migrate"`
	CacheTTL       *timex.Duration `json:"cache_ttl"`
	S3Region       *string         `json:"s3_region"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3BaseEndpoint *string         `json:"s3_base_endpoint"`
	S3AccessKey    *string         `json:"s3_access_key"`
	S3SecretKey    *string         `json:"s3_secret_key"`
	AvatarURLTTL   *timex.Duration `json:"avatar_url_ttl"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.StorePath, jc.StorePath)
	setString(&cfg.PostgresDSN, jc.PostgresDSN)
	setString(&cfg.JWTSecret, jc.JWTSecret)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.RemoteMigrate != nil {
		cfg.RemoteMigrate = *jc.RemoteMigrate
	}
	setDuration(&cfg.CacheTTL, jc.CacheTTL)
	setDuration(&cfg.AvatarURLTTL, jc.AvatarURLTTL)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}

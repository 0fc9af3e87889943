// Package config loads runtime configuration for the Acadium dashboard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with ACADIUM_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string     local store path
//	-d string     Postgres DSN of the remote service
//	-t duration   cache validity window
//	-l string     log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for durations, so values can be either
// strings like "30m" or integer nanoseconds:
//
//	{
//	  "store_path": ".acadium/acadium.db",
//	  "postgres_dsn": "postgres://acadium@localhost:5432/acadium",
//	  "jwt_secret": "change-me",
//	  "cache_ttl": "30m",
//	  "s3_bucket": "avatars",
//	  "s3_base_endpoint": "http://localhost:9000",
//	  "avatar_url_ttl": "15m"
//	}
//
// # Environment
//
// ACADIUM_STORE_PATH, ACADIUM_POSTGRES_DSN, ACADIUM_JWT_SECRET,
// ACADIUM_LOG_LEVEL, ACADIUM_REMOTE_MIGRATE, ACADIUM_CACHE_TTL, ACADIUM_S3_REGION, ACADIUM_S3_BUCKET,
// ACADIUM_S3_BASE_ENDPOINT, ACADIUM_S3_ACCESS_KEY, ACADIUM_S3_SECRET_KEY,
// ACADIUM_AVATAR_URL_TTL.
package config

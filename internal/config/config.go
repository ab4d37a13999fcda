package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/spf13/viper"
)

const (
	defaultSQLiteDSN  = "tapcard.db"
	sessionSecretSize = 32
)

// RateLimitConfig is how many requests are allowed within an interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// AppConfig holds the settings needed to run the card service.
type AppConfig struct {
	ListenAddr       string
	Port             string
	GinMode          string
	DBDriver         string
	DatabaseDSN      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	CardCacheTTL     time.Duration
	PublicBaseURL    string
	SessionSecret    string
	LogLevel         string
	PhoneRegion      string
	VCardRateLimit   RateLimitConfig
	AnalyticsSalt    string
	AnalyticsTimeout time.Duration

	// SessionSecretGenerated is set when SESSION_SECRET was empty and a
	// random per-process secret was used. Sessions do not survive a restart.
	SessionSecretGenerated bool
}

// Load reads the configuration from the environment, applying defaults for
// anything unset.
func Load() (AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	if err := bindEnv(v); err != nil {
		return AppConfig{}, fmt.Errorf("bind env: %w", err)
	}

	port := strings.TrimSpace(v.GetString("port"))
	listenAddr := strings.TrimSpace(v.GetString("listen_addr"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	rl, err := parseRateLimit(v.GetString("vcard_rate_limit"))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid VCARD_RATE_LIMIT value: %w", err)
	}

	cfg := AppConfig{
		ListenAddr:       listenAddr,
		Port:             port,
		GinMode:          strings.TrimSpace(v.GetString("gin_mode")),
		DBDriver:         strings.ToLower(strings.TrimSpace(v.GetString("db_driver"))),
		DatabaseDSN:      strings.TrimSpace(v.GetString("database_dsn")),
		RedisAddr:        strings.TrimSpace(v.GetString("redis_addr")),
		RedisPassword:    v.GetString("redis_password"),
		RedisDB:          v.GetInt("redis_db"),
		CardCacheTTL:     v.GetDuration("card_cache_ttl"),
		PublicBaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString("public_base_url")), "/"),
		SessionSecret:    strings.TrimSpace(v.GetString("session_secret")),
		LogLevel:         strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		PhoneRegion:      strings.ToUpper(strings.TrimSpace(v.GetString("phone_region"))),
		VCardRateLimit:   rl,
		AnalyticsSalt:    v.GetString("analytics_salt"),
		AnalyticsTimeout: v.GetDuration("analytics_timeout"),
	}

	if cfg.DBDriver == "sqlite" && cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = defaultSQLiteDSN
	}

	if cfg.SessionSecret == "" {
		key := securecookie.GenerateRandomKey(sessionSecretSize)
		if key == nil {
			return AppConfig{}, errors.New("generate session secret: no entropy available")
		}
		cfg.SessionSecret = string(key)
		cfg.SessionSecretGenerated = true
	}

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// CacheEnabled reports whether a redis address is configured.
func (c AppConfig) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("redis_db", 0)
	v.SetDefault("card_cache_ttl", "5m")
	v.SetDefault("public_base_url", "http://localhost:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("phone_region", "US")
	v.SetDefault("vcard_rate_limit", "30/min")
	v.SetDefault("analytics_salt", "tapcard")
	v.SetDefault("analytics_timeout", "5s")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"port":              "PORT",
		"listen_addr":       "LISTEN_ADDR",
		"gin_mode":          "GIN_MODE",
		"db_driver":         "DB_DRIVER",
		"database_dsn":      "DATABASE_DSN",
		"redis_addr":        "REDIS_ADDR",
		"redis_password":    "REDIS_PASSWORD",
		"redis_db":          "REDIS_DB",
		"card_cache_ttl":    "CARD_CACHE_TTL",
		"public_base_url":   "PUBLIC_BASE_URL",
		"session_secret":    "SESSION_SECRET",
		"log_level":         "LOG_LEVEL",
		"phone_region":      "PHONE_REGION",
		"vcard_rate_limit":  "VCARD_RATE_LIMIT",
		"analytics_salt":    "ANALYTICS_SALT",
		"analytics_timeout": "ANALYTICS_TIMEOUT",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}
	return nil
}

func validate(cfg AppConfig) error {
	if cfg.Port == "" {
		return errors.New("port is required")
	}
	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DBDriver == "postgres" && cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required for postgres")
	}
	if cfg.SessionSecret == "" {
		return errors.New("session secret is required")
	}
	if cfg.AnalyticsTimeout <= 0 {
		return errors.New("analytics timeout must be positive")
	}
	return nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Stewz00/rpmwiki-auth/internal/apperrors"
	"github.com/Stewz00/rpmwiki-auth/internal/ratelimit"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	TokenPrivateKey string
	DbURL           string
	LogLevel        string
	RegisterTimeout time.Duration
	RateLimit       ratelimit.Config
	SweepInterval   time.Duration
	AllowedOrigins  []string
	TrustProxy      bool
	DbMaxConns      int
	DbMinConns      int
}

// Load reads the configuration from a .env file or environment variables and returns a Config struct.
// It returns an error wrapping apperrors.ErrConfiguration if a required variable is missing or malformed.
func Load() (*Config, error) {
	// Try to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getenv("3000", "PORT"),
		TokenPrivateKey: getenv("", "TOKEN_PRIVATE_KEY", "tokenPrivateKey"),
		LogLevel:        getenv("info", "LOG_LEVEL"),
		AllowedOrigins:  splitList(getenv("*", "CORS_ALLOWED_ORIGINS")),
	}

	if cfg.TokenPrivateKey == "" {
		return nil, fmt.Errorf("missing required environment variable TOKEN_PRIVATE_KEY: %w", apperrors.ErrConfiguration)
	}

	dbURL, err := databaseURL()
	if err != nil {
		return nil, err
	}
	cfg.DbURL = dbURL

	if cfg.RegisterTimeout, err = duration("REGISTER_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Window, err = duration("RATE_LIMIT_WINDOW", ratelimit.DefaultConfig.Window); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Block, err = duration("RATE_LIMIT_BLOCK", ratelimit.DefaultConfig.Block); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = duration("RATE_LIMIT_SWEEP", time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Points, err = integer("RATE_LIMIT_POINTS", ratelimit.DefaultConfig.Points); err != nil {
		return nil, err
	}
	if cfg.TrustProxy, err = boolean("TRUST_PROXY", false); err != nil {
		return nil, err
	}
	if cfg.DbMaxConns, err = integer("DB_MAX_CONNS", 25); err != nil {
		return nil, err
	}
	if cfg.DbMinConns, err = integer("DB_MIN_CONNS", 5); err != nil {
		return nil, err
	}
	if cfg.DbMinConns > cfg.DbMaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNS=%d exceeds DB_MAX_CONNS=%d: %w", cfg.DbMinConns, cfg.DbMaxConns, apperrors.ErrConfiguration)
	}

	return cfg, nil
}

// databaseURL prefers DATABASE_URL and otherwise assembles one from parts.
func databaseURL() (string, error) {
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return u, nil
	}

	host := getenv("", "DB_HOST", "dataBaseHost")
	if host == "" {
		return "", fmt.Errorf("missing required environment variable DATABASE_URL or DB_HOST: %w", apperrors.ErrConfiguration)
	}
	port := getenv("5432", "DB_PORT", "dataBasePort")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getenv("postgres", "DB_USER"), getenv("", "DB_PASSWORD", "dataBasePassword")),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + getenv("data", "DB_NAME"),
		RawQuery: url.Values{"sslmode": {getenv("disable", "DB_SSLMODE")}}.Encode(),
	}
	return u.String(), nil
}

// getenv returns the first non-empty variable among keys, or def.
func getenv(def string, keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, v, apperrors.ErrConfiguration)
	}
	return d, nil
}

func integer(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, v, apperrors.ErrConfiguration)
	}
	return n, nil
}

func boolean(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s=%q: %w", key, v, apperrors.ErrConfiguration)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	DatabaseURL string
	CORSOrigins []string
	Redis       RedisConfig
	Auth        AuthConfig
	Peta        PetaConfig
	RateLimit   RateLimitConfig

	// TrustedProxies are the peers whose X-Forwarded-For and X-Real-IP
	// headers are believed. Empty means the socket peer is always the client.
	TrustedProxies []netip.Prefix
}

// RedisConfig configures the optional Redis connection. An empty URL
// disables Redis and the in-memory revocation list is used instead.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Issuer    string
}

// PetaConfig bounds the map enrichment run.
type PetaConfig struct {
	Timeout time.Duration
}

// RateLimitConfig throttles the login and create-admin endpoints per client IP.
type RateLimitConfig struct {
	Disabled bool
	Limit    int
	Window   time.Duration
}

const (
	defaultPort      = "5000"
	defaultTokenTTL  = 24 * time.Hour
	defaultPetaLimit = 8 * time.Second
	devJWTSecret     = "dev-secret-key-change-in-production"
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ADDR")
	if addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = defaultPort
		}
		addr = ":" + port
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		// Development default, override in production
		jwtSecret = devJWTSecret
	}

	return Server{
		Addr:           addr,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		CORSOrigins:    splitList(os.Getenv("CORS_ORIGINS")),
		TrustedProxies: prefixList(os.Getenv("TRUSTED_PROXIES")),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: intOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret: jwtSecret,
			TokenTTL:  durationOr("JWT_EXPIRES_IN", defaultTokenTTL),
			Issuer:    "backend-sidokepung",
		},
		Peta: PetaConfig{
			Timeout: durationOr("PETA_TIMEOUT", defaultPetaLimit),
		},
		RateLimit: RateLimitConfig{
			Disabled: os.Getenv("RATE_LIMIT_DISABLED") == "true",
			Limit:    intOr("RATE_LIMIT_AUTH", 10),
			Window:   durationOr("RATE_LIMIT_WINDOW", time.Minute),
		},
	}
}

// UsesDevSecret reports whether the development signing key is in effect.
func (s Server) UsesDevSecret() bool {
	return s.Auth.JWTSecret == devJWTSecret
}

func splitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// prefixList reads CIDRs or bare addresses; entries that parse as neither
// are dropped.
func prefixList(v string) []netip.Prefix {
	var out []netip.Prefix
	for _, item := range splitList(v) {
		if p, err := netip.ParsePrefix(item); err == nil {
			out = append(out, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(item); err == nil {
			out = append(out, netip.PrefixFrom(a.Unmap(), a.Unmap().BitLen()))
		}
	}
	return out
}

func intOr(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

// durationOr accepts Go durations ("90s") and the "<n>h"/"<n>d" shorthand
// used for JWT_EXPIRES_IN ("24h", "1d").
func durationOr(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if days, ok := strings.CutSuffix(v, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	return fallback
}

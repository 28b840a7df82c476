package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends accepted by CONFESSIO_STORE_BACKEND.
const (
	StoreBadger = "badger"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per request deadline for non-streaming routes (ex: 90s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Persistence
	StoreBackend string // "badger" | "redis" | "memory"
	DataDir      string // badger directory

	// Generation backend
	APIKey         string // empty => unconfigured backend, every call fails with a configuration error
	ChatModel      string // model used by chat sessions and generated studies
	RetrievalModel string // model used for verbatim quotations
	ContentModel   string // model used for structured search and daily content

	// Catalog
	CatalogFile           string        // optional YAML override of the embedded catalog
	CatalogReloadInterval time.Duration // interval to reload the catalog (default: 24h)
	WatchCatalog          bool          // reload on file change when CatalogFile is set

	// Chat, caches
	ChatSessionTTL time.Duration // idle chat sessions are dropped after this
	ChatGCInterval time.Duration // interval between chat session sweeps
	DailyCacheTTL  time.Duration // lifetime of cached devotional and study entries
	Timezone       string        // zone used to compute the local date of daily content

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Access restrictions
	AllowedHosts []string // optional, restrict ops routes to specific Host headers
	AllowedCIDRS []string // optional, restrict ops routes to specific IP (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // allowed browser origins for /api
	PublicURL    string   // base of share links (ex: "https://study.example.com/")

	// Rate limiting of generation routes, keyed by client IP
	RateLimitPerMin int
	RateLimitBurst  int
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("CONFESSIO_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("CONFESSIO_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("CONFESSIO_REQUEST_TIMEOUT", 90*time.Second),

		// Logging
		LogLevel:  getenv("CONFESSIO_LOG_LEVEL", "info"),
		PrettyLog: mustBool("CONFESSIO_PRETTY_LOG", true),

		// Persistence
		StoreBackend: strings.ToLower(getenv("CONFESSIO_STORE_BACKEND", StoreBadger)),
		DataDir:      getenv("CONFESSIO_DATA_DIR", "/app/data"),

		// Generation backend
		APIKey:         getenvAny([]string{"GEMINI_API_KEY", "API_KEY"}, ""),
		ChatModel:      getenv("CONFESSIO_CHAT_MODEL", "gemini-2.5-flash"),
		RetrievalModel: getenv("CONFESSIO_RETRIEVAL_MODEL", "gemini-3.1-pro-preview"),
		ContentModel:   getenv("CONFESSIO_CONTENT_MODEL", "gemini-2.5-flash"),

		// Catalog
		CatalogFile:           getenv("CONFESSIO_CATALOG_FILE", ""),
		CatalogReloadInterval: mustDuration("CONFESSIO_CATALOG_RELOAD_INTERVAL", 24*time.Hour),
		WatchCatalog:          mustBool("CONFESSIO_WATCH_CATALOG", true),

		ChatSessionTTL: mustDuration("CONFESSIO_CHAT_SESSION_TTL", 2*time.Hour),
		ChatGCInterval: mustDuration("CONFESSIO_CHAT_GC_INTERVAL", 10*time.Minute),
		DailyCacheTTL:  mustDuration("CONFESSIO_DAILY_CACHE_TTL", 48*time.Hour),
		Timezone:       getenv("CONFESSIO_TIMEZONE", "Local"),

		// Redis settings
		RedisAddr:             getenv("CONFESSIO_REDIS_ADDR", ""),
		RedisUser:             getenv("CONFESSIO_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("CONFESSIO_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("CONFESSIO_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("CONFESSIO_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("CONFESSIO_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("CONFESSIO_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("CONFESSIO_TRUST_PROXY", true),
		CORSOrigins:  splitAndTrim(getenv("CONFESSIO_CORS_ORIGINS", "*")),
		PublicURL:    getenv("CONFESSIO_PUBLIC_URL", "http://localhost:8080/"),

		RateLimitPerMin: getenvInt("CONFESSIO_RATE_LIMIT_PER_MIN", 60),
		RateLimitBurst:  getenvInt("CONFESSIO_RATE_LIMIT_BURST", 20),
	}

	switch cfg.StoreBackend {
	case StoreBadger, StoreMemory:
	case StoreRedis:
		if cfg.RedisAddr == "" {
			panic("❌ FATAL: CONFESSIO_REDIS_ADDR is required when CONFESSIO_STORE_BACKEND=redis")
		}
		if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
			panic("❌ FATAL: CONFESSIO_REDIS_PASSWORD is required when CONFESSIO_REDIS_PASSWORD_REQUIRED=true")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: Unknown store backend %q (want badger, redis or memory)", cfg.StoreBackend))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	if cp.APIKey != "" {
		cp.APIKey = "***REDACTED***"
	}
	return cp
}

// Location resolves Timezone, falling back to the process zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvAny returns the first non empty variable among keys.
func getenvAny(keys []string, def string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

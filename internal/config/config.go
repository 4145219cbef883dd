package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Authentication mode constants
const (
	AuthModeLocal = "local"
	AuthModeIMAP  = "imap"
	AuthModePOP3  = "pop3"
	AuthModeLDAP  = "ldap"
	AuthModeNone  = "none"
)

type Config struct {
	// Server settings
	ServerAddr string
	BaseURL    string

	// Session settings
	SessionSecret string

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string // Database connection string (DSN or path)

	// Authentication
	AuthMode string // "local", "imap", "pop3", "ldap" or "none"

	// Delay applied before answering a failed local-database attempt.
	// Equalizes "unknown user" and "wrong password" timing and slows
	// sequential brute-force probing.
	AuthFailureDelay time.Duration

	// Timeout applied to remote dials (IMAP, POP3, LDAP)
	RemoteTimeout time.Duration

	// IMAP authentication backend
	IMAPServer string
	IMAPPort   int
	IMAPTLS    bool

	// POP3 authentication backend
	POP3Server string
	POP3Port   int
	POP3TLS    bool

	// LDAP authentication backend
	LDAPServer       string
	LDAPPort         int
	LDAPTLS          bool
	LDAPBaseDN       string
	LDAPUIDAttribute string

	// Metrics
	MetricsEnabled   bool
	MetricsAuthToken string
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	// Determine database driver and DSN
	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", getEnv("DATABASE_PATH", "cypht.db"))
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		ServerAddr:     getEnv("SERVER_ADDR", ":8080"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		DatabaseDriver: driver,
		DatabaseDSN:    dsn,

		// Authentication
		AuthMode:         getEnv("AUTH_MODE", AuthModeLocal),
		AuthFailureDelay: getEnvDuration("AUTH_FAILURE_DELAY", 2*time.Second),
		RemoteTimeout:    getEnvDuration("REMOTE_TIMEOUT", 10*time.Second),

		// IMAP authentication backend
		IMAPServer: getEnv("IMAP_AUTH_SERVER", ""),
		IMAPPort:   getEnvInt("IMAP_AUTH_PORT", 0),
		IMAPTLS:    getEnvBool("IMAP_AUTH_TLS", false),

		// POP3 authentication backend
		POP3Server: getEnv("POP3_AUTH_SERVER", ""),
		POP3Port:   getEnvInt("POP3_AUTH_PORT", 0),
		POP3TLS:    getEnvBool("POP3_AUTH_TLS", false),

		// LDAP authentication backend
		LDAPServer:       getEnv("LDAP_AUTH_SERVER", ""),
		LDAPPort:         getEnvInt("LDAP_AUTH_PORT", 0),
		LDAPTLS:          getEnvBool("LDAP_AUTH_TLS", false),
		LDAPBaseDN:       getEnv("LDAP_AUTH_BASE_DN", ""),
		LDAPUIDAttribute: getEnv("LDAP_AUTH_UID_ATTRIBUTE", "uid"),

		// Metrics
		MetricsEnabled:   getEnvBool("METRICS_ENABLED", true),
		MetricsAuthToken: getEnv("METRICS_AUTH_TOKEN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// ValidAuthModes returns the backend mode names accepted in AUTH_MODE.
func ValidAuthModes() []string {
	return []string{AuthModeLocal, AuthModeIMAP, AuthModePOP3, AuthModeLDAP, AuthModeNone}
}

// IsValidAuthMode reports whether mode names a known backend.
func IsValidAuthMode(mode string) bool {
	for _, m := range ValidAuthModes() {
		if strings.EqualFold(mode, m) {
			return true
		}
	}
	return false
}

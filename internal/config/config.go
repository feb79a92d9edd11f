package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time expresses pool lifetimes
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Required values are enforced at startup; the
// process exits when one is missing rather than limping along half-configured.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign admin JWTs
	AccessTTLMin int    // admin access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for admin password hashing
	SMTP         SMTPConfig
	Pool         PoolConfig
}

// PoolConfig tunes the database connection pool. All values are optional;
// the defaults suit a single instance against a small MySQL.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SMTPConfig describes the outbound mail transport. All fields are optional
// at startup: a blank username disables actual delivery, which keeps local
// development working without a mail account. Security is "starttls" or
// "ssl"; anything else means plain SMTP.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Security string
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   mustInt("BCRYPT_COST"),
		SMTP:         LoadSMTPConfig(),
		Pool: PoolConfig{
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
	}
}

// LoadSMTPConfig builds the mail transport settings with permissive
// defaults. EMAIL_FROM falls back to SMTP_USER so a bare Gmail account
// works without extra variables.
func LoadSMTPConfig() SMTPConfig {
	user := os.Getenv("SMTP_USER")
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = user
	}
	return SMTPConfig{
		Host:     getenv("SMTP_HOST", "smtp.gmail.com"),
		Port:     getenv("SMTP_PORT", "587"),
		Username: user,
		Password: os.Getenv("SMTP_PASS"),
		From:     from,
		Security: getenv("SMTP_SECURITY", "starttls"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

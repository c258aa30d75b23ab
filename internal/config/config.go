// Package config loads application configuration from environment
// variables.  A .env file in the working directory is honoured when
// present.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  File paths for the three
// stores are derived from DataDir.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DataDir      string // directory holding the flat file stores
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
}

// Load reads configuration from the environment.  A missing
// JWT_SECRET is fatal; everything else falls back to a sensible
// default so the server can run out of the box against local files.
func Load() Config {
	// Load .env when present; a missing file is not an error.
	_ = godotenv.Load()

	return Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("APP_PORT", "8080"),
		DataDir:      envStr("DATA_DIR", "."),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 30),
		BcryptCost:   envInt("BCRYPT_COST", 10),
	}
}

// MoviesFile returns the path of the movies store.
func (c Config) MoviesFile() string { return filepath.Join(c.DataDir, "movies.txt") }

// BookingsFile returns the path of the bookings store.
func (c Config) BookingsFile() string { return filepath.Join(c.DataDir, "bookings.txt") }

// UsersFile returns the path of the users store.
func (c Config) UsersFile() string { return filepath.Join(c.DataDir, "users.txt") }

// must retrieves the value of a required environment variable.  If
// the variable is unset or empty, the application logs a fatal error
// and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}

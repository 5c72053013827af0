package cmd

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Driver    string
	DSN       string
	RedisAddr string
	CacheTTL  time.Duration
	Verbose   bool
	Seed      bool

	Addr     string
	MaxConns int
}

// FromEnv returns the defaults every flag starts from.
func FromEnv() Config {
	return Config{
		Driver:    envOr("QUIZBANK_DB_DRIVER", "sqlite"),
		DSN:       os.Getenv("DATABASE_URL"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		CacheTTL:  envDuration("QUIZBANK_CACHE_TTL", 10*time.Minute),
		Verbose:   envBool("QUIZBANK_VERBOSE", false),
		Seed:      envBool("QUIZBANK_SEED", true),
		Addr:      envOr("QUIZBANK_ADDR", ":3030"),
		MaxConns:  envInt("QUIZBANK_MAX_CONNS", 16),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return d
}

func envInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}

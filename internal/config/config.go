package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	// DB
	Env    string // "dev" | "prod"
	DBPath string // e.g. "./data/proximark.db"

	// Auth
	JWTSecret     string
	TokenTTLHours int
}

func FromEnv() Config {
	addr := getenvDefault("PROXIMARK_HTTP_ADDR", ":8080")

	env := strings.ToLower(getenvDefault("PROXIMARK_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	dbPath := getenvDefault("PROXIMARK_DB_PATH", "./data/proximark.db")

	secret := getenvDefault("PROXIMARK_JWT_SECRET", "dev-secret-change-me")
	ttl := getenvInt("PROXIMARK_TOKEN_TTL_HOURS", 24)

	return Config{
		HTTPAddr:      addr,
		Env:           env,
		DBPath:        dbPath,
		JWTSecret:     secret,
		TokenTTLHours: ttl,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

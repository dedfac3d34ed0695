package config

import (
	"os"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// catalog assets
	ManifestPath string
	MappingPath  string
	CoversDir    string
	CoverBase    string

	// quiz
	BankPath       string
	SessionBackend string // memory|redis
	RedisURL       string
	SessionTTL     time.Duration

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:     mode,
		HTTPAddr: addr,

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		ManifestPath: envOr("MANIFEST_PATH", "./data/catalog.json"),
		MappingPath:  envOr("MAPPING_PATH", "./data/document-urls.json"),
		CoversDir:    envOr("COVERS_DIR", "./data/covers"),
		CoverBase:    envOr("COVER_BASE", "/covers"),

		BankPath:       envOr("BANK_PATH", "./data/quiz-bank.json"),
		SessionBackend: envOr("SESSION_BACKEND", "memory"),
		RedisURL:       envOr("REDIS_URL", "redis://localhost:6379/0"),
		SessionTTL:     envDuration("SESSION_TTL", 30*time.Minute),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://shelf.moorworks.ie"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),
	}
}
func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

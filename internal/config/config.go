package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SaveDir       string
	AutosaveEvery time.Duration
	Seed          int64
	APIAddr       string
}

// Load reads configuration from the environment, with a best-effort .env
// autoload first. Everything has a sane default; nothing is required.
func Load() Config {
	_ = godotenv.Load()

	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("ENCORE_API_ADDR", ":7780")
	}

	return Config{
		SaveDir:       envDefault("ENCORE_SAVE_DIR", ""),
		AutosaveEvery: envDurationDefault("ENCORE_AUTOSAVE_EVERY", 30*time.Second),
		Seed:          envInt64Default("ENCORE_SEED", 0),
		APIAddr:       addr,
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

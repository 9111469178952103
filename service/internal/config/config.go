// Package config loads service settings from the environment, optionally
// seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jason-s-yu/riichi/service/internal/archive"
)

// Config holds every setting the service reads.
type Config struct {
	DatabaseURL string              `env:"RIICHI_DATABASE_URL"`
	RedisAddr   string              `env:"RIICHI_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB     int                 `env:"RIICHI_REDIS_DB" envDefault:"0"`
	CacheTTL    time.Duration       `env:"RIICHI_CACHE_TTL" envDefault:"10m"`
	Compression archive.Compression `env:"RIICHI_COMPRESSION" envDefault:"zstd"`
	LogLevel    string              `env:"RIICHI_LOG_LEVEL" envDefault:"info"`
	LogFormat   string              `env:"RIICHI_LOG_FORMAT" envDefault:"text"`
}

// Load reads files (".env" when none are given) into the process
// environment without overriding variables already set, then parses the
// environment. A missing default .env is not an error.
func Load(files ...string) (Config, error) {
	explicit := len(files) > 0
	if !explicit {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	c, err := archive.ParseCompression(string(cfg.Compression))
	if err != nil {
		return Config{}, fmt.Errorf("parse env: RIICHI_COMPRESSION: %w", err)
	}
	cfg.Compression = c
	return cfg, nil
}

package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Settings are the process-wide knobs read from the environment. Every
// field has a default; nothing here is required.
type Settings struct {
	// TokenFile is where the file-backed token store keeps its records.
	TokenFile string `env:"MINIM_TOKEN_FILE" env-default:"~/.minim/tokens.json"`

	// CacheCapacity bounds the in-memory response cache entry count.
	CacheCapacity int `env:"MINIM_CACHE_CAPACITY" env-default:"1024"`

	// RedisURL, when set, switches the response cache to Redis.
	RedisURL string `env:"MINIM_REDIS_URL"`

	// LogLevel controls structured log verbosity: debug, info, warn, error.
	LogLevel string `env:"MINIM_LOG_LEVEL" env-default:"info"`

	// HTTPTimeout is the per-request timeout in seconds for API calls.
	HTTPTimeout int `env:"MINIM_HTTP_TIMEOUT" env-default:"30"`
}

// Load reads settings from the environment. A .env file in the working
// directory is loaded first when present; a missing file is not an error.
func Load() (*Settings, error) {
	_ = godotenv.Load()

	var s Settings
	if err := cleanenv.ReadEnv(&s); err != nil {
		return nil, err
	}
	expanded, err := ExpandPath(s.TokenFile)
	if err != nil {
		return nil, err
	}
	s.TokenFile = expanded
	return &s, nil
}

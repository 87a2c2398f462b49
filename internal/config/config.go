// Package config resolves the service configuration from the environment.
// A .env file is honored when present; every setting has a default.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/alignscope/core/internal/store"
)

// Config carries everything the binaries need to start. Document paths
// default to subpaths of DataDir unless configured individually.
type Config struct {
	Port              string
	DataDir           string
	RootFile          string
	ComponentsDir     string
	SubcomponentsDir  string
	CORSAllowedOrigin string
	CacheEnabled      bool
	CacheSize         int
	WatchEnabled      bool
	LogLevel          slog.Level
}

// Load reads the environment, after loading a .env file if one exists.
// Malformed values fall back to their defaults.
func Load() Config {
	_ = godotenv.Load()

	dataDir := getEnv("ALIGNSCOPE_DATA_DIR", "./data")

	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		DataDir:           dataDir,
		RootFile:          getEnv("ALIGNSCOPE_ROOT_FILE", filepath.Join(dataDir, "ai-alignment.json")),
		ComponentsDir:     getEnv("ALIGNSCOPE_COMPONENTS_DIR", filepath.Join(dataDir, "components")),
		SubcomponentsDir:  getEnv("ALIGNSCOPE_SUBCOMPONENTS_DIR", filepath.Join(dataDir, "subcomponents")),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		CacheEnabled:      getBool("ALIGNSCOPE_CACHE", false),
		CacheSize:         getInt("ALIGNSCOPE_CACHE_SIZE", 256),
		WatchEnabled:      getBool("ALIGNSCOPE_WATCH", false),
		LogLevel:          getLevel("ALIGNSCOPE_LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.CacheSize < 1 {
		cfg.CacheSize = 256
	}

	return cfg
}

// UseDataDir points every document path at dir, overriding any individually
// configured locations.
func (c *Config) UseDataDir(dir string) {
	c.DataDir = dir
	c.RootFile = filepath.Join(dir, "ai-alignment.json")
	c.ComponentsDir = filepath.Join(dir, "components")
	c.SubcomponentsDir = filepath.Join(dir, "subcomponents")
}

// StoreConfig maps the document paths into the store's configuration.
func (c Config) StoreConfig() store.Config {
	return store.Config{
		RootFile:         c.RootFile,
		ComponentsDir:    c.ComponentsDir,
		SubcomponentsDir: c.SubcomponentsDir,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

func getLevel(key string, defaultValue slog.Level) slog.Level {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return defaultValue
	}
	return level
}

package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	OpenBrowser    bool
	HistoryLimit   int
	AuthSecret     string
	TokenTTL       time.Duration
	AllowedOrigins []string
	LogLevel       slog.Level
}

// AuthEnabled reports whether the API requires bearer tokens.
func (c *Config) AuthEnabled() bool {
	return c.AuthSecret != ""
}

// Load reads an optional .env from the working directory, then the process
// environment. Variables already set in the environment win over .env.
func Load(files ...string) *Config {
	// Загрузка .env файла
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("no .env file found, using system environment variables")
	}

	return &Config{
		Addr:           getEnv("CALC_ADDR", ":8080"),
		OpenBrowser:    getEnvAsBool("CALC_OPEN_BROWSER", true),
		HistoryLimit:   getEnvAsInt("CALC_HISTORY_LIMIT", 100),
		AuthSecret:     getEnv("CALC_AUTH_SECRET", ""),
		TokenTTL:       time.Duration(getEnvAsInt("CALC_TOKEN_TTL_MINUTES", 60)) * time.Minute,
		AllowedOrigins: getEnvAsList("CALC_CORS_ORIGINS", []string{"*"}),
		LogLevel:       parseLevel(getEnv("CALC_LOG_LEVEL", "info")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

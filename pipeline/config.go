package pipeline

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the per-run configuration, read once from the environment.
type Config struct {
	DiscordToken string
	ChannelID    string
	MinFollowers string
	MSToken      string
	Browser      string
	TrendCount   int
	LogLevel     string
}

// LoadConfig reads the environment (optionally seeded from a .env file) into
// a Config. Callers that intend to publish must also call Validate before
// doing any network work.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken: os.Getenv("DISCORD_BOT_TOKEN"),
		ChannelID:    os.Getenv("DISCORD_CHANNEL_ID"),
		MinFollowers: getEnv("MIN_FOLLOWERS", "100000"),
		MSToken:      os.Getenv("TIKTOK_MS_TOKEN"),
		Browser:      getEnv("TIKTOK_BROWSER", "chromium"),
		TrendCount:   getEnvInt("TREND_COUNT", 30),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate checks the required credentials. A run with no publish token or
// no destination must abort before any network activity.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if c.ChannelID == "" {
		return fmt.Errorf("DISCORD_CHANNEL_ID is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

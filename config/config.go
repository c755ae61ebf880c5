package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	GlobalApiKey     string
	DatabasePath     string
	DiscordAppID     string
	DiscordBotToken  string
	DiscordPublicKey string
	// DiscordAPIBase overrides the API root, mainly for tests.
	DiscordAPIBase string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8082"),
		GlobalApiKey:     getEnv("GLOBAL_API_KEY", ""),
		DatabasePath:     getEnv("DATABASE_PATH", "godiscord.db"),
		DiscordAppID:     getEnv("DISCORD_APP_ID", ""),
		DiscordBotToken:  getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordPublicKey: getEnv("DISCORD_PUBLIC_KEY", ""),
		DiscordAPIBase:   getEnv("DISCORD_API_BASE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

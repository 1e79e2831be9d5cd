package config

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads the API server configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg := Config{
		DBPath:        getEnvOr("DB_PATH", "courtside.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MigrationsDir: "./migrations",
		Port:          getEnvOr("PORT", "8080"),
		WebOrigins: []string{
			getEnvOr("WEBAPP_URL", "https://paddleapp.netlify.app"),
			"http://localhost:5173",
		},
	}
	return cfg
}

// LoadBot reads the bot process configuration. BOT_TOKEN is required.
func LoadBot() BotConfig {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	token := strings.TrimSpace(os.Getenv("BOT_TOKEN"))
	if token == "" {
		log.Fatalf("Error: Required environment variable BOT_TOKEN is not set.")
	}

	return BotConfig{
		BotToken:   token,
		BackendURL: getEnvOr("BACKEND_URL", "http://127.0.0.1:8080"),
		WebAppURL:  getEnvOr("WEBAPP_URL", "https://example.com"),
	}
}

func getEnvOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

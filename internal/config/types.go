package config

// Config holds all configuration for the API server.
type Config struct {
	DBPath        string
	DatabaseURL   string
	MigrationsDir string
	Port          string
	WebOrigins    []string
}

// BotConfig holds all configuration for the Telegram bot process.
type BotConfig struct {
	BotToken   string
	BackendURL string
	WebAppURL  string
}

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port         string
	Timezone     string
	DBPath       string
	ReminderAt   string // HH:MM local time for the daily reminder
	PushEndpoint string
	PushToken    string
	ExportDir    string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:         get("PORT", "8080"),
		Timezone:     get("TZ", "Europe/Moscow"),
		DBPath:       get("DB_PATH", "risks.db"),
		ReminderAt:   get("REMINDER_AT", "11:30"),
		PushEndpoint: get("PUSH_ENDPOINT", ""),
		PushToken:    get("PUSH_TOKEN", ""),
		ExportDir:    get("EXPORT_DIR", "."),
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}

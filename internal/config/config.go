package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/etude-leroux/site-api/internal/utils"
)

const AppName = "etude-api"

type Config struct {
	AppName string
	AppPort string
	AppUrl  string
	DBUrl   string

	// Outbound automation webhook for contact submissions. May be empty:
	// submissions then fail with a configuration error at request time.
	ContactWebhookURL string

	// Static bearer token guarding the admin CRUD routes. Empty disables
	// them (requests get 401).
	AdminAPIToken string

	// When set, the contact rate-limit ledger lives in Redis instead of
	// process memory.
	RedisURL string
}

// LoadConfig reads the environment, after loading a local .env when one
// exists. Only the database URL is hard-required; everything else has a
// workable default or degrades per-request.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Info("No .env file found, using process environment")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DATABASE_URL env var is missing")
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "8080"
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "*"
	}

	webhookURL := os.Getenv("CONTACT_WEBHOOK_URL")
	if webhookURL == "" {
		utils.Logger.Warn("CONTACT_WEBHOOK_URL is not set; contact submissions will fail until it is configured")
	}

	adminToken := os.Getenv("ADMIN_API_TOKEN")
	if adminToken == "" {
		utils.Logger.Warn("ADMIN_API_TOKEN is not set; admin routes are disabled")
	}

	utils.Logger.Infof("Loaded config for %s", AppName)

	return &Config{
		AppName:           AppName,
		AppPort:           appPort,
		AppUrl:            appURL,
		DBUrl:             dbURL,
		ContactWebhookURL: webhookURL,
		AdminAPIToken:     adminToken,
		RedisURL:          os.Getenv("REDIS_URL"),
	}
}

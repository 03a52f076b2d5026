package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	UpdateAPIURL string
	AppVersion   string
}

func Load() Config {
	// Local overrides; absence of a .env file is fine.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "shoppanel.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./shoppanel.log"
	}
	updateURL := os.Getenv("UPDATE_API_URL")
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, UpdateAPIURL: updateURL, AppVersion: version}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s UPDATE_API_URL=%s VERSION=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.UpdateAPIURL, cfg.AppVersion)
	return cfg
}

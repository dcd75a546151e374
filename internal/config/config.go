package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort          string
	DatabaseDSN       string // postgres DSN or path to a local sqlite file
	JWTSecret         string
	CORSOrigins       string
	AdminUser         string
	AdminPassword     string // plain-text fallback for local setups
	AdminPasswordHash string // bcrypt hash; takes precedence over AdminPassword
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "inventory.db"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		CORSOrigins:       getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set. It is required to sign session tokens.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters long.")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		log.Fatal("[FATAL] Neither ADMIN_PASSWORD nor ADMIN_PASSWORD_HASH is set, login would be impossible.")
	}
	if cfg.AdminPasswordHash == "" {
		log.Println("[WARN] ADMIN_PASSWORD is stored in plain text, prefer ADMIN_PASSWORD_HASH (bcrypt).")
	}
	if cfg.DatabaseDSN == "inventory.db" {
		log.Println("[WARN] DATABASE_DSN not set, using local sqlite file ./inventory.db")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigin    string
	LogFile       string
	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	port := getenv("PORT", "5000")
	dsn := getenv("DB_DSN", "lostfound.db") // sqlite file in project root
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Printf("[config] JWT_SECRET not set, using insecure dev default")
	}
	ttlHours := 168 // 7 days
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttlHours = n
		}
	}
	origin := getenv("CORS_ORIGIN", "http://localhost:3000")
	logFile := os.Getenv("LOG_FILE")
	adminEmail := getenv("ADMIN_EMAIL", "admin@lostfound.test")
	adminPass := getenv("ADMIN_PASSWORD", "ChangeMe123")

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		JWTSecret:     secret,
		TokenTTL:      time.Duration(ttlHours) * time.Hour,
		CORSOrigin:    origin,
		LogFile:       logFile,
		AdminEmail:    adminEmail,
		AdminPassword: adminPass,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s CORS_ORIGIN=%s TOKEN_TTL=%s LOG_FILE=%s",
		cfg.Port, cfg.DBDSN, cfg.CORSOrigin, cfg.TokenTTL, cfg.LogFile)
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

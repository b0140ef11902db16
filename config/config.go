package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting the process needs. It is resolved
// once in main and handed to constructors; nothing outside this package
// reads the environment.
type Config struct {
	Port           string
	AllowedOrigins []string

	MongoURI     string
	DatabaseName string

	// Admin and client tokens are signed with distinct secrets so a leaked
	// client secret cannot be used to forge admin tokens.
	JWTAdminSecret  string
	JWTClientSecret string
	TokenTTL        time.Duration

	// Base URLs embedded in emailed confirmation/reset links.
	APIBaseURL    string
	ClientBaseURL string

	SMTP      SMTP
	Mailchimp Mailchimp

	SeedAdminEmail    string
	SeedAdminPassword string
}

type SMTP struct {
	Host       string
	Port       int
	Username   string
	Password   string
	SenderName string
	Timeout    time.Duration
}

type Mailchimp struct {
	APIKey string
	Server string
	ListID string
}

// Load reads .env (if present) and the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:            getDefault("PORT", "5000"),
		AllowedOrigins:  splitList(os.Getenv("ALLOWED_ORIGINS")),
		MongoURI:        os.Getenv("MONGODB_URI"),
		DatabaseName:    getDefault("DATABASE_NAME", "liftsforlife"),
		JWTAdminSecret:  os.Getenv("JWT_ADMIN_SECRET"),
		JWTClientSecret: os.Getenv("JWT_CLIENT_SECRET"),
		TokenTTL:        24 * time.Hour,
		APIBaseURL:      getDefault("API_BASE_URL", "http://localhost:5000"),
		ClientBaseURL:   getDefault("CLIENT_BASE_URL", "http://localhost:3000"),
		SMTP: SMTP{
			Host:       os.Getenv("EMAIL_HOST"),
			Port:       intDefault("EMAIL_PORT", 465),
			Username:   os.Getenv("EMAIL_ADDRESS"),
			Password:   os.Getenv("EMAIL_PASSWORD"),
			SenderName: getDefault("EMAIL_SENDER_NAME", "Lifts For Life"),
			Timeout:    time.Duration(intDefault("EMAIL_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Mailchimp: Mailchimp{
			APIKey: os.Getenv("MAILCHIMP_API_KEY"),
			Server: os.Getenv("MAILCHIMP_SERVER"),
			ListID: os.Getenv("MAILCHIMP_LIST_ID"),
		},
		SeedAdminEmail:    strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		SeedAdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTAdminSecret == "" || cfg.JWTClientSecret == "" {
		return nil, fmt.Errorf("JWT_ADMIN_SECRET and JWT_CLIENT_SECRET are required")
	}

	return cfg, nil
}

func getDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

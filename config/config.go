package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	APIBaseURL string
	ListenAddr string

	PageSize       int
	RequestTimeout time.Duration

	Debug bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		APIBaseURL: getEnv("API_BASE_URL", "http://127.0.0.1:8000"),
		ListenAddr: getEnv("LISTEN_ADDR", ":3000"),

		PageSize:       getEnvInt("PAGE_SIZE", 9),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 10000)) * time.Millisecond,

		Debug: getEnvBool("DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

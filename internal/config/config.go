package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatasetPath  string
	DatabaseURL  string
	HTTPPort     string
	GeminiAPIKey string
	GeminiModel  string
	JWTSecret    string
	LogLevel     string
	LogFormat    string
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		DatasetPath:  getEnv("DATASET_PATH", "employees.xlsx"),
		DatabaseURL:  getEnv("DATABASE_URL", "hr_dashboard.db"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "console"),
	}

	// GEMINI_API_KEY stays optional: without it the chat panel degrades to a
	// visible "missing credential" note while the rest of the dashboard
	// keeps working.
	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

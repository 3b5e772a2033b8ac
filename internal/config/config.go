package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rayysidd/mun/internal/constants"
)

type Config struct {
	Port                  string
	GinMode               string
	DBDriver              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBDSN                 string
	JWTSecret             string
	JWTTTL                time.Duration
	BcryptCost            int
	AllowDuplicateCountry bool
	CORSAllowedOrigins    []string
	LLMAPIKey             string
	LLMBaseURL            string
	LLMModel              string
	ChatRequireAuth       bool
	LogLevel              string
	LogDev                bool
}

// geminiBaseURL is Gemini's OpenAI-compatible endpoint, used when the key
// comes from GEMINI_API_KEY and LLM_BASE_URL is unset.
const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// Load reads the optional env file named by ENV_FILE (default .env) and then
// builds the configuration from the process environment.
func Load() *Config {
	envFile := getEnv("ENV_FILE", ".env")
	// Missing env files are fine; real environment variables still apply.
	_ = godotenv.Load(envFile)

	llmKey, llmBaseURL, llmModel := llmSettings()

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		GinMode:               getEnv("GIN_MODE", "debug"),
		DBDriver:              getEnv("DB_DRIVER", "mysql"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "3306"),
		DBUser:                getEnv("DB_USER", "munuser"),
		DBPassword:            getEnv("DB_PASSWORD", "munpassword"),
		DBName:                getEnv("DB_NAME", "diplomate"),
		DBDSN:                 getEnv("DB_DSN", ""),
		JWTSecret:             getEnv("JWT_SECRET", "default-secret-key-change-me"),
		JWTTTL:                getDuration("JWT_TTL", constants.DefaultTokenTTL),
		BcryptCost:            getInt("BCRYPT_COST", 10),
		AllowDuplicateCountry: getBool("ALLOW_DUPLICATE_COUNTRY", true),
		CORSAllowedOrigins:    getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		LLMAPIKey:             llmKey,
		LLMBaseURL:            llmBaseURL,
		LLMModel:              llmModel,
		ChatRequireAuth:       getBool("CHAT_REQUIRE_AUTH", false),
		LogLevel:              getEnv("LOG_LEVEL", ""),
		LogDev:                getBool("LOG_DEV", false),
	}
}

// DSN returns DB_DSN when set, otherwise a driver-specific DSN assembled from
// the discrete DB_* settings.
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}

	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	case "sqlite":
		return c.DBName + ".db"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	}
}

func llmSettings() (key, baseURL, model string) {
	key = firstEnv("LLM_API_KEY", "OPENAI_API_KEY")
	baseURL = os.Getenv("LLM_BASE_URL")
	model = os.Getenv("LLM_MODEL")

	if key == "" {
		if key = os.Getenv("GEMINI_API_KEY"); key != "" {
			if baseURL == "" {
				baseURL = geminiBaseURL
			}
			if model == "" {
				model = "gemini-2.0-flash"
			}
		}
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return key, baseURL, model
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

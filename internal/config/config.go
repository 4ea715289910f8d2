package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string // empty: in-memory bank
	RedisURL    string // empty: no cache
	Environment string

	QuestionCacheTTL time.Duration
	SeedOnStart      bool

	Feedback FeedbackConfig
	Events   EventConfig
}

// LoadConfig reads an optional .env file, then the environment
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		Environment:      getEnv("ENVIRONMENT", "development"),
		QuestionCacheTTL: getEnvDuration("QUESTION_CACHE_TTL", 10*time.Minute),
		SeedOnStart:      getEnvBool("SEED_ON_START", true),
		Feedback: FeedbackConfig{
			Provider:      getEnv("FEEDBACK_PROVIDER", "none"),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", ""),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:   getEnv("OPENAI_MODEL", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			Timeout:       getEnvDuration("FEEDBACK_TIMEOUT", 20*time.Second),
		},
		Events: EventConfig{
			Enabled:         getEnvBool("EVENTS_ENABLED", false),
			Publisher:       getEnv("EVENTS_PUBLISHER", "kafka"),
			KafkaBrokers:    getEnv("KAFKA_BROKERS", "localhost:9092"),
			QuizEventsTopic: getEnv("QUIZ_EVENTS_TOPIC", "quiz-events"),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

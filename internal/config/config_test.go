package config

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/events"
	"github.com/SAP-F-2025/devquiz-service/internal/feedback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("QUESTION_CACHE_TTL", "not-a-duration")
	t.Setenv("EVENTS_ENABLED", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 10*time.Minute, cfg.QuestionCacheTTL)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, "none", cfg.Feedback.Provider)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("FEEDBACK_TIMEOUT", "5s")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5*time.Second, cfg.Feedback.Timeout)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.GetKafkaBrokers())
}

func TestCreateEventPublisher_Disabled(t *testing.T) {
	cfg := EventConfig{Enabled: false}
	publisher, err := cfg.CreateEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.IsType(t, &events.MockEventPublisher{}, publisher)
}

func TestCreateGenerator_Fallbacks(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, provider := range []string{"none", "gemini", "openai", "unknown"} {
		cfg := FeedbackConfig{Provider: provider}
		gen := cfg.CreateGenerator(context.Background(), logger)
		assert.IsType(t, feedback.StaticGenerator{}, gen, provider)
	}

	cfg := FeedbackConfig{Provider: "openai", OpenAIAPIKey: "key"}
	assert.IsType(t, &feedback.OpenAIGenerator{}, cfg.CreateGenerator(context.Background(), logger))
}

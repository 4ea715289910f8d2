package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/feedback"
)

// FeedbackConfig selects the narrative feedback provider
type FeedbackConfig struct {
	Provider      string // gemini, openai or none
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	Timeout       time.Duration
}

// CreateGenerator builds the configured generator. A provider that cannot be built degrades to
// the static generator so quizzes keep working.
func (c *FeedbackConfig) CreateGenerator(ctx context.Context, logger *slog.Logger) feedback.Generator {
	switch c.Provider {
	case "gemini":
		gen, err := feedback.NewGeminiGenerator(ctx, c.GeminiAPIKey, c.GeminiModel)
		if err != nil {
			logger.Warn("Gemini feedback unavailable, using static feedback", "error", err)
			return feedback.StaticGenerator{}
		}
		logger.Info("Using Gemini feedback generator", "model", c.GeminiModel)
		return gen
	case "openai":
		gen, err := feedback.NewOpenAIGenerator(c.OpenAIAPIKey, c.OpenAIModel, c.OpenAIBaseURL)
		if err != nil {
			logger.Warn("OpenAI feedback unavailable, using static feedback", "error", err)
			return feedback.StaticGenerator{}
		}
		logger.Info("Using OpenAI feedback generator", "model", c.OpenAIModel)
		return gen
	case "", "none":
		logger.Info("Feedback generation disabled")
		return feedback.StaticGenerator{}
	default:
		logger.Warn("Unknown feedback provider, using static feedback", "provider", c.Provider)
		return feedback.StaticGenerator{}
	}
}

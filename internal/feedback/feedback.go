// Package feedback produces the narrative coaching text shown after a quiz. Generation is best
// effort: every failure resolves to FallbackMessage.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
)

// FallbackMessage is shown whenever no generated feedback is available.
const FallbackMessage = "Detailed AI analysis is unavailable right now. Review the explanations for each question below."

var (
	ErrEmptyFeedback  = errors.New("generator returned empty feedback")
	ErrGeneratorPanic = errors.New("generator panicked")
)

// Request carries a completed result and the questions of its session.
type Request struct {
	Result    models.QuizResult
	Questions []models.Question
}

// Generator turns a completed quiz into narrative text.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// Resolve runs gen under timeout. It reports false with FallbackMessage when generation fails
// or yields nothing usable.
func Resolve(ctx context.Context, gen Generator, req Request, timeout time.Duration, logger *slog.Logger) (string, bool) {
	if gen == nil {
		return FallbackMessage, false
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := generate(ctx, gen, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyFeedback
	}
	if err != nil {
		logger.WarnContext(ctx, "Feedback generation failed, using fallback",
			"provider", gen.Name(),
			"session_id", req.Result.SessionID,
			"duration", time.Since(start),
			"error", err)
		return FallbackMessage, false
	}

	text = strings.TrimSpace(text)
	if text == FallbackMessage {
		return FallbackMessage, false
	}

	logger.InfoContext(ctx, "Feedback generated",
		"provider", gen.Name(),
		"session_id", req.Result.SessionID,
		"duration", time.Since(start))
	return text, true
}

// generate converts a panicking provider into an error.
func generate(ctx context.Context, gen Generator, req Request) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrGeneratorPanic, r)
		}
	}()
	return gen.Generate(ctx, req)
}

// StaticGenerator always fails over to the fallback text. It is used when no provider is
// configured.
type StaticGenerator struct{}

func (StaticGenerator) Generate(ctx context.Context, req Request) (string, error) {
	return FallbackMessage, nil
}

func (StaticGenerator) Name() string { return "static" }

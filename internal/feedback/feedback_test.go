package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeGenerator struct {
	text  string
	err   error
	block bool
	panic bool
}

func (f fakeGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if f.panic {
		var counts map[string]int
		counts["calls"]++
	}
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

func (f fakeGenerator) Name() string { return "fake" }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRequest() Request {
	q1 := models.Question{
		ID:            "q1",
		Type:          models.FillIn,
		Prompt:        "Which keyword defers a call?",
		CorrectAnswer: datatypes.NewJSONType(models.TextAnswer(models.FillIn, "defer")),
		Explanation:   "defer runs at function return",
	}
	q2 := models.Question{
		ID:            "q2",
		Type:          models.MultipleChoice,
		Prompt:        "Pick the reference types",
		CorrectAnswer: datatypes.NewJSONType(models.ChoicesAnswer("map", "slice")),
		Explanation:   "maps and slices share backing storage",
	}
	q3 := models.Question{
		ID:            "q3",
		Type:          models.FillIn,
		Prompt:        "Which keyword starts a goroutine?",
		CorrectAnswer: datatypes.NewJSONType(models.TextAnswer(models.FillIn, "go")),
		Explanation:   "go starts a goroutine",
	}
	wrong := models.ChoicesAnswer("map")
	right := models.TextAnswer(models.FillIn, "go")

	return Request{
		Result: models.QuizResult{
			SessionID:      "s1",
			Score:          1,
			TotalQuestions: 3,
			Level:          models.LevelBeginner,
			Topic:          "Go",
			UserAnswers: []models.UserAnswerRecord{
				{QuestionID: "q1"},
				{QuestionID: "q2", Answer: &wrong},
				{QuestionID: "q3", Answer: &right, IsCorrect: true},
			},
		},
		Questions: []models.Question{q1, q2, q3},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleRequest())

	assert.Contains(t, prompt, "Topic: Go")
	assert.Contains(t, prompt, "Score: 1/3")
	assert.Contains(t, prompt, "Level: Beginner")
	assert.Contains(t, prompt, `"Which keyword defers a call?"`)
	assert.Contains(t, prompt, "User answer: (no answer)")
	assert.Contains(t, prompt, `Correct answer: "defer"`)
	assert.Contains(t, prompt, `User answer: ["map"]`)
	assert.Contains(t, prompt, `Correct answer: ["map","slice"]`)
	assert.NotContains(t, prompt, "Which keyword starts a goroutine?", "correct answers are not listed")
}

func TestBuildPrompt_AllCorrect(t *testing.T) {
	req := sampleRequest()
	req.Result.UserAnswers = req.Result.UserAnswers[2:]
	assert.Contains(t, BuildPrompt(req), "every answer was correct")
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		gen      Generator
		timeout  time.Duration
		expected string
		ok       bool
	}{
		{name: "success is trimmed", gen: fakeGenerator{text: "  Study channels.\n"}, expected: "Study channels.", ok: true},
		{name: "error falls back", gen: fakeGenerator{err: errors.New("quota exceeded")}, expected: FallbackMessage},
		{name: "blank falls back", gen: fakeGenerator{text: " \n "}, expected: FallbackMessage},
		{name: "timeout falls back", gen: fakeGenerator{block: true}, timeout: 20 * time.Millisecond, expected: FallbackMessage},
		{name: "panic falls back", gen: fakeGenerator{panic: true}, expected: FallbackMessage},
		{name: "static provider", gen: StaticGenerator{}, expected: FallbackMessage},
		{name: "no provider", gen: nil, expected: FallbackMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := Resolve(context.Background(), tt.gen, sampleRequest(), tt.timeout, testLogger())
			assert.Equal(t, tt.expected, text)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestOpenAIGenerator(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-model", req.Model)
			require.Len(t, req.Messages, 1)
			assert.Contains(t, req.Messages[0].Content, "Topic: Go")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Review defer."}}]}`))
		}))
		defer server.Close()

		gen, err := NewOpenAIGenerator("test-key", "test-model", server.URL+"/")
		require.NoError(t, err)

		text, err := gen.Generate(context.Background(), sampleRequest())
		require.NoError(t, err)
		assert.Equal(t, "Review defer.", text)
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
		}))
		defer server.Close()

		gen, err := NewOpenAIGenerator("test-key", "", server.URL)
		require.NoError(t, err)

		_, err = gen.Generate(context.Background(), sampleRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		gen, _ := NewOpenAIGenerator("test-key", "", server.URL)
		_, err := gen.Generate(context.Background(), sampleRequest())
		assert.Error(t, err)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewOpenAIGenerator("", "", "")
		assert.Error(t, err)
	})
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", "")
	assert.Error(t, err)
}

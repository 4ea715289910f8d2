package quiz

import (
	"math/rand/v2"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
)

// MaxSessionQuestions caps how many questions one session draws from a topic.
const MaxSessionQuestions = 10

// Session is one attempt at a topic. The question order is drawn once and never changes.
type Session struct {
	ID        string
	Topic     models.Topic
	Questions []models.Question
	StartedAt time.Time
}

// NewSession draws the session's questions from bank and stamps the start time.
func NewSession(id string, topic models.Topic, bank []*models.Question, rng *rand.Rand, startedAt time.Time) *Session {
	return &Session{
		ID:        id,
		Topic:     topic,
		Questions: Draw(bank, topic.ID, rng),
		StartedAt: startedAt,
	}
}

// Draw keeps the questions of topicID, permutes them uniformly and truncates to
// MaxSessionQuestions. An unknown topic yields an empty slice. A nil rng uses the global source.
func Draw(bank []*models.Question, topicID string, rng *rand.Rand) []models.Question {
	filtered := make([]models.Question, 0, len(bank))
	for _, q := range bank {
		if q != nil && q.TopicID == topicID {
			filtered = append(filtered, *q)
		}
	}

	// Fisher-Yates over indices, walking down from the end.
	for i := len(filtered) - 1; i > 0; i-- {
		j := intN(rng, i+1)
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}

	if len(filtered) > MaxSessionQuestions {
		filtered = filtered[:MaxSessionQuestions]
	}
	return filtered
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}

// Question returns the question at index i.
func (s *Session) Question(i int) (*models.Question, bool) {
	if s == nil || i < 0 || i >= len(s.Questions) {
		return nil, false
	}
	return &s.Questions[i], true
}

func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Questions)
}

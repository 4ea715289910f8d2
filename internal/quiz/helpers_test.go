package quiz

import (
	"fmt"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"gorm.io/datatypes"
)

func singleQ(id, topic, correct string, options ...string) models.Question {
	return models.Question{
		ID:            id,
		TopicID:       topic,
		Difficulty:    models.DifficultyEasy,
		Type:          models.SingleChoice,
		Prompt:        "prompt " + id,
		Options:       options,
		CorrectAnswer: datatypes.NewJSONType(models.TextAnswer(models.SingleChoice, correct)),
		Explanation:   "because " + id,
	}
}

func fillQ(id, topic, correct string) models.Question {
	return models.Question{
		ID:            id,
		TopicID:       topic,
		Difficulty:    models.DifficultyMedium,
		Type:          models.FillIn,
		Prompt:        "prompt " + id,
		CorrectAnswer: datatypes.NewJSONType(models.TextAnswer(models.FillIn, correct)),
	}
}

func multiQ(id, topic string, correct []string, options ...string) models.Question {
	return models.Question{
		ID:            id,
		TopicID:       topic,
		Difficulty:    models.DifficultyHard,
		Type:          models.MultipleChoice,
		Prompt:        "prompt " + id,
		Options:       options,
		CorrectAnswer: datatypes.NewJSONType(models.ChoicesAnswer(correct...)),
	}
}

func matchQ(id, topic string, pairs map[string]string) models.Question {
	q := models.Question{
		ID:            id,
		TopicID:       topic,
		Difficulty:    models.DifficultyMedium,
		Type:          models.Matching,
		Prompt:        "prompt " + id,
		CorrectAnswer: datatypes.NewJSONType(models.PairsAnswer(pairs)),
	}
	n := 0
	for l, r := range pairs {
		n++
		q.MatchingPairs = append(q.MatchingPairs, models.MatchingPair{ID: fmt.Sprint(n), Left: l, Right: r})
	}
	return q
}

func ptrs(qs ...models.Question) []*models.Question {
	out := make([]*models.Question, len(qs))
	for i := range qs {
		out[i] = &qs[i]
	}
	return out
}

func fixedSession(id string, start time.Time, qs ...models.Question) *Session {
	return &Session{
		ID:        id,
		Topic:     models.Topic{ID: "topic-x", Name: "Topic-X"},
		Questions: qs,
		StartedAt: start,
	}
}

func answerPtr(v models.AnswerValue) *models.AnswerValue {
	return &v
}

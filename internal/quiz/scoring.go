package quiz

import (
	"math"
	"strings"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
)

// Level thresholds. Both comparisons are strict: exactly 80% is Intermediate and exactly 50%
// is Beginner.
const (
	AdvancedThreshold     = 80.0
	IntermediateThreshold = 50.0
)

// evaluator decides one verdict. key is guaranteed to be tagged with the question's type; resp
// is the zero value of that shape when the question was skipped.
type evaluator func(key, resp models.AnswerValue) bool

var evaluators = map[models.QuestionType]evaluator{
	models.SingleChoice:   textEqual,
	models.FillIn:         textEqual,
	models.MultipleChoice: setEqual,
	models.Matching:       pairsCover,
}

// IsCorrect scores a single question. A nil answer is scored as the empty value of the
// question's shape, so it only matches an empty key. An answer key whose shape does not fit the
// question type has no possible correct answer.
func IsCorrect(q *models.Question, answer *models.AnswerValue) bool {
	eval, ok := evaluators[q.Type]
	if !ok {
		return false
	}
	key := q.Key()
	if key.Kind != q.Type {
		return false
	}

	resp := models.AnswerValue{Kind: q.Type}
	if answer != nil && answer.Kind == q.Type {
		resp = *answer
	}
	return eval(key, resp)
}

func textEqual(key, resp models.AnswerValue) bool {
	return strings.EqualFold(strings.TrimSpace(resp.Text), strings.TrimSpace(key.Text))
}

func setEqual(key, resp models.AnswerValue) bool {
	want := toSet(key.Choices)
	got := toSet(resp.Choices)
	if len(got) != len(want) {
		return false
	}
	for k := range want {
		if _, ok := got[k]; !ok {
			return false
		}
	}
	return true
}

// pairsCover requires every key pairing to be present. Extra pairings in the response are
// ignored.
func pairsCover(key, resp models.AnswerValue) bool {
	for left, right := range key.Pairs {
		got, ok := resp.Pairs[left]
		if !ok || got != right {
			return false
		}
	}
	return true
}

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}

// Percentage returns score/total*100, or 0 for an empty session.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) * 100 / float64(total)
}

func LevelFor(percentage float64) models.ProficiencyLevel {
	switch {
	case percentage > AdvancedThreshold:
		return models.LevelAdvanced
	case percentage > IntermediateThreshold:
		return models.LevelIntermediate
	default:
		return models.LevelBeginner
	}
}

// Score evaluates every question of the session in order. It reads session and answers only.
func Score(session *Session, answers AnswerStore, now time.Time) models.QuizResult {
	result := models.QuizResult{
		UserAnswers: make([]models.UserAnswerRecord, 0, session.Len()),
	}
	if session == nil {
		result.Level = LevelFor(0)
		return result
	}

	for i := range session.Questions {
		q := &session.Questions[i]
		record := models.UserAnswerRecord{QuestionID: q.ID}
		if v, ok := answers.Get(q.ID); ok {
			record.Answer = &v
		}
		record.IsCorrect = IsCorrect(q, record.Answer)
		if record.IsCorrect {
			result.Score++
		}
		result.UserAnswers = append(result.UserAnswers, record)
	}

	result.SessionID = session.ID
	result.Topic = session.Topic.Name
	result.TotalQuestions = len(session.Questions)
	result.Percentage = Percentage(result.Score, result.TotalQuestions)
	result.Level = LevelFor(result.Percentage)
	result.TimeSpent = elapsedSeconds(session.StartedAt, now)
	return result
}

func elapsedSeconds(start, now time.Time) int {
	if start.IsZero() || now.Before(start) {
		return 0
	}
	return int(math.Round(now.Sub(start).Seconds()))
}

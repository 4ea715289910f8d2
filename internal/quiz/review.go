package quiz

import (
	"github.com/SAP-F-2025/devquiz-service/internal/models"
)

// BuildReview pairs each scored record with its question and aggregates verdicts by difficulty
// and by type.
func BuildReview(session *Session, result models.QuizResult) models.ReviewReport {
	report := models.ReviewReport{
		Result:       result,
		Items:        make([]models.ReviewItem, 0, len(result.UserAnswers)),
		ByDifficulty: map[models.DifficultyLevel]*models.CategoryStats{},
		ByType:       map[models.QuestionType]*models.CategoryStats{},
	}

	byID := make(map[string]*models.Question, session.Len())
	for i := 0; i < session.Len(); i++ {
		q, _ := session.Question(i)
		byID[q.ID] = q
	}

	for i, ua := range result.UserAnswers {
		q, ok := byID[ua.QuestionID]
		if !ok {
			continue
		}
		report.Items = append(report.Items, models.ReviewItem{
			Index:         i + 1,
			QuestionID:    q.ID,
			Prompt:        q.Prompt,
			CodeSnippet:   q.CodeSnippet,
			Type:          q.Type,
			Difficulty:    q.Difficulty,
			UserAnswer:    ua.Answer,
			CorrectAnswer: q.Key(),
			IsCorrect:     ua.IsCorrect,
			Explanation:   q.Explanation,
			Reference:     q.Reference,
		})
		tally(report.ByDifficulty, q.Difficulty, ua.IsCorrect)
		tally(report.ByType, q.Type, ua.IsCorrect)
	}

	for _, st := range report.ByDifficulty {
		st.CorrectRate = rate(st)
	}
	for _, st := range report.ByType {
		st.CorrectRate = rate(st)
	}
	return report
}

func tally[K comparable](m map[K]*models.CategoryStats, key K, correct bool) {
	st, ok := m[key]
	if !ok {
		st = &models.CategoryStats{}
		m[key] = st
	}
	st.Total++
	if correct {
		st.Correct++
	}
}

func rate(st *models.CategoryStats) float64 {
	if st.Total == 0 {
		return 0
	}
	return float64(st.Correct) / float64(st.Total)
}

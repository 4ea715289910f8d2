package models

type ProficiencyLevel string

const (
	LevelBeginner     ProficiencyLevel = "Beginner"
	LevelIntermediate ProficiencyLevel = "Intermediate"
	LevelAdvanced     ProficiencyLevel = "Advanced"
)

// UserAnswerRecord is the per-question verdict produced at scoring time.
type UserAnswerRecord struct {
	QuestionID string       `json:"question_id"`
	Answer     *AnswerValue `json:"answer"` // nil when the question was skipped
	IsCorrect  bool         `json:"is_correct"`
	TimeTaken  int          `json:"time_taken"` // not tracked per question yet, always 0
}

// QuizResult is produced once per completed session and never mutated afterwards.
type QuizResult struct {
	SessionID      string             `json:"session_id"`
	Score          int                `json:"score"`
	TotalQuestions int                `json:"total_questions"`
	Percentage     float64            `json:"percentage"`
	TimeSpent      int                `json:"time_spent"` // seconds
	Level          ProficiencyLevel   `json:"level"`
	Topic          string             `json:"topic"`
	UserAnswers    []UserAnswerRecord `json:"user_answers"`
}

// Incorrect returns the records scored as wrong, in session order.
func (r *QuizResult) Incorrect() []UserAnswerRecord {
	var out []UserAnswerRecord
	for _, ua := range r.UserAnswers {
		if !ua.IsCorrect {
			out = append(out, ua)
		}
	}
	return out
}

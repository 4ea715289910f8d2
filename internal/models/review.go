package models

// ReviewItem is one row of the post-quiz review: the question, what the user answered, the key
// and the explanation.
type ReviewItem struct {
	Index         int             `json:"index"`
	QuestionID    string          `json:"question_id"`
	Prompt        string          `json:"question_text"`
	CodeSnippet   *string         `json:"code_snippet,omitempty"`
	Type          QuestionType    `json:"type"`
	Difficulty    DifficultyLevel `json:"difficulty"`
	UserAnswer    *AnswerValue    `json:"user_answer"`
	CorrectAnswer AnswerValue     `json:"correct_answer"`
	IsCorrect     bool            `json:"is_correct"`
	Explanation   string          `json:"explanation"`
	Reference     *string         `json:"reference,omitempty"`
}

// CategoryStats aggregates verdicts for one difficulty or question type.
type CategoryStats struct {
	Total       int     `json:"total"`
	Correct     int     `json:"correct"`
	CorrectRate float64 `json:"correct_rate"` // 0.0 - 1.0
}

type ReviewReport struct {
	Result       QuizResult                         `json:"result"`
	Items        []ReviewItem                       `json:"items"`
	ByDifficulty map[DifficultyLevel]*CategoryStats `json:"by_difficulty"`
	ByType       map[QuestionType]*CategoryStats    `json:"by_type"`
}

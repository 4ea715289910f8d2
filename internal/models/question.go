package models

import (
	"sort"
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	SingleChoice   QuestionType = "single"
	MultipleChoice QuestionType = "multiple"
	FillIn         QuestionType = "fill"
	Matching       QuestionType = "matching"
)

// QuestionTypes lists every supported answer shape.
var QuestionTypes = []QuestionType{SingleChoice, MultipleChoice, FillIn, Matching}

// ParseQuestionType accepts the canonical names plus the legacy "drag-drop" alias for matching.
func ParseQuestionType(s string) (QuestionType, bool) {
	switch QuestionType(s) {
	case SingleChoice, MultipleChoice, FillIn, Matching:
		return QuestionType(s), true
	case "drag-drop", "drag_drop":
		return Matching, true
	}
	return "", false
}

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

var DifficultyLevels = []DifficultyLevel{DifficultyEasy, DifficultyMedium, DifficultyHard}

type MatchingPair struct {
	ID    string `json:"id" yaml:"id"`
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
}

// Question is an immutable bank record. CorrectAnswer is tagged with the same kind as Type;
// that invariant is checked once at ingestion by the question validator.
type Question struct {
	ID            string                            `json:"id" gorm:"primaryKey;size:64" validate:"required,max=64"`
	TopicID       string                            `json:"topic" gorm:"not null;size:64;index" validate:"required,max=64,topic_slug"`
	Difficulty    DifficultyLevel                   `json:"difficulty" gorm:"not null;size:16" validate:"required,difficulty_level"`
	Type          QuestionType                      `json:"type" gorm:"not null;size:16" validate:"required,question_type"`
	Prompt        string                            `json:"question_text" gorm:"type:text;not null" validate:"required"`
	CodeSnippet   *string                           `json:"code_snippet,omitempty" gorm:"type:text"`
	Options       datatypes.JSONSlice[string]       `json:"options,omitempty" gorm:"type:jsonb"`
	MatchingPairs datatypes.JSONSlice[MatchingPair] `json:"matching_pairs,omitempty" gorm:"type:jsonb"`
	CorrectAnswer datatypes.JSONType[AnswerValue]   `json:"correct_answer" gorm:"type:jsonb"`
	Explanation   string                            `json:"explanation" gorm:"type:text"`
	Reference     *string                           `json:"reference,omitempty" gorm:"size:500"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// Key returns the decoded answer key.
func (q *Question) Key() AnswerValue {
	return q.CorrectAnswer.Data()
}

// PublicQuestion is the view of a question shown while a quiz is in progress: no answer key,
// no explanation.
type PublicQuestion struct {
	ID          string          `json:"id"`
	Topic       string          `json:"topic"`
	Difficulty  DifficultyLevel `json:"difficulty"`
	Type        QuestionType    `json:"type"`
	Prompt      string          `json:"question_text"`
	CodeSnippet *string         `json:"code_snippet,omitempty"`
	Options     []string        `json:"options,omitempty"`
	LeftItems   []string        `json:"left_items,omitempty"`
	RightItems  []string        `json:"right_items,omitempty"`
}

// Public strips the answer key. Right-hand matching items are sorted so their order does not
// mirror the left column.
func (q *Question) Public() PublicQuestion {
	pq := PublicQuestion{
		ID:          q.ID,
		Topic:       q.TopicID,
		Difficulty:  q.Difficulty,
		Type:        q.Type,
		Prompt:      q.Prompt,
		CodeSnippet: q.CodeSnippet,
		Options:     append([]string(nil), q.Options...),
	}
	for _, p := range q.MatchingPairs {
		pq.LeftItems = append(pq.LeftItems, p.Left)
		pq.RightItems = append(pq.RightItems, p.Right)
	}
	sort.Strings(pq.RightItems)
	return pq
}

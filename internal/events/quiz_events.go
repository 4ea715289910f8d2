package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	eventSource  = "devquiz-service"
	eventVersion = "1.0"
)

// EventType represents the quiz lifecycle events emitted by the service
type EventType string

const (
	// Session events
	EventQuizStarted   EventType = "quiz.started"
	EventQuizCompleted EventType = "quiz.completed"
	EventQuizAbandoned EventType = "quiz.abandoned"

	// Bank events
	EventQuestionsImported EventType = "bank.questions_imported"
)

// QuizEvent is the envelope for all published events
type QuizEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Session event payloads

type QuizStartedEvent struct {
	SessionID     string    `json:"session_id"`
	TopicID       string    `json:"topic_id"`
	TopicName     string    `json:"topic_name"`
	QuestionCount int       `json:"question_count"`
	StartedAt     time.Time `json:"started_at"`
}

type QuizCompletedEvent struct {
	SessionID      string  `json:"session_id"`
	Topic          string  `json:"topic"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
	Level          string  `json:"level"`
	TimeSpent      int     `json:"time_spent"` // seconds
	Unanswered     int     `json:"unanswered"`
}

type QuizAbandonedEvent struct {
	SessionID   string    `json:"session_id"`
	TopicID     string    `json:"topic_id"`
	Answered    int       `json:"answered"`
	AbandonedAt time.Time `json:"abandoned_at"`
}

// Bank event payloads

type QuestionsImportedEvent struct {
	Format       string   `json:"format"`
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Topics       []string `json:"topics"`
}

// Event factory functions

func NewQuizStartedEvent(data QuizStartedEvent) *QuizEvent {
	return newEvent(EventQuizStarted, data)
}

func NewQuizCompletedEvent(data QuizCompletedEvent) *QuizEvent {
	return newEvent(EventQuizCompleted, data)
}

func NewQuizAbandonedEvent(data QuizAbandonedEvent) *QuizEvent {
	return newEvent(EventQuizAbandoned, data)
}

func NewQuestionsImportedEvent(data QuestionsImportedEvent) *QuizEvent {
	return newEvent(EventQuestionsImported, data)
}

func newEvent(eventType EventType, data interface{}) *QuizEvent {
	return &QuizEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// GenerateEventID returns a random UUID string
func GenerateEventID() string {
	return uuid.NewString()
}

package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/events"
	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"github.com/SAP-F-2025/devquiz-service/internal/quiz"
)

// QuizEventService publishes quiz lifecycle events. Publishing never blocks a transition: a
// failed publish is logged and returned, and callers are free to ignore it.
type QuizEventService interface {
	// Session notifications
	NotifyQuizStarted(ctx context.Context, session *quiz.Session) error
	NotifyQuizCompleted(ctx context.Context, result *models.QuizResult) error
	NotifyQuizAbandoned(ctx context.Context, session *quiz.Session, answered int) error

	// Bank notifications
	NotifyQuestionsImported(ctx context.Context, format string, summary *models.ImportSummary, topics []string) error
}

type quizEventService struct {
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewQuizEventService(eventPublisher events.EventPublisher, logger *slog.Logger) QuizEventService {
	return &quizEventService{
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// ===== SESSION NOTIFICATIONS =====

func (s *quizEventService) NotifyQuizStarted(ctx context.Context, session *quiz.Session) error {
	s.logger.Info("Publishing quiz started event", "session_id", session.ID, "topic_id", session.Topic.ID)

	event := events.NewQuizStartedEvent(events.QuizStartedEvent{
		SessionID:     session.ID,
		TopicID:       session.Topic.ID,
		TopicName:     session.Topic.Name,
		QuestionCount: session.Len(),
		StartedAt:     session.StartedAt,
	})
	return s.publish(ctx, event)
}

func (s *quizEventService) NotifyQuizCompleted(ctx context.Context, result *models.QuizResult) error {
	s.logger.Info("Publishing quiz completed event",
		"session_id", result.SessionID,
		"score", result.Score,
		"total", result.TotalQuestions)

	unanswered := 0
	for _, ua := range result.UserAnswers {
		if ua.Answer == nil || ua.Answer.IsEmpty() {
			unanswered++
		}
	}

	event := events.NewQuizCompletedEvent(events.QuizCompletedEvent{
		SessionID:      result.SessionID,
		Topic:          result.Topic,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Percentage,
		Level:          string(result.Level),
		TimeSpent:      result.TimeSpent,
		Unanswered:     unanswered,
	})
	return s.publish(ctx, event)
}

func (s *quizEventService) NotifyQuizAbandoned(ctx context.Context, session *quiz.Session, answered int) error {
	s.logger.Info("Publishing quiz abandoned event", "session_id", session.ID, "answered", answered)

	event := events.NewQuizAbandonedEvent(events.QuizAbandonedEvent{
		SessionID:   session.ID,
		TopicID:     session.Topic.ID,
		Answered:    answered,
		AbandonedAt: time.Now().UTC(),
	})
	return s.publish(ctx, event)
}

// ===== BANK NOTIFICATIONS =====

func (s *quizEventService) NotifyQuestionsImported(ctx context.Context, format string, summary *models.ImportSummary, topics []string) error {
	s.logger.Info("Publishing questions imported event",
		"format", format,
		"success_count", summary.SuccessCount,
		"error_count", summary.ErrorCount)

	event := events.NewQuestionsImportedEvent(events.QuestionsImportedEvent{
		Format:       format,
		SuccessCount: summary.SuccessCount,
		ErrorCount:   summary.ErrorCount,
		Topics:       topics,
	})
	return s.publish(ctx, event)
}

// ===== HELPER METHODS =====

func (s *quizEventService) publish(ctx context.Context, event *events.QuizEvent) error {
	if s.eventPublisher == nil {
		return nil
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Quiz event dropped",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return err
	}
	return nil
}

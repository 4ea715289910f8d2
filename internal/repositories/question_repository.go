package repositories

import (
	"context"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
)

// QuestionRepository is the read side of the question bank plus the batch writes used by
// seeding and import.
type QuestionRepository interface {
	// Topics
	ListTopics(ctx context.Context) ([]models.Topic, error)
	GetTopic(ctx context.Context, id string) (*models.Topic, error) // nil, nil when absent
	UpsertTopics(ctx context.Context, topics []models.Topic) error

	// Questions
	GetByTopic(ctx context.Context, topicID string) ([]*models.Question, error)
	CreateBatch(ctx context.Context, questions []*models.Question) error
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"github.com/SAP-F-2025/devquiz-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 100

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

// ListTopics returns every topic ordered by name
func (q *QuestionPostgreSQL) ListTopics(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	if err := q.db.WithContext(ctx).Order("name ASC").Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

func (q *QuestionPostgreSQL) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	var topic models.Topic
	if err := q.db.WithContext(ctx).Where("id = ?", id).First(&topic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &topic, nil
}

// UpsertTopics inserts topics and refreshes name, icon and description of existing ones
func (q *QuestionPostgreSQL) UpsertTopics(ctx context.Context, topics []models.Topic) error {
	if len(topics) == 0 {
		return nil
	}
	err := q.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "icon", "description", "updated_at"}),
		}).
		Create(&topics).Error
	if err != nil {
		return fmt.Errorf("failed to upsert topics: %w", err)
	}
	return nil
}

func (q *QuestionPostgreSQL) GetByTopic(ctx context.Context, topicID string) ([]*models.Question, error) {
	var questions []*models.Question
	if err := q.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to load questions for topic %s: %w", topicID, err)
	}
	return questions, nil
}

// CreateBatch inserts all questions in one transaction. Questions are immutable, so an id that
// already exists is left untouched.
func (q *QuestionPostgreSQL) CreateBatch(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(questions, batchSize).Error; err != nil {
			return fmt.Errorf("failed to create questions: %w", err)
		}
		return nil
	})
}

func (q *QuestionPostgreSQL) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var existing []string
	if err := q.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id IN ?", ids).
		Pluck("id", &existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (q *QuestionPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := q.db.WithContext(ctx).Model(&models.Question{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

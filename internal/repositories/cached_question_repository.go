package repositories

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/cache"
	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"golang.org/x/sync/singleflight"
)

const (
	topicsCacheKey       = "topics"
	questionsCachePrefix = "questions:"
)

// CachedQuestionRepository reads through a cache in front of another repository. Concurrent
// misses for the same key share one load. Cache failures are logged and never surface.
type CachedQuestionRepository struct {
	next   QuestionRepository
	cache  cache.CacheService
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func NewCachedQuestionRepository(next QuestionRepository, c cache.CacheService, ttl time.Duration, logger *slog.Logger) QuestionRepository {
	return &CachedQuestionRepository{
		next:   next,
		cache:  c,
		ttl:    ttl,
		logger: logger.With("component", "question_cache"),
	}
}

func (r *CachedQuestionRepository) ListTopics(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	if r.lookup(ctx, topicsCacheKey, &topics) {
		return topics, nil
	}

	v, err, _ := r.group.Do(topicsCacheKey, func() (interface{}, error) {
		loaded, err := r.next.ListTopics(ctx)
		if err != nil {
			return nil, err
		}
		r.store(ctx, topicsCacheKey, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Topic), nil
}

// GetTopic is served from the cached topic list.
func (r *CachedQuestionRepository) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	topics, err := r.ListTopics(ctx)
	if err != nil {
		return nil, err
	}
	for i := range topics {
		if topics[i].ID == id {
			return &topics[i], nil
		}
	}
	return nil, nil
}

func (r *CachedQuestionRepository) UpsertTopics(ctx context.Context, topics []models.Topic) error {
	if err := r.next.UpsertTopics(ctx, topics); err != nil {
		return err
	}
	r.invalidate(ctx, topicsCacheKey)
	return nil
}

func (r *CachedQuestionRepository) GetByTopic(ctx context.Context, topicID string) ([]*models.Question, error) {
	key := questionsCachePrefix + topicID

	var questions []*models.Question
	if r.lookup(ctx, key, &questions) {
		return questions, nil
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		loaded, err := r.next.GetByTopic(ctx, topicID)
		if err != nil {
			return nil, err
		}
		r.store(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*models.Question), nil
}

// CreateBatch writes through and drops the cached question lists of every touched topic.
func (r *CachedQuestionRepository) CreateBatch(ctx context.Context, questions []*models.Question) error {
	if err := r.next.CreateBatch(ctx, questions); err != nil {
		return err
	}

	touched := map[string]bool{}
	for _, q := range questions {
		if !touched[q.TopicID] {
			touched[q.TopicID] = true
			r.invalidate(ctx, questionsCachePrefix+q.TopicID)
		}
	}
	return nil
}

func (r *CachedQuestionRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	return r.next.ExistingIDs(ctx, ids)
}

func (r *CachedQuestionRepository) Count(ctx context.Context) (int64, error) {
	return r.next.Count(ctx)
}

func (r *CachedQuestionRepository) lookup(ctx context.Context, key string, dest interface{}) bool {
	err := r.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.WarnContext(ctx, "Cache read failed", "key", key, "error", err)
	}
	return false
}

func (r *CachedQuestionRepository) store(ctx context.Context, key string, value interface{}) {
	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		r.logger.WarnContext(ctx, "Cache write failed", "key", key, "error", err)
	}
}

func (r *CachedQuestionRepository) invalidate(ctx context.Context, key string) {
	if err := r.cache.Delete(ctx, key); err != nil {
		r.logger.WarnContext(ctx, "Cache invalidation failed", "key", key, "error", err)
	}
}

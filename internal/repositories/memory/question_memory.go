// Package memory keeps the question bank in process. It backs the service when no database is
// configured and doubles as the repository in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"github.com/SAP-F-2025/devquiz-service/internal/repositories"
)

type QuestionMemory struct {
	mu        sync.RWMutex
	topics    map[string]models.Topic
	questions map[string]*models.Question
	byTopic   map[string][]string
}

func NewQuestionMemory() repositories.QuestionRepository {
	return &QuestionMemory{
		topics:    map[string]models.Topic{},
		questions: map[string]*models.Question{},
		byTopic:   map[string][]string{},
	}
}

func (m *QuestionMemory) ListTopics(ctx context.Context) ([]models.Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	topics := make([]models.Topic, 0, len(m.topics))
	for _, t := range m.topics {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

func (m *QuestionMemory) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.topics[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *QuestionMemory) UpsertTopics(ctx context.Context, topics []models.Topic) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range topics {
		m.topics[t.ID] = t
	}
	return nil
}

// GetByTopic returns the topic's questions in insertion order. Callers get their own copies.
func (m *QuestionMemory) GetByTopic(ctx context.Context, topicID string) ([]*models.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byTopic[topicID]
	out := make([]*models.Question, 0, len(ids))
	for _, id := range ids {
		q := *m.questions[id]
		out = append(out, &q)
	}
	return out, nil
}

// CreateBatch stores new questions. Existing ids are kept as they are.
func (m *QuestionMemory) CreateBatch(ctx context.Context, questions []*models.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, q := range questions {
		if _, exists := m.questions[q.ID]; exists {
			continue
		}
		stored := *q
		m.questions[q.ID] = &stored
		m.byTopic[q.TopicID] = append(m.byTopic[q.TopicID], q.ID)
	}
	return nil
}

func (m *QuestionMemory) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var existing []string
	for _, id := range ids {
		if _, ok := m.questions[id]; ok {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

func (m *QuestionMemory) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.questions)), nil
}

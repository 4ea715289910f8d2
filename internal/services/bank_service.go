package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/devquiz-service/internal/bank"
	"github.com/SAP-F-2025/devquiz-service/internal/repositories"
)

// SeedQuestionBank upserts the seed topics and inserts the seed questions the repository does
// not hold yet. It returns how many questions were inserted.
func SeedQuestionBank(ctx context.Context, repo repositories.QuestionRepository, seed *bank.Seed, logger *slog.Logger) (int, error) {
	if err := repo.UpsertTopics(ctx, seed.Topics); err != nil {
		return 0, fmt.Errorf("failed to seed topics: %w", err)
	}

	ids := make([]string, len(seed.Questions))
	for i, q := range seed.Questions {
		ids[i] = q.ID
	}
	existing, err := repo.ExistingIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to check seeded questions: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, id := range existing {
		have[id] = true
	}

	missing := seed.Questions[:0:0]
	for _, q := range seed.Questions {
		if !have[q.ID] {
			missing = append(missing, q)
		}
	}
	if len(missing) > 0 {
		if err := repo.CreateBatch(ctx, missing); err != nil {
			return 0, fmt.Errorf("failed to seed questions: %w", err)
		}
	}

	logger.Info("Question bank seeded",
		"topics", len(seed.Topics),
		"inserted", len(missing),
		"already_present", len(existing))
	return len(missing), nil
}

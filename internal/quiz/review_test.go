package quiz

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReview(t *testing.T) {
	session := fixedSession("s1", time.Now(),
		singleQ("q1", "topic-x", "A", "A", "B"),
		fillQ("q2", "topic-x", "defer"),
		fillQ("q3", "topic-x", "go"),
		multiQ("q4", "topic-x", []string{"a"}, "a", "b"),
	)
	answers := NewAnswerStore().
		Set("q1", models.TextAnswer(models.SingleChoice, "A")).
		Set("q2", models.TextAnswer(models.FillIn, "defer")).
		Set("q3", models.TextAnswer(models.FillIn, "rust"))

	result := Score(session, answers, time.Now())
	report := BuildReview(session, result)

	require.Len(t, report.Items, 4)
	assert.Equal(t, 1, report.Items[0].Index)
	assert.Equal(t, "q1", report.Items[0].QuestionID)
	assert.Equal(t, "because q1", report.Items[0].Explanation)
	assert.True(t, report.Items[0].IsCorrect)
	assert.Nil(t, report.Items[3].UserAnswer)
	assert.Equal(t, []string{"a"}, report.Items[3].CorrectAnswer.Choices)

	fill := report.ByType[models.FillIn]
	require.NotNil(t, fill)
	assert.Equal(t, 2, fill.Total)
	assert.Equal(t, 1, fill.Correct)
	assert.InDelta(t, 0.5, fill.CorrectRate, 1e-9)

	hard := report.ByDifficulty[models.DifficultyHard]
	require.NotNil(t, hard)
	assert.Equal(t, 1, hard.Total)
	assert.Equal(t, 0.0, hard.CorrectRate)

	assert.Equal(t, result, report.Result)
}

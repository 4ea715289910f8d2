package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/SAP-F-2025/devquiz-service/internal/bank"
	"github.com/SAP-F-2025/devquiz-service/internal/events"
	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"github.com/SAP-F-2025/devquiz-service/internal/repositories"
	"github.com/SAP-F-2025/devquiz-service/internal/repositories/memory"
	"github.com/SAP-F-2025/devquiz-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const importCSV = `id,topic,type,difficulty,question_text,options,correct_answer,explanation
imp-1,golang,single,easy,Which keyword starts a goroutine?,go|defer|chan,go,The go statement.
imp-2,golang,multiple,medium,Which are composite types?,map|int|struct,map|struct,
imp-3,golang,fill,easy,Zero value of a pointer,,nil,
imp-4,golang,drag-drop,hard,Match the verbs,,%d=decimal|%s=string,
imp-5,golang,single,easy,Key is not an option,a|b,c,
imp-6,cobol,fill,easy,Unknown topic,,x,
imp-1,golang,fill,easy,Duplicate id,,x,
`

type importFixture struct {
	svc       ImportExportService
	repo      repositories.QuestionRepository
	publisher *events.MockEventPublisher
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()
	repo := memory.NewQuestionMemory()
	require.NoError(t, repo.UpsertTopics(context.Background(), []models.Topic{{ID: "golang", Name: "Go"}}))

	publisher := events.NewMockEventPublisher(discardLogger())
	svc, err := NewImportExportService(repo, NewQuizEventService(publisher, discardLogger()), discardLogger(), validator.New())
	require.NoError(t, err)
	return &importFixture{svc: svc, repo: repo, publisher: publisher}
}

func errorCodes(summary *models.ImportSummary) map[int]string {
	out := map[int]string{}
	for _, e := range summary.Errors {
		out[e.Row] = e.Code
	}
	return out
}

func TestImportQuestionsFromCSV(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)

	summary, err := f.svc.ImportQuestionsFromFile(ctx, strings.NewReader(importCSV), "bank.csv")
	require.NoError(t, err)

	assert.Equal(t, models.ImportCompleted, summary.Status)
	assert.Equal(t, 7, summary.TotalRows)
	assert.Equal(t, 4, summary.SuccessCount)
	assert.Equal(t, 3, summary.ErrorCount)
	assert.ElementsMatch(t, []string{"imp-1", "imp-2", "imp-3", "imp-4"}, summary.CreatedQuestions)
	assert.Equal(t, map[int]string{5: "invalid_question", 6: "unknown_topic", 7: "duplicate"}, errorCodes(summary))

	stored, err := f.repo.GetByTopic(ctx, "golang")
	require.NoError(t, err)
	byID := map[string]*models.Question{}
	for _, q := range stored {
		byID[q.ID] = q
	}
	assert.Equal(t, []string{"map", "struct"}, byID["imp-2"].Key().Choices)
	assert.Equal(t, models.Matching, byID["imp-4"].Type)
	assert.Equal(t, map[string]string{"%d": "decimal", "%s": "string"}, byID["imp-4"].Key().Pairs)
	assert.Len(t, byID["imp-4"].MatchingPairs, 2)

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	data := published[0].Data.(events.QuestionsImportedEvent)
	assert.Equal(t, "csv", data.Format)
	assert.Equal(t, []string{"golang"}, data.Topics)
}

func TestImportQuestionsFromCSV_ExistingQuestions(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)

	_, err := f.svc.ImportQuestionsFromCSV(ctx, strings.NewReader(importCSV))
	require.NoError(t, err)
	f.publisher.ClearEvents()

	summary, err := f.svc.ImportQuestionsFromCSV(ctx, strings.NewReader(importCSV))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.SuccessCount)
	assert.Equal(t, models.ImportValidationFailed, summary.Status)
	assert.Equal(t, "duplicate", errorCodes(summary)[1])
	assert.Empty(t, f.publisher.GetPublishedEvents())
}

func TestImportQuestions_RejectedFiles(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)

	tests := []struct {
		name     string
		filename string
		content  string
		check    func(t *testing.T, err error)
	}{
		{
			name:     "unsupported extension",
			filename: "bank.txt",
			content:  "anything",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnsupportedImportFormat)
			},
		},
		{
			name:     "header only",
			filename: "bank.csv",
			content:  "id,topic,type,question_text,correct_answer\n",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrEmptyImport)
			},
		},
		{
			name:     "missing required columns",
			filename: "bank.csv",
			content:  "id,topic\nq1,golang\n",
			check: func(t *testing.T, err error) {
				var verrs ValidationErrors
				require.ErrorAs(t, err, &verrs)
				assert.Len(t, verrs, 3)
			},
		},
		{
			name:     "schema violation",
			filename: "bank.json",
			content:  `{"questions":[{"id":"q1","topic":"golang","type":"fill","difficulty":"extreme","question_text":"x"}]}`,
			check: func(t *testing.T, err error) {
				var verrs ValidationErrors
				require.ErrorAs(t, err, &verrs)
				assert.True(t, IsValidation(err))
			},
		},
		{
			name:     "malformed json",
			filename: "bank.json",
			content:  `{"questions": [`,
			check: func(t *testing.T, err error) {
				assert.True(t, IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ImportQuestionsFromFile(ctx, strings.NewReader(tt.content), tt.filename)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestImportQuestionsFromJSON(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)

	doc := `{
  "topics": [{"id": "python", "name": "Python", "icon": "P"}],
  "questions": [
    {"id": "py-1", "topic": "python", "type": "single", "difficulty": "easy",
     "question_text": "Keyword for functions", "options": ["def", "fn"], "correct_answer": "def"},
    {"id": "py-2", "topic": "python", "type": "multiple", "difficulty": "medium",
     "question_text": "Immutable types", "options": ["tuple", "list", "str"], "correct_answer": ["tuple", "str"]},
    {"id": "py-3", "topic": "python", "type": "matching", "difficulty": "hard",
     "question_text": "Match", "correct_answer": {"len": "size", "abs": "magnitude"}},
    {"id": "py-4", "topic": "python", "type": "fill", "difficulty": "easy",
     "question_text": "Bad answer shape", "correct_answer": 42}
  ]
}`
	summary, err := f.svc.ImportQuestionsFromJSON(ctx, strings.NewReader(doc))
	require.Error(t, err, "a numeric answer fails the schema")
	assert.Nil(t, summary)

	doc = strings.Replace(doc, `"correct_answer": 42`, `"correct_answer": "ok"`, 1)
	summary, err = f.svc.ImportQuestionsFromJSON(ctx, strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 4, summary.SuccessCount)

	topic, err := f.repo.GetTopic(ctx, "python")
	require.NoError(t, err)
	require.NotNil(t, topic)
	assert.Equal(t, "Python", topic.Name)

	stored, err := f.repo.GetByTopic(ctx, "python")
	require.NoError(t, err)
	assert.Len(t, stored, 4)
}

func TestImportQuestionsFromExcel(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)

	wb := excelize.NewFile()
	rows := [][]interface{}{
		{"ID", "Topic", "Type", "Difficulty", "Question", "Options", "Answer"},
		{"x-1", "golang", "single", "Easy", "Pick one", "yes|no", "yes"},
		{"x-2", "golang", "fill", "", "Blank difficulty defaults", "", "ok"},
		{},
		{"x-3", "golang", "fill", "easy", "No answer", "", ""},
	}
	for i, row := range rows {
		require.NoError(t, setRow(wb, "Sheet1", i+1, row))
	}
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	summary, err := f.svc.ImportQuestionsFromFile(ctx, bytes.NewReader(buf.Bytes()), "Bank.XLSX")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)

	stored, err := f.repo.GetByTopic(ctx, "golang")
	require.NoError(t, err)
	for _, q := range stored {
		if q.ID == "x-2" {
			assert.Equal(t, models.DifficultyMedium, q.Difficulty)
		}
	}
}

func TestExportQuestionsToCSV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)
	_, err := f.svc.ImportQuestionsFromCSV(ctx, strings.NewReader(importCSV))
	require.NoError(t, err)

	data, err := f.svc.ExportQuestionsToCSV(ctx, "golang")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id,topic,type,difficulty,question_text"))

	other := newImportFixture(t)
	summary, err := other.svc.ImportQuestionsFromCSV(ctx, bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 4, summary.SuccessCount)
	assert.Zero(t, summary.ErrorCount)

	_, err = f.svc.ExportQuestionsToCSV(ctx, "cobol")
	assert.ErrorIs(t, err, ErrTopicNotFound)
}

func TestExportReviewToExcel(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)

	user := models.ChoicesAnswer("map")
	ref := "https://go.dev/ref/spec"
	view := &ResultView{
		Review: models.ReviewReport{
			Result: models.QuizResult{SessionID: "s-1", Topic: "Go", Score: 1, TotalQuestions: 2, Percentage: 50, Level: models.LevelBeginner},
			Items: []models.ReviewItem{
				{Index: 1, Prompt: "Pick", Type: models.MultipleChoice, UserAnswer: &user, CorrectAnswer: models.ChoicesAnswer("map", "slice"), Reference: &ref},
				{Index: 2, Prompt: "Match", Type: models.Matching, CorrectAnswer: models.PairsAnswer(map[string]string{"b": "2", "a": "1"}), IsCorrect: true},
			},
		},
		Feedback: FeedbackView{Text: "Study maps."},
	}

	data, err := f.svc.ExportReviewToExcel(ctx, view)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Summary", "Review"}, wb.GetSheetList())

	topic, err := wb.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Go", topic)

	rows, err := wb.GetRows("Review")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "map", rows[1][4])
	assert.Equal(t, "map, slice", rows[1][5])
	assert.Equal(t, "Incorrect", rows[1][6])
	assert.Equal(t, "(no answer)", rows[2][4])
	assert.Equal(t, "a -> 1; b -> 2", rows[2][5])

	_, err = f.svc.ExportReviewToExcel(ctx, nil)
	assert.ErrorIs(t, err, ErrResultNotReady)
}

func TestSeedQuestionBank(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewQuestionMemory()

	seed, err := bank.Default(validator.New())
	require.NoError(t, err)

	inserted, err := SeedQuestionBank(ctx, repo, seed, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, len(seed.Questions), inserted)

	inserted, err = SeedQuestionBank(ctx, repo, seed, discardLogger())
	require.NoError(t, err)
	assert.Zero(t, inserted)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(seed.Questions)), count)
}

package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "github.com/SAP-F-2025/devquiz-service/internal/errors"
	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"github.com/SAP-F-2025/devquiz-service/internal/repositories"
	"github.com/SAP-F-2025/devquiz-service/internal/validator"
	playground "github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

const (
	maxImportRows = 1000
	listSeparator = "|"
	pairSeparator = "="
)

// ImportExportService moves questions in and out of the bank and renders completed quizzes as
// spreadsheets.
type ImportExportService interface {
	// Import operations
	ImportQuestionsFromFile(ctx context.Context, file io.Reader, filename string) (*models.ImportSummary, error)
	ImportQuestionsFromCSV(ctx context.Context, file io.Reader) (*models.ImportSummary, error)
	ImportQuestionsFromExcel(ctx context.Context, file io.Reader) (*models.ImportSummary, error)
	ImportQuestionsFromJSON(ctx context.Context, file io.Reader) (*models.ImportSummary, error)

	// Export operations
	ExportQuestionsToCSV(ctx context.Context, topicID string) ([]byte, error)
	ExportReviewToExcel(ctx context.Context, result *ResultView) ([]byte, error)
}

type importExportService struct {
	repo      repositories.QuestionRepository
	events    QuizEventService
	logger    *slog.Logger
	validator *validator.Validator
	schema    *gojsonschema.Schema
}

func NewImportExportService(
	repo repositories.QuestionRepository,
	eventService QuizEventService,
	logger *slog.Logger,
	validator *validator.Validator,
) (ImportExportService, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(importDocumentSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile import schema: %w", err)
	}
	return &importExportService{
		repo:      repo,
		events:    eventService,
		logger:    logger,
		validator: validator,
		schema:    schema,
	}, nil
}

// questionRow is one question as read from any import format, before validation.
type questionRow struct {
	row         int
	id          string
	topic       string
	qtype       string
	difficulty  string
	prompt      string
	code        string
	explanation string
	reference   string
	options     []string
	pairs       []models.MatchingPair

	answerText    string
	answerChoices []string
	answerPairs   map[string]string
}

// ===== IMPORT OPERATIONS =====

func (s *importExportService) ImportQuestionsFromFile(ctx context.Context, file io.Reader, filename string) (*models.ImportSummary, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return s.ImportQuestionsFromCSV(ctx, file)
	case ".xlsx", ".xls":
		return s.ImportQuestionsFromExcel(ctx, file)
	case ".json":
		return s.ImportQuestionsFromJSON(ctx, file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImportFormat, filepath.Ext(filename))
	}
}

func (s *importExportService) ImportQuestionsFromCSV(ctx context.Context, file io.Reader) (*models.ImportSummary, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV: %v", ErrValidationFailed, err)
	}

	rows, rowErrs, err := s.parseRecords(records)
	if err != nil {
		return nil, err
	}
	return s.importRows(ctx, "csv", nil, rows, rowErrs)
}

func (s *importExportService) ImportQuestionsFromExcel(ctx context.Context, file io.Reader) (*models.ImportSummary, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel file: %v", ErrValidationFailed, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyImport
	}

	// Questions are read from the first sheet
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	rows, rowErrs, err := s.parseRecords(records)
	if err != nil {
		return nil, err
	}
	return s.importRows(ctx, "xlsx", nil, rows, rowErrs)
}

type importDocument struct {
	Topics    []models.Topic   `json:"topics"`
	Questions []importQuestion `json:"questions"`
}

type importQuestion struct {
	ID            string                `json:"id"`
	Topic         string                `json:"topic"`
	Type          string                `json:"type"`
	Difficulty    string                `json:"difficulty"`
	Prompt        string                `json:"question_text"`
	CodeSnippet   string                `json:"code_snippet"`
	Options       []string              `json:"options"`
	MatchingPairs []models.MatchingPair `json:"matching_pairs"`
	CorrectAnswer json.RawMessage       `json:"correct_answer"`
	Explanation   string                `json:"explanation"`
	Reference     string                `json:"reference"`
}

// ImportQuestionsFromJSON reads a bank document. Topics listed in the document are upserted
// before its questions are checked against them.
func (s *importExportService) ImportQuestionsFromJSON(ctx context.Context, file io.Reader) (*models.ImportSummary, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %v", ErrValidationFailed, err)
	}
	if !result.Valid() {
		var verrs ValidationErrors
		for _, desc := range result.Errors() {
			verrs = append(verrs, *NewValidationError(desc.Field(), desc.Description(), desc.Value()))
		}
		return nil, verrs
	}

	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if len(doc.Questions) > maxImportRows {
		return nil, ErrImportTooLarge
	}

	rows := make([]questionRow, 0, len(doc.Questions))
	var rowErrs []models.ImportValidationError
	for i, q := range doc.Questions {
		row := questionRow{
			row:         i + 1,
			id:          strings.TrimSpace(q.ID),
			topic:       strings.TrimSpace(q.Topic),
			qtype:       strings.TrimSpace(q.Type),
			difficulty:  strings.TrimSpace(q.Difficulty),
			prompt:      q.Prompt,
			code:        q.CodeSnippet,
			explanation: q.Explanation,
			reference:   q.Reference,
			options:     q.Options,
			pairs:       q.MatchingPairs,
		}
		if err := decodeJSONAnswer(q.CorrectAnswer, &row); err != nil {
			rowErrs = append(rowErrs, models.ImportValidationError{
				Row: row.row, Column: "correct_answer", Message: err.Error(), Value: string(q.CorrectAnswer), Code: "invalid_value",
			})
			continue
		}
		rows = append(rows, row)
	}

	return s.importRows(ctx, "json", doc.Topics, rows, rowErrs)
}

// ===== EXPORT OPERATIONS =====

var exportColumns = []string{
	"id", "topic", "type", "difficulty", "question_text", "code_snippet",
	"options", "correct_answer", "explanation", "reference",
}

// ExportQuestionsToCSV writes a topic in the same layout ImportQuestionsFromCSV reads.
func (s *importExportService) ExportQuestionsToCSV(ctx context.Context, topicID string) ([]byte, error) {
	topic, err := s.repo.GetTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	questions, err := s.repo.GetByTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, q := range questions {
		record := []string{
			q.ID,
			q.TopicID,
			string(q.Type),
			string(q.Difficulty),
			q.Prompt,
			deref(q.CodeSnippet),
			strings.Join(q.Options, listSeparator),
			encodeAnswer(q.Key()),
			q.Explanation,
			deref(q.Reference),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	s.logger.Info("Exported questions", "topic_id", topicID, "count", len(questions))
	return buf.Bytes(), nil
}

// ExportReviewToExcel renders a completed quiz as a workbook with a summary sheet and one row
// per question.
func (s *importExportService) ExportReviewToExcel(ctx context.Context, result *ResultView) ([]byte, error) {
	if result == nil {
		return nil, ErrResultNotReady
	}
	review := result.Review

	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	summary := [][]interface{}{
		{"Session", review.Result.SessionID},
		{"Topic", review.Result.Topic},
		{"Score", fmt.Sprintf("%d / %d", review.Result.Score, review.Result.TotalQuestions)},
		{"Percentage", review.Result.Percentage},
		{"Level", string(review.Result.Level)},
		{"Time spent (s)", review.Result.TimeSpent},
		{"Feedback", result.Feedback.Text},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return nil, err
		}
	}

	const reviewSheet = "Review"
	reviewIndex, err := f.NewSheet(reviewSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []interface{}{"#", "Question", "Type", "Difficulty", "Your answer", "Correct answer", "Result", "Explanation", "Reference"}
	if err := setRow(f, reviewSheet, 1, headers); err != nil {
		return nil, err
	}
	for i, item := range review.Items {
		verdict := "Incorrect"
		if item.IsCorrect {
			verdict = "Correct"
		}
		correct := item.CorrectAnswer
		row := []interface{}{
			item.Index,
			item.Prompt,
			string(item.Type),
			string(item.Difficulty),
			formatAnswer(item.UserAnswer),
			formatAnswer(&correct),
			verdict,
			item.Explanation,
			deref(item.Reference),
		}
		if err := setRow(f, reviewSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(reviewIndex)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buffer.Bytes(), nil
}

// ===== HELPER METHODS =====

var headerAliases = map[string]string{
	"question": "question_text",
	"answer":   "correct_answer",
	"code":     "code_snippet",
}

// parseRecords maps a header row plus data rows to question rows. Row numbers are 1-based data
// rows, not counting the header.
func (s *importExportService) parseRecords(records [][]string) ([]questionRow, []models.ImportValidationError, error) {
	if len(records) < 2 {
		return nil, nil, ErrEmptyImport
	}
	if len(records)-1 > maxImportRows {
		return nil, nil, ErrImportTooLarge
	}

	headerMap := make(map[string]int)
	for i, header := range records[0] {
		name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(header)), " ", "_")
		if alias, ok := headerAliases[name]; ok {
			name = alias
		}
		headerMap[name] = i
	}

	var missing ValidationErrors
	for _, col := range []string{"id", "topic", "type", "question_text", "correct_answer"} {
		if _, exists := headerMap[col]; !exists {
			missing = append(missing, *NewValidationError(col, "required column is missing", nil))
		}
	}
	if len(missing) > 0 {
		return nil, nil, missing
	}

	var rows []questionRow
	var rowErrs []models.ImportValidationError
	for i, record := range records[1:] {
		getColumn := func(name string) string {
			if idx, exists := headerMap[name]; exists && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}

		if isBlank(record) {
			continue
		}

		row := questionRow{
			row:         i + 1,
			id:          getColumn("id"),
			topic:       getColumn("topic"),
			qtype:       getColumn("type"),
			difficulty:  strings.ToLower(getColumn("difficulty")),
			prompt:      getColumn("question_text"),
			code:        getColumn("code_snippet"),
			explanation: getColumn("explanation"),
			reference:   getColumn("reference"),
			options:     splitList(getColumn("options")),
		}
		if row.difficulty == "" {
			row.difficulty = string(models.DifficultyMedium)
		}

		answer := getColumn("correct_answer")
		qt, _ := models.ParseQuestionType(row.qtype)
		switch qt {
		case models.MultipleChoice:
			row.answerChoices = splitList(answer)
		case models.Matching:
			pairs, err := parsePairs(answer)
			if err != nil {
				rowErrs = append(rowErrs, models.ImportValidationError{
					Row: row.row, Column: "correct_answer", Message: err.Error(), Value: answer, Code: "invalid_value",
				})
				continue
			}
			row.answerPairs = pairs
		default:
			row.answerText = answer
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 && len(rowErrs) == 0 {
		return nil, nil, ErrEmptyImport
	}
	return rows, rowErrs, nil
}

// importRows validates rows, drops duplicates and stores the rest in one batch.
func (s *importExportService) importRows(ctx context.Context, format string, topics []models.Topic, rows []questionRow, rowErrs []models.ImportValidationError) (*models.ImportSummary, error) {
	startTime := time.Now()
	summary := &models.ImportSummary{
		TotalRows:        len(rows) + countRows(rowErrs),
		CreatedQuestions: []string{},
		Errors:           rowErrs,
		Status:           models.ImportProcessing,
	}

	if len(topics) > 0 {
		for i := range topics {
			if err := s.validator.ValidateStruct(&topics[i]); err != nil {
				return nil, toValidationErrors(err)
			}
		}
		if err := s.repo.UpsertTopics(ctx, topics); err != nil {
			return nil, fmt.Errorf("failed to save topics: %w", err)
		}
	}

	known, err := s.topicSet(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]*models.Question, 0, len(rows))
	candidateRows := make([]int, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for _, row := range rows {
		summary.ProcessedRows++

		q, errs := s.buildQuestion(row)
		if len(errs) == 0 && !known[q.TopicID] {
			errs = append(errs, models.ImportValidationError{
				Row: row.row, Column: "topic", Message: "topic does not exist", Value: row.topic, Code: "unknown_topic",
			})
		}
		if len(errs) == 0 {
			if first, dup := seen[q.ID]; dup {
				errs = append(errs, models.ImportValidationError{
					Row: row.row, Column: "id", Message: fmt.Sprintf("duplicate of row %d", first), Value: q.ID, Code: "duplicate",
				})
			}
		}
		if len(errs) > 0 {
			summary.Errors = append(summary.Errors, errs...)
			continue
		}
		seen[q.ID] = row.row
		candidates = append(candidates, q)
		candidateRows = append(candidateRows, row.row)
	}

	if len(candidates) > 0 {
		ids := make([]string, len(candidates))
		for i, q := range candidates {
			ids[i] = q.ID
		}
		existing, err := s.repo.ExistingIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing questions: %w", err)
		}
		exists := make(map[string]bool, len(existing))
		for _, id := range existing {
			exists[id] = true
		}

		fresh := candidates[:0]
		for i, q := range candidates {
			if exists[q.ID] {
				summary.Errors = append(summary.Errors, models.ImportValidationError{
					Row: candidateRows[i], Column: "id", Message: "question already exists", Value: q.ID, Code: "duplicate",
				})
				continue
			}
			fresh = append(fresh, q)
		}

		if len(fresh) > 0 {
			if err := s.repo.CreateBatch(ctx, fresh); err != nil {
				return nil, fmt.Errorf("failed to save questions: %w", err)
			}
			for _, q := range fresh {
				summary.CreatedQuestions = append(summary.CreatedQuestions, q.ID)
			}
		}
	}

	summary.SuccessCount = len(summary.CreatedQuestions)
	summary.ErrorCount = countRows(summary.Errors)
	summary.ProcessingTime = time.Since(startTime)
	summary.Status = models.ImportCompleted
	if summary.SuccessCount == 0 && summary.ErrorCount > 0 {
		summary.Status = models.ImportValidationFailed
	}

	s.logger.Info("Questions imported",
		"format", format,
		"total_rows", summary.TotalRows,
		"success_count", summary.SuccessCount,
		"error_count", summary.ErrorCount,
		"duration", summary.ProcessingTime)

	if summary.SuccessCount > 0 {
		_ = s.events.NotifyQuestionsImported(ctx, format, summary, touchedTopics(candidates, summary.CreatedQuestions))
	}
	return summary, nil
}

// buildQuestion converts a row and runs the struct and answer-shape checks on it.
func (s *importExportService) buildQuestion(row questionRow) (*models.Question, []models.ImportValidationError) {
	qt, ok := models.ParseQuestionType(row.qtype)
	if !ok {
		return nil, []models.ImportValidationError{{
			Row: row.row, Column: "type", Message: "unknown question type", Value: row.qtype, Code: "invalid_value",
		}}
	}

	var key models.AnswerValue
	pairs := row.pairs
	switch qt {
	case models.MultipleChoice:
		key = models.ChoicesAnswer(row.answerChoices...)
	case models.Matching:
		key = models.PairsAnswer(row.answerPairs)
		if len(pairs) == 0 {
			pairs = pairsFromKey(row.answerPairs)
		}
	default:
		key = models.TextAnswer(qt, row.answerText)
	}

	q := &models.Question{
		ID:            row.id,
		TopicID:       row.topic,
		Difficulty:    models.DifficultyLevel(row.difficulty),
		Type:          qt,
		Prompt:        row.prompt,
		Options:       row.options,
		MatchingPairs: pairs,
		CorrectAnswer: datatypes.NewJSONType(key),
		Explanation:   row.explanation,
	}
	if row.code != "" {
		code := row.code
		q.CodeSnippet = &code
	}
	if row.reference != "" {
		ref := row.reference
		q.Reference = &ref
	}

	err := s.validator.Validate(q)
	if err == nil {
		return q, nil
	}

	var fieldErrs playground.ValidationErrors
	if errors.As(err, &fieldErrs) {
		var out []models.ImportValidationError
		for _, fe := range apperrors.ToValidationErrors(err) {
			out = append(out, models.ImportValidationError{
				Row: row.row, Column: fe.Field, Message: fe.Message, Value: fmt.Sprint(fe.Value), Code: "invalid_value",
			})
		}
		return nil, out
	}
	return nil, []models.ImportValidationError{{
		Row: row.row, Column: "correct_answer", Message: err.Error(), Code: "invalid_question",
	}}
}

func (s *importExportService) topicSet(ctx context.Context) (map[string]bool, error) {
	topics, err := s.repo.ListTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	known := make(map[string]bool, len(topics))
	for _, t := range topics {
		known[t.ID] = true
	}
	return known, nil
}

func decodeJSONAnswer(raw json.RawMessage, row *questionRow) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	switch raw[0] {
	case '"':
		return json.Unmarshal(raw, &row.answerText)
	case '[':
		return json.Unmarshal(raw, &row.answerChoices)
	case '{':
		return json.Unmarshal(raw, &row.answerPairs)
	}
	return fmt.Errorf("correct_answer must be a string, a list or an object")
}

func toValidationErrors(err error) error {
	var fieldErrs playground.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.ToValidationErrors(err)
	}
	return err
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, listSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parsePairs reads "left=right|left=right".
func parsePairs(s string) (map[string]string, error) {
	pairs := map[string]string{}
	for _, part := range splitList(s) {
		left, right, ok := strings.Cut(part, pairSeparator)
		if !ok {
			return nil, fmt.Errorf("pair %q must be written as left%sright", part, pairSeparator)
		}
		pairs[strings.TrimSpace(left)] = strings.TrimSpace(right)
	}
	return pairs, nil
}

func pairsFromKey(key map[string]string) []models.MatchingPair {
	lefts := make([]string, 0, len(key))
	for left := range key {
		lefts = append(lefts, left)
	}
	sort.Strings(lefts)

	pairs := make([]models.MatchingPair, len(lefts))
	for i, left := range lefts {
		pairs[i] = models.MatchingPair{ID: fmt.Sprint(i + 1), Left: left, Right: key[left]}
	}
	return pairs
}

// encodeAnswer is the inverse of the CSV answer column parsing.
func encodeAnswer(a models.AnswerValue) string {
	switch a.Kind {
	case models.MultipleChoice:
		return strings.Join(a.Choices, listSeparator)
	case models.Matching:
		parts := make([]string, 0, len(a.Pairs))
		for _, p := range pairsFromKey(a.Pairs) {
			parts = append(parts, p.Left+pairSeparator+p.Right)
		}
		return strings.Join(parts, listSeparator)
	default:
		return a.Text
	}
}

func formatAnswer(a *models.AnswerValue) string {
	if a == nil || a.IsEmpty() {
		return "(no answer)"
	}
	switch a.Kind {
	case models.MultipleChoice:
		return strings.Join(a.Choices, ", ")
	case models.Matching:
		parts := make([]string, 0, len(a.Pairs))
		for _, p := range pairsFromKey(a.Pairs) {
			parts = append(parts, p.Left+" -> "+p.Right)
		}
		return strings.Join(parts, "; ")
	default:
		return a.Text
	}
}

func touchedTopics(questions []*models.Question, created []string) []string {
	ok := make(map[string]bool, len(created))
	for _, id := range created {
		ok[id] = true
	}
	set := map[string]bool{}
	for _, q := range questions {
		if ok[q.ID] {
			set[q.TopicID] = true
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// countRows counts distinct rows among errors; a row may carry several.
func countRows(errs []models.ImportValidationError) int {
	rows := make(map[int]struct{}, len(errs))
	for _, e := range errs {
		rows[e.Row] = struct{}{}
	}
	return len(rows)
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

const importDocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["questions"],
  "properties": {
    "topics": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "icon": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    },
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "topic", "type", "difficulty", "question_text"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "topic": {"type": "string", "minLength": 1},
          "type": {"type": "string", "enum": ["single", "multiple", "fill", "matching", "drag-drop", "drag_drop"]},
          "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
          "question_text": {"type": "string", "minLength": 1},
          "code_snippet": {"type": "string"},
          "options": {"type": "array", "items": {"type": "string"}},
          "matching_pairs": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["left", "right"],
              "properties": {
                "id": {"type": "string"},
                "left": {"type": "string"},
                "right": {"type": "string"}
              }
            }
          },
          "correct_answer": {"type": ["string", "array", "object"]},
          "explanation": {"type": "string"},
          "reference": {"type": "string"}
        }
      }
    }
  }
}`

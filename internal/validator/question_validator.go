package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
)

// QuestionValidator checks that a question's answer key fits its type. Questions are checked
// once when they enter the bank; scoring relies on it.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates a complete question object
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if strings.TrimSpace(question.Prompt) == "" {
		return fmt.Errorf("question text is required")
	}

	key := question.Key()
	if key.Kind != question.Type {
		return fmt.Errorf("correct answer is a %q answer but the question type is %q", key.Kind, question.Type)
	}

	switch question.Type {
	case models.SingleChoice:
		return v.validateSingleChoice(question, key)
	case models.MultipleChoice:
		return v.validateMultipleChoice(question, key)
	case models.FillIn:
		return v.validateFillIn(key)
	case models.Matching:
		return v.validateMatching(question, key)
	default:
		return fmt.Errorf("unsupported question type: %s", question.Type)
	}
}

// ValidateBatch validates multiple questions
func (v *QuestionValidator) ValidateBatch(questions []*models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("question batch cannot be empty")
	}

	seen := make(map[string]bool, len(questions))
	for i, question := range questions {
		if seen[question.ID] {
			return fmt.Errorf("validation failed for question %d: duplicate id %q", i+1, question.ID)
		}
		seen[question.ID] = true

		if err := v.ValidateQuestion(question); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
	}

	return nil
}

func (v *QuestionValidator) validateOptions(options []string) error {
	if len(options) < 2 {
		return fmt.Errorf("must have at least 2 options")
	}

	if len(options) > 10 {
		return fmt.Errorf("cannot have more than 10 options")
	}

	seen := make(map[string]bool, len(options))
	for _, option := range options {
		if strings.TrimSpace(option) == "" {
			return fmt.Errorf("option text cannot be empty")
		}
		if seen[option] {
			return fmt.Errorf("duplicate option %q", option)
		}
		seen[option] = true
	}
	return nil
}

func (v *QuestionValidator) validateSingleChoice(question *models.Question, key models.AnswerValue) error {
	if err := v.validateOptions(question.Options); err != nil {
		return err
	}

	for _, option := range question.Options {
		if strings.EqualFold(strings.TrimSpace(option), strings.TrimSpace(key.Text)) {
			return nil
		}
	}
	return fmt.Errorf("correct answer %q does not match any option", key.Text)
}

func (v *QuestionValidator) validateMultipleChoice(question *models.Question, key models.AnswerValue) error {
	if err := v.validateOptions(question.Options); err != nil {
		return err
	}

	if len(key.Choices) == 0 {
		return fmt.Errorf("must have at least 1 correct answer")
	}

	optionSet := make(map[string]bool, len(question.Options))
	for _, option := range question.Options {
		optionSet[option] = true
	}
	for _, choice := range key.Choices {
		if !optionSet[choice] {
			return fmt.Errorf("correct answer %q does not match any option", choice)
		}
	}
	return nil
}

func (v *QuestionValidator) validateFillIn(key models.AnswerValue) error {
	if strings.TrimSpace(key.Text) == "" {
		return fmt.Errorf("fill-in answer cannot be empty")
	}
	return nil
}

func (v *QuestionValidator) validateMatching(question *models.Question, key models.AnswerValue) error {
	if len(question.MatchingPairs) < 2 {
		return fmt.Errorf("must have at least 2 pairs")
	}

	if len(key.Pairs) != len(question.MatchingPairs) {
		return fmt.Errorf("correct answer has %d pairs, question has %d", len(key.Pairs), len(question.MatchingPairs))
	}

	lefts := make(map[string]bool, len(question.MatchingPairs))
	for _, pair := range question.MatchingPairs {
		if pair.Left == "" || pair.Right == "" {
			return fmt.Errorf("pair %q has an empty side", pair.ID)
		}
		if lefts[pair.Left] {
			return fmt.Errorf("duplicate left item %q", pair.Left)
		}
		lefts[pair.Left] = true

		if key.Pairs[pair.Left] != pair.Right {
			return fmt.Errorf("correct answer for %q does not match pair %q", pair.Left, pair.ID)
		}
	}
	return nil
}

// Package bank loads the built-in question bank shipped with the binary.
package bank

import (
	_ "embed"
	"fmt"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"github.com/SAP-F-2025/devquiz-service/internal/validator"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

//go:embed questions.yaml
var defaultBank []byte

// Seed is a validated set of topics and their questions.
type Seed struct {
	Topics    []models.Topic
	Questions []*models.Question
}

type document struct {
	Topics    []models.Topic `yaml:"topics"`
	Questions []rawQuestion  `yaml:"questions"`
}

type rawQuestion struct {
	ID          string                `yaml:"id"`
	Topic       string                `yaml:"topic"`
	Difficulty  string                `yaml:"difficulty"`
	Type        string                `yaml:"type"`
	Question    string                `yaml:"question"`
	Code        string                `yaml:"code"`
	Options     []string              `yaml:"options"`
	Pairs       []models.MatchingPair `yaml:"pairs"`
	Answer      yaml.Node             `yaml:"answer"`
	Explanation string                `yaml:"explanation"`
	Reference   string                `yaml:"reference"`
}

// Default parses the embedded bank.
func Default(v *validator.Validator) (*Seed, error) {
	return Parse(defaultBank, v)
}

// Parse decodes a YAML bank and validates every topic and question. Any invalid record fails
// the whole load.
func Parse(data []byte, v *validator.Validator) (*Seed, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	seed := &Seed{Topics: doc.Topics}
	topics := make(map[string]bool, len(doc.Topics))
	for i := range doc.Topics {
		if err := v.Validate(&doc.Topics[i]); err != nil {
			return nil, fmt.Errorf("topic %d: %w", i+1, err)
		}
		if topics[doc.Topics[i].ID] {
			return nil, fmt.Errorf("topic %d: duplicate id %q", i+1, doc.Topics[i].ID)
		}
		topics[doc.Topics[i].ID] = true
	}

	for i, raw := range doc.Questions {
		q, err := raw.toQuestion()
		if err != nil {
			return nil, fmt.Errorf("question %d (%s): %w", i+1, raw.ID, err)
		}
		if !topics[q.TopicID] {
			return nil, fmt.Errorf("question %d (%s): unknown topic %q", i+1, raw.ID, q.TopicID)
		}
		if err := v.Validate(q); err != nil {
			return nil, fmt.Errorf("question %d (%s): %w", i+1, raw.ID, err)
		}
		seed.Questions = append(seed.Questions, q)
	}

	if len(seed.Questions) > 0 {
		if err := v.Question().ValidateBatch(seed.Questions); err != nil {
			return nil, err
		}
	}
	return seed, nil
}

func (r rawQuestion) toQuestion() (*models.Question, error) {
	qt, ok := models.ParseQuestionType(r.Type)
	if !ok {
		return nil, fmt.Errorf("unknown question type %q", r.Type)
	}

	key, err := r.decodeAnswer(qt)
	if err != nil {
		return nil, err
	}

	q := &models.Question{
		ID:            r.ID,
		TopicID:       r.Topic,
		Difficulty:    models.DifficultyLevel(r.Difficulty),
		Type:          qt,
		Prompt:        r.Question,
		Options:       r.Options,
		MatchingPairs: r.Pairs,
		CorrectAnswer: datatypes.NewJSONType(key),
		Explanation:   r.Explanation,
	}
	if r.Code != "" {
		code := r.Code
		q.CodeSnippet = &code
	}
	if r.Reference != "" {
		ref := r.Reference
		q.Reference = &ref
	}
	return q, nil
}

// decodeAnswer reads the answer node in the shape the question type expects. A matching
// question may omit it; its key is then taken from the pairs.
func (r rawQuestion) decodeAnswer(qt models.QuestionType) (models.AnswerValue, error) {
	switch qt {
	case models.SingleChoice, models.FillIn:
		var text string
		if err := r.Answer.Decode(&text); err != nil {
			return models.AnswerValue{}, fmt.Errorf("answer must be a string: %w", err)
		}
		return models.TextAnswer(qt, text), nil

	case models.MultipleChoice:
		var choices []string
		if err := r.Answer.Decode(&choices); err != nil {
			return models.AnswerValue{}, fmt.Errorf("answer must be a list: %w", err)
		}
		return models.ChoicesAnswer(choices...), nil

	case models.Matching:
		pairs := map[string]string{}
		if r.Answer.Kind == 0 {
			for _, p := range r.Pairs {
				pairs[p.Left] = p.Right
			}
			return models.PairsAnswer(pairs), nil
		}
		if err := r.Answer.Decode(&pairs); err != nil {
			return models.AnswerValue{}, fmt.Errorf("answer must be a mapping: %w", err)
		}
		return models.PairsAnswer(pairs), nil
	}
	return models.AnswerValue{}, fmt.Errorf("unsupported question type %q", qt)
}

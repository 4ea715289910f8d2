package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"github.com/go-playground/validator/v10"
)

var topicSlug = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Validator combines struct tag validation with the question shape checks
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate runs the struct tags and, for questions, the answer shape rules
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		return err
	}

	if q, ok := s.(*models.Question); ok {
		return v.questionValidator.ValidateQuestion(q)
	}
	return nil
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	// Question type validation
	validate.RegisterValidation("question_type", validateQuestionType)

	// Difficulty level validation
	validate.RegisterValidation("difficulty_level", validateDifficultyLevel)

	validate.RegisterValidation("topic_slug", validateTopicSlug)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateQuestionType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, validType := range models.QuestionTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func validateDifficultyLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, validLevel := range models.DifficultyLevels {
		if string(validLevel) == value {
			return true
		}
	}
	return false
}

func validateTopicSlug(fl validator.FieldLevel) bool {
	return topicSlug.MatchString(fl.Field().String())
}

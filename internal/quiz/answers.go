package quiz

import (
	"github.com/SAP-F-2025/devquiz-service/internal/models"
)

// AnswerStore maps question ids to the user's current answer. It is a value type: every
// mutation returns a new store and leaves the receiver untouched.
type AnswerStore struct {
	answers map[string]models.AnswerValue
}

func NewAnswerStore() AnswerStore {
	return AnswerStore{answers: map[string]models.AnswerValue{}}
}

// Get returns a copy of the stored answer, or false when the question is unanswered.
func (s AnswerStore) Get(questionID string) (models.AnswerValue, bool) {
	v, ok := s.answers[questionID]
	if !ok {
		return models.AnswerValue{}, false
	}
	return v.Clone(), true
}

// Set replaces the whole answer for a question.
func (s AnswerStore) Set(questionID string, value models.AnswerValue) AnswerStore {
	next := s.copy()
	next.answers[questionID] = value.Clone()
	return next
}

// SetPair merges one left -> right pairing into a matching answer.
func (s AnswerStore) SetPair(questionID, left, right string) AnswerStore {
	current, _ := s.Get(questionID)
	pairs := current.Pairs
	if current.Kind != models.Matching || pairs == nil {
		pairs = map[string]string{}
	}
	pairs[left] = right
	return s.Set(questionID, models.PairsAnswer(pairs))
}

// ClearPair removes one left key from a matching answer. The emptied mapping stays stored.
func (s AnswerStore) ClearPair(questionID, left string) AnswerStore {
	current, ok := s.Get(questionID)
	if !ok || current.Kind != models.Matching {
		return s
	}
	if _, exists := current.Pairs[left]; !exists {
		return s
	}
	delete(current.Pairs, left)
	return s.Set(questionID, models.PairsAnswer(current.Pairs))
}

// ToggleChoice adds option to a multiple-choice answer, or removes it when already selected.
func (s AnswerStore) ToggleChoice(questionID, option string) AnswerStore {
	current, _ := s.Get(questionID)
	var choices []string
	if current.Kind == models.MultipleChoice {
		choices = current.Choices
	}

	next := make([]string, 0, len(choices)+1)
	removed := false
	for _, c := range choices {
		if c == option {
			removed = true
			continue
		}
		next = append(next, c)
	}
	if !removed {
		next = append(next, option)
	}
	return s.Set(questionID, models.ChoicesAnswer(next...))
}

// Answered counts questions holding a non-empty answer.
func (s AnswerStore) Answered() int {
	n := 0
	for _, v := range s.answers {
		if !v.IsEmpty() {
			n++
		}
	}
	return n
}

func (s AnswerStore) copy() AnswerStore {
	next := make(map[string]models.AnswerValue, len(s.answers)+1)
	for k, v := range s.answers {
		next[k] = v
	}
	return AnswerStore{answers: next}
}

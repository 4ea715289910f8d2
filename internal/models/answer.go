package models

import "sort"

// AnswerValue is a tagged union keyed by question type. It is used both for answer keys and for
// user responses; only the field matching Kind carries data:
//
//	single, fill -> Text
//	multiple     -> Choices (a set, order is irrelevant)
//	matching     -> Pairs (left -> right)
type AnswerValue struct {
	Kind    QuestionType      `json:"kind"`
	Text    string            `json:"text,omitempty"`
	Choices []string          `json:"choices,omitempty"`
	Pairs   map[string]string `json:"pairs,omitempty"`
}

func TextAnswer(kind QuestionType, text string) AnswerValue {
	return AnswerValue{Kind: kind, Text: text}
}

// ChoicesAnswer stores the choices as a set; duplicates are dropped and order is normalized.
func ChoicesAnswer(choices ...string) AnswerValue {
	return AnswerValue{Kind: MultipleChoice, Choices: uniqueSorted(choices)}
}

func PairsAnswer(pairs map[string]string) AnswerValue {
	cp := make(map[string]string, len(pairs))
	for k, v := range pairs {
		cp[k] = v
	}
	return AnswerValue{Kind: Matching, Pairs: cp}
}

// Clone returns a deep copy so stored answers never alias caller memory.
func (a AnswerValue) Clone() AnswerValue {
	out := AnswerValue{Kind: a.Kind, Text: a.Text}
	if a.Choices != nil {
		out.Choices = append([]string(nil), a.Choices...)
	}
	if a.Pairs != nil {
		out.Pairs = make(map[string]string, len(a.Pairs))
		for k, v := range a.Pairs {
			out.Pairs[k] = v
		}
	}
	return out
}

// IsEmpty reports whether the value carries no response for its kind.
func (a AnswerValue) IsEmpty() bool {
	switch a.Kind {
	case MultipleChoice:
		return len(a.Choices) == 0
	case Matching:
		return len(a.Pairs) == 0
	default:
		return a.Text == ""
	}
}

func uniqueSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

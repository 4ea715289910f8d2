package feedback

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
)

const promptTemplate = `Below is the result of a programming quiz taken by a learner.
Topic: %s
Score: %d/%d
Level: %s

Incorrect answers:
%s
Act as an EdTech expert and analyse:
1. The main knowledge gaps revealed by these mistakes.
2. Specific topics or keywords the learner should review.
3. A short-term plan to improve in this topic.

Answer in a professional, encouraging tone with a clear structure.`

// BuildPrompt renders the generator prompt. Only incorrect answers are listed.
func BuildPrompt(req Request) string {
	byID := make(map[string]*models.Question, len(req.Questions))
	for i := range req.Questions {
		byID[req.Questions[i].ID] = &req.Questions[i]
	}

	var builder strings.Builder
	incorrect := req.Result.Incorrect()
	if len(incorrect) == 0 {
		builder.WriteString("(none, every answer was correct)\n")
	}
	for _, ua := range incorrect {
		q, ok := byID[ua.QuestionID]
		if !ok {
			continue
		}
		fmt.Fprintf(&builder, "- Question: %q\n", q.Prompt)
		fmt.Fprintf(&builder, "  - User answer: %s\n", renderAnswer(ua.Answer))
		key := q.Key()
		fmt.Fprintf(&builder, "  - Correct answer: %s\n", renderAnswer(&key))
		fmt.Fprintf(&builder, "  - Explanation: %s\n", q.Explanation)
	}

	return fmt.Sprintf(promptTemplate,
		req.Result.Topic,
		req.Result.Score,
		req.Result.TotalQuestions,
		req.Result.Level,
		builder.String())
}

func renderAnswer(a *models.AnswerValue) string {
	if a == nil || a.IsEmpty() {
		return "(no answer)"
	}

	var v interface{}
	switch a.Kind {
	case models.MultipleChoice:
		v = a.Choices
	case models.Matching:
		v = a.Pairs
	default:
		v = a.Text
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

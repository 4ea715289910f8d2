package quiz

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeState(t *testing.T, qs ...models.Question) State {
	t.Helper()
	s, ok := Start(Idle(), fixedSession("s1", time.Now(), qs...))
	require.True(t, ok)
	return s
}

func TestStart(t *testing.T) {
	s := activeState(t, singleQ("q1", "topic-x", "A", "A", "B"))

	assert.Equal(t, PhaseActive, s.Phase)
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, 0, s.Answers.Answered())
	assert.Nil(t, s.Result)

	again, ok := Start(s, fixedSession("s2", time.Now()))
	assert.False(t, ok)
	assert.Equal(t, s, again)

	_, ok = Start(Idle(), nil)
	assert.False(t, ok)
}

func TestNavigation(t *testing.T) {
	s := activeState(t,
		singleQ("q1", "topic-x", "A", "A", "B"),
		singleQ("q2", "topic-x", "A", "A", "B"),
		singleQ("q3", "topic-x", "A", "A", "B"),
	)

	_, ok := Retreat(s)
	assert.False(t, ok, "retreat at first question")
	assert.True(t, s.IsFirst())

	s, ok = Advance(s)
	require.True(t, ok)
	s, ok = Advance(s)
	require.True(t, ok)
	assert.Equal(t, 2, s.Cursor)
	assert.True(t, s.IsLast())

	same, ok := Advance(s)
	assert.False(t, ok, "advance at last question")
	assert.Equal(t, 2, same.Cursor)

	s, ok = Retreat(s)
	require.True(t, ok)
	q, _ := s.Current()
	assert.Equal(t, "q2", q.ID)
}

func TestNavigation_RequiresActive(t *testing.T) {
	_, ok := Advance(Idle())
	assert.False(t, ok)
	_, ok = Retreat(Idle())
	assert.False(t, ok)
	_, ok = Idle().Current()
	assert.False(t, ok)
}

func TestAnswer(t *testing.T) {
	s := activeState(t,
		singleQ("q1", "topic-x", "A", "A", "B"),
		fillQ("q2", "topic-x", "defer"),
	)

	s, ok := Answer(s, models.TextAnswer(models.SingleChoice, "B"))
	require.True(t, ok)
	s, ok = Answer(s, models.TextAnswer(models.SingleChoice, "A"))
	require.True(t, ok)

	v, _ := s.Answers.Get("q1")
	assert.Equal(t, "A", v.Text)

	_, ok = Answer(s, models.TextAnswer(models.FillIn, "A"))
	assert.False(t, ok, "kind must match the current question")

	s, _ = Advance(s)
	s, ok = Answer(s, models.TextAnswer(models.FillIn, "Defer"))
	require.True(t, ok)

	s, _ = Retreat(s)
	v, _ = s.Answers.Get("q1")
	assert.Equal(t, "A", v.Text, "answers survive navigation")
	assert.Equal(t, 2, s.Answers.Answered())
}

func TestAnswer_PreviousStateUntouched(t *testing.T) {
	before := activeState(t, singleQ("q1", "topic-x", "A", "A", "B"))
	after, ok := Answer(before, models.TextAnswer(models.SingleChoice, "A"))
	require.True(t, ok)

	_, answered := before.Answers.Get("q1")
	assert.False(t, answered)
	_, answered = after.Answers.Get("q1")
	assert.True(t, answered)
}

func TestPairsAndToggle(t *testing.T) {
	s := activeState(t,
		matchQ("q1", "topic-x", map[string]string{"A": "1", "B": "2"}),
		multiQ("q2", "topic-x", []string{"a", "b"}, "a", "b", "c"),
	)

	_, ok := ToggleChoice(s, "a")
	assert.False(t, ok, "toggle on a matching question")

	s, ok = SetPair(s, "A", "1")
	require.True(t, ok)
	s, ok = SetPair(s, "B", "3")
	require.True(t, ok)
	s, ok = ClearPair(s, "B")
	require.True(t, ok)
	s, _ = SetPair(s, "B", "2")

	v, _ := s.Answers.Get("q1")
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, v.Pairs)

	s, _ = Advance(s)
	_, ok = SetPair(s, "A", "1")
	assert.False(t, ok, "pairs on a multiple-choice question")
	_, ok = ClearPair(s, "A")
	assert.False(t, ok)

	s, _ = ToggleChoice(s, "b")
	s, _ = ToggleChoice(s, "a")
	v, _ = s.Answers.Get("q2")
	assert.Equal(t, []string{"a", "b"}, v.Choices)

	s, _ = Finish(s, time.Now())
	assert.Equal(t, 2, s.Result.Score)
}

func TestFinish_FromFirstQuestion(t *testing.T) {
	s := activeState(t,
		singleQ("q1", "topic-x", "A", "A", "B"),
		singleQ("q2", "topic-x", "A", "A", "B"),
		singleQ("q3", "topic-x", "A", "A", "B"),
		singleQ("q4", "topic-x", "A", "A", "B"),
		singleQ("q5", "topic-x", "A", "A", "B"),
	)
	s, _ = Answer(s, models.TextAnswer(models.SingleChoice, "A"))

	s, ok := Finish(s, time.Now())
	require.True(t, ok)
	assert.Equal(t, PhaseCompleted, s.Phase)
	require.NotNil(t, s.Result)
	assert.Equal(t, 5, s.Result.TotalQuestions)
	assert.Len(t, s.Result.UserAnswers, 5)
	assert.Len(t, s.Result.Incorrect(), 4)
	assert.Equal(t, FeedbackPending, s.Feedback.Status)

	_, ok = Answer(s, models.TextAnswer(models.SingleChoice, "A"))
	assert.False(t, ok, "completed quiz rejects answers")
	_, ok = Advance(s)
	assert.False(t, ok)
	_, ok = Finish(s, time.Now())
	assert.False(t, ok, "finish runs once")
}

func TestFinish_RequiresActive(t *testing.T) {
	s, ok := Finish(Idle(), time.Now())
	assert.False(t, ok)
	assert.Equal(t, PhaseIdle, s.Phase)
}

func TestRestartAndAbandon(t *testing.T) {
	s := activeState(t, singleQ("q1", "topic-x", "A", "A", "B"))

	_, ok := Restart(s)
	assert.False(t, ok, "restart needs a completed quiz")

	idle, ok := Abandon(s)
	require.True(t, ok)
	assert.Equal(t, Idle(), idle)

	_, ok = Abandon(idle)
	assert.False(t, ok)

	done, _ := Finish(s, time.Now())
	_, ok = Abandon(done)
	assert.False(t, ok, "abandon only while active")

	idle, ok = Restart(done)
	require.True(t, ok)
	assert.Equal(t, PhaseIdle, idle.Phase)
	assert.Nil(t, idle.Result)
	assert.Nil(t, idle.Session)
}

func TestAttachFeedback(t *testing.T) {
	active := activeState(t, singleQ("q1", "topic-x", "A", "A", "B"))
	done, _ := Finish(active, time.Now())

	t.Run("matching session", func(t *testing.T) {
		s, ok := AttachFeedback(done, "s1", Feedback{Status: FeedbackReady, Text: "nice"})
		require.True(t, ok)
		assert.Equal(t, "nice", s.Feedback.Text)

		_, ok = AttachFeedback(s, "s1", Feedback{Status: FeedbackFallback, Text: "late"})
		assert.False(t, ok, "slot already filled")
	})

	t.Run("stale session id", func(t *testing.T) {
		s, ok := AttachFeedback(done, "other", Feedback{Status: FeedbackReady, Text: "stale"})
		assert.False(t, ok)
		assert.Equal(t, FeedbackPending, s.Feedback.Status)
	})

	t.Run("after restart", func(t *testing.T) {
		idle, _ := Restart(done)
		s, ok := AttachFeedback(idle, "s1", Feedback{Status: FeedbackReady, Text: "stale"})
		assert.False(t, ok)
		assert.Equal(t, FeedbackNone, s.Feedback.Status)
	})

	t.Run("while active", func(t *testing.T) {
		_, ok := AttachFeedback(active, "s1", Feedback{Status: FeedbackReady})
		assert.False(t, ok)
	})
}

package quiz

import (
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/models"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseActive    Phase = "active"
	PhaseCompleted Phase = "completed"
)

type FeedbackStatus string

const (
	FeedbackNone     FeedbackStatus = ""
	FeedbackPending  FeedbackStatus = "pending"
	FeedbackReady    FeedbackStatus = "ready"
	FeedbackFallback FeedbackStatus = "fallback"
)

type Feedback struct {
	Status FeedbackStatus
	Text   string
}

// State is the whole quiz state. Transitions below are pure: they return the next state and
// whether the transition applied. An illegal transition returns the input unchanged and false.
type State struct {
	Phase    Phase
	Session  *Session
	Cursor   int
	Answers  AnswerStore
	Result   *models.QuizResult
	Feedback Feedback
}

func Idle() State {
	return State{Phase: PhaseIdle}
}

// Current returns the question under the cursor while a quiz is active.
func (s State) Current() (*models.Question, bool) {
	if s.Phase != PhaseActive {
		return nil, false
	}
	return s.Session.Question(s.Cursor)
}

func (s State) IsFirst() bool { return s.Cursor == 0 }

func (s State) IsLast() bool { return s.Cursor >= s.Session.Len()-1 }

// Start moves Idle to Active with the cursor on the first question and an empty answer store.
func Start(s State, session *Session) (State, bool) {
	if s.Phase != PhaseIdle || session == nil {
		return s, false
	}
	return State{
		Phase:   PhaseActive,
		Session: session,
		Cursor:  0,
		Answers: NewAnswerStore(),
	}, true
}

// Advance moves the cursor forward. It never passes the last question; Finish is the way out.
func Advance(s State) (State, bool) {
	if s.Phase != PhaseActive || s.Cursor >= s.Session.Len()-1 {
		return s, false
	}
	s.Cursor++
	return s, true
}

func Retreat(s State) (State, bool) {
	if s.Phase != PhaseActive || s.Cursor <= 0 {
		return s, false
	}
	s.Cursor--
	return s, true
}

// Answer replaces the answer of the current question. The value must be tagged with the
// question's type.
func Answer(s State, value models.AnswerValue) (State, bool) {
	q, ok := s.Current()
	if !ok || value.Kind != q.Type {
		return s, false
	}
	s.Answers = s.Answers.Set(q.ID, value)
	return s, true
}

func SetPair(s State, left, right string) (State, bool) {
	q, ok := s.Current()
	if !ok || q.Type != models.Matching {
		return s, false
	}
	s.Answers = s.Answers.SetPair(q.ID, left, right)
	return s, true
}

func ClearPair(s State, left string) (State, bool) {
	q, ok := s.Current()
	if !ok || q.Type != models.Matching {
		return s, false
	}
	s.Answers = s.Answers.ClearPair(q.ID, left)
	return s, true
}

func ToggleChoice(s State, option string) (State, bool) {
	q, ok := s.Current()
	if !ok || q.Type != models.MultipleChoice {
		return s, false
	}
	s.Answers = s.Answers.ToggleChoice(q.ID, option)
	return s, true
}

// Finish scores the session and enters Completed. It is legal at any cursor position. The
// feedback slot starts pending; AttachFeedback fills it later.
func Finish(s State, now time.Time) (State, bool) {
	if s.Phase != PhaseActive {
		return s, false
	}
	result := Score(s.Session, s.Answers, now)
	s.Phase = PhaseCompleted
	s.Result = &result
	s.Feedback = Feedback{Status: FeedbackPending}
	return s, true
}

// Restart discards a completed session and its result.
func Restart(s State) (State, bool) {
	if s.Phase != PhaseCompleted {
		return s, false
	}
	return Idle(), true
}

// Abandon leaves an active quiz without scoring it.
func Abandon(s State) (State, bool) {
	if s.Phase != PhaseActive {
		return s, false
	}
	return Idle(), true
}

// AttachFeedback stores generated feedback for sessionID. Feedback for any other session, or
// arriving after the slot was filled, is dropped.
func AttachFeedback(s State, sessionID string, fb Feedback) (State, bool) {
	if s.Phase != PhaseCompleted || s.Session == nil || s.Session.ID != sessionID {
		return s, false
	}
	if s.Feedback.Status != FeedbackPending {
		return s, false
	}
	s.Feedback = fb
	return s, true
}

package services

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/feedback"
	"github.com/SAP-F-2025/devquiz-service/internal/models"
	"github.com/SAP-F-2025/devquiz-service/internal/quiz"
	"github.com/SAP-F-2025/devquiz-service/internal/repositories"
	"github.com/google/uuid"
)

// QuizService drives the single quiz state of the process. Transitions that do not apply in the
// current phase are ignored and reported through QuizView.Applied rather than as errors.
type QuizService interface {
	ListTopics(ctx context.Context) ([]models.Topic, error)
	State(ctx context.Context) *QuizView

	Start(ctx context.Context, topicID string) (*QuizView, error)
	Next(ctx context.Context) *QuizView
	Prev(ctx context.Context) *QuizView
	Answer(ctx context.Context, req *AnswerRequest) (*QuizView, error)
	ToggleChoice(ctx context.Context, option string) *QuizView
	SetPair(ctx context.Context, left, right string) *QuizView
	ClearPair(ctx context.Context, left string) *QuizView
	Finish(ctx context.Context) *QuizView
	Abandon(ctx context.Context) *QuizView
	Restart(ctx context.Context) *QuizView

	Result(ctx context.Context) (*ResultView, error)

	// Close cancels outstanding feedback generation and waits for it to stop.
	Close()
}

// ===== VIEWS AND REQUESTS =====

type Progress struct {
	Index    int  `json:"index"`
	Total    int  `json:"total"`
	Answered int  `json:"answered"`
	IsFirst  bool `json:"is_first"`
	IsLast   bool `json:"is_last"`
}

type FeedbackView struct {
	Status quiz.FeedbackStatus `json:"status"`
	Text   string              `json:"text,omitempty"`
}

type QuizView struct {
	Phase     quiz.Phase             `json:"phase"`
	Applied   bool                   `json:"applied"`
	SessionID string                 `json:"session_id,omitempty"`
	Topic     *models.Topic          `json:"topic,omitempty"`
	Progress  *Progress              `json:"progress,omitempty"`
	Question  *models.PublicQuestion `json:"question,omitempty"`
	Answer    *models.AnswerValue    `json:"answer,omitempty"`
	Result    *models.QuizResult     `json:"result,omitempty"`
	Feedback  *FeedbackView          `json:"feedback,omitempty"`
}

type ResultView struct {
	Review   models.ReviewReport `json:"review"`
	Feedback FeedbackView        `json:"feedback"`
}

// AnswerRequest carries one of the three answer shapes. The field that is read depends on the
// type of the current question.
type AnswerRequest struct {
	Text    *string           `json:"text,omitempty"`
	Choices []string          `json:"choices,omitempty"`
	Pairs   map[string]string `json:"pairs,omitempty"`
}

func (r *AnswerRequest) isEmpty() bool {
	return r == nil || (r.Text == nil && r.Choices == nil && r.Pairs == nil)
}

func (r *AnswerRequest) valueFor(kind models.QuestionType) (models.AnswerValue, bool) {
	switch kind {
	case models.SingleChoice, models.FillIn:
		if r.Text == nil {
			return models.AnswerValue{}, false
		}
		return models.TextAnswer(kind, *r.Text), true
	case models.MultipleChoice:
		if r.Choices == nil {
			return models.AnswerValue{}, false
		}
		return models.ChoicesAnswer(r.Choices...), true
	case models.Matching:
		if r.Pairs == nil {
			return models.AnswerValue{}, false
		}
		return models.PairsAnswer(r.Pairs), true
	}
	return models.AnswerValue{}, false
}

// ===== SERVICE =====

type QuizOptions struct {
	FeedbackTimeout time.Duration
	Rand            *rand.Rand       // nil uses the global source
	Now             func() time.Time // defaults to time.Now
	NewID           func() string    // defaults to uuid.NewString
	EnableDebug     bool
}

type quizService struct {
	repo      repositories.QuestionRepository
	events    QuizEventService
	generator feedback.Generator
	logger    *slog.Logger
	opLog     *ServiceLogger
	opts      QuizOptions

	mu    sync.Mutex
	state quiz.State

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewQuizService(
	repo repositories.QuestionRepository,
	eventService QuizEventService,
	generator feedback.Generator,
	logger *slog.Logger,
	opts QuizOptions,
) QuizService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if generator == nil {
		generator = feedback.StaticGenerator{}
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	return &quizService{
		repo:      repo,
		events:    eventService,
		generator: generator,
		logger:    logger,
		opLog: NewServiceLogger(logger, LogConfig{
			Service:     "devquiz",
			Component:   "quiz",
			EnableDebug: opts.EnableDebug,
		}),
		opts:    opts,
		state:   quiz.Idle(),
		baseCtx: baseCtx,
		cancel:  cancel,
	}
}

func (s *quizService) ListTopics(ctx context.Context) ([]models.Topic, error) {
	op := s.opLog.WithOperation(ctx, "list_topics")
	topics, err := s.repo.ListTopics(ctx)
	op.LogResult("", "topic", err)
	return topics, err
}

func (s *quizService) State(ctx context.Context) *QuizView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(true)
}

// Start draws a fresh session for topicID. A known topic without questions starts an empty
// session that can only be finished or abandoned.
func (s *quizService) Start(ctx context.Context, topicID string) (*QuizView, error) {
	op := s.opLog.WithOperation(ctx, "start_quiz")

	if view := s.State(ctx); view.Phase != quiz.PhaseIdle {
		view.Applied = false
		return view, nil
	}

	topic, err := s.repo.GetTopic(ctx, topicID)
	if err != nil {
		op.LogResult(topicID, "topic", err)
		return nil, err
	}
	if topic == nil {
		op.LogResult(topicID, "topic", ErrTopicNotFound)
		return nil, ErrTopicNotFound
	}
	bank, err := s.repo.GetByTopic(ctx, topicID)
	if err != nil {
		op.LogResult(topicID, "topic", err)
		return nil, err
	}

	s.mu.Lock()
	session := quiz.NewSession(s.opts.NewID(), *topic, bank, s.opts.Rand, s.opts.Now())
	next, applied := quiz.Start(s.state, session)
	if applied {
		s.state = next
	}
	view := s.view(applied)
	s.mu.Unlock()

	if applied {
		op.LogResult(session.ID, "quiz_session", nil)
		_ = s.events.NotifyQuizStarted(ctx, session)
	}
	return view, nil
}

func (s *quizService) Next(ctx context.Context) *QuizView {
	return s.apply(ctx, "next", quiz.Advance)
}

func (s *quizService) Prev(ctx context.Context) *QuizView {
	return s.apply(ctx, "prev", quiz.Retreat)
}

func (s *quizService) Answer(ctx context.Context, req *AnswerRequest) (*QuizView, error) {
	if req.isEmpty() {
		return nil, ValidationErrors{*NewValidationError("answer", "one of text, choices or pairs is required", nil)}
	}
	return s.apply(ctx, "answer", func(st quiz.State) (quiz.State, bool) {
		q, ok := st.Current()
		if !ok {
			return st, false
		}
		value, ok := req.valueFor(q.Type)
		if !ok {
			return st, false
		}
		return quiz.Answer(st, value)
	}), nil
}

func (s *quizService) ToggleChoice(ctx context.Context, option string) *QuizView {
	return s.apply(ctx, "toggle_choice", func(st quiz.State) (quiz.State, bool) {
		return quiz.ToggleChoice(st, option)
	})
}

func (s *quizService) SetPair(ctx context.Context, left, right string) *QuizView {
	return s.apply(ctx, "set_pair", func(st quiz.State) (quiz.State, bool) {
		return quiz.SetPair(st, left, right)
	})
}

func (s *quizService) ClearPair(ctx context.Context, left string) *QuizView {
	return s.apply(ctx, "clear_pair", func(st quiz.State) (quiz.State, bool) {
		return quiz.ClearPair(st, left)
	})
}

// Finish scores the session and hands feedback generation to a detached goroutine. The view is
// returned immediately with feedback pending.
func (s *quizService) Finish(ctx context.Context) *QuizView {
	op := s.opLog.WithOperation(ctx, "finish_quiz")

	s.mu.Lock()
	next, applied := quiz.Finish(s.state, s.opts.Now())
	if applied {
		s.state = next
	}
	view := s.view(applied)
	var (
		result    models.QuizResult
		questions []models.Question
	)
	if applied {
		result = *next.Result
		questions = append([]models.Question(nil), next.Session.Questions...)
	}
	s.mu.Unlock()

	if !applied {
		s.opLog.Transition(ctx, "finish", "", false)
		return view
	}

	op.LogResult(result.SessionID, "quiz_session", nil)
	s.generateFeedback(feedback.Request{Result: result, Questions: questions})
	_ = s.events.NotifyQuizCompleted(ctx, &result)
	return view
}

func (s *quizService) Abandon(ctx context.Context) *QuizView {
	s.mu.Lock()
	session := s.state.Session
	answered := s.state.Answers.Answered()
	next, applied := quiz.Abandon(s.state)
	if applied {
		s.state = next
	}
	view := s.view(applied)
	s.mu.Unlock()

	if applied {
		s.opLog.Transition(ctx, "abandon", session.ID, true)
		_ = s.events.NotifyQuizAbandoned(ctx, session, answered)
	}
	return view
}

func (s *quizService) Restart(ctx context.Context) *QuizView {
	return s.apply(ctx, "restart", quiz.Restart)
}

func (s *quizService) Result(ctx context.Context) (*ResultView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != quiz.PhaseCompleted || s.state.Result == nil {
		return nil, ErrResultNotReady
	}
	return &ResultView{
		Review: quiz.BuildReview(s.state.Session, *s.state.Result),
		Feedback: FeedbackView{
			Status: s.state.Feedback.Status,
			Text:   s.state.Feedback.Text,
		},
	}, nil
}

func (s *quizService) Close() {
	s.cancel()
	s.wg.Wait()
}

// ===== HELPER METHODS =====

func (s *quizService) apply(ctx context.Context, name string, transition func(quiz.State) (quiz.State, bool)) *QuizView {
	s.mu.Lock()
	next, applied := transition(s.state)
	if applied {
		s.state = next
	}
	view := s.view(applied)
	s.mu.Unlock()

	s.opLog.Transition(ctx, name, view.SessionID, applied)
	return view
}

func (s *quizService) generateFeedback(req feedback.Request) {
	sessionID := req.Result.SessionID

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		text, ok := feedback.Resolve(s.baseCtx, s.generator, req, s.opts.FeedbackTimeout, s.logger)
		fb := quiz.Feedback{Status: quiz.FeedbackReady, Text: text}
		if !ok {
			fb.Status = quiz.FeedbackFallback
		}

		s.mu.Lock()
		next, applied := quiz.AttachFeedback(s.state, sessionID, fb)
		if applied {
			s.state = next
		}
		s.mu.Unlock()

		if !applied {
			s.logger.Info("Discarding feedback for a session that is no longer shown", "session_id", sessionID)
		}
	}()
}

// view snapshots the state. Callers hold s.mu.
func (s *quizService) view(applied bool) *QuizView {
	st := s.state
	view := &QuizView{Phase: st.Phase, Applied: applied}
	if st.Session == nil {
		return view
	}

	topic := st.Session.Topic
	view.SessionID = st.Session.ID
	view.Topic = &topic

	switch st.Phase {
	case quiz.PhaseActive:
		view.Progress = &Progress{
			Index:    st.Cursor,
			Total:    st.Session.Len(),
			Answered: st.Answers.Answered(),
			IsFirst:  st.IsFirst(),
			IsLast:   st.IsLast(),
		}
		if q, ok := st.Current(); ok {
			pq := q.Public()
			view.Question = &pq
			if a, ok := st.Answers.Get(q.ID); ok {
				view.Answer = &a
			}
		}
	case quiz.PhaseCompleted:
		result := *st.Result
		result.UserAnswers = append([]models.UserAnswerRecord(nil), st.Result.UserAnswers...)
		view.Result = &result
		view.Feedback = &FeedbackView{Status: st.Feedback.Status, Text: st.Feedback.Text}
	}
	return view
}

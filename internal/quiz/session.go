package quiz

import (
	"errors"
	"strings"
	"sync"
	"time"
)

type SessionState string

const (
	StateNotStarted SessionState = "not_started"
	StateInProgress SessionState = "in_progress"
	StateCompleted  SessionState = "completed"
)

var (
	ErrInvalidEmail     = errors.New("invalid email")
	ErrNoQuestions      = errors.New("no questions available")
	ErrSessionNotActive = errors.New("session is not in progress")
)

// Session drives a single pass through a fixed question sequence. The
// sequence is snapshotted at construction and never reordered, even if
// the backing collection reloads mid-session. All state transitions go
// through the session mutex; concurrent answers on the same id each
// consume exactly one question.
type Session struct {
	ID    string
	Email string

	mu          sync.Mutex
	State       SessionState
	Questions   []Question
	Index       int
	Answers     []Answer
	StartedAt   time.Time
	CompletedAt time.Time

	shownAt time.Time
	now     func() time.Time
}

// AnswerOutcome reports the result of answering the current question.
// CorrectOptionID and Comment echo the answered question so the caller
// can reveal the solution; Next and Score are captured under the same
// lock as the transition so the snapshot is consistent.
type AnswerOutcome struct {
	IsCorrect       bool
	TimeSpentMs     int64
	Completed       bool
	CorrectOptionID string
	Comment         string
	Index           int
	Total           int
	Next            *Question
	Score           *Score
	Answer          LeadAnswer
}

func NewSession(id, email string, questions []Question, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		ID:        id,
		Email:     email,
		State:     StateNotStarted,
		Questions: questions,
		now:       now,
	}
}

// Start validates the identifier and moves the session into progress,
// resetting the accumulator and the current index.
func (s *Session) Start() error {
	if !strings.Contains(s.Email, "@") {
		return ErrInvalidEmail
	}
	if len(s.Questions) == 0 {
		return ErrNoQuestions
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now()
	s.State = StateInProgress
	s.StartedAt = t
	s.shownAt = t
	s.Index = 0
	s.Answers = nil
	return nil
}

// Current returns the question awaiting an answer.
func (s *Session) Current() (Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State != StateInProgress || s.Index >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.Index], true
}

// Answer records the selected option for the current question.
// Correctness is a case-insensitive id comparison; elapsed time is the
// wall-clock delta since the question was presented. Answering the last
// question completes the session.
func (s *Session) Answer(optionID string) (AnswerOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State != StateInProgress || s.Index >= len(s.Questions) {
		return AnswerOutcome{}, ErrSessionNotActive
	}
	q := s.Questions[s.Index]

	t := s.now()
	correct := strings.EqualFold(strings.TrimSpace(optionID), q.CorrectOptionID)
	spent := t.Sub(s.shownAt).Milliseconds()
	s.Answers = append(s.Answers, Answer{IsCorrect: correct, TimeSpentMs: spent})

	out := AnswerOutcome{
		IsCorrect:       correct,
		TimeSpentMs:     spent,
		CorrectOptionID: q.CorrectOptionID,
		Comment:         q.Comment,
		Answer: LeadAnswer{
			LeadEmail:   s.Email,
			QuestionID:  q.ID,
			IsCorrect:   correct,
			TimeSpentMs: spent,
		},
	}

	if s.Index < len(s.Questions)-1 {
		s.Index++
		s.shownAt = t
		next := s.Questions[s.Index]
		out.Next = &next
	} else {
		s.State = StateCompleted
		s.CompletedAt = t
		out.Completed = true
		score := Summarize(s.Answers)
		out.Score = &score
	}
	out.Index = s.Index
	out.Total = len(s.Questions)
	return out, nil
}

// Status reads the session state under the lock.
func (s *Session) Status() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State
}

// Score aggregates the answers recorded so far.
func (s *Session) Score() Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summarize(s.Answers)
}

// expiredBefore reports whether the session completed before the
// cutoff and can be dropped from the registry.
func (s *Session) expiredBefore(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State == StateCompleted && s.CompletedAt.Before(cutoff)
}

package quiz

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Service owns the in-memory snapshot of the question collection and
// the live simulator sessions. The snapshot is replaced wholesale on
// every Refresh; tags are always derived from it, never patched.
type Service struct {
	store Store
	now   func() time.Time

	mu        sync.Mutex
	questions []Question
	tags      Tags
	sessions  map[string]*Session
}

func NewService(store Store) *Service {
	return &Service{
		store:    store,
		now:      time.Now,
		sessions: map[string]*Session{},
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Refresh reloads the playable set from the store and recomputes the
// tag snapshot. A failed or empty read falls back to the bundled seed
// set so the simulator stays available.
func (s *Service) Refresh(ctx context.Context) {
	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		log.Printf("quiz: question load failed, serving seed set: %v", err)
		questions = SeedQuestions()
	}
	if len(questions) == 0 {
		questions = SeedQuestions()
	}

	tags := DeriveTags(questions)

	s.mu.Lock()
	s.questions = questions
	s.tags = tags
	s.mu.Unlock()

	// Best effort: the stored snapshot is a convenience copy.
	if err := s.store.SaveTags(ctx, tags); err != nil {
		log.Printf("quiz: tag snapshot save failed: %v", err)
	}
}

func (s *Service) Questions() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

func (s *Service) TagSnapshot() Tags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tags
}

// StartResult is the outcome of a start request: either a fresh session
// with its first question, or a reconstructed result for a returning
// identifier.
type StartResult struct {
	Returning bool      `json:"returning"`
	SessionID string    `json:"sessionId,omitempty"`
	Total     int       `json:"total"`
	Question  *Question `json:"question,omitempty"`
	Score     *Score    `json:"score,omitempty"`
}

// StartSession reconciles the identifier against prior recorded answers
// before opening a session. Any prior answer short-circuits into the
// stored result; a failed lookup degrades to letting the session start.
func (s *Service) StartSession(ctx context.Context, email string) (StartResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return StartResult{}, ErrInvalidEmail
	}
	s.purgeSessions()

	prior, err := s.store.ListLeadAnswers(ctx, email)
	if err != nil {
		log.Printf("quiz: prior-answer lookup failed for %s, starting anyway: %v", email, err)
		prior = nil
	}
	if len(prior) > 0 {
		answers := make([]Answer, len(prior))
		for i, a := range prior {
			answers[i] = Answer{IsCorrect: a.IsCorrect, TimeSpentMs: a.TimeSpentMs}
		}
		score := Summarize(answers)
		return StartResult{Returning: true, Total: score.Total, Score: &score}, nil
	}

	if err == nil {
		if err := s.store.UpsertLead(ctx, email); err != nil {
			log.Printf("quiz: lead upsert failed for %s: %v", email, err)
		}
	}

	sess := NewSession(uuid.NewString(), email, s.Questions(), s.now)
	if err := sess.Start(); err != nil {
		return StartResult{}, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return StartResult{
		SessionID: sess.ID,
		Total:     len(sess.Questions),
		Question:  sanitized(sess.Questions[0]),
	}, nil
}

// sanitized strips the fields that would leak the solution of a
// question still awaiting an answer.
func sanitized(q Question) *Question {
	q.CorrectOptionID = ""
	q.Comment = ""
	return &q
}

// AnswerResult is returned per accepted answer. CorrectOptionID and
// Comment reveal the solution of the question just answered; Question
// carries the next prompt while the session is still in progress; Score
// is set once the sequence is exhausted.
type AnswerResult struct {
	IsCorrect       bool      `json:"isCorrect"`
	CorrectOptionID string    `json:"correctOptionId"`
	Comment         string    `json:"comment,omitempty"`
	Completed       bool      `json:"completed"`
	Index           int       `json:"index"`
	Total           int       `json:"total"`
	Question        *Question `json:"question,omitempty"`
	Score           *Score    `json:"score,omitempty"`
}

// AnswerQuestion records the selected option for the session's current
// question. Persistence of the answer record is fire-and-forget: a
// failed write is logged and never blocks or rolls back the transition.
func (s *Service) AnswerQuestion(sessionID, optionID string) (AnswerResult, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return AnswerResult{}, ErrSessionNotFound
	}

	out, err := sess.Answer(optionID)
	if err != nil {
		return AnswerResult{}, err
	}

	go func(a LeadAnswer) {
		if err := s.store.InsertLeadAnswer(context.Background(), a); err != nil {
			log.Printf("quiz: answer persist failed for %s/%s: %v", a.LeadEmail, a.QuestionID, err)
		}
	}(out.Answer)

	res := AnswerResult{
		IsCorrect:       out.IsCorrect,
		CorrectOptionID: out.CorrectOptionID,
		Comment:         out.Comment,
		Completed:       out.Completed,
		Index:           out.Index,
		Total:           out.Total,
		Score:           out.Score,
	}
	if out.Next != nil {
		res.Question = sanitized(*out.Next)
	}
	return res, nil
}

// completedSessionTTL is how long a finished session stays readable
// through the result endpoint before the registry drops it.
const completedSessionTTL = time.Hour

// purgeSessions evicts completed sessions past the retention window so
// the registry does not grow without bound.
func (s *Service) purgeSessions() {
	cutoff := s.now().Add(-completedSessionTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.expiredBefore(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// GetSession exposes a live session, mainly for result re-reads.
func (s *Service) GetSession(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// TrainingFilter narrows the playable set for a custom training run.
// Empty fields match everything.
type TrainingFilter struct {
	Board       string
	Discipline  string
	Topic       string
	Year        string
	Difficulty  string
	Institution string
}

func (f TrainingFilter) matches(q Question) bool {
	if f.Board != "" && q.Board != f.Board {
		return false
	}
	if f.Discipline != "" && q.Discipline != f.Discipline {
		return false
	}
	if f.Topic != "" && q.Topic != f.Topic {
		return false
	}
	if f.Year != "" && q.Year != f.Year {
		return false
	}
	if f.Difficulty != "" && string(q.Difficulty) != f.Difficulty {
		return false
	}
	if f.Institution != "" && q.Institution != f.Institution {
		return false
	}
	return true
}

func (s *Service) Training(f TrainingFilter) []Question {
	var out []Question
	for _, q := range s.Questions() {
		if f.matches(q) {
			out = append(out, q)
		}
	}
	return out
}

// InstitutionsFor lists the institutions that actually have questions
// under the given contest class, first-occurrence order.
func (s *Service) InstitutionsFor(contestClass string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, q := range s.Questions() {
		if q.ContestClass != contestClass || q.Institution == "" {
			continue
		}
		if _, ok := seen[q.Institution]; ok {
			continue
		}
		seen[q.Institution] = struct{}{}
		out = append(out, q.Institution)
	}
	return out
}

// PackageQuestions resolves a stored package into its playable
// sequence, preserving the package's id order and skipping ids that no
// longer resolve.
func (s *Service) PackageQuestions(ctx context.Context, packageID string) ([]Question, error) {
	p, err := s.store.GetPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	byID := map[string]Question{}
	for _, q := range s.Questions() {
		byID[q.ID] = q
	}
	var out []Question
	for _, id := range p.QuestionIDs {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

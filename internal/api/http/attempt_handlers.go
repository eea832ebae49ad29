package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	auth "github.com/operacional-pcba/simulado/internal/auth/middleware"
	"github.com/operacional-pcba/simulado/internal/quiz"
	"github.com/operacional-pcba/simulado/internal/rbac"
)

// attemptScope resolves which rows the caller may read: holders of
// attempt:view-all see everything, everyone else only their own.
func attemptScope(r *http.Request) string {
	if rbac.Allowed(r.Context(), "attempt:view-all") {
		return ""
	}
	return auth.SubjectFromContext(r.Context())
}

// CreateAttemptHandler records one dashboard attempt. Attempts are
// append-only; there is no update path. The owner comes from the
// authenticated subject, not the payload.
func CreateAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a quiz.UserAttempt
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if a.QuestionID == "" || a.SelectedOptionID == "" {
			http.Error(w, "questionId and selectedOptionId required", http.StatusBadRequest)
			return
		}
		a.ID = uuid.NewString()
		a.UserEmail = auth.SubjectFromContext(r.Context())
		if a.Timestamp == 0 {
			a.Timestamp = time.Now().UnixMilli()
		}
		if err := store.InsertAttempt(r.Context(), a); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(a)
	}
}

func ListAttemptsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attempts, err := store.ListAttempts(r.Context(), attemptScope(r))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if attempts == nil {
			attempts = []quiz.UserAttempt{}
		}
		_ = json.NewEncoder(w).Encode(attempts)
	}
}

// AttemptSummaryHandler aggregates the dashboard numbers: totals, hit
// rate and average time over the attempts that carry a timing.
func AttemptSummaryHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attempts, err := store.ListAttempts(r.Context(), attemptScope(r))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		answers := make([]quiz.Answer, len(attempts))
		var timedTotal, timedCount int64
		for i, a := range attempts {
			answers[i] = quiz.Answer{IsCorrect: a.IsCorrect, TimeSpentMs: a.TimeSpentMs}
			if a.TimeSpentMs > 0 {
				timedTotal += a.TimeSpentMs
				timedCount++
			}
		}
		score := quiz.Summarize(answers)
		var avgMs int64
		if timedCount > 0 {
			avgMs = timedTotal / timedCount
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total":        score.Total,
			"correctCount": score.CorrectCount,
			"scoreRate":    score.Rate,
			"avgTimeMs":    avgMs,
		})
	}
}

// TrainingHandler filters the playable set for a custom run.
func TrainingHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		qs := svc.Training(quiz.TrainingFilter{
			Board:       q.Get("board"),
			Discipline:  q.Get("discipline"),
			Topic:       q.Get("topic"),
			Year:        q.Get("year"),
			Difficulty:  q.Get("difficulty"),
			Institution: q.Get("institution"),
		})
		if qs == nil {
			qs = []quiz.Question{}
		}
		_ = json.NewEncoder(w).Encode(qs)
	}
}

// TargetInstitutionsHandler lists institutions that actually have
// questions under the chosen contest class.
func TargetInstitutionsHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(svc.InstitutionsFor(chi.URLParam(r, "contestClass")))
	}
}

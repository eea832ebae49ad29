package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/operacional-pcba/simulado/internal/auth/middleware"
	"github.com/operacional-pcba/simulado/internal/quiz"
)

// QuestionsHandler serves the playable set. Correct option ids are
// stripped: the simulator judges answers server-side.
func QuestionsHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs := svc.Questions()
		for i := range qs {
			qs[i].CorrectOptionID = ""
			qs[i].Comment = ""
		}
		_ = json.NewEncoder(w).Encode(qs)
	}
}

func TagsHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(svc.TagSnapshot())
	}
}

// StateHandler is the wholesale sync: everything the client caches in
// one round trip. Collection reads that fail degrade to empty lists so
// the payload always renders. Questions carry no answer keys on this
// surface, and attempts are scoped to the authenticated subject; the
// anonymous sync gets none.
func StateHandler(svc *quiz.Service, store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packages, err := store.ListPackages(r.Context())
		if err != nil {
			log.Printf("api: package list failed: %v", err)
			packages = nil
		}
		var attempts []quiz.UserAttempt
		if subject := auth.SubjectFromContext(r.Context()); subject != "" {
			attempts, err = store.ListAttempts(r.Context(), subject)
			if err != nil {
				log.Printf("api: attempt list failed: %v", err)
				attempts = nil
			}
		}
		questions := svc.Questions()
		for i := range questions {
			questions[i].CorrectOptionID = ""
			questions[i].Comment = ""
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"questions": questions,
			"packages":  packages,
			"tags":      svc.TagSnapshot(),
			"attempts":  attempts,
		})
	}
}

// StartSessionHandler opens a simulator session, or returns the stored
// result when the email already answered before.
func StartSessionHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		res, err := svc.StartSession(r.Context(), req.Email)
		if err != nil {
			switch {
			case errors.Is(err, quiz.ErrInvalidEmail):
				http.Error(w, "insira um e-mail válido", http.StatusBadRequest)
			case errors.Is(err, quiz.ErrNoQuestions):
				http.Error(w, "nenhuma questão disponível", http.StatusServiceUnavailable)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

func AnswerHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		var req struct {
			OptionID string `json:"option_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		res, err := svc.AnswerQuestion(sessionID, req.OptionID)
		if err != nil {
			if errors.Is(err, quiz.ErrSessionNotFound) {
				http.Error(w, "session not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

// SessionResultHandler re-reads the aggregate of a live session.
func SessionResultHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := svc.GetSession(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"state": sess.Status(),
			"score": sess.Score(),
		})
	}
}

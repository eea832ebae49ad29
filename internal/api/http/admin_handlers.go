package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/operacional-pcba/simulado/internal/quiz"
)

// CreateQuestionHandler stores a new bank question and re-syncs the
// in-memory snapshot so tags pick it up immediately.
func CreateQuestionHandler(store quiz.Store, svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q quiz.Question
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if q.Text == "" || len(q.Options) == 0 || q.CorrectOptionID == "" {
			http.Error(w, "text, options and correctOptionId required", http.StatusBadRequest)
			return
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		q.Options = quiz.FillLabels(q.Options)
		if err := store.PutQuestion(r.Context(), q); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		svc.Refresh(r.Context())
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(q)
	}
}

func DeleteQuestionHandler(store quiz.Store, svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "questionID")
		if err := store.DeleteQuestion(r.Context(), id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		svc.Refresh(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

// AdminQuestionsHandler serves the full rows, answer keys included.
func AdminQuestionsHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(svc.Questions())
	}
}

// RecomputeTagsHandler forces a wholesale re-sync of the snapshot.
func RecomputeTagsHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Refresh(r.Context())
		_ = json.NewEncoder(w).Encode(svc.TagSnapshot())
	}
}

// SaveTagsHandler overwrites the stored tag snapshot wholesale. The
// next Refresh recomputes from the question bank, so this mainly warms
// the stored copy ahead of a bulk import.
func SaveTagsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var tags quiz.Tags
		if err := json.NewDecoder(r.Body).Decode(&tags); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := store.SaveTags(r.Context(), tags); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(tags)
	}
}

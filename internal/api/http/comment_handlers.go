package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	auth "github.com/operacional-pcba/simulado/internal/auth/middleware"
	"github.com/operacional-pcba/simulado/internal/quiz"
)

func ListCommentsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comments, err := store.ListComments(r.Context(), chi.URLParam(r, "questionID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if comments == nil {
			comments = []quiz.QuestionComment{}
		}
		_ = json.NewEncoder(w).Encode(comments)
	}
}

// CreateCommentHandler appends a community bizu to a question. The
// author comes from the authenticated subject, not the payload.
func CreateCommentHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Text == "" {
			http.Error(w, "text required", http.StatusBadRequest)
			return
		}
		email := auth.SubjectFromContext(r.Context())
		c := quiz.QuestionComment{
			ID:         uuid.NewString(),
			QuestionID: chi.URLParam(r, "questionID"),
			UserID:     email,
			UserEmail:  email,
			Text:       req.Text,
			CreatedAt:  time.Now().UnixMilli(),
		}
		if err := store.InsertComment(r.Context(), c); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(c)
	}
}

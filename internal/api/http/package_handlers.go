package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/operacional-pcba/simulado/internal/quiz"
)

// CreatePackageHandler saves a curated simulation. The question-id list
// is immutable once stored.
func CreatePackageHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p quiz.QuestionPackage
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if p.Name == "" || len(p.QuestionIDs) == 0 {
			http.Error(w, "name and questionIds required", http.StatusBadRequest)
			return
		}
		p.ID = uuid.NewString()
		p.CreatedAt = time.Now().UnixMilli()
		if err := store.PutPackage(r.Context(), p); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(p)
	}
}

func ListPackagesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packages, err := store.ListPackages(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if packages == nil {
			packages = []quiz.QuestionPackage{}
		}
		_ = json.NewEncoder(w).Encode(packages)
	}
}

// PackageQuestionsHandler resolves a package into its question
// sequence, preserving the stored order.
func PackageQuestionsHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := svc.PackageQuestions(r.Context(), chi.URLParam(r, "packageID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if qs == nil {
			qs = []quiz.Question{}
		}
		_ = json.NewEncoder(w).Encode(qs)
	}
}

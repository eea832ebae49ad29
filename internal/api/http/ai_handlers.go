package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/operacional-pcba/simulado/internal/quiz"
	"github.com/operacional-pcba/simulado/internal/storage"
)

// QuestionGenerator is what the handlers need from the AI client.
type QuestionGenerator interface {
	GenerateQuestion(ctx context.Context, board, discipline string, difficulty quiz.Difficulty, institution string) (quiz.Question, error)
	ExtractFromPDF(ctx context.Context, pdfBase64, board, institution, year string) ([]quiz.Question, error)
}

// GenerateQuestionHandler synthesizes one question and stores it.
func GenerateQuestionHandler(gen QuestionGenerator, store quiz.Store, svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Board       string `json:"board"`
			Discipline  string `json:"discipline"`
			Difficulty  string `json:"difficulty"`
			Institution string `json:"institution"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Board == "" || req.Discipline == "" || req.Difficulty == "" || req.Institution == "" {
			http.Error(w, "board, discipline, difficulty and institution required", http.StatusBadRequest)
			return
		}
		q, err := gen.GenerateQuestion(r.Context(), req.Board, req.Discipline, quiz.Difficulty(req.Difficulty), req.Institution)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		if err := store.PutQuestion(r.Context(), q); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		svc.Refresh(r.Context())
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(q)
	}
}

// ExtractPDFHandler archives the uploaded document, runs extraction and
// stores every question found.
func ExtractPDFHandler(gen QuestionGenerator, store quiz.Store, blobs storage.BlobStore, svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PDFBase64   string `json:"pdf_base64"`
			Board       string `json:"board"`
			Institution string `json:"institution"`
			Year        string `json:"year"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.PDFBase64 == "" || req.Board == "" || req.Institution == "" || req.Year == "" {
			http.Error(w, "pdf_base64, board, institution and year required", http.StatusBadRequest)
			return
		}

		raw, err := base64.StdEncoding.DecodeString(req.PDFBase64)
		if err != nil {
			http.Error(w, "pdf_base64 is not valid base64", http.StatusBadRequest)
			return
		}
		key := fmt.Sprintf("uploads/%s/%s-%s.pdf", req.Year, time.Now().Format("20060102"), uuid.NewString())
		if _, err := blobs.Put(key, bytes.NewReader(raw)); err != nil {
			// Archival is best effort; extraction still proceeds.
			log.Printf("api: pdf archive failed: %v", err)
		}

		questions, err := gen.ExtractFromPDF(r.Context(), req.PDFBase64, req.Board, req.Institution, req.Year)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		stored := 0
		for _, q := range questions {
			if err := store.PutQuestion(r.Context(), q); err != nil {
				log.Printf("api: extracted question store failed (%s): %v", q.ID, err)
				continue
			}
			stored++
		}
		svc.Refresh(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"extracted": len(questions),
			"stored":    stored,
			"archive":   key,
			"questions": questions,
		})
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/operacional-pcba/simulado/internal/ai"
	api "github.com/operacional-pcba/simulado/internal/api/http"
	auth "github.com/operacional-pcba/simulado/internal/auth/middleware"
	"github.com/operacional-pcba/simulado/internal/config"
	"github.com/operacional-pcba/simulado/internal/db"
	"github.com/operacional-pcba/simulado/internal/quiz"
	"github.com/operacional-pcba/simulado/internal/rbac"
	"github.com/operacional-pcba/simulado/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := quiz.NewSQLStore(dbh, cfg.DBDriver)

	// --- Domain service (loads the playable set, derives tags) ---
	svc := quiz.NewService(store)
	svc.Refresh(ctx)

	// --- AI client ---
	gen := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)

	// --- Blob archive for uploaded exam PDFs ---
	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	// Logins
	r.Post("/auth/login", auth.AdminLoginHandler(authSvc, cfg.AdminUser, cfg.AdminPassHash))
	r.Post("/auth/student", auth.StudentLoginHandler(authSvc))

	// Public simulator surface (lead capture needs no token)
	r.Route("/api", func(pr chi.Router) {
		pr.Get("/questions", api.QuestionsHandler(svc))
		pr.Get("/tags", api.TagsHandler(svc))
		pr.Get("/state", api.StateHandler(svc, store))
		pr.Post("/simulado/start", api.StartSessionHandler(svc))
		pr.Post("/simulado/{sessionID}/answer", api.AnswerHandler(svc))
		pr.Get("/simulado/{sessionID}/result", api.SessionResultHandler(svc))
		pr.Get("/questions/{questionID}/comments", api.ListCommentsHandler(store))
	})

	// Student dashboard (JWT)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("comment:create")).
			Post("/api/questions/{questionID}/comments", api.CreateCommentHandler(store))
		pr.With(rbac.Require("attempt:create")).
			Post("/api/attempts", api.CreateAttemptHandler(store))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/api/attempts", api.ListAttemptsHandler(store))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/api/attempts/summary", api.AttemptSummaryHandler(store))
		pr.With(rbac.Require("training:run")).
			Get("/api/training", api.TrainingHandler(svc))
		pr.With(rbac.Require("training:run")).
			Get("/api/targets/{contestClass}/institutions", api.TargetInstitutionsHandler(svc))
		pr.With(rbac.RequireAny("training:run", "package:manage")).
			Get("/api/packages", api.ListPackagesHandler(store))
		pr.With(rbac.RequireAny("training:run", "package:manage")).
			Get("/api/packages/{packageID}/questions", api.PackageQuestionsHandler(svc))
	})

	// Admin console (JWT + rbac; only the admin role carries these)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("question:create")).
			Post("/api/admin/questions", api.CreateQuestionHandler(store, svc))
		pr.With(rbac.Require("question:delete")).
			Delete("/api/admin/questions/{questionID}", api.DeleteQuestionHandler(store, svc))
		pr.With(rbac.Require("question:list")).
			Get("/api/admin/questions", api.AdminQuestionsHandler(svc))
		pr.With(rbac.Require("package:manage")).
			Post("/api/admin/packages", api.CreatePackageHandler(store))
		pr.With(rbac.Require("tags:write")).
			Put("/api/admin/tags", api.SaveTagsHandler(store))
		pr.With(rbac.Require("tags:write")).
			Post("/api/admin/tags/recompute", api.RecomputeTagsHandler(svc))
		pr.With(rbac.Require("ai:generate")).
			Post("/api/admin/ai/generate", api.GenerateQuestionHandler(gen, store, svc))
		pr.With(rbac.Require("ai:extract")).
			Post("/api/admin/ai/extract", api.ExtractPDFHandler(gen, store, blobs, svc))
	})

	log.Printf("listening on %s (db=%s, model=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.GeminiModel)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

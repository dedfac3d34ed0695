package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/moorworks/peatshelf/internal/api/http"
	"github.com/moorworks/peatshelf/internal/catalog"
	"github.com/moorworks/peatshelf/internal/config"
	"github.com/moorworks/peatshelf/internal/db"
	"github.com/moorworks/peatshelf/internal/quiz"
	"github.com/moorworks/peatshelf/internal/results"
	"github.com/moorworks/peatshelf/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	resultStore := results.NewSQLStore(dbh)

	// A broken bank would serve a broken quiz; refuse to start instead.
	bank, err := quiz.LoadBank(cfg.BankPath)
	if err != nil {
		log.Fatalf("question bank: %v", err)
	}

	// A missing manifest is survivable: the site runs with an empty catalog
	// until the next build lands.
	entries, err := catalog.Load(cfg.ManifestPath)
	if err != nil {
		log.Printf("catalog manifest %s unavailable (%v), serving an empty catalog", cfg.ManifestPath, err)
		entries = []catalog.Entry{}
	}

	// --- Sessions ---
	var sessions quiz.Store
	switch cfg.SessionBackend {
	case "redis":
		rs, err := quiz.NewRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			log.Fatalf("redis session store: %v", err)
		}
		sessions = rs
	default:
		sessions = quiz.NewMemoryStore(cfg.SessionTTL)
	}
	flow := quiz.NewFlow(bank, sessions, resultStore, time.Now)

	bs, err := storage.NewFSStore(cfg.CoversDir)
	if err != nil {
		log.Fatalf("cover store: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/catalog", api.CatalogHandler(entries))
		ar.Post("/quiz-results", api.LogResultHandler(resultStore))
		ar.Route("/quiz", func(qr chi.Router) {
			qr.Get("/tiers", api.TiersHandler(bank))
			qr.Get("/{tier}/questions", api.QuestionsHandler(bank))
			qr.Post("/sessions", api.CreateSessionHandler(flow))
			qr.Post("/sessions/{sessionID}/answers", api.AnswerHandler(flow))
			qr.Post("/sessions/{sessionID}/submit", api.SubmitHandler(flow))
			qr.Get("/sessions/{sessionID}/review", api.ReviewHandler(flow))
		})
	})
	r.Route("/covers", func(cr chi.Router) {
		api.MountCovers(cr, bs)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			w.WriteHeader(503)
			return
		}
		w.WriteHeader(200)
	})

	log.Printf("listening on %s (mode=%s, db=%s, catalog=%d entries)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, len(entries))
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

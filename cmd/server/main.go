package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/anshgupta/community-board/internal/auth"
	"github.com/anshgupta/community-board/internal/community"
	"github.com/anshgupta/community-board/internal/config"
	"github.com/anshgupta/community-board/internal/middleware"
	"github.com/anshgupta/community-board/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// ── Logger ───────────────────────────────────────────────
	var l *zap.Logger
	var err error
	if cfg.Debug {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer l.Sync()

	// ── PostgreSQL ───────────────────────────────────────────
	pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		l.Fatal("postgres connect", zap.Error(err))
	}
	defer pgPool.Close()
	pgStore := store.NewPostgresStore(pgPool)
	if err := pgStore.Migrate(ctx); err != nil {
		l.Fatal("postgres migrate", zap.Error(err))
	}

	// ── MinIO ────────────────────────────────────────────────
	minioStore, err := store.NewMinioStore(
		ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
	)
	if err != nil {
		l.Fatal("minio connect", zap.Error(err))
	}

	// ── Token service ────────────────────────────────────────
	tokens, err := auth.NewTokenService(cfg.JWTSecret, auth.TokenTTL)
	if err != nil {
		l.Fatal("token service init", zap.Error(err))
	}

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(pgStore, tokens, l)
	communityHandler := community.NewHandler(pgStore, minioStore, l)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(l))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes (public)
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Posts: public read with optional identity, gated write
	r.Route("/api/posts", func(r chi.Router) {
		r.With(middleware.OptionalAuth(tokens)).Get("/", communityHandler.ListPosts)
		r.With(middleware.RequireAuth(tokens)).Post("/", communityHandler.CreatePost)
	})

	// Profile routes (protected)
	r.Route("/api/profile", func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Get("/", communityHandler.Profile)
		r.Post("/avatar", communityHandler.UploadAvatar)
	})

	// Avatars are public once uploaded
	r.Get("/api/avatars/*", communityHandler.GetAvatar)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		l.Info("backend listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}

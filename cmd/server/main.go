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
	"github.com/redis/go-redis/v9"

	"github.com/itemboard/backend/internal/auth"
	"github.com/itemboard/backend/internal/config"
	"github.com/itemboard/backend/internal/items"
	"github.com/itemboard/backend/internal/middleware"
	"github.com/itemboard/backend/internal/store"
	"github.com/itemboard/backend/internal/users"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	db := mongoClient.Database(cfg.MongoDB)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("mongo indexes: %v", err)
	}

	userStore := store.NewUserStore(db)
	itemStore := store.NewItemStore(db)
	infoStore := store.NewUserInfoStore(db)

	// ── Redis (auth rate limiting, optional) ─────────────────
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Printf("redis unavailable, auth rate limiting disabled: %v", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// ── Handlers ─────────────────────────────────────────────
	secret := []byte(cfg.JWTSecret)
	authHandler := auth.NewHandler(userStore, secret, cfg.Production())
	itemHandler := items.NewHandler(itemStore)
	userHandler := users.NewHandler(userStore, infoStore)

	requireAuth := middleware.RequireAuth(secret)
	authLimit := middleware.RateLimit(rdb, cfg.AuthRateLimit, time.Duration(cfg.AuthRateWindow)*time.Second)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Public auth routes
	r.With(authLimit).Post("/register", authHandler.Register)
	r.With(authLimit).Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	// Item routes (protected)
	r.Route("/items", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", itemHandler.List)
		r.Post("/", itemHandler.Create)
		r.Get("/{id}", itemHandler.Get)
		r.Patch("/{id}", itemHandler.Update)
		r.Delete("/{id}", itemHandler.Delete)
	})

	// Profile routes (protected)
	r.Route("/users", func(r chi.Router) {
		r.Use(requireAuth)
		r.Patch("/profile", userHandler.UpdateProfile)
		r.Patch("/password", userHandler.ChangePassword)
		r.Get("/information", userHandler.GetInformation)
		r.Patch("/information", userHandler.UpdateInformation)
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Backend listening on :%s (env=%s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}

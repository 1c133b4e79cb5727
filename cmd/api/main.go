package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/precofacil/precofacil-backend/internal/config"
	"github.com/precofacil/precofacil-backend/internal/database"
	"github.com/precofacil/precofacil-backend/internal/logger"
	"github.com/precofacil/precofacil-backend/internal/metrics"
	"github.com/precofacil/precofacil-backend/internal/modules/admin"
	"github.com/precofacil/precofacil-backend/internal/modules/catalog"
	"github.com/precofacil/precofacil-backend/internal/modules/search"
	"github.com/precofacil/precofacil-backend/internal/modules/stats"
	"github.com/precofacil/precofacil-backend/internal/modules/store"
	"github.com/precofacil/precofacil-backend/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.LogLevel, cfg.Server.Env); err != nil {
		panic(err)
	}
	log := logger.Get()

	db, err := database.Open(&cfg.DB)
	if err != nil {
		log.Fatal("failed to connect to the database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal("failed to migrate the database schema", zap.Error(err))
	}
	log.Info("connected to the database")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(logger.Middleware)
	router.Use(metrics.Middleware)
	router.Use(corsMiddleware(cfg.Server.FrontendURL))

	uploads := upload.NewSaver(cfg.UploadDir)
	router.Handle("/uploads/*", uploads.FileServer())
	router.Handle("/metrics", metrics.Handler())

	// ── Stores ──────────────────────────────────────────────
	storeRepo := store.NewPostgresRepository(db)
	storeService := store.NewService(storeRepo)
	store.NewHandler(storeService, uploads, log).RegisterRoutes(router)

	// ── Catalog ─────────────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService, uploads, log).RegisterRoutes(router)

	// ── Search ──────────────────────────────────────────────
	searchRepo := search.NewPostgresRepository(db)
	searchService := search.NewService(searchRepo, log)
	search.NewHandler(searchService, log).RegisterRoutes(router)

	// ── Stats ───────────────────────────────────────────────
	statsRepo := stats.NewPostgresRepository(db)
	stats.NewHandler(statsRepo, log).RegisterRoutes(router)

	// ── Admin ───────────────────────────────────────────────
	tokens := admin.NewTokenManager(cfg.Admin.TokenSecret, cfg.Admin.TokenTTL)
	adminService := admin.NewService(storeRepo, statsRepo, tokens, cfg.Admin.SecretKey)
	admin.NewHandler(adminService, tokens, cfg.Admin.SecretKey, log).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	log.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := http.ListenAndServe(":"+cfg.Server.Port, router); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// corsMiddleware allows the known frontends plus the configured one.
func corsMiddleware(frontendURL string) func(http.Handler) http.Handler {
	allowed := map[string]bool{
		"http://localhost:3000": true,
		"http://127.0.0.1:5500": true,
	}
	if frontendURL != "" {
		allowed[frontendURL] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Key")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rlejr135/band-archive/cache"
	"github.com/rlejr135/band-archive/config"
	"github.com/rlejr135/band-archive/core/auth"
	"github.com/rlejr135/band-archive/db"
	"github.com/rlejr135/band-archive/logger"
	"github.com/rlejr135/band-archive/repository"
	"github.com/rlejr135/band-archive/storage"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// NewRouter wires the archive REST contract onto a gorilla/mux router.
func NewRouter(h *APIHandler) *mux.Router {
	router := mux.NewRouter()

	// CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Range")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Request-id middleware; the id ties handler logs to one request.
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			w.Header().Set("X-Request-Id", requestID)
			logger.Debug("Request received",
				logger.String("requestId", requestID),
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path))
			next.ServeHTTP(w, r)
		})
	})

	// Songs
	router.HandleFunc("/songs", h.ListSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/songs", h.CreateSongHandler).Methods(http.MethodPost)
	router.HandleFunc("/songs/{id}", h.GetSongHandler).Methods(http.MethodGet)
	router.HandleFunc("/songs/{id}", h.UpdateSongHandler).Methods(http.MethodPut)
	router.HandleFunc("/songs/{id}", h.DeleteSongHandler).Methods(http.MethodDelete)

	// Media
	router.HandleFunc("/songs/{id}/media", h.UploadMediaHandler).Methods(http.MethodPost)
	router.HandleFunc("/media/{id}", h.DeleteMediaHandler).Methods(http.MethodDelete)
	router.HandleFunc("/media/{id}/rename", h.RenameMediaHandler).Methods(http.MethodPut)

	// Practice logs
	router.HandleFunc("/songs/{id}/practice-logs", h.ListPracticeLogsHandler).Methods(http.MethodGet)
	router.HandleFunc("/songs/{id}/practice-logs", h.CreatePracticeLogHandler).Methods(http.MethodPost)
	router.HandleFunc("/practice-logs/{id}", h.GetPracticeLogHandler).Methods(http.MethodGet)
	router.HandleFunc("/practice-logs/{id}", h.UpdatePracticeLogHandler).Methods(http.MethodPut)
	router.HandleFunc("/practice-logs/{id}", h.DeletePracticeLogHandler).Methods(http.MethodDelete)
	router.HandleFunc("/practice-logs/{id}/upload", h.UploadRecordingHandler).Methods(http.MethodPost)

	// Members and personal logs
	router.HandleFunc("/members", h.ListMembersHandler).Methods(http.MethodGet)
	router.HandleFunc("/members", h.CreateMemberHandler).Methods(http.MethodPost)
	router.HandleFunc("/members/{id}", h.GetMemberHandler).Methods(http.MethodGet)
	router.HandleFunc("/members/{id}", h.UpdateMemberHandler).Methods(http.MethodPut)
	router.HandleFunc("/members/{id}", h.DeleteMemberHandler).Methods(http.MethodDelete)
	router.HandleFunc("/members/{id}/logs", h.ListPersonalLogsHandler).Methods(http.MethodGet)
	router.HandleFunc("/members/{id}/logs", h.CreatePersonalLogHandler).Methods(http.MethodPost)
	router.HandleFunc("/logs/{id}", h.DeletePersonalLogHandler).Methods(http.MethodDelete)

	// Suggestions
	router.HandleFunc("/suggestions", h.ListSuggestionsHandler).Methods(http.MethodGet)
	router.HandleFunc("/suggestions", h.CreateSuggestionHandler).Methods(http.MethodPost)
	router.HandleFunc("/suggestions/{id}", h.DeleteSuggestionHandler).Methods(http.MethodDelete)
	router.HandleFunc("/suggestions/{id}/vote", h.VoteSuggestionHandler).Methods(http.MethodPost)

	// Dashboard
	router.HandleFunc("/dashboard/stats", h.DashboardStatsHandler).Methods(http.MethodGet)

	// Stored uploads (legacy direct links and media url paths)
	router.HandleFunc("/uploads/{path:.*}", h.ServeUploadHandler).Methods(http.MethodGet)

	return router
}

// Start initializes dependencies and runs the archive service until
// interrupted.
func Start() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	store, err := storage.NewProvider(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", logger.ErrorField(err))
	}

	if err := db.Connect(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", logger.ErrorField(err))
	}

	// Redis is optional; without it stats are computed per request.
	if err := cache.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, dashboard stats cache disabled", logger.ErrorField(err))
	} else {
		defer cache.CloseRedis()
	}

	gate, err := auth.NewGate(cfg.DeletePassword)
	if err != nil {
		logger.Fatal("Failed to initialize delete gate", logger.ErrorField(err))
	}

	handler := NewAPIHandler(
		repository.NewGormSongRepository(db.DB),
		repository.NewGormMediaRepository(db.DB),
		repository.NewGormPracticeLogRepository(db.DB),
		repository.NewGormMemberRepository(db.DB),
		repository.NewGormPersonalLogRepository(db.DB),
		repository.NewGormSuggestionRepository(db.DB),
		store,
		gate,
		cfg,
	)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      NewRouter(handler),
		ReadTimeout:  5 * time.Minute, // uploads can be large
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Archive service starting", logger.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}

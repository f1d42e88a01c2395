package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shettydevesh/zenvestAi-backend/internal/api/handlers"
	"github.com/shettydevesh/zenvestAi-backend/internal/api/middleware"
	"github.com/shettydevesh/zenvestAi-backend/internal/archive"
	"github.com/shettydevesh/zenvestAi-backend/internal/chat"
	"github.com/shettydevesh/zenvestAi-backend/internal/fidata"
	"github.com/shettydevesh/zenvestAi-backend/internal/llm"
	"github.com/shettydevesh/zenvestAi-backend/internal/logger"
	"github.com/shettydevesh/zenvestAi-backend/internal/mentor"
	store "github.com/shettydevesh/zenvestAi-backend/internal/store/bigquery"
)

func main() {
	// Parse command-line flags
	var (
		port    = flag.String("port", "8080", "HTTP server port")
		project = flag.String("project", os.Getenv("BIGQUERY_PROJECT_ID"), "GCP project for BigQuery (or set BIGQUERY_PROJECT_ID env)")
		dataset = flag.String("dataset", os.Getenv("BIGQUERY_DATASET"), "BigQuery dataset name (or set BIGQUERY_DATASET env)")
		bucket  = flag.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket for session archives (or set GCS_BUCKET env)")
	)
	flag.Parse()

	// Initialize logger
	log := logger.NewWithLevel(os.Getenv("LOG_LEVEL"))

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		log.Fatal().Msg("SECRET_KEY must be set")
	}

	ctx := context.Background()

	// Initialize repositories
	store.Configure(*project, *dataset)
	repo, err := store.NewRepository(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create BigQuery repository")
	}
	defer repo.Close()

	// Session archiving is optional; skip it when no bucket is configured.
	var archiver mentor.Archiver
	if *bucket != "" {
		uploader, err := archive.NewUploader(ctx, *bucket)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create session archiver")
		}
		defer uploader.Close()
		archiver = uploader
	} else {
		log.Warn().Msg("No GCS bucket configured - session archiving disabled")
	}

	generator, err := llm.NewGeminiGenerator(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create model client")
	}

	normalizer := fidata.NewNormalizer(repo, log)
	mentorService := mentor.NewService(normalizer, generator, repo, archiver, log)

	conversations, err := chat.NewConversationStore()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create conversation store")
	}
	chatService := chat.NewService(conversations, generator, log)

	// Initialize handlers
	mentorHandler := handlers.NewMentorHandler(mentorService, repo, normalizer, log)
	personaHandler := handlers.NewPersonaHandler(chatService, conversations, log)

	// Create router
	mux := http.NewServeMux()

	// Mentor endpoints
	mux.HandleFunc("/api/v1/mentor/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			mentorHandler.Chat(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/v1/mentor/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			mentorHandler.ListSessions(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/v1/mentor/analysis", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			mentorHandler.Analysis(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Persona endpoints
	mux.HandleFunc("/api/v1/persona/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			personaHandler.Chat(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/v1/persona/conversations", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			personaHandler.ListConversations(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	authenticated := middleware.Auth([]byte(secret))(mux)

	// Health check endpoint stays outside auth
	root := http.NewServeMux()
	root.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	root.Handle("/", authenticated)

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(root),
			),
		),
	)

	// Create HTTP server. The write timeout allows for slow model calls.
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

package api

import (
	"net/http"
	"time"

	chatapi "github.com/futig/rag-backend/internal/api/chat"
	"github.com/futig/rag-backend/internal/api/docs"
	documentsapi "github.com/futig/rag-backend/internal/api/documents"
	knowledgeapi "github.com/futig/rag-backend/internal/api/knowledge"
	"github.com/futig/rag-backend/internal/api/middleware"
	retrievalapi "github.com/futig/rag-backend/internal/api/retrieval"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handlers struct {
	Documents *documentsapi.Handler
	Knowledge *knowledgeapi.Handler
	Retrieval *retrievalapi.Handler
	Chat      *chatapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	handlers Handlers,
	limiter middleware.Limiter,
	requestTimeout time.Duration,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)   // Recover from panics
	r.Use(chimiddleware.RequestID)   // Add request ID
	r.Use(chimiddleware.RealIP)      // Client address for rate limiting
	r.Use(middleware.Logger(logger)) // Log requests
	r.Use(middleware.CORS)           // Handle CORS

	limit := middleware.RateLimit(limiter)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Streaming answers are bounded by the client connection, not a timeout
	chatapi.RegisterRoutes(r, handlers.Chat, limit)

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(requestTimeout))

		documentsapi.RegisterRoutes(r, handlers.Documents, limit)
		knowledgeapi.RegisterRoutes(r, handlers.Knowledge)
		retrievalapi.RegisterRoutes(r, handlers.Retrieval)
	})

	return r
}

package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/rag-backend/internal/api"
	chatapi "github.com/futig/rag-backend/internal/api/chat"
	documentsapi "github.com/futig/rag-backend/internal/api/documents"
	knowledgeapi "github.com/futig/rag-backend/internal/api/knowledge"
	retrievalapi "github.com/futig/rag-backend/internal/api/retrieval"
	"github.com/futig/rag-backend/internal/chunker"
	"github.com/futig/rag-backend/internal/config"
	"github.com/futig/rag-backend/internal/integration/embedding"
	"github.com/futig/rag-backend/internal/integration/llm"
	"github.com/futig/rag-backend/internal/pkg/extractor"
	"github.com/futig/rag-backend/internal/pkg/ratelimit"
	"github.com/futig/rag-backend/internal/pkg/validator"
	"github.com/futig/rag-backend/internal/repository"
	"github.com/futig/rag-backend/internal/telegram"
	"github.com/futig/rag-backend/internal/usecase/chat"
	"github.com/futig/rag-backend/internal/usecase/ingestion"
	"github.com/futig/rag-backend/internal/usecase/retrieval"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// pipeline is everything both front ends share
type pipeline struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *pgxpool.Pool

	ingestionUC *ingestion.IngestionUsecase
	retrievalUC *retrieval.RetrievalUsecase
	chatUC      *chat.ChatUsecase

	extractor *extractor.Factory
	validator *validator.Validator
	limiter   *ratelimit.Limiter
}

func Build() (*App, error) {
	p, err := buildPipeline(context.Background(), "Building application")
	if err != nil {
		return nil, err
	}
	cfg, logger := p.cfg, p.logger

	// Setup API handlers
	handlers := api.Handlers{
		Documents: documentsapi.NewHandler(p.ingestionUC, p.extractor, cfg.FileUploadCfg, p.validator),
		Knowledge: knowledgeapi.NewHandler(p.ingestionUC),
		Retrieval: retrievalapi.NewHandler(p.retrievalUC),
		Chat:      chatapi.NewHandler(p.chatUC, cfg.MaxChatBodySize),
	}
	logger.Info("API handlers initialized")

	router := api.SetupRouter(handlers, p.limiter, cfg.RequestTimeout, logger)
	logger.Info("HTTP router configured")

	// No WriteTimeout: chat answers are streamed for as long as generation runs
	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:          server,
		db:              p.db,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// BuildTelegramBot creates the Telegram bot on top of the shared pipeline
func BuildTelegramBot() (*BotApp, error) {
	p, err := buildPipeline(context.Background(), "Building Telegram bot")
	if err != nil {
		return nil, err
	}

	if p.cfg.TelegramCfg.BotToken == "" {
		p.close()
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	bot, err := telegram.NewBot(&p.cfg.TelegramCfg, telegram.Dependencies{
		Chat:      p.chatUC,
		Ingestion: p.ingestionUC,
		Extractor: p.extractor,
		Validator: p.validator,
		Limiter:   p.limiter,
	}, p.logger)
	if err != nil {
		p.close()
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	p.logger.Info("Telegram bot built successfully",
		zap.String("environment", p.cfg.Environment),
	)

	return &BotApp{
		bot:     bot,
		logger:  p.logger,
		release: p.close,
	}, nil
}

func buildPipeline(ctx context.Context, msg string) (*pipeline, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info(msg,
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.Bool("mocks", cfg.EnableMocks),
	)

	p := &pipeline{cfg: cfg, logger: logger}

	var (
		chunkStore   ingestion.ChunkStore
		chunkSearch  retrieval.ChunkSearcher
		documentRepo repository.DocumentRepository
		embedder     ingestion.EmbeddingConnector
		generator    chat.LLMConnector
	)

	dimension := cfg.EmbeddingConnectorCfg.Dimension

	if cfg.EnableMocks {
		logger.Info("Using in-memory stores and mock connectors")

		chunks := repository.NewChunkMemory(dimension)
		chunkStore, chunkSearch = chunks, chunks
		documentRepo = repository.NewDocumentMemory()
		embedder = embedding.NewMockConnector(dimension, logger)
		generator = llm.NewMockConnector(logger)
	} else {
		// The vector extension must exist before pool connections register its types
		logger.Info("Running database migrations")
		if err := repository.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		db, err := setupDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("setup database: %w", err)
		}
		p.db = db

		chunks := repository.NewChunkPostgres(db, dimension)
		chunkStore, chunkSearch = chunks, chunks
		documentRepo = repository.NewDocumentPostgres(db)
		logger.Info("Repositories initialized")

		embedder, generator = setupConnectors(cfg, logger)
	}

	textChunker, err := chunker.New(cfg.ChunkerCfg)
	if err != nil {
		p.close()
		return nil, fmt.Errorf("setup chunker: %w", err)
	}

	// Initialize use cases
	p.ingestionUC = ingestion.NewUsecase(textChunker, embedder, chunkStore, documentRepo, logger)
	p.retrievalUC = retrieval.NewUsecase(embedder, chunkSearch, cfg.RetrievalCfg, logger)
	p.chatUC = chat.NewUsecase(p.retrievalUC, generator, logger)
	logger.Info("Use cases initialized")

	p.extractor = extractor.NewFactory()
	p.validator = validator.NewFileValidator(cfg.FileUploadCfg)
	p.limiter = ratelimit.New(cfg.RateLimitCfg)

	return p, nil
}

func setupConnectors(cfg *config.Config, logger *zap.Logger) (ingestion.EmbeddingConnector, chat.LLMConnector) {
	var (
		embedder  ingestion.EmbeddingConnector
		generator chat.LLMConnector
	)

	switch cfg.EmbeddingConnectorCfg.Provider {
	case config.ProviderOpenAI:
		embedder = embedding.NewOpenAIConnector(cfg.EmbeddingConnectorCfg, logger)
	default:
		embedder = embedding.NewConnector(cfg.EmbeddingConnectorCfg, logger)
	}

	switch cfg.LLMConnectorCfg.Provider {
	case config.ProviderOpenAI:
		generator = llm.NewOpenAIConnector(cfg.LLMConnectorCfg, logger)
	default:
		generator = llm.NewConnector(cfg.LLMConnectorCfg, logger)
	}

	logger.Info("External service connectors initialized",
		zap.String("embedding_provider", string(cfg.EmbeddingConnectorCfg.Provider)),
		zap.String("embedding_model", cfg.EmbeddingConnectorCfg.Model),
		zap.String("llm_provider", string(cfg.LLMConnectorCfg.Provider)),
		zap.String("llm_model", cfg.LLMConnectorCfg.Model),
	)

	return embedder, generator
}

func (p *pipeline) close() {
	if p.db != nil {
		p.logger.Info("Closing database connections")
		p.db.Close()
	}
	_ = p.logger.Sync()
}

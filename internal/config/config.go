package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/rag-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr      string        `env:"SERVER_ADDR,notEmpty"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"120s"` // non-streaming routes
	MaxChatBodySize int64         `env:"MAX_CHAT_BODY_SIZE" envDefault:"1048576"`

	// Database configuration
	DatabaseURL         string               `env:"DATABASE_URL"`
	DBMaxConns          int                  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int                  `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration        `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration        `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration        `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBConnectRetry      pkgRetry.RetryConfig `envPrefix:"DB_CONNECT_RETRY_"`
	MigrationsDir       string               `env:"MIGRATIONS_DIR" envDefault:"internal/repository/migrations"`

	// Pipeline configuration
	ChunkerCfg   ChunkerConfig   `envPrefix:"CHUNKER_"`
	RetrievalCfg RetrievalConfig `envPrefix:"RETRIEVAL_"`

	// External service configurations
	EmbeddingConnectorCfg EmbeddingConnectorConfig `envPrefix:"EMBEDDING_"`
	LLMConnectorCfg       LLMConnectorConfig       `envPrefix:"LLM_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Rate limiting for chat and upload endpoints
	RateLimitCfg RateLimitConfig `envPrefix:"RATE_LIMIT_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// ChunkerConfig controls the ingestion text windowing
type ChunkerConfig struct {
	Size          int `env:"SIZE" envDefault:"500"`
	Overlap       int `env:"OVERLAP" envDefault:"50"`
	MaxChunks     int `env:"MAX_CHUNKS" envDefault:"1000"`
	MaxTextLength int `env:"MAX_TEXT_LENGTH" envDefault:"500000"`
}

// RetrievalConfig holds the interactive retrieval policy
type RetrievalConfig struct {
	DefaultLimit     int     `env:"DEFAULT_LIMIT" envDefault:"5"`
	DefaultThreshold float64 `env:"DEFAULT_THRESHOLD" envDefault:"0.3"`
	MaxLimit         int     `env:"MAX_LIMIT" envDefault:"50"`
}

type ProviderType string

const (
	ProviderOllama ProviderType = "ollama"
	ProviderOpenAI ProviderType = "openai"
)

type EmbeddingConnectorConfig struct {
	HTTPClientConfig
	Provider  ProviderType `env:"PROVIDER" envDefault:"ollama"`
	Endpoint  string       `env:"ENDPOINT" envDefault:"/api/embed"`
	Model     string       `env:"MODEL" envDefault:"text-embedding-004"`
	Dimension int          `env:"DIMENSION" envDefault:"768"`
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	Provider        ProviderType `env:"PROVIDER" envDefault:"ollama"`
	ChatEndpoint    string       `env:"CHAT_ENDPOINT" envDefault:"/api/chat"`
	Model           string       `env:"MODEL" envDefault:"gemini-2.0-flash"`
	Temperature     float64      `env:"TEMPERATURE" envDefault:"0.7"`
	TopP            float64      `env:"TOP_P" envDefault:"0.95"`
	MaxOutputTokens int          `env:"MAX_OUTPUT_TOKENS" envDefault:"2048"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	TLSHandshakeTimeout   time.Duration `env:"TLS_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	MaxIdleConns          int           `env:"MAX_IDLE_CONNS" envDefault:"100"`
	MaxIdleConnsPerHost   int           `env:"MAX_IDLE_CONNS_PER_HOST" envDefault:"10"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"10485760"`   // 10 MiB
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"` // 32 MiB
}

// RateLimitConfig configures the per-client token bucket
type RateLimitConfig struct {
	Enabled           bool `env:"ENABLED" envDefault:"true"`
	RequestsPerMinute int  `env:"PER_MINUTE" envDefault:"30"`
	Burst             int  `env:"BURST" envDefault:"10"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken        string        `env:"BOT_TOKEN"`
	UpdateTimeout   int           `env:"UPDATE_TIMEOUT" envDefault:"60"`
	ShutdownTimeout int           `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	HandlerTimeout  time.Duration `env:"HANDLER_TIMEOUT" envDefault:"3m"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate chunker configuration
	if cfg.ChunkerCfg.Size <= 0 {
		errors = append(errors, fmt.Sprintf("CHUNKER_SIZE must be positive, got %d", cfg.ChunkerCfg.Size))
	}

	if cfg.ChunkerCfg.Overlap < 0 || cfg.ChunkerCfg.Overlap >= cfg.ChunkerCfg.Size {
		errors = append(errors, fmt.Sprintf("CHUNKER_OVERLAP must be between 0 and CHUNKER_SIZE-1(%d), got %d", cfg.ChunkerCfg.Size-1, cfg.ChunkerCfg.Overlap))
	}

	if cfg.ChunkerCfg.MaxChunks < 1 {
		errors = append(errors, fmt.Sprintf("CHUNKER_MAX_CHUNKS must be positive, got %d", cfg.ChunkerCfg.MaxChunks))
	}

	if cfg.ChunkerCfg.MaxTextLength < 1 {
		errors = append(errors, fmt.Sprintf("CHUNKER_MAX_TEXT_LENGTH must be positive, got %d", cfg.ChunkerCfg.MaxTextLength))
	}

	// Validate retrieval configuration
	if cfg.RetrievalCfg.MaxLimit < 1 {
		errors = append(errors, fmt.Sprintf("RETRIEVAL_MAX_LIMIT must be positive, got %d", cfg.RetrievalCfg.MaxLimit))
	}

	if cfg.RetrievalCfg.DefaultLimit < 1 || cfg.RetrievalCfg.DefaultLimit > cfg.RetrievalCfg.MaxLimit {
		errors = append(errors, fmt.Sprintf("RETRIEVAL_DEFAULT_LIMIT must be between 1 and RETRIEVAL_MAX_LIMIT(%d), got %d", cfg.RetrievalCfg.MaxLimit, cfg.RetrievalCfg.DefaultLimit))
	}

	// Validate external services
	if cfg.EmbeddingConnectorCfg.Dimension < 1 {
		errors = append(errors, fmt.Sprintf("EMBEDDING_DIMENSION must be positive, got %d", cfg.EmbeddingConnectorCfg.Dimension))
	}

	if !cfg.EnableMocks {
		if cfg.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when ENABLE_MOCKS is false")
		}
		if cfg.EmbeddingConnectorCfg.Url == "" {
			errors = append(errors, "EMBEDDING_SERVICE_URL is required when ENABLE_MOCKS is false")
		}
		if cfg.LLMConnectorCfg.Url == "" {
			errors = append(errors, "LLM_SERVICE_URL is required when ENABLE_MOCKS is false")
		}
		if !isKnownProvider(cfg.EmbeddingConnectorCfg.Provider) {
			errors = append(errors, fmt.Sprintf("EMBEDDING_PROVIDER must be ollama or openai, got %q", cfg.EmbeddingConnectorCfg.Provider))
		}
		if !isKnownProvider(cfg.LLMConnectorCfg.Provider) {
			errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be ollama or openai, got %q", cfg.LLMConnectorCfg.Provider))
		}
	}

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	// Validate rate limiting
	if cfg.RateLimitCfg.Enabled {
		if cfg.RateLimitCfg.RequestsPerMinute < 1 || cfg.RateLimitCfg.RequestsPerMinute > 600 {
			errors = append(errors, fmt.Sprintf("RATE_LIMIT_PER_MINUTE must be between 1 and 600, got %d", cfg.RateLimitCfg.RequestsPerMinute))
		}
		if cfg.RateLimitCfg.Burst < 1 || cfg.RateLimitCfg.Burst > 100 {
			errors = append(errors, fmt.Sprintf("RATE_LIMIT_BURST must be between 1 and 100, got %d", cfg.RateLimitCfg.Burst))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func isKnownProvider(p ProviderType) bool {
	return p == ProviderOllama || p == ProviderOpenAI
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}

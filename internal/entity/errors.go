package entity

import "errors"

// Domain errors
var (
	// Pipeline errors
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrEmbeddingService  = errors.New("embedding service error")
	ErrStorage           = errors.New("storage error")
	ErrGenerationStream  = errors.New("generation stream error")

	// Document errors
	ErrDocumentNotFound    = errors.New("document not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("no text content found in file")
	ErrFileTooLarge        = errors.New("file too large")

	// Request errors
	ErrMissingField = errors.New("required field is missing")
	ErrRateLimited  = errors.New("rate limit exceeded")
)

package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Can't change response at this point, just log
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// Error logs err and writes an error response
func Error(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	fields := []zap.Field{zap.Int("status", status)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, fields...)
	} else {
		ctxzap.Warn(ctx, message, fields...)
	}

	JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// UsecaseError maps a domain error to its HTTP status
func UsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	status, message := StatusFor(err)
	Error(ctx, w, status, message, err)
}

func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrDocumentNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, entity.ErrInvalidParameters) || errors.Is(err, entity.ErrMissingField):
		return http.StatusBadRequest, "invalid parameter"
	case errors.Is(err, entity.ErrUnsupportedFileType):
		return http.StatusBadRequest, "unsupported file type"
	case errors.Is(err, entity.ErrEmptyDocument):
		return http.StatusBadRequest, entity.ErrEmptyDocument.Error()
	case errors.Is(err, entity.ErrFileTooLarge):
		return http.StatusBadRequest, "file too large"
	case errors.Is(err, entity.ErrRateLimited):
		return http.StatusTooManyRequests, "too many requests"
	case errors.Is(err, entity.ErrEmbeddingService):
		return http.StatusBadGateway, "embedding service unavailable"
	case errors.Is(err, entity.ErrGenerationStream):
		return http.StatusBadGateway, "generation service unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

package retrieval

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/futig/rag-backend/internal/pkg/logger"
	"github.com/futig/rag-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxBodySize = 64 << 10

type Handler struct {
	usecase RetrievalUsecase
}

func NewHandler(usecase RetrievalUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Retrieve handles POST /retrieve
func (h *Handler) Retrieve(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Retrieve")

	var req entity.RetrieveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		response.Error(ctx, w, http.StatusBadRequest, "query is required", entity.ErrMissingField)
		return
	}
	if req.Limit != nil && *req.Limit <= 0 {
		response.Error(ctx, w, http.StatusBadRequest, "limit must be positive", entity.ErrInvalidParameters)
		return
	}
	if req.Threshold != nil && (*req.Threshold < -1 || *req.Threshold > 1) {
		response.Error(ctx, w, http.StatusBadRequest, "threshold must be between -1 and 1", entity.ErrInvalidParameters)
		return
	}

	limit, threshold := h.usecase.Params(req.Limit, req.Threshold)
	results := h.usecase.Retrieve(ctx, req.Query, limit, threshold)

	ctxzap.Info(ctx, "retrieval completed",
		zap.Int("limit", limit),
		zap.Float64("threshold", threshold),
		zap.Int("result_count", len(results)),
	)

	response.Success(w, &entity.RetrieveResponse{Results: results})
}

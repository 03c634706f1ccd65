package knowledge

import (
	"fmt"
	"net/http"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/futig/rag-backend/internal/pkg/logger"
	"github.com/futig/rag-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase KnowledgeUsecase
}

func NewHandler(usecase KnowledgeUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Seed handles POST /knowledge/seed
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SeedKnowledge")

	doc, err := h.usecase.SeedKnowledge(ctx)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "knowledge base initialized", zap.Int("chunk_count", doc.ChunkCount))

	response.Success(w, &entity.SeedKnowledgeResponse{
		Success:    true,
		Message:    fmt.Sprintf("Knowledge base initialized with %d entries", doc.ChunkCount),
		DocumentID: doc.ID,
		ChunkCount: doc.ChunkCount,
	})
}

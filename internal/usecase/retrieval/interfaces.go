package retrieval

import (
	"context"

	"github.com/futig/rag-backend/internal/entity"
)

type EmbeddingConnector interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type ChunkSearcher interface {
	SimilaritySearch(ctx context.Context, embedding []float32, threshold float64, limit int) ([]entity.SimilarityResult, error)
}

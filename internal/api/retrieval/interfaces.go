package retrieval

import (
	"context"

	"github.com/futig/rag-backend/internal/entity"
)

type RetrievalUsecase interface {
	Retrieve(ctx context.Context, query string, limit int, threshold float64) []entity.SimilarityResult
	Params(limit *int, threshold *float64) (int, float64)
}

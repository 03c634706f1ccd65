package knowledge

import (
	"context"

	"github.com/futig/rag-backend/internal/entity"
)

type KnowledgeUsecase interface {
	SeedKnowledge(ctx context.Context) (*entity.Document, error)
}

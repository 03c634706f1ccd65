package repository

import (
	"context"

	"github.com/futig/rag-backend/internal/entity"
)

// DocumentRepository persists one record per ingested document
type DocumentRepository interface {
	Create(ctx context.Context, doc entity.Document) (*entity.Document, error)
	Get(ctx context.Context, id string) (*entity.Document, error)
	List(ctx context.Context, skip, limit int) ([]*entity.Document, error)
	ListBySource(ctx context.Context, source entity.DocumentSource) ([]*entity.Document, error)
	UpdateChunkCount(ctx context.Context, id string, chunkCount int) error
	Delete(ctx context.Context, id string) error
}

package ingestion

import (
	"context"

	"github.com/futig/rag-backend/internal/entity"
)

type Chunker interface {
	Chunk(ctx context.Context, text string) ([]string, error)
}

type EmbeddingConnector interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type ChunkStore interface {
	Insert(ctx context.Context, chunk entity.Chunk) (entity.StoredChunkHandle, error)
	DeleteByDocument(ctx context.Context, documentID string) (int64, error)
}

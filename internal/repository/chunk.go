package repository

import (
	"context"
	"fmt"

	"github.com/futig/rag-backend/internal/entity"
)

// ChunkStore persists embedded chunks and answers nearest-neighbour queries.
type ChunkStore interface {
	Insert(ctx context.Context, chunk entity.Chunk) (entity.StoredChunkHandle, error)
	// SimilaritySearch returns at most limit chunks with cosine similarity
	// of at least threshold, most similar first.
	SimilaritySearch(ctx context.Context, embedding []float32, threshold float64, limit int) ([]entity.SimilarityResult, error)
	DeleteByDocument(ctx context.Context, documentID string) (int64, error)
}

func validateChunk(chunk entity.Chunk, dimension int) error {
	if chunk.DocumentID == "" {
		return fmt.Errorf("%w: chunk has no document", entity.ErrStorage)
	}
	if len(chunk.Embedding) == 0 || len(chunk.Embedding) != dimension {
		return fmt.Errorf("%w: embedding dimension %d, expected %d", entity.ErrStorage, len(chunk.Embedding), dimension)
	}
	return nil
}

func validateQuery(embedding []float32, dimension, limit int) error {
	if len(embedding) != dimension {
		return fmt.Errorf("%w: query dimension %d, expected %d", entity.ErrStorage, len(embedding), dimension)
	}
	if limit <= 0 {
		return fmt.Errorf("%w: limit must be positive", entity.ErrInvalidParameters)
	}
	return nil
}

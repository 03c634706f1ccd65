package repository

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/google/uuid"
)

var _ ChunkStore = &ChunkMemory{}

type storedChunk struct {
	id    string
	chunk entity.Chunk
}

// ChunkMemory implements ChunkStore with a brute-force scan. Ties keep
// insertion order.
type ChunkMemory struct {
	mu        sync.RWMutex
	chunks    []storedChunk
	dimension int
}

func NewChunkMemory(dimension int) *ChunkMemory {
	return &ChunkMemory{dimension: dimension}
}

func (r *ChunkMemory) Insert(_ context.Context, chunk entity.Chunk) (entity.StoredChunkHandle, error) {
	if err := validateChunk(chunk, r.dimension); err != nil {
		return entity.StoredChunkHandle{}, err
	}

	stored := storedChunk{
		id: uuid.NewString(),
		chunk: entity.Chunk{
			DocumentID: chunk.DocumentID,
			Content:    chunk.Content,
			Embedding:  append([]float32(nil), chunk.Embedding...),
			Metadata:   copyMetadata(chunk.Metadata),
		},
	}

	r.mu.Lock()
	r.chunks = append(r.chunks, stored)
	r.mu.Unlock()

	return entity.StoredChunkHandle{ID: stored.id, DocumentID: chunk.DocumentID}, nil
}

func (r *ChunkMemory) SimilaritySearch(
	ctx context.Context,
	embedding []float32,
	threshold float64,
	limit int,
) ([]entity.SimilarityResult, error) {
	if err := validateQuery(embedding, r.dimension, limit); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]entity.SimilarityResult, 0, limit)
	for _, sc := range r.chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		similarity := CosineSimilarity(embedding, sc.chunk.Embedding)
		if similarity < threshold {
			continue
		}
		results = append(results, entity.SimilarityResult{
			Content:    sc.chunk.Content,
			Similarity: similarity,
			Metadata:   copyMetadata(sc.chunk.Metadata),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func (r *ChunkMemory) DeleteByDocument(_ context.Context, documentID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.chunks[:0]
	var deleted int64
	for _, sc := range r.chunks {
		if sc.chunk.DocumentID == documentID {
			deleted++
			continue
		}
		kept = append(kept, sc)
	}
	clear(r.chunks[len(kept):])
	r.chunks = kept

	return deleted, nil
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0 when
// either vector is zero or the lengths differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func copyMetadata(m entity.Metadata) entity.Metadata {
	out := make(entity.Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

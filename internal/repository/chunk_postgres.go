package repository

import (
	"context"
	"fmt"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

var _ ChunkStore = &ChunkPostgres{}

// ChunkPostgres implements ChunkStore on PostgreSQL with pgvector
type ChunkPostgres struct {
	db        *pgxpool.Pool
	dimension int
}

func NewChunkPostgres(db *pgxpool.Pool, dimension int) *ChunkPostgres {
	return &ChunkPostgres{
		db:        db,
		dimension: dimension,
	}
}

func (r *ChunkPostgres) Insert(ctx context.Context, chunk entity.Chunk) (entity.StoredChunkHandle, error) {
	if err := validateChunk(chunk, r.dimension); err != nil {
		return entity.StoredChunkHandle{}, err
	}

	documentID, err := uuid.Parse(chunk.DocumentID)
	if err != nil {
		return entity.StoredChunkHandle{}, fmt.Errorf("%w: parse document ID: %w", entity.ErrStorage, err)
	}

	metadata := chunk.Metadata
	if metadata == nil {
		metadata = entity.Metadata{}
	}

	id := uuid.New()
	_, err = r.db.Exec(ctx, `
		INSERT INTO chunks (id, document_id, content, embedding, metadata)
		VALUES ($1, $2, $3, $4, $5)`,
		id, documentID, chunk.Content, pgvector.NewVector(chunk.Embedding), metadata,
	)
	if err != nil {
		return entity.StoredChunkHandle{}, fmt.Errorf("%w: insert chunk: %w", entity.ErrStorage, err)
	}

	return entity.StoredChunkHandle{ID: id.String(), DocumentID: chunk.DocumentID}, nil
}

func (r *ChunkPostgres) SimilaritySearch(
	ctx context.Context,
	embedding []float32,
	threshold float64,
	limit int,
) ([]entity.SimilarityResult, error) {
	if err := validateQuery(embedding, r.dimension, limit); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT content, 1 - (embedding <=> $1) AS similarity, metadata
		FROM chunks
		WHERE 1 - (embedding <=> $1) >= $2
		ORDER BY embedding <=> $1, seq
		LIMIT $3`,
		pgvector.NewVector(embedding), threshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity search: %w", entity.ErrStorage, err)
	}
	defer rows.Close()

	results := make([]entity.SimilarityResult, 0, limit)
	for rows.Next() {
		var res entity.SimilarityResult
		if err := rows.Scan(&res.Content, &res.Similarity, &res.Metadata); err != nil {
			return nil, fmt.Errorf("%w: scan chunk: %w", entity.ErrStorage, err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate chunks: %w", entity.ErrStorage, err)
	}

	return results, nil
}

func (r *ChunkPostgres) DeleteByDocument(ctx context.Context, documentID string) (int64, error) {
	id, err := uuid.Parse(documentID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", entity.ErrDocumentNotFound, err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM chunks WHERE document_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%w: delete chunks: %w", entity.ErrStorage, err)
	}

	return tag.RowsAffected(), nil
}

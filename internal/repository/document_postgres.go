package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ DocumentRepository = &DocumentPostgres{}

const documentColumns = `id, filename, file_type, source, text_length, chunk_count, uploaded_at`

// DocumentPostgres implements DocumentRepository using PostgreSQL
type DocumentPostgres struct {
	db *pgxpool.Pool
}

func NewDocumentPostgres(db *pgxpool.Pool) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

func (r *DocumentPostgres) Create(ctx context.Context, doc entity.Document) (*entity.Document, error) {
	docID, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: parse document ID: %w", entity.ErrStorage, err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO documents (id, filename, file_type, source, text_length, chunk_count, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+documentColumns,
		docID, doc.Filename, doc.FileType, string(doc.Source), doc.TextLength, doc.ChunkCount, doc.UploadedAt,
	)

	created, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("%w: create document: %w", entity.ErrStorage, err)
	}

	return created, nil
}

func (r *DocumentPostgres) Get(ctx context.Context, id string) (*entity.Document, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil, entity.ErrDocumentNotFound
	}

	row := r.db.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, docID)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("%w: get document: %w", entity.ErrStorage, err)
	}

	return doc, nil
}

func (r *DocumentPostgres) List(ctx context.Context, skip, limit int) ([]*entity.Document, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		ORDER BY uploaded_at DESC, id
		OFFSET $1 LIMIT $2`,
		skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list documents: %w", entity.ErrStorage, err)
	}

	return collectDocuments(rows)
}

func (r *DocumentPostgres) ListBySource(ctx context.Context, source entity.DocumentSource) ([]*entity.Document, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE source = $1
		ORDER BY uploaded_at DESC, id`,
		string(source),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list documents by source: %w", entity.ErrStorage, err)
	}

	return collectDocuments(rows)
}

func (r *DocumentPostgres) UpdateChunkCount(ctx context.Context, id string, chunkCount int) error {
	docID, err := uuid.Parse(id)
	if err != nil {
		return entity.ErrDocumentNotFound
	}

	tag, err := r.db.Exec(ctx, `UPDATE documents SET chunk_count = $2 WHERE id = $1`, docID, chunkCount)
	if err != nil {
		return fmt.Errorf("%w: update chunk count: %w", entity.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrDocumentNotFound
	}

	return nil
}

func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	docID, err := uuid.Parse(id)
	if err != nil {
		return entity.ErrDocumentNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, docID)
	if err != nil {
		return fmt.Errorf("%w: delete document: %w", entity.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrDocumentNotFound
	}

	return nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var (
		doc    entity.Document
		id     uuid.UUID
		source string
	)

	err := row.Scan(&id, &doc.Filename, &doc.FileType, &source, &doc.TextLength, &doc.ChunkCount, &doc.UploadedAt)
	if err != nil {
		return nil, err
	}

	doc.ID = id.String()
	doc.Source = entity.DocumentSource(source)

	return &doc, nil
}

func collectDocuments(rows pgx.Rows) ([]*entity.Document, error) {
	defer rows.Close()

	docs := make([]*entity.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan document: %w", entity.ErrStorage, err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate documents: %w", entity.ErrStorage, err)
	}

	return docs, nil
}

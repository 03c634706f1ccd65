package ingestion

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/futig/rag-backend/internal/pkg/logger"
	"github.com/futig/rag-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// IngestionUsecase turns documents into stored, embedded chunks.
// Chunks are processed one at a time; the first failure aborts the call and
// chunks stored before it are kept.
type IngestionUsecase struct {
	chunker  Chunker
	embedder EmbeddingConnector
	chunks   ChunkStore
	docs     repository.DocumentRepository
	logger   *zap.Logger
}

func NewUsecase(
	chunker Chunker,
	embedder EmbeddingConnector,
	chunks ChunkStore,
	docs repository.DocumentRepository,
	logger *zap.Logger,
) *IngestionUsecase {
	return &IngestionUsecase{
		chunker:  chunker,
		embedder: embedder,
		chunks:   chunks,
		docs:     docs,
		logger:   logger,
	}
}

// IngestDocument chunks, embeds and stores the text of one document.
func (uc *IngestionUsecase) IngestDocument(ctx context.Context, req entity.IngestRequest) (*entity.Document, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: document text is empty", entity.ErrInvalidParameters)
	}
	if req.Filename == "" {
		return nil, fmt.Errorf("%w: filename", entity.ErrMissingField)
	}

	uploadedAt := req.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now().UTC()
	}

	pieces, err := uc.chunker.Chunk(ctx, req.Text)
	if err != nil {
		return nil, fmt.Errorf("chunk document: %w", err)
	}

	doc, err := uc.docs.Create(ctx, entity.Document{
		ID:         uuid.New().String(),
		Filename:   req.Filename,
		FileType:   req.FileType,
		Source:     entity.DocumentSourceUpload,
		TextLength: utf8.RuneCountInString(req.Text),
		UploadedAt: uploadedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	ctx = logger.AddFields(ctx, zap.String("document_id", doc.ID))
	ctxzap.Info(ctx, "ingesting document",
		zap.String("filename", doc.Filename),
		zap.Int("chunk_count", len(pieces)),
	)

	base := entity.Metadata{
		entity.MetaFilename:   doc.Filename,
		entity.MetaFileType:   doc.FileType,
		entity.MetaUploadedAt: uploadedAt.Format(time.RFC3339),
		entity.MetaDocumentID: doc.ID,
	}

	for i, content := range pieces {
		metadata := make(entity.Metadata, len(base)+2)
		for k, v := range base {
			metadata[k] = v
		}
		metadata[entity.MetaChunkIndex] = i
		metadata[entity.MetaTotalChunks] = len(pieces)

		if err := uc.storeChunk(ctx, doc.ID, content, metadata); err != nil {
			ctxzap.Error(ctx, "ingestion aborted",
				zap.Int("chunk_index", i),
				zap.Int("stored_chunks", i),
				zap.Error(err),
			)
			uc.settlePartial(ctx, doc.ID, i)
			return nil, fmt.Errorf("document %s: store chunk %d of %d: %w", doc.ID, i+1, len(pieces), err)
		}
	}

	if err := uc.docs.UpdateChunkCount(ctx, doc.ID, len(pieces)); err != nil {
		return nil, fmt.Errorf("update chunk count: %w", err)
	}
	doc.ChunkCount = len(pieces)

	ctxzap.Info(ctx, "document ingested", zap.Int("chunk_count", doc.ChunkCount))

	return doc, nil
}

// SeedKnowledge stores the built-in entries, one chunk each, replacing any
// earlier seed document.
func (uc *IngestionUsecase) SeedKnowledge(ctx context.Context) (*entity.Document, error) {
	previous, err := uc.docs.ListBySource(ctx, entity.DocumentSourceSeed)
	if err != nil {
		return nil, fmt.Errorf("list seed documents: %w", err)
	}
	for _, doc := range previous {
		if _, err := uc.DeleteDocument(ctx, doc.ID); err != nil {
			return nil, fmt.Errorf("replace seed document %s: %w", doc.ID, err)
		}
	}

	items := DefaultKnowledge()
	var textLength int
	for _, item := range items {
		textLength += utf8.RuneCountInString(item.Content)
	}

	doc, err := uc.docs.Create(ctx, entity.Document{
		ID:         uuid.New().String(),
		Filename:   seedFilename,
		FileType:   "text/plain",
		Source:     entity.DocumentSourceSeed,
		TextLength: textLength,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create seed document: %w", err)
	}

	for i, item := range items {
		metadata := make(entity.Metadata, len(item.Metadata)+1)
		for k, v := range item.Metadata {
			metadata[k] = v
		}
		metadata[entity.MetaDocumentID] = doc.ID

		if err := uc.storeChunk(ctx, doc.ID, item.Content, metadata); err != nil {
			uc.settlePartial(ctx, doc.ID, i)
			return nil, fmt.Errorf("seed document %s: store entry %d: %w", doc.ID, i+1, err)
		}
	}

	if err := uc.docs.UpdateChunkCount(ctx, doc.ID, len(items)); err != nil {
		return nil, fmt.Errorf("update chunk count: %w", err)
	}
	doc.ChunkCount = len(items)

	ctxzap.Info(ctx, "knowledge base seeded",
		zap.String("document_id", doc.ID),
		zap.Int("chunk_count", doc.ChunkCount),
	)

	return doc, nil
}

// settlePartial makes the record of an aborted ingestion match what was kept:
// the stored chunk count, or no record when nothing was stored.
func (uc *IngestionUsecase) settlePartial(ctx context.Context, documentID string, stored int) {
	// a cancelled request must still leave the record consistent
	ctx = context.WithoutCancel(ctx)

	var err error
	if stored == 0 {
		err = uc.docs.Delete(ctx, documentID)
	} else {
		err = uc.docs.UpdateChunkCount(ctx, documentID, stored)
	}
	if err != nil {
		ctxzap.Error(ctx, "failed to record partial ingestion",
			zap.Int("stored_chunks", stored),
			zap.Error(err),
		)
	}
}

func (uc *IngestionUsecase) ListDocuments(ctx context.Context, req entity.ListDocumentsRequest) ([]*entity.Document, error) {
	req.Normalize()

	docs, err := uc.docs.List(ctx, req.Skip, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

func (uc *IngestionUsecase) GetDocument(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := uc.docs.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// DeleteDocument removes a document together with all of its chunks and
// returns how many chunks were deleted.
func (uc *IngestionUsecase) DeleteDocument(ctx context.Context, id string) (int64, error) {
	if _, err := uc.docs.Get(ctx, id); err != nil {
		return 0, fmt.Errorf("get document: %w", err)
	}

	deleted, err := uc.chunks.DeleteByDocument(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete chunks: %w", err)
	}

	if err := uc.docs.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("delete document: %w", err)
	}

	ctxzap.Info(ctx, "document deleted",
		zap.String("document_id", id),
		zap.Int64("deleted_chunks", deleted),
	)

	return deleted, nil
}

func (uc *IngestionUsecase) storeChunk(ctx context.Context, documentID, content string, metadata entity.Metadata) error {
	embedding, err := uc.embedder.Embed(ctx, content)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}

	if _, err := uc.chunks.Insert(ctx, entity.Chunk{
		DocumentID: documentID,
		Content:    content,
		Embedding:  embedding,
		Metadata:   metadata,
	}); err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	return nil
}

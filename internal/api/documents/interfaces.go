package documents

import (
	"context"

	"github.com/futig/rag-backend/internal/entity"
)

type DocumentUsecase interface {
	IngestDocument(ctx context.Context, req entity.IngestRequest) (*entity.Document, error)
	ListDocuments(ctx context.Context, req entity.ListDocumentsRequest) ([]*entity.Document, error)
	GetDocument(ctx context.Context, id string) (*entity.Document, error)
	DeleteDocument(ctx context.Context, id string) (int64, error)
}

type TextExtractor interface {
	Extract(filename, contentType string, content []byte) (text string, fileType string, err error)
}

package documents

import (
	"fmt"

	"github.com/futig/rag-backend/internal/entity"
)

func toUploadResponse(doc *entity.Document) *entity.UploadDocumentResponse {
	return &entity.UploadDocumentResponse{
		Success:    true,
		Message:    fmt.Sprintf("Successfully processed %s and stored %d chunks", doc.Filename, doc.ChunkCount),
		DocumentID: doc.ID,
		Filename:   doc.Filename,
		TextLength: doc.TextLength,
		ChunkCount: doc.ChunkCount,
	}
}

package entity

// Metadata is a free-form annotation attached to a chunk at creation time.
type Metadata map[string]any

// Well-known metadata keys
const (
	MetaFilename    = "filename"
	MetaFileType    = "fileType"
	MetaUploadedAt  = "uploadedAt"
	MetaDocumentID  = "documentId"
	MetaChunkIndex  = "chunkIndex"
	MetaTotalChunks = "totalChunks"
	MetaCategory    = "category"
	MetaTopic       = "topic"
)

// Chunk is a bounded slice of source text together with its embedding.
// Chunks are immutable once stored.
type Chunk struct {
	DocumentID string
	Content    string
	Embedding  []float32
	Metadata   Metadata
}

// StoredChunkHandle identifies a persisted chunk.
type StoredChunkHandle struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id,omitempty"`
}

// SimilarityResult is a single search hit. It is never persisted.
type SimilarityResult struct {
	Content    string   `json:"content"`
	Similarity float64  `json:"similarity"`
	Metadata   Metadata `json:"metadata"`
}

// ContextSet is the ordered result of one retrieval: descending similarity,
// bounded by a limit and a minimum similarity.
type ContextSet []SimilarityResult

// SourceRef describes one retrieved chunk for display and audit.
type SourceRef struct {
	Index      int      `json:"index"`
	Content    string   `json:"content"`
	Similarity float64  `json:"similarity"`
	Metadata   Metadata `json:"metadata"`
}

package entity

import "time"

type DocumentSource string

const (
	DocumentSourceUpload DocumentSource = "upload"
	DocumentSourceSeed   DocumentSource = "seed"
)

// Document is the ingestion unit. Chunks are deleted or replaced only at
// document granularity.
type Document struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	FileType   string         `json:"file_type"`
	Source     DocumentSource `json:"source"`
	TextLength int            `json:"text_length"`
	ChunkCount int            `json:"chunk_count"`
	UploadedAt time.Time      `json:"uploaded_at"`
}

// IngestRequest carries extracted document text into the ingestion pipeline.
type IngestRequest struct {
	Text       string
	Filename   string
	FileType   string
	UploadedAt time.Time
}

// KnowledgeItem is one built-in seed entry.
type KnowledgeItem struct {
	Content  string
	Metadata Metadata
}

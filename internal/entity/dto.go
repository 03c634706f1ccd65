package entity

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type UploadDocumentResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	TextLength int    `json:"text_length"`
	ChunkCount int    `json:"chunk_count"`
}

type ListDocumentsRequest struct {
	Skip  int
	Limit int
}

func (r *ListDocumentsRequest) Normalize() {
	if r.Skip < 0 {
		r.Skip = 0
	}
	if r.Limit <= 0 {
		r.Limit = 20
	}

	r.Limit = min(r.Limit, 100)
}

type ListDocumentsResponse struct {
	Documents []*Document `json:"documents"`
}

type DeleteDocumentResponse struct {
	Status        string `json:"status"`
	DeletedChunks int64  `json:"deleted_chunks"`
}

type SeedKnowledgeResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunk_count"`
}

// RetrieveRequest is the query input. Zero values select the defaults.
type RetrieveRequest struct {
	Query     string   `json:"query"`
	Limit     *int     `json:"limit,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

type RetrieveResponse struct {
	Results []SimilarityResult `json:"results"`
}

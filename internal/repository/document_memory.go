package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/futig/rag-backend/internal/entity"
)

var _ DocumentRepository = &DocumentMemory{}

// DocumentMemory implements DocumentRepository in process memory
type DocumentMemory struct {
	mu   sync.RWMutex
	docs map[string]entity.Document
}

func NewDocumentMemory() *DocumentMemory {
	return &DocumentMemory{docs: make(map[string]entity.Document)}
}

func (r *DocumentMemory) Create(_ context.Context, doc entity.Document) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[doc.ID] = doc
	return &doc, nil
}

func (r *DocumentMemory) Get(_ context.Context, id string) (*entity.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, entity.ErrDocumentNotFound
	}
	return &doc, nil
}

func (r *DocumentMemory) List(_ context.Context, skip, limit int) ([]*entity.Document, error) {
	all := r.sorted(func(entity.Document) bool { return true })

	if skip >= len(all) {
		return make([]*entity.Document, 0), nil
	}
	end := min(skip+limit, len(all))
	return all[skip:end], nil
}

func (r *DocumentMemory) ListBySource(_ context.Context, source entity.DocumentSource) ([]*entity.Document, error) {
	return r.sorted(func(d entity.Document) bool { return d.Source == source }), nil
}

func (r *DocumentMemory) UpdateChunkCount(_ context.Context, id string, chunkCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return entity.ErrDocumentNotFound
	}
	doc.ChunkCount = chunkCount
	r.docs[id] = doc
	return nil
}

func (r *DocumentMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return entity.ErrDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}

// sorted returns matching documents newest first, matching the postgres ordering.
func (r *DocumentMemory) sorted(match func(entity.Document) bool) []*entity.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Document, 0, len(r.docs))
	for _, doc := range r.docs {
		if match(doc) {
			d := doc
			out = append(out, &d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out
}

package repository

import (
	"context"
	"testing"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(doc, content string, embedding ...float32) entity.Chunk {
	return entity.Chunk{
		DocumentID: doc,
		Content:    content,
		Embedding:  embedding,
		Metadata:   entity.Metadata{entity.MetaFilename: content + ".txt"},
	}
}

func TestChunkMemory_SimilaritySearchOrdersAndBounds(t *testing.T) {
	ctx := context.Background()
	store := NewChunkMemory(2)

	for _, c := range []entity.Chunk{
		chunk("d1", "east", 1, 0),
		chunk("d1", "north", 0, 1),
		chunk("d2", "north-east", 1, 1),
		chunk("d2", "west", -1, 0),
	} {
		_, err := store.Insert(ctx, c)
		require.NoError(t, err)
	}

	results, err := store.SimilaritySearch(ctx, []float32{1, 0}, 0.5, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "east", results[0].Content)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
	assert.Equal(t, "north-east", results[1].Content)
	assert.Equal(t, "north-east.txt", results[1].Metadata[entity.MetaFilename])

	results, err = store.SimilaritySearch(ctx, []float32{1, 0}, -1, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestChunkMemory_TiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewChunkMemory(2)

	for _, name := range []string{"first", "second", "third"} {
		_, err := store.Insert(ctx, chunk("d", name, 1, 0))
		require.NoError(t, err)
	}

	results, err := store.SimilaritySearch(ctx, []float32{1, 0}, 0, 5)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{results[0].Content, results[1].Content, results[2].Content})
}

func TestChunkMemory_InsertRejectsWrongDimension(t *testing.T) {
	store := NewChunkMemory(3)

	_, err := store.Insert(context.Background(), chunk("d", "x", 1, 0))
	require.ErrorIs(t, err, entity.ErrStorage)

	_, err = store.Insert(context.Background(), chunk("d", "x"))
	require.ErrorIs(t, err, entity.ErrStorage)
}

func TestChunkMemory_SearchRejectsBadQuery(t *testing.T) {
	store := NewChunkMemory(2)

	_, err := store.SimilaritySearch(context.Background(), []float32{1}, 0, 5)
	require.ErrorIs(t, err, entity.ErrStorage)

	_, err = store.SimilaritySearch(context.Background(), []float32{1, 0}, 0, 0)
	require.ErrorIs(t, err, entity.ErrInvalidParameters)
}

func TestChunkMemory_StoredChunksAreImmutable(t *testing.T) {
	ctx := context.Background()
	store := NewChunkMemory(2)

	c := chunk("d", "original", 1, 0)
	_, err := store.Insert(ctx, c)
	require.NoError(t, err)

	c.Embedding[0] = -1
	c.Metadata[entity.MetaFilename] = "changed"

	results, err := store.SimilaritySearch(ctx, []float32{1, 0}, 0.9, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "original.txt", results[0].Metadata[entity.MetaFilename])
}

func TestChunkMemory_DeleteByDocument(t *testing.T) {
	ctx := context.Background()
	store := NewChunkMemory(2)

	for _, c := range []entity.Chunk{chunk("a", "1", 1, 0), chunk("b", "2", 1, 0), chunk("a", "3", 1, 0)} {
		_, err := store.Insert(ctx, c)
		require.NoError(t, err)
	}

	deleted, err := store.DeleteByDocument(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	results, err := store.SimilaritySearch(ctx, []float32{1, 0}, 0, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "2", results[0].Content)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{2, 0}, []float32{5, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-3, 0}), 1e-9)
	assert.Zero(t, CosineSimilarity([]float32{0, 0}, []float32{1, 0}))
	assert.Zero(t, CosineSimilarity([]float32{1}, []float32{1, 0}))
}

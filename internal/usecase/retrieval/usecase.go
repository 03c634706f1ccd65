package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/futig/rag-backend/internal/config"
	"github.com/futig/rag-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// RetrievalUsecase finds the stored chunks most relevant to a query.
// Failures never reach the caller: they degrade to an empty result.
type RetrievalUsecase struct {
	embedder EmbeddingConnector
	store    ChunkSearcher
	config   config.RetrievalConfig
	logger   *zap.Logger
}

func NewUsecase(
	embedder EmbeddingConnector,
	store ChunkSearcher,
	cfg config.RetrievalConfig,
	logger *zap.Logger,
) *RetrievalUsecase {
	return &RetrievalUsecase{
		embedder: embedder,
		store:    store,
		config:   cfg,
		logger:   logger,
	}
}

// Retrieve returns at most limit results with similarity >= threshold, most
// similar first. limit is capped by the configured maximum.
func (uc *RetrievalUsecase) Retrieve(ctx context.Context, query string, limit int, threshold float64) []entity.SimilarityResult {
	results, err := uc.search(ctx, query, limit, threshold)
	if err != nil {
		ctxzap.Warn(ctx, "retrieval failed, continuing without context", zap.Error(err))
		return make([]entity.SimilarityResult, 0)
	}

	ctxzap.Debug(ctx, "retrieved context", zap.Int("result_count", len(results)))

	return results
}

// RetrieveDefault runs Retrieve with the interactive defaults.
func (uc *RetrievalUsecase) RetrieveDefault(ctx context.Context, query string) []entity.SimilarityResult {
	return uc.Retrieve(ctx, query, uc.config.DefaultLimit, uc.config.DefaultThreshold)
}

// Params resolves optional request bounds against the configured defaults.
func (uc *RetrievalUsecase) Params(limit *int, threshold *float64) (int, float64) {
	l, t := uc.config.DefaultLimit, uc.config.DefaultThreshold
	if limit != nil {
		l = *limit
	}
	if threshold != nil {
		t = *threshold
	}
	return l, t
}

func (uc *RetrievalUsecase) search(ctx context.Context, query string, limit int, threshold float64) (entity.ContextSet, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", entity.ErrInvalidParameters)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", entity.ErrInvalidParameters)
	}
	if uc.config.MaxLimit > 0 {
		limit = min(limit, uc.config.MaxLimit)
	}

	embedding, err := uc.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	found, err := uc.store.SimilaritySearch(ctx, embedding, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	results := make(entity.ContextSet, 0, len(found))
	for _, r := range found {
		if r.Similarity >= threshold {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

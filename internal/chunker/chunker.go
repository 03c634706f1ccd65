package chunker

import (
	"context"
	"fmt"

	"github.com/futig/rag-backend/internal/config"
	"github.com/futig/rag-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Chunker splits document text into overlapping fixed-size windows.
type Chunker struct {
	cfg config.ChunkerConfig
}

func New(cfg config.ChunkerConfig) (*Chunker, error) {
	if err := validate(cfg.Size, cfg.Overlap); err != nil {
		return nil, err
	}
	if cfg.MaxChunks <= 0 || cfg.MaxTextLength <= 0 {
		return nil, fmt.Errorf("%w: max chunks and max text length must be positive", entity.ErrInvalidParameters)
	}

	return &Chunker{cfg: cfg}, nil
}

// Chunk truncates text to the configured maximum length and splits it.
// Truncation and hitting the chunk ceiling are reported as warnings.
func (c *Chunker) Chunk(ctx context.Context, text string) ([]string, error) {
	runes := []rune(text)
	if len(runes) > c.cfg.MaxTextLength {
		ctxzap.Warn(ctx, "text too long, truncating",
			zap.Int("length", len(runes)),
			zap.Int("max_length", c.cfg.MaxTextLength),
		)
		runes = runes[:c.cfg.MaxTextLength]
	}

	chunks, dropped, err := splitRunes(runes, c.cfg.Size, c.cfg.Overlap, c.cfg.MaxChunks)
	if err != nil {
		return nil, err
	}

	if dropped {
		ctxzap.Warn(ctx, "reached maximum chunk limit", zap.Int("max_chunks", c.cfg.MaxChunks))
	}

	return chunks, nil
}

// Split slides a window of size runes across text, advancing by size-overlap.
// The window that reaches the end of text is the last one, so the tail is
// emitted once even when it is shorter than size. At most maxChunks windows
// are produced; maxChunks <= 0 means no ceiling.
func Split(text string, size, overlap, maxChunks int) ([]string, error) {
	chunks, _, err := splitRunes([]rune(text), size, overlap, maxChunks)
	return chunks, err
}

// splitRunes reports dropped when the ceiling stopped it before the end of runes
func splitRunes(runes []rune, size, overlap, maxChunks int) (chunks []string, dropped bool, err error) {
	if err := validate(size, overlap); err != nil {
		return nil, false, err
	}

	step := size - overlap
	chunks = make([]string, 0, len(runes)/step+1)

	for start := 0; start < len(runes); start += step {
		if maxChunks > 0 && len(chunks) >= maxChunks {
			return chunks, true, nil
		}

		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))

		if end == len(runes) {
			break
		}
	}

	return chunks, false, nil
}

func validate(size, overlap int) error {
	if size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", entity.ErrInvalidParameters, size)
	}
	if overlap < 0 || overlap >= size {
		return fmt.Errorf("%w: overlap must be in [0, %d), got %d", entity.ErrInvalidParameters, size, overlap)
	}
	return nil
}

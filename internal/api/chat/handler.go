package chat

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/futig/rag-backend/internal/pkg/logger"
	"github.com/futig/rag-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ApologyMessage replaces the rest of an answer whose generation failed
// after streaming had started.
const ApologyMessage = "\n\nSorry, something went wrong while generating the answer. Please try again."

type Handler struct {
	usecase     ChatUsecase
	maxBodySize int64
}

func NewHandler(usecase ChatUsecase, maxBodySize int64) *Handler {
	return &Handler{
		usecase:     usecase,
		maxBodySize: maxBodySize,
	}
}

// Chat handles POST /chat. The answer is streamed as plain text; the sources
// it was grounded on travel in the X-Sources header.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")

	var req entity.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodySize)).Decode(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.usecase.Chat(ctx, req)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}
	defer resp.Stream.Close()

	sources, err := json.Marshal(resp.Sources)
	if err != nil {
		response.Error(ctx, w, http.StatusInternalServerError, "failed to encode sources", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Sources", string(sources))
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)

	var fragments int
	for resp.Stream.Next() {
		if _, err := io.WriteString(w, resp.Stream.Current()); err != nil {
			ctxzap.Warn(ctx, "client went away during streaming", zap.Error(err))
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
		fragments++
	}

	if err := resp.Stream.Err(); err != nil {
		if ctx.Err() != nil {
			ctxzap.Warn(ctx, "client cancelled streaming", zap.Error(ctx.Err()))
			return
		}

		ctxzap.Error(ctx, "generation stream failed", zap.Int("fragments", fragments), zap.Error(err))
		io.WriteString(w, ApologyMessage)
		return
	}

	ctxzap.Info(ctx, "answer streamed",
		zap.Int("fragments", fragments),
		zap.Int("source_count", len(resp.Sources)),
	)
}

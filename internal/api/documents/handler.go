package documents

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/futig/rag-backend/internal/config"
	"github.com/futig/rag-backend/internal/entity"
	"github.com/futig/rag-backend/internal/pkg/logger"
	"github.com/futig/rag-backend/internal/pkg/response"
	"github.com/futig/rag-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   DocumentUsecase
	extractor TextExtractor
	cfg       config.FileUploadConfig
	validator *validator.Validator
}

func NewHandler(
	usecase DocumentUsecase,
	extractor TextExtractor,
	cfg config.FileUploadConfig,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		usecase:   usecase,
		extractor: extractor,
		cfg:       cfg,
		validator: validator,
	}
}

// UploadDocument handles POST /documents
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadDocument")

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(ctx, w, http.StatusBadRequest, "file too large", err)
			return
		}
		response.Error(ctx, w, http.StatusBadRequest, "invalid form data", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "no file provided", err)
		return
	}
	defer file.Close()

	if err := h.validator.ValidateUpload(header); err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	filename := validator.SanitizeFilename(header.Filename)
	ctx = logger.AddFields(ctx, zap.String("filename", filename))

	content, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxFileSize+1))
	if err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "failed to read file", err)
		return
	}
	if int64(len(content)) > h.cfg.MaxFileSize {
		response.UsecaseError(ctx, w, fmt.Errorf("%w: max %d bytes", entity.ErrFileTooLarge, h.cfg.MaxFileSize))
		return
	}

	text, fileType, err := h.extractor.Extract(filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "uploading document",
		zap.String("file_type", fileType),
		zap.Int64("size", header.Size),
	)

	doc, err := h.usecase.IngestDocument(ctx, entity.IngestRequest{
		Text:       text,
		Filename:   filename,
		FileType:   fileType,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "document uploaded successfully",
		zap.String("document_id", doc.ID),
		zap.Int("chunk_count", doc.ChunkCount),
	)

	response.Created(w, toUploadResponse(doc))
}

// ListDocuments handles GET /documents
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListDocuments")

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	req := entity.ListDocumentsRequest{
		Skip:  skip,
		Limit: limit,
	}

	req.Normalize()

	docs, err := h.usecase.ListDocuments(ctx, req)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	ctxzap.Debug(ctx, "documents listed", zap.Int("count", len(docs)))

	response.Success(w, &entity.ListDocumentsResponse{Documents: docs})
}

// GetDocument handles GET /documents/{document_id}
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetDocument")
	id := chi.URLParam(r, "document_id")

	doc, err := h.usecase.GetDocument(ctx, id)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	response.Success(w, doc)
}

// DeleteDocument handles DELETE /documents/{document_id}
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteDocument")
	id := chi.URLParam(r, "document_id")

	deleted, err := h.usecase.DeleteDocument(ctx, id)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.DeleteDocumentResponse{
		Status:        "deleted",
		DeletedChunks: deleted,
	})
}

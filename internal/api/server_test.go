package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chatapi "github.com/futig/rag-backend/internal/api/chat"
	documentsapi "github.com/futig/rag-backend/internal/api/documents"
	knowledgeapi "github.com/futig/rag-backend/internal/api/knowledge"
	retrievalapi "github.com/futig/rag-backend/internal/api/retrieval"
	"github.com/futig/rag-backend/internal/chunker"
	"github.com/futig/rag-backend/internal/config"
	"github.com/futig/rag-backend/internal/entity"
	"github.com/futig/rag-backend/internal/integration/embedding"
	"github.com/futig/rag-backend/internal/integration/llm"
	"github.com/futig/rag-backend/internal/pkg/extractor"
	"github.com/futig/rag-backend/internal/pkg/ratelimit"
	"github.com/futig/rag-backend/internal/pkg/validator"
	"github.com/futig/rag-backend/internal/repository"
	"github.com/futig/rag-backend/internal/usecase/chat"
	"github.com/futig/rag-backend/internal/usecase/ingestion"
	"github.com/futig/rag-backend/internal/usecase/retrieval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testDimension = 768

type failingStream struct{ sent bool }

func (s *failingStream) Next() bool {
	if s.sent {
		return false
	}
	s.sent = true
	return true
}
func (s *failingStream) Current() string { return "partial " }
func (s *failingStream) Err() error {
	return errors.Join(entity.ErrGenerationStream, errors.New("upstream reset"))
}
func (s *failingStream) Close() error { return nil }

type failingLLM struct{ openErr error }

func (f failingLLM) StreamChat(context.Context, []entity.ChatMessage) (entity.TokenStream, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &failingStream{}, nil
}

type testServer struct {
	handler http.Handler
	chunks  *repository.ChunkMemory
}

func newTestServer(t *testing.T, gen chat.LLMConnector, rateCfg config.RateLimitConfig) testServer {
	t.Helper()

	c, err := chunker.New(config.ChunkerConfig{Size: 200, Overlap: 20, MaxChunks: 100, MaxTextLength: 100_000})
	require.NoError(t, err)

	embedder := embedding.NewMockConnector(testDimension, zap.NewNop())
	chunks := repository.NewChunkMemory(testDimension)
	docs := repository.NewDocumentMemory()

	retrievalUC := retrieval.NewUsecase(embedder, chunks,
		config.RetrievalConfig{DefaultLimit: 5, DefaultThreshold: 0.3, MaxLimit: 50}, zap.NewNop())
	ingestionUC := ingestion.NewUsecase(c, embedder, chunks, docs, zap.NewNop())
	if gen == nil {
		gen = llm.NewMockConnector(zap.NewNop())
	}
	chatUC := chat.NewUsecase(retrievalUC, gen, zap.NewNop())

	uploadCfg := config.FileUploadConfig{MaxFileSize: 1 << 20, MaxUploadSize: 2 << 20}

	handlers := Handlers{
		Documents: documentsapi.NewHandler(ingestionUC, extractor.NewFactory(), uploadCfg, validator.NewFileValidator(uploadCfg)),
		Knowledge: knowledgeapi.NewHandler(ingestionUC),
		Retrieval: retrievalapi.NewHandler(retrievalUC),
		Chat:      chatapi.NewHandler(chatUC, 1<<20),
	}

	return testServer{
		handler: SetupRouter(handlers, ratelimit.New(rateCfg), 30*time.Second, zap.NewNop()),
		chunks:  chunks,
	}
}

var noLimit = config.RateLimitConfig{Enabled: false}

func (s testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s testServer) upload(t *testing.T, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func userChat(content string) map[string]any {
	return map[string]any{"messages": []map[string]string{{"role": "user", "content": content}}}
}

func TestHealth(t *testing.T) {
	rec := newTestServer(t, nil, noLimit).do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestDocumentLifecycle(t *testing.T) {
	s := newTestServer(t, nil, noLimit)

	rec := s.upload(t, "returns policy.txt", []byte(strings.Repeat("Refunds are processed within seven days. ", 20)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var uploaded entity.UploadDocumentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&uploaded))
	assert.True(t, uploaded.Success)
	assert.Equal(t, "returns_policy.txt", uploaded.Filename)
	assert.Positive(t, uploaded.ChunkCount)

	rec = s.do(t, http.MethodGet, "/documents", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list entity.ListDocumentsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list.Documents, 1)
	assert.Equal(t, uploaded.DocumentID, list.Documents[0].ID)

	rec = s.do(t, http.MethodGet, "/documents/"+uploaded.DocumentID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/documents/"+uploaded.DocumentID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted entity.DeleteDocumentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&deleted))
	assert.EqualValues(t, uploaded.ChunkCount, deleted.DeletedChunks)

	rec = s.do(t, http.MethodGet, "/documents/"+uploaded.DocumentID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpload_Validation(t *testing.T) {
	s := newTestServer(t, nil, noLimit)

	assert.Equal(t, http.StatusBadRequest, s.upload(t, "slides.pptx", []byte("data")).Code)
	assert.Equal(t, http.StatusBadRequest, s.upload(t, "empty.txt", []byte("   ")).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/documents", nil).Code)
}

func TestRetrieve(t *testing.T) {
	s := newTestServer(t, nil, noLimit)

	rec := s.do(t, http.MethodPost, "/knowledge/seed", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/retrieve", map[string]any{"query": "return policy for all products", "limit": 2, "threshold": 0.0})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.RetrieveResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Results)
	assert.LessOrEqual(t, len(resp.Results), 2)
	assert.Contains(t, resp.Results[0].Content, "return policy")

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/retrieve", map[string]any{"query": " "}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/retrieve", map[string]any{"query": "x", "limit": 0}).Code)
}

func TestChat_StreamsAnswerWithSources(t *testing.T) {
	s := newTestServer(t, nil, noLimit)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/knowledge/seed", nil).Code)

	rec := s.do(t, http.MethodPost, "/chat", userChat("return policy for all products"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))

	var sources []entity.SourceRef
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("X-Sources")), &sources))
	require.NotEmpty(t, sources)
	assert.Equal(t, 1, sources[0].Index)

	body := rec.Body.String()
	assert.Contains(t, body, "Based on the knowledge base")
	assert.True(t, strings.HasSuffix(body, chat.SourcesFooter(len(sources))))
	assert.True(t, rec.Flushed)
}

func TestChat_WithoutKnowledge(t *testing.T) {
	rec := newTestServer(t, nil, noLimit).do(t, http.MethodPost, "/chat", userChat("hello"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Header().Get("X-Sources"))
	assert.NotContains(t, rec.Body.String(), "**Sources:**")
}

func TestChat_MidStreamFailureApologises(t *testing.T) {
	rec := newTestServer(t, failingLLM{}, noLimit).do(t, http.MethodPost, "/chat", userChat("hello"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial "+chatapi.ApologyMessage, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "upstream reset")
}

func TestChat_OpenFailureIsBadGateway(t *testing.T) {
	rec := newTestServer(t, failingLLM{openErr: errors.New("dial tcp: refused")}, noLimit).
		do(t, http.MethodPost, "/chat", userChat("hello"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestChat_RejectsInvalidRequests(t *testing.T) {
	s := newTestServer(t, nil, noLimit)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/chat", "not an object").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/chat", map[string]any{"messages": []any{}}).Code)
}

func TestChat_RateLimited(t *testing.T) {
	s := newTestServer(t, nil, config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1})

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/chat", userChat("one")).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodPost, "/chat", userChat("two")).Code)

	// other routes are not limited
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/documents", nil).Code)
}

package llm

import (
	"context"
	"strings"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const knowledgeBaseMarker = "Relevant information from knowledge base:"

// MockConnector - мок-реализация генерации: отдаёт заготовленный ответ по словам
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) StreamChat(ctx context.Context, messages []entity.ChatMessage) (entity.TokenStream, error) {
	ctxzap.Info(ctx, "[MOCK] opening generation stream", zap.Int("message_count", len(messages)))

	var withContext bool
	var question string
	for _, msg := range messages {
		switch msg.Role {
		case entity.ChatRoleSystem:
			withContext = withContext || strings.Contains(msg.Content, knowledgeBaseMarker)
		case entity.ChatRoleUser:
			question = msg.Content
		}
	}

	answer := "This is a general answer that is not from the specific knowledge base."
	if withContext {
		answer = "Based on the knowledge base, here is what I found about your question."
	}
	if question != "" {
		answer = "You asked: " + question + ". " + answer
	}

	return NewSliceStream(strings.SplitAfter(answer, " ")), nil
}

// SliceStream replays fixed fragments. It never fails.
type SliceStream struct {
	fragments []string
	pos       int
	closed    bool
}

func NewSliceStream(fragments []string) *SliceStream {
	return &SliceStream{fragments: fragments, pos: -1}
}

func (s *SliceStream) Next() bool {
	if s.closed || s.pos+1 >= len(s.fragments) {
		return false
	}
	s.pos++
	return true
}

func (s *SliceStream) Current() string {
	if s.pos < 0 || s.pos >= len(s.fragments) {
		return ""
	}
	return s.fragments[s.pos]
}

func (s *SliceStream) Err() error { return nil }

func (s *SliceStream) Close() error {
	s.closed = true
	return nil
}

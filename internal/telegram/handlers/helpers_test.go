package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/futig/rag-backend/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []string
	actions  []string
	failSend error
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if s.failSend != nil {
		return tgbotapi.Message{}, s.failSend
	}
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		s.mu.Lock()
		s.messages = append(s.messages, msg.Text)
		s.mu.Unlock()
	}
	return tgbotapi.Message{}, nil
}

func (s *recordingSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if action, ok := c.(tgbotapi.ChatActionConfig); ok {
		s.mu.Lock()
		s.actions = append(s.actions, action.Action)
		s.mu.Unlock()
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (s *recordingSender) sentActions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.actions...)
}

func (s *recordingSender) sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

type brokenStream struct {
	fragments []string
	pos       int
}

func (s *brokenStream) Next() bool {
	if s.pos >= len(s.fragments) {
		return false
	}
	s.pos++
	return true
}
func (s *brokenStream) Current() string { return s.fragments[s.pos-1] }
func (s *brokenStream) Err() error {
	return errors.Join(entity.ErrGenerationStream, errors.New("connection reset"))
}
func (s *brokenStream) Close() error { return nil }

type fakeIngestion struct {
	requests []entity.IngestRequest
	err      error
	seeded   int
}

func (f *fakeIngestion) IngestDocument(_ context.Context, req entity.IngestRequest) (*entity.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.requests = append(f.requests, req)
	return &entity.Document{ID: "doc-1", Filename: req.Filename, FileType: req.FileType, ChunkCount: 2}, nil
}

func (f *fakeIngestion) SeedKnowledge(context.Context) (*entity.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.seeded++
	return &entity.Document{ID: "seed", ChunkCount: 8}, nil
}

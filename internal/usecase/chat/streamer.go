package chat

import (
	"errors"
	"fmt"

	"github.com/futig/rag-backend/internal/entity"
)

// ResponseStream re-emits generated fragments in arrival order and appends a
// sources footer once the generation completes normally. It cannot be restarted.
type ResponseStream struct {
	tokens      entity.TokenStream
	sourceCount int

	current    string
	footerSent bool
	finished   bool
	closed     bool
	err        error
}

func NewResponseStream(tokens entity.TokenStream, sourceCount int) *ResponseStream {
	return &ResponseStream{
		tokens:      tokens,
		sourceCount: sourceCount,
	}
}

// SourcesFooter is the final fragment emitted when n > 0 sources were used.
func SourcesFooter(n int) string {
	return fmt.Sprintf("\n\n---\n**Sources:** %d relevant documents found", n)
}

// Next advances to the next fragment. It returns false once the stream is
// exhausted, failed or closed; Err tells failure from completion.
func (s *ResponseStream) Next() bool {
	if s.closed || s.err != nil {
		return false
	}

	if !s.finished {
		if s.tokens.Next() {
			s.current = s.tokens.Current()
			return true
		}

		s.finished = true
		if err := s.tokens.Err(); err != nil {
			s.err = err
			if !errors.Is(err, entity.ErrGenerationStream) {
				s.err = fmt.Errorf("%w: %w", entity.ErrGenerationStream, err)
			}
			return false
		}
	}

	if !s.footerSent && s.sourceCount > 0 {
		s.footerSent = true
		s.current = SourcesFooter(s.sourceCount)
		return true
	}

	return false
}

func (s *ResponseStream) Current() string { return s.current }

func (s *ResponseStream) Err() error { return s.err }

// Close releases the generation connection. Safe to call more than once.
func (s *ResponseStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.tokens.Close()
}

package chat

import (
	"fmt"
	"strings"

	"github.com/futig/rag-backend/internal/entity"
)

const (
	basePrompt = `You are a helpful AI assistant. Answer the user's question based on the provided context from the knowledge base.

If the context contains relevant information, use it to provide accurate answers and mention that the information comes from the knowledge base.
If the context doesn't contain relevant information, you can provide a general answer but mention that it's not from the specific knowledge base.

Always be helpful, concise, and accurate.`

	knowledgeBaseHeading = "Relevant information from knowledge base:"

	sourcePreviewRunes = 100
)

// Assemble builds the system preamble and the source list for one turn.
// Without results the preamble carries no knowledge-base section.
func Assemble(results []entity.SimilarityResult) (string, []entity.SourceRef) {
	sources := make([]entity.SourceRef, 0, len(results))
	if len(results) == 0 {
		return basePrompt, sources
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\n")
	b.WriteString(knowledgeBaseHeading)
	b.WriteString("\n")

	for i, r := range results {
		index := i + 1
		fmt.Fprintf(&b, "\n[%d] %s", index, r.Content)

		sources = append(sources, entity.SourceRef{
			Index:      index,
			Content:    preview(r.Content),
			Similarity: r.Similarity,
			Metadata:   r.Metadata,
		})
	}

	return b.String(), sources
}

// BuildMessages puts the preamble in front of the conversation history.
func BuildMessages(preamble string, history []entity.ChatMessage) []entity.ChatMessage {
	messages := make([]entity.ChatMessage, 0, len(history)+1)
	messages = append(messages, entity.ChatMessage{Role: entity.ChatRoleSystem, Content: preamble})

	for _, m := range history {
		// callers can't override the preamble
		if m.Role == entity.ChatRoleSystem {
			continue
		}
		messages = append(messages, m)
	}

	return messages
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= sourcePreviewRunes {
		return content
	}
	return string(runes[:sourcePreviewRunes]) + "..."
}

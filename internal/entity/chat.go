package entity

type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

func (r ChatRole) IsValid() bool {
	switch r {
	case ChatRoleSystem, ChatRoleUser, ChatRoleAssistant:
		return true
	default:
		return false
	}
}

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatRequest is a conversation whose last message is the user's query.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// LastUserQuery returns the content of the final message if it was sent by the user.
func (r *ChatRequest) LastUserQuery() (string, bool) {
	if len(r.Messages) == 0 {
		return "", false
	}
	last := r.Messages[len(r.Messages)-1]
	if last.Role != ChatRoleUser || last.Content == "" {
		return "", false
	}
	return last.Content, true
}

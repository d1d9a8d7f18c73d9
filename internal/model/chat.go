package model

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatTurn is one message of the coaching conversation
type ChatTurn struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation as exchanged with the widget and the
// completion API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client issues one synchronous completion call. Model and sampling settings
// are bound when the client is constructed.
type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}

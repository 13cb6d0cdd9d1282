package llm

import (
	"context"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one provider-neutral conversation entry. An assistant message
// may carry ToolCalls; a user message may carry ToolResults answering them.
type Message struct {
	Role        string
	Content     string
	ToolCalls   []ToolCall
	ToolResults []ToolResult
}

// ToolCall is one invocation requested by the model. Arguments is raw JSON.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolResult answers the ToolCall with the same CallID.
type ToolResult struct {
	CallID  string
	Name    string
	Content string
}

// ToolDefinition advertises one tool to the model.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  jsonschema.Definition
}

// Request is a single completion call. Tools nil means no tools are bound.
type Request struct {
	SystemPrompt string
	Messages     []Message
	Tools        []ToolDefinition
}

// ReplyKind tells text answers apart from tool requests.
type ReplyKind string

const (
	ReplyText      ReplyKind = "text"
	ReplyToolCalls ReplyKind = "tool_calls"
)

// Reply is the outcome of one round-trip. Assistant is the model's message
// as it must be replayed in the next round.
type Reply struct {
	Kind      ReplyKind
	Content   string
	Calls     []ToolCall
	Assistant Message
}

// Gateway is a chat-completion backend. Complete performs exactly one
// network round-trip and never retries.
type Gateway interface {
	Complete(ctx context.Context, req Request) (*Reply, error)
	Name() string
}

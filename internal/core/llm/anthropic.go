package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/liushuangls/go-anthropic/v2"
)

// AnthropicGateway talks to the Claude Messages API.
type AnthropicGateway struct {
	client      *anthropic.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewAnthropicGateway(apiKey string, cfg ProviderConfig, httpClient *http.Client) *AnthropicGateway {
	opts := []anthropic.ClientOption{anthropic.WithHTTPClient(httpClient)}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicGateway{
		client:      anthropic.NewClient(apiKey, opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (g *AnthropicGateway) Name() string {
	return "Anthropic Claude"
}

func (g *AnthropicGateway) Complete(ctx context.Context, req Request) (*Reply, error) {
	temperature := g.temperature
	mreq := anthropic.MessagesRequest{
		Model:       anthropic.Model(g.model),
		System:      req.SystemPrompt,
		Messages:    toAnthropicMessages(req.Messages),
		MaxTokens:   g.maxTokens,
		Temperature: &temperature,
	}
	for _, t := range req.Tools {
		mreq.Tools = append(mreq.Tools, anthropic.ToolDefinition{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.Parameters,
		})
	}

	resp, err := g.client.CreateMessages(ctx, mreq)
	if err != nil {
		return nil, g.classify(err)
	}

	var text []string
	var calls []ToolCall
	for _, block := range resp.Content {
		switch block.Type {
		case anthropic.MessagesContentTypeText:
			if block.Text != nil && *block.Text != "" {
				text = append(text, *block.Text)
			}
		case anthropic.MessagesContentTypeToolUse:
			if block.MessageContentToolUse == nil || block.MessageContentToolUse.Name == "" {
				return nil, invalidResponse(g.Name(), "tool_use block without a name")
			}
			use := block.MessageContentToolUse
			id := use.ID
			if id == "" {
				id = "toolu_" + uuid.NewString()
			}
			args := string(use.Input)
			if args == "" {
				args = "{}"
			}
			calls = append(calls, ToolCall{ID: id, Name: use.Name, Arguments: args})
		}
	}
	content := strings.Join(text, "\n")

	if len(calls) > 0 {
		return &Reply{
			Kind:      ReplyToolCalls,
			Content:   content,
			Calls:     calls,
			Assistant: Message{Role: RoleAssistant, Content: content, ToolCalls: calls},
		}, nil
	}
	if content == "" {
		return nil, invalidResponse(g.Name(), "empty response")
	}
	return &Reply{
		Kind:      ReplyText,
		Content:   content,
		Assistant: Message{Role: RoleAssistant, Content: content},
	}, nil
}

func toAnthropicMessages(messages []Message) []anthropic.Message {
	out := make([]anthropic.Message, 0, len(messages))
	for _, m := range messages {
		switch {
		case len(m.ToolResults) > 0:
			blocks := make([]anthropic.MessageContent, 0, len(m.ToolResults))
			for _, r := range m.ToolResults {
				blocks = append(blocks, anthropic.NewToolResultMessageContent(r.CallID, r.Content, false))
			}
			out = append(out, anthropic.Message{Role: anthropic.RoleUser, Content: blocks})
		case m.Role == RoleAssistant:
			var blocks []anthropic.MessageContent
			if m.Content != "" {
				blocks = append(blocks, textBlock(m.Content))
			}
			for _, tc := range m.ToolCalls {
				input := json.RawMessage(tc.Arguments)
				if !json.Valid(input) {
					input = json.RawMessage("{}")
				}
				blocks = append(blocks, anthropic.MessageContent{
					Type: anthropic.MessagesContentTypeToolUse,
					MessageContentToolUse: &anthropic.MessageContentToolUse{
						ID:    tc.ID,
						Name:  tc.Name,
						Input: input,
					},
				})
			}
			out = append(out, anthropic.Message{Role: anthropic.RoleAssistant, Content: blocks})
		default:
			out = append(out, anthropic.Message{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{textBlock(m.Content)}})
		}
	}
	return out
}

func textBlock(text string) anthropic.MessageContent {
	return anthropic.MessageContent{Type: anthropic.MessagesContentTypeText, Text: &text}
}

func (g *AnthropicGateway) classify(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Type {
		case "authentication_error", "permission_error":
			return newError(KindAuthFailure, g.Name(), 0, err)
		default:
			return newError(KindUnavailable, g.Name(), 0, err)
		}
	}
	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		return newError(kindForStatus(reqErr.StatusCode), g.Name(), reqErr.StatusCode, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return newError(KindInvalidResponse, g.Name(), 0, err)
	}
	return newError(KindUnavailable, g.Name(), 0, err)
}

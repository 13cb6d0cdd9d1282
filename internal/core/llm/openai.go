package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGateway talks to OpenAI and to the OpenAI-compatible APIs of Groq,
// DeepSeek and Gemini.
type OpenAIGateway struct {
	name        string
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewOpenAIGateway(name, apiKey, baseURL string, cfg ProviderConfig, httpClient *http.Client) *OpenAIGateway {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = httpClient

	return &OpenAIGateway{
		name:        name,
		client:      openai.NewClientWithConfig(config),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (g *OpenAIGateway) Name() string {
	return g.name
}

func (g *OpenAIGateway) Complete(ctx context.Context, req Request) (*Reply, error) {
	creq := openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    toOpenAIMessages(req),
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	}
	for _, t := range req.Tools {
		creq.Tools = append(creq.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	resp, err := g.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return nil, g.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, invalidResponse(g.name, "no choices in response")
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) > 0 {
		calls := make([]ToolCall, 0, len(msg.ToolCalls))
		for _, tc := range msg.ToolCalls {
			if tc.Function.Name == "" {
				return nil, invalidResponse(g.name, "tool call without a function name")
			}
			id := tc.ID
			if id == "" {
				id = "call_" + uuid.NewString()
			}
			calls = append(calls, ToolCall{ID: id, Name: tc.Function.Name, Arguments: tc.Function.Arguments})
		}
		return &Reply{
			Kind:      ReplyToolCalls,
			Content:   msg.Content,
			Calls:     calls,
			Assistant: Message{Role: RoleAssistant, Content: msg.Content, ToolCalls: calls},
		}, nil
	}

	if msg.Content == "" {
		return nil, invalidResponse(g.name, "empty response")
	}
	return &Reply{
		Kind:      ReplyText,
		Content:   msg.Content,
		Assistant: Message{Role: RoleAssistant, Content: msg.Content},
	}, nil
}

// toOpenAIMessages flattens the conversation. Tool results become one
// role=tool message per call, which the API requires.
func toOpenAIMessages(req Request) []openai.ChatCompletionMessage {
	var out []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}

	for _, m := range req.Messages {
		switch {
		case len(m.ToolResults) > 0:
			for _, r := range m.ToolResults {
				out = append(out, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					Content:    r.Content,
					Name:       r.Name,
					ToolCallID: r.CallID,
				})
			}
		case len(m.ToolCalls) > 0:
			msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: m.Content}
			for _, tc := range m.ToolCalls {
				msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
					ID:   tc.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			out = append(out, msg)
		case m.Role == RoleAssistant:
			out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: m.Content})
		default:
			out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: m.Content})
		}
	}
	return out
}

func (g *OpenAIGateway) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return newError(kindForStatus(apiErr.HTTPStatusCode), g.name, apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return newError(kindForStatus(reqErr.HTTPStatusCode), g.name, reqErr.HTTPStatusCode, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return newError(KindInvalidResponse, g.name, 0, err)
	}
	return newError(KindUnavailable, g.name, 0, err)
}

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAITestGateway(t *testing.T, handler http.HandlerFunc, timeout time.Duration) Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw, err := NewGateway(ProviderConfig{Type: ProviderOpenAI, BaseURL: srv.URL + "/v1", Timeout: timeout}, "test-key")
	require.NoError(t, err)
	return gw
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestOpenAIGatewayText(t *testing.T) {
	gw := newOpenAITestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Hello there"},"finish_reason":"stop"}]}`)
	}, 0)

	reply, err := gw.Complete(context.Background(), Request{
		SystemPrompt: "be nice",
		Messages:     []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, ReplyText, reply.Kind)
	assert.Equal(t, "Hello there", reply.Content)
	assert.Equal(t, "OpenAI", gw.Name())
}

func TestOpenAIGatewayToolCalls(t *testing.T) {
	var got openai.ChatCompletionRequest
	gw := newOpenAITestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"","tool_calls":[
			{"id":"call_1","type":"function","function":{"name":"search_facts","arguments":"{\"query\":\"location\"}"}},
			{"type":"function","function":{"name":"get_offerings","arguments":"{}"}}
		]},"finish_reason":"tool_calls"}]}`)
	}, 0)

	tools := []ToolDefinition{{
		Name:        "search_facts",
		Description: "Search facts",
		Parameters: jsonschema.Definition{
			Type:       jsonschema.Object,
			Properties: map[string]jsonschema.Definition{"query": {Type: jsonschema.String}},
			Required:   []string{"query"},
		},
	}}
	reply, err := gw.Complete(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "where are you?"}},
		Tools:    tools,
	})
	require.NoError(t, err)

	require.Equal(t, ReplyToolCalls, reply.Kind)
	require.Len(t, reply.Calls, 2)
	assert.Equal(t, "call_1", reply.Calls[0].ID)
	assert.Equal(t, `{"query":"location"}`, reply.Calls[0].Arguments)
	assert.Equal(t, "get_offerings", reply.Calls[1].Name)
	assert.NotEmpty(t, reply.Calls[1].ID, "missing ids are generated")
	assert.Len(t, reply.Assistant.ToolCalls, 2)

	require.Len(t, got.Tools, 1)
	assert.Equal(t, "search_facts", got.Tools[0].Function.Name)
}

func TestOpenAIGatewaySendsToolResults(t *testing.T) {
	var got openai.ChatCompletionRequest
	gw := newOpenAITestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"choices":[{"index":0,"message":{"role":"assistant","content":"done"}}]}`)
	}, 0)

	calls := []ToolCall{{ID: "a", Name: "one", Arguments: "{}"}, {ID: "b", Name: "two", Arguments: "{}"}}
	_, err := gw.Complete(context.Background(), Request{
		SystemPrompt: "sys",
		Messages: []Message{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, ToolCalls: calls},
			{Role: RoleUser, Content: "r1\n\nr2", ToolResults: []ToolResult{
				{CallID: "a", Name: "one", Content: "r1"},
				{CallID: "b", Name: "two", Content: "r2"},
			}},
		},
	})
	require.NoError(t, err)

	roles := make([]string, 0, len(got.Messages))
	for _, m := range got.Messages {
		roles = append(roles, m.Role)
	}
	assert.Equal(t, []string{"system", "user", "assistant", "tool", "tool"}, roles)
	assert.Equal(t, "a", got.Messages[3].ToolCallID)
	assert.Equal(t, "r2", got.Messages[4].Content)
	assert.Empty(t, got.Tools)
}

func TestOpenAIGatewayErrorClassification(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		want    error
	}{
		{
			name: "auth",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, `{"error":{"message":"Incorrect API key","type":"invalid_request_error","code":"invalid_api_key"}}`)
			},
			want: ErrAuthFailure,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("upstream down"))
			},
			want: ErrUnavailable,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(300 * time.Millisecond)
			},
			timeout: 50 * time.Millisecond,
			want:    ErrUnavailable,
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"choices":[]}`)
			},
			want: ErrInvalidResponse,
		},
		{
			name: "empty content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"choices":[{"index":0,"message":{"role":"assistant","content":""}}]}`)
			},
			want: ErrInvalidResponse,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newOpenAITestGateway(t, tc.handler, tc.timeout)
			_, err := gw.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var gwErr *Error
			require.True(t, errors.As(err, &gwErr))
			assert.Equal(t, "OpenAI", gwErr.Provider)
		})
	}
}

func newAnthropicTestGateway(t *testing.T, handler http.HandlerFunc) Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw, err := NewGateway(ProviderConfig{Type: ProviderClaude, BaseURL: srv.URL}, "test-key")
	require.NoError(t, err)
	return gw
}

func TestAnthropicGatewayToolUse(t *testing.T) {
	var got map[string]interface{}
	gw := newAnthropicTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-sonnet-20241022",
			"content":[{"type":"text","text":"Let me check."},{"type":"tool_use","id":"toolu_1","name":"get_offerings","input":{"available_only":true}}],
			"stop_reason":"tool_use","usage":{"input_tokens":10,"output_tokens":5}}`)
	})

	reply, err := gw.Complete(context.Background(), Request{
		SystemPrompt: "sys",
		Messages:     []Message{{Role: RoleUser, Content: "what do you sell?"}},
		Tools:        []ToolDefinition{{Name: "get_offerings", Parameters: jsonschema.Definition{Type: jsonschema.Object}}},
	})
	require.NoError(t, err)

	require.Equal(t, ReplyToolCalls, reply.Kind)
	require.Len(t, reply.Calls, 1)
	assert.Equal(t, "toolu_1", reply.Calls[0].ID)
	assert.Equal(t, "get_offerings", reply.Calls[0].Name)
	assert.JSONEq(t, `{"available_only":true}`, reply.Calls[0].Arguments)
	assert.Equal(t, "Let me check.", reply.Content)

	assert.Equal(t, "sys", got["system"])
	assert.Len(t, got["tools"], 1)
}

func TestAnthropicGatewayText(t *testing.T) {
	gw := newAnthropicTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"msg_2","type":"message","role":"assistant","content":[{"type":"text","text":"We are at 123 Main St."}],"stop_reason":"end_turn"}`)
	})

	reply, err := gw.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "where?"}}})
	require.NoError(t, err)
	assert.Equal(t, ReplyText, reply.Kind)
	assert.Equal(t, "We are at 123 Main St.", reply.Content)
}

func TestAnthropicGatewayAuthFailure(t *testing.T) {
	gw := newAnthropicTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	})

	_, err := gw.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	assert.ErrorIs(t, err, ErrAuthFailure)
}

func TestServiceGateway(t *testing.T) {
	svc, err := NewService(ProviderConfig{Type: ProviderOpenAI}, zerolog.Nop())
	require.NoError(t, err)

	_, err = svc.Gateway("")
	assert.ErrorIs(t, err, ErrConfigMissing)

	gw, err := svc.Gateway("override-key")
	require.NoError(t, err)
	assert.Equal(t, "OpenAI", gw.Name())

	svc, err = NewService(ProviderConfig{Type: ProviderGroq, GroqKey: "k"}, zerolog.Nop())
	require.NoError(t, err)
	a, err := svc.Gateway("")
	require.NoError(t, err)
	b, err := svc.Gateway("")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, "Groq", a.Name())

	// Key lookup is per provider type.
	svc, err = NewService(ProviderConfig{Type: "mystery", OpenAIKey: "k"}, zerolog.Nop())
	require.NoError(t, err)
	_, err = svc.Gateway("")
	assert.ErrorIs(t, err, ErrConfigMissing)
	_, err = svc.Gateway("k")
	assert.EqualError(t, err, "unknown LLM provider type: mystery")
}

package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/llm"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/tools"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
)

// FallbackMarker prefixes every degraded answer.
const FallbackMarker = "[fallback]"

// Mode says how an answer was produced.
type Mode string

const (
	ModeModel       Mode = "model"
	ModeFallback    Mode = "fallback"
	ModeToolResults Mode = "tool_results"
)

// ChatRequest is one inbound user turn. CustomerID nil means no tenant:
// plain chat with no tools. APIKey overrides the configured credential for
// this call only.
type ChatRequest struct {
	CustomerID *uint  `json:"customer_id,omitempty"`
	Message    string `json:"message"`
	APIKey     string `json:"api_key,omitempty"`
}

type ChatResponse struct {
	Answer     string `json:"answer"`
	CustomerID *uint  `json:"customer_id,omitempty"`
	Mode       Mode   `json:"mode"`
}

// GatewaySource hands out the gateway for one turn.
type GatewaySource interface {
	Gateway(override string) (llm.Gateway, error)
}

// ToolDispatcher advertises and runs tools.
type ToolDispatcher interface {
	Definitions() []llm.ToolDefinition
	Dispatch(ctx context.Context, customerID uint, name, arguments string) tools.Result
}

// BusinessLookup resolves the tenant for the system prompt.
type BusinessLookup interface {
	GetCustomer(ctx context.Context, customerID uint) (*models.Customer, error)
}

// ConversationLogger records one exchange per turn.
type ConversationLogger interface {
	LogConversation(ctx context.Context, customerID uint, message, answer string) error
}

type Config struct {
	Gateways        GatewaySource
	Tools           ToolDispatcher
	Businesses      BusinessLookup
	ConversationLog ConversationLogger
	Logger          zerolog.Logger
	// Timeout bounds each model round-trip.
	Timeout time.Duration
	// Now is the clock used for the prompt date.
	Now func() time.Time
}

// Engine runs chat turns: at most two model rounds with tool execution
// between them. It holds no per-turn state.
type Engine struct {
	gateways        GatewaySource
	tools           ToolDispatcher
	businesses      BusinessLookup
	conversationLog ConversationLogger
	logger          zerolog.Logger
	timeout         time.Duration
	now             func() time.Time
}

func NewEngine(cfg Config) *Engine {
	e := &Engine{
		gateways:        cfg.Gateways,
		tools:           cfg.Tools,
		businesses:      cfg.Businesses,
		conversationLog: cfg.ConversationLog,
		logger:          cfg.Logger.With().Str("component", "agent").Logger(),
		timeout:         cfg.Timeout,
		now:             cfg.Now,
	}
	if e.timeout <= 0 {
		e.timeout = 30 * time.Second
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// SendMessage answers one user message. It always returns a non-empty
// answer; failures degrade to a fallback answer instead of an error.
func (e *Engine) SendMessage(ctx context.Context, req ChatRequest) ChatResponse {
	logger := e.logger.With().Str("turn_id", uuid.NewString()).Logger()
	if req.CustomerID != nil {
		logger = logger.With().Uint("customer_id", *req.CustomerID).Logger()
	}
	logger.Info().Str("message", req.Message).Msg("📩 chat turn started")

	resp := e.run(ctx, req, logger)
	resp.CustomerID = req.CustomerID

	logger.Info().Str("mode", string(resp.Mode)).Msg("chat turn finished")
	e.record(ctx, req, resp, logger)
	return resp
}

func (e *Engine) run(ctx context.Context, req ChatRequest, logger zerolog.Logger) ChatResponse {
	gw, err := e.gateways.Gateway(req.APIKey)
	if err != nil {
		logger.Warn().Err(err).Msg("no gateway available")
		return fallback(req.Message)
	}

	history := []llm.Message{{Role: llm.RoleUser, Content: req.Message}}
	round1 := llm.Request{
		SystemPrompt: e.systemPrompt(ctx, req.CustomerID, logger),
		Messages:     history,
	}
	if req.CustomerID != nil {
		round1.Tools = e.tools.Definitions()
	}

	reply, err := e.complete(ctx, gw, round1)
	if err != nil {
		logger.Error().Err(err).Str("provider", gw.Name()).Msg("❌ model round 1 failed")
		return fallback(req.Message)
	}
	if reply.Kind != llm.ReplyToolCalls {
		return ChatResponse{Answer: reply.Content, Mode: ModeModel}
	}
	if req.CustomerID == nil {
		// Tools were never bound; nothing can run them.
		logger.Warn().Int("calls", len(reply.Calls)).Msg("tool calls without a tenant")
		if reply.Content != "" {
			return ChatResponse{Answer: reply.Content, Mode: ModeModel}
		}
		return fallback(req.Message)
	}

	results := e.executeTools(ctx, *req.CustomerID, reply.Calls, logger)
	joined := joinResults(results)

	round2 := llm.Request{
		SystemPrompt: round1.SystemPrompt,
		Messages: append(history, reply.Assistant, llm.Message{
			Role:        llm.RoleUser,
			Content:     joined,
			ToolResults: results,
		}),
	}
	final, err := e.complete(ctx, gw, round2)
	if err != nil || final.Kind != llm.ReplyText {
		logger.Error().Err(err).Str("provider", gw.Name()).Msg("❌ model round 2 failed, returning tool results")
		return ChatResponse{Answer: FallbackMarker + " " + joined, Mode: ModeToolResults}
	}
	return ChatResponse{Answer: final.Content, Mode: ModeModel}
}

// executeTools runs the calls one after another, in the order the model
// returned them. A failed call only affects its own result.
func (e *Engine) executeTools(ctx context.Context, customerID uint, calls []llm.ToolCall, logger zerolog.Logger) []llm.ToolResult {
	results := make([]llm.ToolResult, 0, len(calls))
	for i, call := range calls {
		res := e.tools.Dispatch(ctx, customerID, call.Name, call.Arguments)
		ev := logger.Info()
		if res.Err != nil {
			ev = logger.Warn().Err(res.Err)
		}
		ev.Int("index", i).Str("tool", call.Name).Msg("🔧 tool executed")
		results = append(results, llm.ToolResult{CallID: call.ID, Name: call.Name, Content: res.Text})
	}
	return results
}

func (e *Engine) complete(ctx context.Context, gw llm.Gateway, req llm.Request) (*llm.Reply, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return gw.Complete(callCtx, req)
}

func (e *Engine) record(ctx context.Context, req ChatRequest, resp ChatResponse, logger zerolog.Logger) {
	if req.CustomerID == nil || e.conversationLog == nil {
		return
	}
	if err := e.conversationLog.LogConversation(ctx, *req.CustomerID, req.Message, resp.Answer); err != nil {
		logger.Error().Err(err).Msg("failed to log conversation")
	}
}

func joinResults(results []llm.ToolResult) string {
	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Content)
	}
	return strings.Join(texts, "\n\n")
}

func fallback(message string) ChatResponse {
	return ChatResponse{
		Answer: fmt.Sprintf("%s The assistant is unavailable right now. You said: %s", FallbackMarker, message),
		Mode:   ModeFallback,
	}
}

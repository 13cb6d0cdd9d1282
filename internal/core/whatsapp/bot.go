package whatsapp

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/agent"
)

// Messenger runs one chat turn.
type Messenger interface {
	SendMessage(ctx context.Context, req agent.ChatRequest) agent.ChatResponse
}

// Sender delivers a text reply to a chat.
type Sender interface {
	SendText(ctx context.Context, to types.JID, text string) error
}

type BotConfig struct {
	// CustomerID is the business whose assistant answers this number.
	CustomerID uint
	// MinInterval drops messages from a sender arriving faster than this.
	MinInterval time.Duration
	// Timeout bounds one turn including the reply.
	Timeout time.Duration
	Logger  zerolog.Logger
	Now     func() time.Time
}

// Bot answers incoming WhatsApp text messages through the chat engine.
type Bot struct {
	engine     Messenger
	sender     Sender
	customerID uint
	interval   time.Duration
	timeout    time.Duration
	logger     zerolog.Logger
	now        func() time.Time

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

func NewBot(engine Messenger, sender Sender, cfg BotConfig) *Bot {
	if cfg.MinInterval == 0 {
		cfg.MinInterval = 2 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 90 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Bot{
		engine:     engine,
		sender:     sender,
		customerID: cfg.CustomerID,
		interval:   cfg.MinInterval,
		timeout:    cfg.Timeout,
		logger:     cfg.Logger.With().Str("component", "whatsapp-bot").Logger(),
		now:        cfg.Now,
		lastSeen:   make(map[string]time.Time),
	}
}

// HandleEvent is registered as the whatsmeow event handler. Messages are
// answered off the event goroutine.
func (b *Bot) HandleEvent(evt interface{}) {
	msg, ok := evt.(*events.Message)
	if !ok {
		return
	}
	go b.Handle(context.Background(), msg)
}

// Handle answers one message. It reports whether a reply was sent.
func (b *Bot) Handle(ctx context.Context, msg *events.Message) bool {
	if msg.Info.IsFromMe || msg.Info.IsGroup {
		return false
	}
	text := strings.TrimSpace(messageText(msg.Message))
	if text == "" {
		return false
	}

	from := msg.Info.Sender.User
	if !b.allow(from) {
		b.logger.Warn().Str("from", from).Msg("⚠️ Rate limit: ignoring message (too fast)")
		return false
	}

	b.logger.Info().Str("from", from).Msg("📩 incoming message")

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	customerID := b.customerID
	req := agent.ChatRequest{Message: text}
	if customerID != 0 {
		req.CustomerID = &customerID
	}
	resp := b.engine.SendMessage(ctx, req)

	if err := b.sender.SendText(ctx, msg.Info.Chat, resp.Answer); err != nil {
		b.logger.Error().Err(err).Str("from", from).Msg("❌ failed to send reply")
		return false
	}
	return true
}

func (b *Bot) allow(from string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if last, ok := b.lastSeen[from]; ok && now.Sub(last) < b.interval {
		return false
	}
	for sender, last := range b.lastSeen {
		if now.Sub(last) >= b.interval {
			delete(b.lastSeen, sender)
		}
	}
	b.lastSeen[from] = now
	return true
}

func messageText(m *waE2E.Message) string {
	if m == nil {
		return ""
	}
	if text := m.GetConversation(); text != "" {
		return text
	}
	return m.GetExtendedTextMessage().GetText()
}

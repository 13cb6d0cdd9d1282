package whatsapp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/agent"
)

type recordingEngine struct {
	mu   sync.Mutex
	reqs []agent.ChatRequest
}

func (e *recordingEngine) SendMessage(_ context.Context, req agent.ChatRequest) agent.ChatResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reqs = append(e.reqs, req)
	return agent.ChatResponse{Answer: "reply to " + req.Message, CustomerID: req.CustomerID, Mode: agent.ModeModel}
}

type sent struct {
	to   types.JID
	text string
}

type recordingSender struct {
	out []sent
	err error
}

func (s *recordingSender) SendText(_ context.Context, to types.JID, text string) error {
	if s.err != nil {
		return s.err
	}
	s.out = append(s.out, sent{to: to, text: text})
	return nil
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func textMessage(from, text string) *events.Message {
	jid := types.NewJID(from, types.DefaultUserServer)
	return &events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{Chat: jid, Sender: jid},
		},
		Message: &waE2E.Message{Conversation: proto.String(text)},
	}
}

func newTestBot(customerID uint) (*Bot, *recordingEngine, *recordingSender, *stepClock) {
	engine := &recordingEngine{}
	sender := &recordingSender{}
	clock := &stepClock{now: time.Date(2024, 12, 2, 9, 0, 0, 0, time.UTC)}
	bot := NewBot(engine, sender, BotConfig{
		CustomerID: customerID,
		Logger:     zerolog.Nop(),
		Now:        clock.Now,
	})
	return bot, engine, sender, clock
}

func TestBotRepliesWithTenant(t *testing.T) {
	bot, engine, sender, _ := newTestBot(7)

	require.True(t, bot.Handle(context.Background(), textMessage("62811", "What are your hours?")))

	require.Len(t, engine.reqs, 1)
	require.NotNil(t, engine.reqs[0].CustomerID)
	assert.Equal(t, uint(7), *engine.reqs[0].CustomerID)
	require.Len(t, sender.out, 1)
	assert.Equal(t, "62811", sender.out[0].to.User)
	assert.Equal(t, "reply to What are your hours?", sender.out[0].text)
}

func TestBotWithoutTenantChatsPlainly(t *testing.T) {
	bot, engine, _, _ := newTestBot(0)

	require.True(t, bot.Handle(context.Background(), textMessage("62811", "hello")))
	require.Len(t, engine.reqs, 1)
	assert.Nil(t, engine.reqs[0].CustomerID)
}

func TestBotReadsExtendedText(t *testing.T) {
	bot, engine, _, _ := newTestBot(1)
	msg := textMessage("62811", "")
	msg.Message = &waE2E.Message{ExtendedTextMessage: &waE2E.ExtendedTextMessage{Text: proto.String("quoted reply")}}

	require.True(t, bot.Handle(context.Background(), msg))
	assert.Equal(t, "quoted reply", engine.reqs[0].Message)
}

func TestBotIgnoresOwnGroupAndEmptyMessages(t *testing.T) {
	bot, engine, sender, _ := newTestBot(1)

	own := textMessage("62811", "hi")
	own.Info.IsFromMe = true
	assert.False(t, bot.Handle(context.Background(), own))

	group := textMessage("62812", "hi")
	group.Info.IsGroup = true
	assert.False(t, bot.Handle(context.Background(), group))

	assert.False(t, bot.Handle(context.Background(), textMessage("62813", "   ")))

	image := textMessage("62814", "")
	image.Message = &waE2E.Message{ImageMessage: &waE2E.ImageMessage{}}
	assert.False(t, bot.Handle(context.Background(), image))

	assert.Empty(t, engine.reqs)
	assert.Empty(t, sender.out)
}

func TestBotRateLimitsPerSender(t *testing.T) {
	bot, engine, _, clock := newTestBot(1)
	ctx := context.Background()

	assert.True(t, bot.Handle(ctx, textMessage("62811", "one")))
	assert.False(t, bot.Handle(ctx, textMessage("62811", "two")))
	assert.True(t, bot.Handle(ctx, textMessage("62899", "other sender")))

	clock.now = clock.now.Add(3 * time.Second)
	assert.True(t, bot.Handle(ctx, textMessage("62811", "three")))

	require.Len(t, engine.reqs, 3)
	assert.Equal(t, "three", engine.reqs[2].Message)
}

func TestBotForgetsIdleSenders(t *testing.T) {
	bot, _, _, clock := newTestBot(1)
	ctx := context.Background()

	require.True(t, bot.Handle(ctx, textMessage("62811", "one")))
	require.True(t, bot.Handle(ctx, textMessage("62812", "two")))
	assert.Len(t, bot.lastSeen, 2)

	clock.now = clock.now.Add(3 * time.Second)
	require.True(t, bot.Handle(ctx, textMessage("62813", "three")))
	assert.Len(t, bot.lastSeen, 1)
	assert.Contains(t, bot.lastSeen, "62813")
}

func TestBotSendFailure(t *testing.T) {
	bot, engine, sender, _ := newTestBot(1)
	sender.err = errors.New("not connected")

	assert.False(t, bot.Handle(context.Background(), textMessage("62811", "hi")))
	assert.Len(t, engine.reqs, 1)
}

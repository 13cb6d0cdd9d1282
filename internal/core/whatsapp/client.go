package whatsapp

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
)

const (
	defaultSQLiteStore = "file:whatsapp-store.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	qrImagePath        = "whatsapp-qr.png"
)

// Client is a single whatsmeow session.
type Client struct {
	client   *whatsmeow.Client
	storeURL string
	logger   zerolog.Logger
}

// NewClient uses the postgres session store at storeURL, or a local sqlite
// file when storeURL is empty.
func NewClient(storeURL string, logger zerolog.Logger) *Client {
	return &Client{
		storeURL: storeURL,
		logger:   logger.With().Str("component", "whatsapp").Logger(),
	}
}

func (w *Client) initStore(ctx context.Context) (*sqlstore.Container, error) {
	dbLog := waLog.Zerolog(w.logger.With().Str("sub", "store").Logger().Level(zerolog.ErrorLevel))

	if w.storeURL != "" {
		w.logger.Info().Msg("🌐 Using PostgreSQL database for WhatsApp store")
		container, err := sqlstore.New(ctx, "postgres", w.storeURL, dbLog)
		if err != nil {
			return nil, fmt.Errorf("failed to init PostgreSQL store: %w", err)
		}
		return container, nil
	}

	w.logger.Info().Msg("💾 Using local SQLite store (whatsapp-store.db)")
	rawDB, err := sql.Open("sqlite", defaultSQLiteStore)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	rawDB.SetMaxOpenConns(1)

	container := sqlstore.NewWithDB(rawDB, "sqlite", dbLog)
	if err := container.Upgrade(ctx); err != nil {
		return nil, fmt.Errorf("failed to upgrade SQLite schema: %w", err)
	}
	return container, nil
}

// Connect restores the stored session, or pairs a new device by QR code.
// The code is printed to the terminal and saved as a PNG.
func (w *Client) Connect(ctx context.Context) error {
	container, err := w.initStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to init store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return fmt.Errorf("failed to get device: %w", err)
	}

	w.client = whatsmeow.NewClient(deviceStore, waLog.Zerolog(w.logger.With().Str("sub", "client").Logger()))

	if w.client.Store.ID != nil {
		if err := w.client.Connect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
		w.logger.Info().Msg("✅ Reconnected to WhatsApp")
		return nil
	}

	qrChan, err := w.client.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to get QR channel: %w", err)
	}
	if err := w.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	for evt := range qrChan {
		switch evt.Event {
		case "code":
			w.showQR(evt.Code)
		case "success":
			w.logger.Info().Msg("✅ Login successful")
			return nil
		case "timeout":
			return fmt.Errorf("QR code timeout")
		case "error":
			return fmt.Errorf("pairing failed: %w", evt.Error)
		}
	}
	return nil
}

func (w *Client) showQR(code string) {
	qr, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to build QR code")
		return
	}
	fmt.Println("🔗 Scan this QR code in WhatsApp (Linked devices):")
	fmt.Println(qr.ToSmallString(false))

	if err := qr.WriteFile(256, qrImagePath); err != nil {
		w.logger.Warn().Err(err).Msg("failed to save QR image")
		return
	}
	w.logger.Info().Str("path", qrImagePath).Msg("🖼️ QR code saved")
}

func (w *Client) Disconnect() {
	if w.client != nil {
		w.client.Disconnect()
		w.logger.Info().Msg("🔌 WhatsApp client disconnected")
	}
}

func (w *Client) IsConnected() bool {
	return w.client != nil && w.client.IsConnected()
}

// SendText sends a plain conversation message.
func (w *Client) SendText(ctx context.Context, to types.JID, text string) error {
	if w.client == nil {
		return fmt.Errorf("client not initialized")
	}
	msg := &waE2E.Message{
		Conversation: proto.String(text),
	}
	_, err := w.client.SendMessage(ctx, to, msg)
	return err
}

// Listen registers handler for every whatsmeow event.
func (w *Client) Listen(handler func(evt interface{})) error {
	if w.client == nil {
		return fmt.Errorf("client not initialized")
	}
	w.client.AddEventHandler(handler)
	return nil
}

// KeepAlive sends an available presence every interval until ctx is done.
func (w *Client) KeepAlive(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", interval).Msg("🔄 Keep-alive started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("🛑 Keep-alive stopped")
			return
		case <-ticker.C:
			if !w.IsConnected() {
				continue
			}
			if err := w.client.SendPresence(ctx, types.PresenceAvailable); err != nil {
				w.logger.Warn().Err(err).Msg("⚠️ Keep-alive ping failed")
			} else {
				w.logger.Debug().Msg("💓 Keep-alive ping sent")
			}
		}
	}
}

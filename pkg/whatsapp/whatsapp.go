package whatsapp

import (
	"WynwoodBot/database/postgres"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
)

// Message is the transport-neutral view of an inbound WhatsApp event handed
// to the bot layer.
type Message struct {
	ChatID    string
	MessageID string
	Text      string
	IsFromMe  bool
	IsGroup   bool
}

type MessageHandler func(msg Message)

// ChallengeHandler receives the QR pairing code whenever the transport
// needs re-authentication.
type ChallengeHandler func(code string)

type IWhatsappClient interface {
	Connect(ctx context.Context) error
	SendMessage(ctx context.Context, chatID, message string) (string, error)
	OnMessage(handler MessageHandler)
	OnCredentialChallenge(handler ChallengeHandler)
	Disconnect() error
	IsConnected() bool
}

type whatsappClient struct {
	client           *whatsmeow.Client
	log              *logrus.Logger
	messageHandler   MessageHandler
	challengeHandler ChallengeHandler
}

// New builds the client over a Postgres-backed whatsmeow device store; the
// session credentials survive restarts there.
func New(log *logrus.Logger) (IWhatsappClient, error) {
	dsn := postgres.FormatDSN()

	dbLog := waLog.Stdout("Database", "INFO", true)
	container, err := sqlstore.New(context.Background(), "postgres", dsn, dbLog)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to device store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get device store: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, waLog.Stdout("Client", "INFO", true))

	w := &whatsappClient{
		client: client,
		log:    log,
	}
	client.AddEventHandler(w.handleEvent)

	return w, nil
}

func (w *whatsappClient) OnMessage(handler MessageHandler) {
	w.messageHandler = handler
}

func (w *whatsappClient) OnCredentialChallenge(handler ChallengeHandler) {
	w.challengeHandler = handler
}

// Connect establishes the session. On a fresh device store the QR channel
// feeds the registered challenge handler until pairing completes.
func (w *whatsappClient) Connect(ctx context.Context) error {
	connected := make(chan bool, 1)
	w.client.AddEventHandler(func(evt interface{}) {
		if _, ok := evt.(*events.Connected); ok {
			select {
			case connected <- true:
			default:
			}
		}
	})

	if w.client.Store.ID == nil {
		qrChan, _ := w.client.GetQRChannel(ctx)
		if err := w.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}

		go func() {
			for evt := range qrChan {
				if evt.Event == "code" && w.challengeHandler != nil {
					w.challengeHandler(evt.Code)
				}
			}
		}()
	} else {
		if err := w.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
	}

	select {
	case <-connected:
		w.log.Info("WhatsApp connected")
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("connection timeout")
	}

	return nil
}

func (w *whatsappClient) handleEvent(evt interface{}) {
	msgEvt, ok := evt.(*events.Message)
	if !ok || w.messageHandler == nil {
		return
	}

	text := msgEvt.Message.GetConversation()
	if text == "" {
		text = msgEvt.Message.GetExtendedTextMessage().GetText()
	}
	if text == "" {
		return
	}

	w.messageHandler(Message{
		ChatID:    msgEvt.Info.Chat.String(),
		MessageID: string(msgEvt.Info.ID),
		Text:      text,
		IsFromMe:  msgEvt.Info.IsFromMe,
		IsGroup:   msgEvt.Info.Chat.Server == types.GroupServer,
	})
}

// SendMessage delivers text to a direct chat and returns the transport
// message id for the sent-id fingerprint cache.
func (w *whatsappClient) SendMessage(ctx context.Context, chatID, message string) (string, error) {
	jid, err := parseChatJID(chatID)
	if err != nil {
		return "", err
	}

	waMsg := &waProto.Message{
		Conversation: proto.String(message),
	}

	resp, err := w.client.SendMessage(ctx, jid, waMsg)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	return string(resp.ID), nil
}

func parseChatJID(chatID string) (types.JID, error) {
	if strings.Contains(chatID, "@") {
		jid, err := types.ParseJID(chatID)
		if err != nil {
			return types.JID{}, fmt.Errorf("invalid chat id %q: %w", chatID, err)
		}
		return jid, nil
	}

	return types.NewJID(chatID, types.DefaultUserServer), nil
}

func (w *whatsappClient) Disconnect() error {
	w.client.Disconnect()
	return nil
}

func (w *whatsappClient) IsConnected() bool {
	return w.client.IsConnected()
}

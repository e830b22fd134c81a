// internal/bridge/bridge.go
// Realtime bridge: translates server push events into store mutations. One
// handler per named event, one dispatch per delivery, no batching. Payloads
// are validated at this boundary and dropped on shape mismatch rather than
// dispatched as invalid mutations.

package bridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/imadgeboyega/kiekky-client/internal/call"
	"github.com/imadgeboyega/kiekky-client/internal/entity"
	"github.com/imadgeboyega/kiekky-client/internal/socket"
)

// Named events consumed from the push channel.
const (
	EventNewMessage      = "new-message"
	EventTypingStart     = "typing-start"
	EventTypingStop      = "typing-stop"
	EventMessageRead     = "message-read"
	EventNewNotification = "new-notification"
	EventIncomingCall    = "incoming-call"
)

// ConnState is the bridge connection state.
type ConnState int

const (
	Disconnected ConnState = iota
	Connecting
	Connected
)

func (s ConnState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Socket is the transport collaborator, consumed as a black box. Reconnect
// and backoff live behind it, not here.
type Socket interface {
	Connect(ctx context.Context, token string) error
	On(event string, handler socket.Handler)
	OnClose(fn func(error))
	Disconnect()
}

// MessageStore receives message-family dispatches.
type MessageStore interface {
	AddMessage(message entity.Message)
	AddTypingUser(conversationID, userID string)
	RemoveTypingUser(conversationID, userID string)
	MarkAsRead(conversationID string)
}

// NotificationStore receives notification dispatches.
type NotificationStore interface {
	AddNotification(notification entity.Notification)
}

// CallStore receives call-signaling dispatches.
type CallStore interface {
	SetIncomingCall(incoming call.IncomingCall)
}

// Bridge wires the socket to the stores while credentials are available.
type Bridge struct {
	sock          Socket
	messages      MessageStore
	notifications NotificationStore
	calls         CallStore
	validate      *validator.Validate
	logger        *slog.Logger

	mu    sync.Mutex
	state ConnState
}

// New creates a bridge over the given socket and stores.
func New(sock Socket, messages MessageStore, notifications NotificationStore, calls CallStore, logger *slog.Logger) *Bridge {
	b := &Bridge{
		sock:          sock,
		messages:      messages,
		notifications: notifications,
		calls:         calls,
		validate:      validator.New(),
		logger:        logger.With("component", "bridge"),
	}

	sock.OnClose(func(err error) {
		b.setState(Disconnected)
	})

	return b
}

// State returns the current connection state.
func (b *Bridge) State() ConnState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Bridge) setState(state ConnState) {
	b.mu.Lock()
	b.state = state
	b.mu.Unlock()
	connectionState.Set(float64(state))
	b.logger.Info("connection state", "state", state.String())
}

// Start registers the event handlers and opens the connection. Called when
// credentials become available.
func (b *Bridge) Start(ctx context.Context, token string) error {
	b.sock.On(EventNewMessage, b.handleNewMessage)
	b.sock.On(EventTypingStart, b.handleTypingStart)
	b.sock.On(EventTypingStop, b.handleTypingStop)
	b.sock.On(EventMessageRead, b.handleMessageRead)
	b.sock.On(EventNewNotification, b.handleNewNotification)
	b.sock.On(EventIncomingCall, b.handleIncomingCall)

	b.setState(Connecting)
	if err := b.sock.Connect(ctx, token); err != nil {
		b.setState(Disconnected)
		return err
	}
	b.setState(Connected)
	return nil
}

// Stop tears the connection down. Called when credentials are cleared; no
// handler fires after it returns.
func (b *Bridge) Stop() {
	b.sock.Disconnect()
	b.setState(Disconnected)
}

func (b *Bridge) handleNewMessage(data json.RawMessage) {
	var message entity.Message
	if !b.decode(EventNewMessage, data, &message) {
		return
	}
	if message.ID == "" || message.Conversation == "" {
		b.drop(EventNewMessage, "missing ids")
		return
	}
	eventsTotal.WithLabelValues(EventNewMessage).Inc()
	b.messages.AddMessage(message)
}

func (b *Bridge) handleTypingStart(data json.RawMessage) {
	var payload typingPayload
	if !b.decode(EventTypingStart, data, &payload) {
		return
	}
	eventsTotal.WithLabelValues(EventTypingStart).Inc()
	b.messages.AddTypingUser(payload.ConversationID, payload.UserID)
}

func (b *Bridge) handleTypingStop(data json.RawMessage) {
	var payload typingPayload
	if !b.decode(EventTypingStop, data, &payload) {
		return
	}
	eventsTotal.WithLabelValues(EventTypingStop).Inc()
	b.messages.RemoveTypingUser(payload.ConversationID, payload.UserID)
}

func (b *Bridge) handleMessageRead(data json.RawMessage) {
	var payload readPayload
	if !b.decode(EventMessageRead, data, &payload) {
		return
	}
	eventsTotal.WithLabelValues(EventMessageRead).Inc()
	b.messages.MarkAsRead(payload.ConversationID)
}

func (b *Bridge) handleNewNotification(data json.RawMessage) {
	var notification entity.Notification
	if !b.decode(EventNewNotification, data, &notification) {
		return
	}
	if notification.ID == "" {
		b.drop(EventNewNotification, "missing id")
		return
	}
	eventsTotal.WithLabelValues(EventNewNotification).Inc()
	b.notifications.AddNotification(notification)
}

func (b *Bridge) handleIncomingCall(data json.RawMessage) {
	var payload incomingCallPayload
	if !b.decode(EventIncomingCall, data, &payload) {
		return
	}
	if payload.From.ID == "" {
		b.drop(EventIncomingCall, "missing caller")
		return
	}
	eventsTotal.WithLabelValues(EventIncomingCall).Inc()
	b.calls.SetIncomingCall(call.IncomingCall{
		CallID: payload.CallID,
		From:   payload.From,
		Offer:  payload.Offer,
		Type:   call.Type(payload.CallType),
	})
}

// decode unmarshals and tag-validates a payload. A failure drops the event.
func (b *Bridge) decode(event string, data json.RawMessage, out any) bool {
	if err := json.Unmarshal(data, out); err != nil {
		b.drop(event, "malformed json")
		return false
	}
	if err := b.validate.Struct(out); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); !ok {
			b.drop(event, "invalid payload")
			return false
		}
	}
	return true
}

func (b *Bridge) drop(event, reason string) {
	eventsDropped.WithLabelValues(event).Inc()
	b.logger.Warn("dropping push event", "event", event, "reason", reason)
}

package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-client/internal/call"
	"github.com/imadgeboyega/kiekky-client/internal/entity"
	"github.com/imadgeboyega/kiekky-client/internal/socket"
)

// fakeSocket records handler registrations and lets tests push raw events
// straight into them.
type fakeSocket struct {
	handlers   map[string]socket.Handler
	onClose    func(error)
	connectErr error

	connectToken string
	connects     int
	disconnects  int
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{handlers: map[string]socket.Handler{}}
}

func (f *fakeSocket) Connect(_ context.Context, token string) error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connectToken = token
	f.connects++
	return nil
}

func (f *fakeSocket) On(event string, handler socket.Handler) {
	f.handlers[event] = handler
}

func (f *fakeSocket) OnClose(fn func(error)) { f.onClose = fn }

func (f *fakeSocket) Disconnect() { f.disconnects++ }

func (f *fakeSocket) push(t *testing.T, event string, payload any) {
	t.Helper()
	handler, ok := f.handlers[event]
	require.True(t, ok, "no handler registered for %s", event)
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	handler(raw)
}

type recordingStores struct {
	messages      []entity.Message
	typingAdds    [][2]string
	typingRemoves [][2]string
	reads         []string
	notifications []entity.Notification
	incoming      []call.IncomingCall
}

func (r *recordingStores) AddMessage(m entity.Message) { r.messages = append(r.messages, m) }

func (r *recordingStores) AddTypingUser(conversationID, userID string) {
	r.typingAdds = append(r.typingAdds, [2]string{conversationID, userID})
}

func (r *recordingStores) RemoveTypingUser(conversationID, userID string) {
	r.typingRemoves = append(r.typingRemoves, [2]string{conversationID, userID})
}

func (r *recordingStores) MarkAsRead(conversationID string) {
	r.reads = append(r.reads, conversationID)
}

func (r *recordingStores) AddNotification(n entity.Notification) {
	r.notifications = append(r.notifications, n)
}

func (r *recordingStores) SetIncomingCall(incoming call.IncomingCall) {
	r.incoming = append(r.incoming, incoming)
}

func newTestBridge(t *testing.T) (*Bridge, *fakeSocket, *recordingStores) {
	t.Helper()
	sock := newFakeSocket()
	stores := &recordingStores{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := New(sock, stores, stores, stores, logger)
	return b, sock, stores
}

func TestStartRegistersHandlersAndConnects(t *testing.T) {
	b, sock, _ := newTestBridge(t)

	require.NoError(t, b.Start(context.Background(), "tok-1"))

	for _, event := range []string{
		EventNewMessage, EventTypingStart, EventTypingStop,
		EventMessageRead, EventNewNotification, EventIncomingCall,
	} {
		assert.Contains(t, sock.handlers, event)
	}
	assert.Equal(t, "tok-1", sock.connectToken)
	assert.Equal(t, Connected, b.State())
}

func TestStartConnectFailure(t *testing.T) {
	b, sock, _ := newTestBridge(t)
	sock.connectErr = errors.New("dial refused")

	require.Error(t, b.Start(context.Background(), "tok-1"))
	assert.Equal(t, Disconnected, b.State())
}

func TestStop(t *testing.T) {
	b, sock, _ := newTestBridge(t)
	require.NoError(t, b.Start(context.Background(), "tok-1"))

	b.Stop()

	assert.Equal(t, 1, sock.disconnects)
	assert.Equal(t, Disconnected, b.State())
}

func TestSocketCloseMarksDisconnected(t *testing.T) {
	b, sock, _ := newTestBridge(t)
	require.NoError(t, b.Start(context.Background(), "tok-1"))

	sock.onClose(errors.New("read: connection reset"))

	assert.Equal(t, Disconnected, b.State())
}

func TestNewMessageDispatch(t *testing.T) {
	b, sock, stores := newTestBridge(t)
	require.NoError(t, b.Start(context.Background(), "tok"))

	sock.push(t, EventNewMessage, entity.Message{
		ID:           "m1",
		Conversation: "conv1",
		Sender:       entity.User{ID: "u2"},
		Content:      "hey",
	})

	require.Len(t, stores.messages, 1)
	assert.Equal(t, "m1", stores.messages[0].ID)
	assert.Equal(t, "conv1", stores.messages[0].Conversation)
}

func TestNewMessageMissingIDsDropped(t *testing.T) {
	b, sock, stores := newTestBridge(t)
	require.NoError(t, b.Start(context.Background(), "tok"))

	sock.push(t, EventNewMessage, entity.Message{Content: "no ids"})
	sock.push(t, EventNewMessage, entity.Message{ID: "m1", Content: "no conversation"})

	assert.Empty(t, stores.messages)
}

func TestMalformedJSONDropped(t *testing.T) {
	b, sock, stores := newTestBridge(t)
	require.NoError(t, b.Start(context.Background(), "tok"))

	sock.handlers[EventNewMessage](json.RawMessage(`{"_id": 42}`))
	sock.handlers[EventTypingStart](json.RawMessage(`not json`))

	assert.Empty(t, stores.messages)
	assert.Empty(t, stores.typingAdds)
}

func TestTypingEvents(t *testing.T) {
	b, sock, stores := newTestBridge(t)
	require.NoError(t, b.Start(context.Background(), "tok"))

	sock.push(t, EventTypingStart, map[string]string{"conversationId": "conv1", "userId": "u2"})
	sock.push(t, EventTypingStop, map[string]string{"conversationId": "conv1", "userId": "u2"})

	require.Len(t, stores.typingAdds, 1)
	assert.Equal(t, [2]string{"conv1", "u2"}, stores.typingAdds[0])
	require.Len(t, stores.typingRemoves, 1)
	assert.Equal(t, [2]string{"conv1", "u2"}, stores.typingRemoves[0])
}

func TestTypingMissingFieldsDropped(t *testing.T) {
	b, sock, stores := newTestBridge(t)
	require.NoError(t, b.Start(context.Background(), "tok"))

	sock.push(t, EventTypingStart, map[string]string{"conversationId": "conv1"})
	sock.push(t, EventTypingStart, map[string]string{"userId": "u2"})

	assert.Empty(t, stores.typingAdds)
}

func TestMessageRead(t *testing.T) {
	b, sock, stores := newTestBridge(t)
	require.NoError(t, b.Start(context.Background(), "tok"))

	sock.push(t, EventMessageRead, map[string]string{"conversationId": "conv1"})

	assert.Equal(t, []string{"conv1"}, stores.reads)
}

func TestNewNotification(t *testing.T) {
	b, sock, stores := newTestBridge(t)
	require.NoError(t, b.Start(context.Background(), "tok"))

	sock.push(t, EventNewNotification, entity.Notification{
		ID:      "n1",
		Type:    entity.NotificationLike,
		Message: "jane liked your post",
	})
	sock.push(t, EventNewNotification, entity.Notification{Message: "no id"})

	require.Len(t, stores.notifications, 1)
	assert.Equal(t, "n1", stores.notifications[0].ID)
}

func TestIncomingCall(t *testing.T) {
	b, sock, stores := newTestBridge(t)
	require.NoError(t, b.Start(context.Background(), "tok"))

	sock.push(t, EventIncomingCall, map[string]any{
		"callId":   "c1",
		"from":     map[string]string{"_id": "u2", "username": "jane"},
		"callType": "video",
		"offer":    map[string]string{"sdp": "v=0"},
	})

	require.Len(t, stores.incoming, 1)
	got := stores.incoming[0]
	assert.Equal(t, "c1", got.CallID)
	assert.Equal(t, "u2", got.From.ID)
	assert.Equal(t, call.TypeVideo, got.Type)
	assert.NotEmpty(t, got.Offer)
}

func TestIncomingCallInvalidDropped(t *testing.T) {
	b, sock, stores := newTestBridge(t)
	require.NoError(t, b.Start(context.Background(), "tok"))

	// Unknown call type fails tag validation.
	sock.push(t, EventIncomingCall, map[string]any{
		"callId":   "c1",
		"from":     map[string]string{"_id": "u2"},
		"callType": "hologram",
	})
	// Missing caller id.
	sock.push(t, EventIncomingCall, map[string]any{
		"callId":   "c2",
		"callType": "audio",
	})

	assert.Empty(t, stores.incoming)
}

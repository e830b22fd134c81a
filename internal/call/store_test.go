package call

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-client/internal/entity"
)

type fakeHandle struct {
	closed   int
	closeErr error
}

func (f *fakeHandle) Close() error {
	f.closed++
	return f.closeErr
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestIncomingCallReplacesPrevious(t *testing.T) {
	s := newTestStore(t)

	s.SetIncomingCall(IncomingCall{CallID: "c1", From: entity.User{ID: "u1"}, Type: TypeAudio})
	s.SetIncomingCall(IncomingCall{CallID: "c2", From: entity.User{ID: "u2"}, Type: TypeVideo})

	state := s.Snapshot()
	require.NotNil(t, state.IncomingCall)
	assert.Equal(t, "c2", state.IncomingCall.CallID)
	assert.Equal(t, TypeVideo, state.IncomingCall.Type)

	s.ClearIncomingCall()
	assert.Nil(t, s.Snapshot().IncomingCall)
}

func TestUpdateCallStatus(t *testing.T) {
	s := newTestStore(t)

	// No active call: must not panic, must not invent one.
	s.UpdateCallStatus(StatusConnected)
	assert.Nil(t, s.Snapshot().ActiveCall)

	s.SetActiveCall(ActiveCall{CallID: "c1", User: entity.User{ID: "u1"}, Type: TypeAudio, Status: StatusConnecting})
	s.UpdateCallStatus(StatusConnected)

	state := s.Snapshot()
	require.NotNil(t, state.ActiveCall)
	assert.Equal(t, StatusConnected, state.ActiveCall.Status)
}

func TestToggles(t *testing.T) {
	s := newTestStore(t)

	s.ToggleMute()
	assert.True(t, s.Snapshot().IsMuted)
	s.ToggleMute()
	assert.False(t, s.Snapshot().IsMuted)

	s.ToggleVideo()
	assert.True(t, s.Snapshot().IsVideoOff)
}

func TestClearActiveCallReleasesHandles(t *testing.T) {
	s := newTestStore(t)
	local := &fakeHandle{}
	remote := &fakeHandle{closeErr: errors.New("already stopped")}
	peer := &fakeHandle{}

	s.SetActiveCall(ActiveCall{CallID: "c1", Status: StatusConnected})
	s.SetLocalStream(local)
	s.SetRemoteStream(remote)
	s.SetPeerConnection(peer)
	s.ToggleMute()
	s.ToggleVideo()

	s.ClearActiveCall()

	state := s.Snapshot()
	assert.Nil(t, state.ActiveCall)
	assert.Nil(t, state.LocalStream)
	assert.Nil(t, state.RemoteStream)
	assert.Nil(t, state.PeerConnection)
	assert.False(t, state.IsMuted)
	assert.False(t, state.IsVideoOff)

	assert.Equal(t, 1, local.closed)
	assert.Equal(t, 1, remote.closed)
	assert.Equal(t, 1, peer.closed)
}

func TestClearActiveCallWithoutCall(t *testing.T) {
	s := newTestStore(t)
	s.ClearActiveCall()
	assert.Nil(t, s.Snapshot().ActiveCall)
}

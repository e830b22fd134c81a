// internal/call/store.go
// Call store: at most one incoming and one active call, plus the transient
// media handles the active call owns.

package call

import (
	"encoding/json"
	"log/slog"

	"github.com/imadgeboyega/kiekky-client/internal/entity"
	"github.com/imadgeboyega/kiekky-client/internal/store"
)

// Type distinguishes audio and video calls.
type Type string

const (
	TypeAudio Type = "audio"
	TypeVideo Type = "video"
)

// Status is the active call's lifecycle phase.
type Status string

const (
	StatusConnecting Status = "connecting"
	StatusConnected  Status = "connected"
	StatusEnded      Status = "ended"
)

// MediaStream is an opaque handle to a live media stream. Closing stops the
// underlying capture or playback.
type MediaStream interface {
	Close() error
}

// PeerConnection is an opaque handle to the transport peer connection.
type PeerConnection interface {
	Close() error
}

// IncomingCall is a ringing call awaiting accept or decline.
type IncomingCall struct {
	CallID string          `json:"callId"`
	From   entity.User     `json:"from"`
	Offer  json.RawMessage `json:"offer,omitempty"`
	Type   Type            `json:"type"`
}

// ActiveCall is the call currently in progress.
type ActiveCall struct {
	CallID string      `json:"callId"`
	User   entity.User `json:"user"`
	Type   Type        `json:"type"`
	Status Status      `json:"status"`
}

// State is the call store snapshot. The stream and peer-connection handles
// are process-local resources: they are excluded from serialization and are
// released through ClearActiveCall only.
type State struct {
	IncomingCall   *IncomingCall  `json:"incomingCall,omitempty"`
	ActiveCall     *ActiveCall    `json:"activeCall,omitempty"`
	LocalStream    MediaStream    `json:"-"`
	RemoteStream   MediaStream    `json:"-"`
	PeerConnection PeerConnection `json:"-"`
	IsMuted        bool           `json:"isMuted"`
	IsVideoOff     bool           `json:"isVideoOff"`
}

// Store owns the call state.
type Store struct {
	*store.Container[State]

	logger *slog.Logger
}

// NewStore creates a call store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		Container: store.New(State{}),
		logger:    logger.With("store", "call"),
	}
}

// SetIncomingCall records a ringing call, replacing any previous one so at
// most one incoming call exists at a time.
func (s *Store) SetIncomingCall(incoming IncomingCall) {
	s.Update(func(state State) State {
		state.IncomingCall = &incoming
		return state
	})
}

// ClearIncomingCall dismisses the ringing call.
func (s *Store) ClearIncomingCall() {
	s.Update(func(state State) State {
		state.IncomingCall = nil
		return state
	})
}

// SetActiveCall records the call in progress, replacing any previous one so
// at most one active call exists at a time.
func (s *Store) SetActiveCall(active ActiveCall) {
	s.Update(func(state State) State {
		state.ActiveCall = &active
		return state
	})
}

// UpdateCallStatus advances the active call's status. No-op when no call is
// active.
func (s *Store) UpdateCallStatus(status Status) {
	s.Update(func(state State) State {
		if state.ActiveCall == nil {
			return state
		}
		active := *state.ActiveCall
		active.Status = status
		state.ActiveCall = &active
		return state
	})
}

// SetLocalStream installs the local capture stream handle.
func (s *Store) SetLocalStream(stream MediaStream) {
	s.Update(func(state State) State {
		state.LocalStream = stream
		return state
	})
}

// SetRemoteStream installs the remote playback stream handle.
func (s *Store) SetRemoteStream(stream MediaStream) {
	s.Update(func(state State) State {
		state.RemoteStream = stream
		return state
	})
}

// SetPeerConnection installs the peer-connection handle.
func (s *Store) SetPeerConnection(peer PeerConnection) {
	s.Update(func(state State) State {
		state.PeerConnection = peer
		return state
	})
}

// ToggleMute flips the mute flag.
func (s *Store) ToggleMute() {
	s.Update(func(state State) State {
		state.IsMuted = !state.IsMuted
		return state
	})
}

// ToggleVideo flips the video-off flag.
func (s *Store) ToggleVideo() {
	s.Update(func(state State) State {
		state.IsVideoOff = !state.IsVideoOff
		return state
	})
}

// ClearActiveCall ends the active call: every transient field resets in one
// transition and the media and peer handles are released, so no stream
// reference can outlive its call. Safe to call on every exit path,
// including when no call is active.
func (s *Store) ClearActiveCall() {
	s.Update(func(state State) State {
		s.release("local stream", state.LocalStream)
		s.release("remote stream", state.RemoteStream)
		s.release("peer connection", state.PeerConnection)

		state.ActiveCall = nil
		state.LocalStream = nil
		state.RemoteStream = nil
		state.PeerConnection = nil
		state.IsMuted = false
		state.IsVideoOff = false
		return state
	})
}

func (s *Store) release(name string, handle interface{ Close() error }) {
	if handle == nil {
		return
	}
	if err := handle.Close(); err != nil {
		s.logger.Warn("releasing call resource failed", "resource", name, "error", err)
	}
}

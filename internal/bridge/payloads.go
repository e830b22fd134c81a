// internal/bridge/payloads.go
// Wire shapes of the push event payloads. Tags define what a payload must
// carry to be dispatched; anything else is dropped at the boundary.

package bridge

import (
	"encoding/json"

	"github.com/imadgeboyega/kiekky-client/internal/entity"
)

type typingPayload struct {
	ConversationID string `json:"conversationId" validate:"required"`
	UserID         string `json:"userId" validate:"required"`
}

type readPayload struct {
	ConversationID string `json:"conversationId" validate:"required"`
}

type incomingCallPayload struct {
	CallID   string          `json:"callId" validate:"required"`
	From     entity.User     `json:"from"`
	Offer    json.RawMessage `json:"offer,omitempty"`
	CallType string          `json:"callType" validate:"required,oneof=audio video"`
}

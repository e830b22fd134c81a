// internal/entity/message.go

package entity

import "time"

// Reaction is an emoji reaction on a message. The server does not dedupe
// reactions per user, so the slice may carry repeated user ids.
type Reaction struct {
	User  string `json:"user"`
	Emoji string `json:"emoji"`
}

// Message is a chat message. Sender is a denormalized snapshot; Conversation
// holds the owning conversation id. Within a conversation the message list is
// append-only except for read-flag and reaction updates.
type Message struct {
	ID           string     `json:"_id"`
	Conversation string     `json:"conversation"`
	Sender       User       `json:"sender"`
	Content      string     `json:"content,omitempty"`
	Media        *Media     `json:"media,omitempty"`
	Reactions    []Reaction `json:"reactions,omitempty"`
	IsRead       bool       `json:"isRead"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Conversation is a chat thread. LastMessage is a denormalized copy updated
// opportunistically as messages arrive; it is never the source of truth.
type Conversation struct {
	ID           string    `json:"_id"`
	Participants []User    `json:"participants"`
	LastMessage  *Message  `json:"lastMessage,omitempty"`
	UnreadCount  int       `json:"unreadCount,omitempty"`
	IsGroup      bool      `json:"isGroup"`
	GroupName    string    `json:"groupName,omitempty"`
	GroupAvatar  string    `json:"groupAvatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

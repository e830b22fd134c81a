// internal/messaging/store.go
// Message store: conversations, the active chat's message list, typing
// indicators and per-conversation unread counters.

package messaging

import (
	"context"
	"log/slog"

	"github.com/imadgeboyega/kiekky-client/internal/api"
	"github.com/imadgeboyega/kiekky-client/internal/entity"
	"github.com/imadgeboyega/kiekky-client/internal/store"
)

// Fallback error messages when the server response carries none.
const (
	errFetchConversations = "Failed to fetch conversations"
	errFetchMessages      = "Failed to fetch messages"
	errSendMessage        = "Failed to send message"
)

// API is the slice of the REST client the message store depends on.
type API interface {
	GetConversations(ctx context.Context) ([]entity.Conversation, error)
	GetMessages(ctx context.Context, conversationID string) ([]entity.Message, error)
	SendMessage(ctx context.Context, conversationID, content string, attachments []api.Attachment) (*entity.Message, error)
}

// State is the message store snapshot.
type State struct {
	Conversations       []entity.Conversation `json:"conversations"`
	CurrentConversation *entity.Conversation  `json:"currentConversation,omitempty"`
	Messages            []entity.Message      `json:"messages"`
	IsLoading           bool                  `json:"isLoading"`
	Error               string                `json:"error,omitempty"`
	TypingUsers         map[string][]string   `json:"typingUsers"`
}

func initialState() State {
	return State{TypingUsers: map[string][]string{}}
}

// Store owns the messaging state.
type Store struct {
	*store.Container[State]

	api    API
	logger *slog.Logger
}

// NewStore creates a message store backed by the given API client.
func NewStore(apiClient API, logger *slog.Logger) *Store {
	return &Store{
		Container: store.New(initialState()),
		api:       apiClient,
		logger:    logger.With("store", "messages"),
	}
}

// SetCurrentConversation switches the active conversation context. The
// message list is left untouched; callers fetch it separately.
func (s *Store) SetCurrentConversation(conversation *entity.Conversation) {
	s.Update(func(state State) State {
		state.CurrentConversation = conversation
		return state
	})
}

// AddMessage appends a message if its id is not already present, and
// overwrites the owning conversation's denormalized last message. The
// append is idempotent by id, so socket redelivery and the send
// confirmation cannot duplicate a message. Last-message overwrite is
// last-writer-wins by call order: callers only pass genuinely new messages.
func (s *Store) AddMessage(message entity.Message) {
	s.Update(func(state State) State {
		if indexOfMessage(state.Messages, message.ID) == -1 {
			state.Messages = append(cloneMessages(state.Messages), message)
		}

		if i := indexOfConversation(state.Conversations, message.Conversation); i != -1 {
			conversations := cloneConversations(state.Conversations)
			last := message
			conversations[i].LastMessage = &last
			state.Conversations = conversations
		}
		return state
	})
}

// UpdateMessage replaces a message by id. No-op when the id is absent.
func (s *Store) UpdateMessage(message entity.Message) {
	s.Update(func(state State) State {
		i := indexOfMessage(state.Messages, message.ID)
		if i == -1 {
			return state
		}
		messages := cloneMessages(state.Messages)
		messages[i] = message
		state.Messages = messages
		return state
	})
}

// DeleteMessage removes a message by id. No-op when the id is absent.
func (s *Store) DeleteMessage(messageID string) {
	s.Update(func(state State) State {
		messages := make([]entity.Message, 0, len(state.Messages))
		for _, m := range state.Messages {
			if m.ID != messageID {
				messages = append(messages, m)
			}
		}
		state.Messages = messages
		return state
	})
}

// MarkAsRead zeroes the conversation's unread counter and flips the read
// flag on every locally-held message of that conversation. Messages of
// other conversations are untouched. This is optimistic: it does not wait
// for server acknowledgement.
func (s *Store) MarkAsRead(conversationID string) {
	s.Update(func(state State) State {
		if i := indexOfConversation(state.Conversations, conversationID); i != -1 {
			conversations := cloneConversations(state.Conversations)
			conversations[i].UnreadCount = 0
			state.Conversations = conversations
		}

		messages := cloneMessages(state.Messages)
		for i := range messages {
			if messages[i].Conversation == conversationID {
				messages[i].IsRead = true
			}
		}
		state.Messages = messages
		return state
	})
}

// AddTypingUser inserts a user into the conversation's typing set. No-op
// when already present.
func (s *Store) AddTypingUser(conversationID, userID string) {
	s.Update(func(state State) State {
		for _, id := range state.TypingUsers[conversationID] {
			if id == userID {
				return state
			}
		}
		typing := cloneTyping(state.TypingUsers)
		typing[conversationID] = append(typing[conversationID], userID)
		state.TypingUsers = typing
		return state
	})
}

// RemoveTypingUser removes a user from the conversation's typing set.
func (s *Store) RemoveTypingUser(conversationID, userID string) {
	s.Update(func(state State) State {
		current, ok := state.TypingUsers[conversationID]
		if !ok {
			return state
		}
		remaining := make([]string, 0, len(current))
		for _, id := range current {
			if id != userID {
				remaining = append(remaining, id)
			}
		}
		typing := cloneTyping(state.TypingUsers)
		typing[conversationID] = remaining
		state.TypingUsers = typing
		return state
	})
}

// IncrementUnreadCount bumps a conversation's unread counter by one. No-op
// when the conversation is not loaded.
func (s *Store) IncrementUnreadCount(conversationID string) {
	s.Update(func(state State) State {
		i := indexOfConversation(state.Conversations, conversationID)
		if i == -1 {
			return state
		}
		conversations := cloneConversations(state.Conversations)
		conversations[i].UnreadCount++
		state.Conversations = conversations
		return state
	})
}

// ClearMessages empties the message list and active conversation, e.g. on
// logout.
func (s *Store) ClearMessages() {
	s.Update(func(state State) State {
		state.Messages = nil
		state.CurrentConversation = nil
		return state
	})
}

// CurrentConversationID returns the id of the active conversation, or
// empty when none is selected.
func (s *Store) CurrentConversationID() string {
	current := s.Snapshot().CurrentConversation
	if current == nil {
		return ""
	}
	return current.ID
}

// FetchConversations loads the conversation list.
func (s *Store) FetchConversations(ctx context.Context) error {
	s.setLoading()

	conversations, err := s.api.GetConversations(ctx)
	if err != nil {
		s.setError(api.ErrorMessage(err, errFetchConversations))
		return err
	}

	s.Update(func(state State) State {
		state.IsLoading = false
		state.Conversations = conversations
		return state
	})
	return nil
}

// FetchMessages loads one conversation's messages, replacing the list.
func (s *Store) FetchMessages(ctx context.Context, conversationID string) error {
	s.setLoading()

	messages, err := s.api.GetMessages(ctx, conversationID)
	if err != nil {
		s.setError(api.ErrorMessage(err, errFetchMessages))
		return err
	}

	s.Update(func(state State) State {
		state.IsLoading = false
		state.Messages = messages
		return state
	})
	return nil
}

// SendMessage posts a message and appends the stored record on success. The
// append goes through AddMessage, so a copy already delivered over the
// socket is not duplicated.
func (s *Store) SendMessage(ctx context.Context, conversationID, content string, attachments []api.Attachment) (*entity.Message, error) {
	message, err := s.api.SendMessage(ctx, conversationID, content, attachments)
	if err != nil {
		s.setError(api.ErrorMessage(err, errSendMessage))
		return nil, err
	}

	s.AddMessage(*message)
	return message, nil
}

func (s *Store) setLoading() {
	s.Update(func(state State) State {
		state.IsLoading = true
		state.Error = ""
		return state
	})
}

func (s *Store) setError(message string) {
	s.logger.Warn("request failed", "error", message)
	s.Update(func(state State) State {
		state.IsLoading = false
		state.Error = message
		return state
	})
}

func indexOfMessage(messages []entity.Message, id string) int {
	for i := range messages {
		if messages[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfConversation(conversations []entity.Conversation, id string) int {
	for i := range conversations {
		if conversations[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneMessages(messages []entity.Message) []entity.Message {
	out := make([]entity.Message, len(messages))
	copy(out, messages)
	return out
}

func cloneConversations(conversations []entity.Conversation) []entity.Conversation {
	out := make([]entity.Conversation, len(conversations))
	copy(out, conversations)
	return out
}

func cloneTyping(typing map[string][]string) map[string][]string {
	out := make(map[string][]string, len(typing))
	for key, users := range typing {
		copied := make([]string, len(users))
		copy(copied, users)
		out[key] = copied
	}
	return out
}

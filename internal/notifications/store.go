// internal/notifications/store.go
// Notification store: unread-aware notification feed.

package notifications

import (
	"context"
	"log/slog"

	"github.com/imadgeboyega/kiekky-client/internal/api"
	"github.com/imadgeboyega/kiekky-client/internal/entity"
	"github.com/imadgeboyega/kiekky-client/internal/store"
)

// Fallback error messages when the server response carries none.
const (
	errFetchNotifications = "Failed to fetch notifications"
	errMarkAsRead         = "Failed to mark as read"
	errMarkAllAsRead      = "Failed to mark all as read"
)

// API is the slice of the REST client the notification store depends on.
type API interface {
	GetNotifications(ctx context.Context) (*api.NotificationFeed, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// State is the notification store snapshot. UnreadCount is maintained
// incrementally by the mutators below and is never recomputed by scanning
// the list; any new mutator must keep it in step or the counter
// desynchronizes.
type State struct {
	Notifications []entity.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
	IsLoading     bool                  `json:"isLoading"`
	Error         string                `json:"error,omitempty"`
}

// Store owns the notification state.
type Store struct {
	*store.Container[State]

	api    API
	logger *slog.Logger
}

// NewStore creates a notification store backed by the given API client.
func NewStore(apiClient API, logger *slog.Logger) *Store {
	return &Store{
		Container: store.New(State{}),
		api:       apiClient,
		logger:    logger.With("store", "notifications"),
	}
}

// AddNotification prepends a notification (newest first) and bumps the
// unread counter when it arrives unread.
func (s *Store) AddNotification(notification entity.Notification) {
	s.Update(func(state State) State {
		state.Notifications = append([]entity.Notification{notification}, state.Notifications...)
		if !notification.IsRead {
			state.UnreadCount++
		}
		return state
	})
}

// UpdateNotification replaces a notification by id, decrementing the unread
// counter when an unread copy becomes read. No-op when the id is absent.
func (s *Store) UpdateNotification(notification entity.Notification) {
	s.Update(func(state State) State {
		i := indexOf(state.Notifications, notification.ID)
		if i == -1 {
			return state
		}
		notifications := clone(state.Notifications)
		wasUnread := !notifications[i].IsRead
		notifications[i] = notification
		state.Notifications = notifications
		if wasUnread && notification.IsRead {
			state.UnreadCount--
		}
		return state
	})
}

// RemoveNotification removes a notification by id, decrementing the unread
// counter when the removed copy was unread. No-op when the id is absent.
func (s *Store) RemoveNotification(notificationID string) {
	s.Update(func(state State) State {
		i := indexOf(state.Notifications, notificationID)
		if i == -1 {
			return state
		}
		if !state.Notifications[i].IsRead {
			state.UnreadCount--
		}
		notifications := make([]entity.Notification, 0, len(state.Notifications)-1)
		notifications = append(notifications, state.Notifications[:i]...)
		notifications = append(notifications, state.Notifications[i+1:]...)
		state.Notifications = notifications
		return state
	})
}

// ClearNotifications empties the feed and resets the counter, e.g. on
// logout.
func (s *Store) ClearNotifications() {
	s.Update(func(State) State {
		return State{}
	})
}

// FetchNotifications loads the feed and the server-computed unread count.
func (s *Store) FetchNotifications(ctx context.Context) error {
	s.Update(func(state State) State {
		state.IsLoading = true
		state.Error = ""
		return state
	})

	feed, err := s.api.GetNotifications(ctx)
	if err != nil {
		s.setError(api.ErrorMessage(err, errFetchNotifications))
		return err
	}

	s.Update(func(state State) State {
		state.IsLoading = false
		state.Notifications = feed.Notifications
		state.UnreadCount = feed.UnreadCount
		return state
	})
	return nil
}

// MarkAsRead marks one notification as read server-side, then flips the
// local copy and decrements the counter in a single transition so the flag
// and the aggregate stay synchronized.
func (s *Store) MarkAsRead(ctx context.Context, notificationID string) error {
	if err := s.api.MarkNotificationRead(ctx, notificationID); err != nil {
		s.setError(api.ErrorMessage(err, errMarkAsRead))
		return err
	}

	s.Update(func(state State) State {
		i := indexOf(state.Notifications, notificationID)
		if i == -1 || state.Notifications[i].IsRead {
			return state
		}
		notifications := clone(state.Notifications)
		notifications[i].IsRead = true
		state.Notifications = notifications
		state.UnreadCount--
		return state
	})
	return nil
}

// MarkAllAsRead marks the whole feed as read server-side, then flips every
// local copy and zeroes the counter unconditionally.
func (s *Store) MarkAllAsRead(ctx context.Context) error {
	if err := s.api.MarkAllNotificationsRead(ctx); err != nil {
		s.setError(api.ErrorMessage(err, errMarkAllAsRead))
		return err
	}

	s.Update(func(state State) State {
		notifications := clone(state.Notifications)
		for i := range notifications {
			notifications[i].IsRead = true
		}
		state.Notifications = notifications
		state.UnreadCount = 0
		return state
	})
	return nil
}

func (s *Store) setError(message string) {
	s.logger.Warn("request failed", "error", message)
	s.Update(func(state State) State {
		state.IsLoading = false
		state.Error = message
		return state
	})
}

func indexOf(notifications []entity.Notification, id string) int {
	for i := range notifications {
		if notifications[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(notifications []entity.Notification) []entity.Notification {
	out := make([]entity.Notification, len(notifications))
	copy(out, notifications)
	return out
}

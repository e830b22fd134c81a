// internal/api/notifications.go
// Notification endpoints.

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/imadgeboyega/kiekky-client/internal/entity"
)

// NotificationFeed is the notification list plus the server-computed unread
// count.
type NotificationFeed struct {
	Notifications []entity.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

// GetNotifications returns the signed-in user's notifications, newest first.
func (c *Client) GetNotifications(ctx context.Context) (*NotificationFeed, error) {
	var out NotificationFeed
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	path := "/notifications/" + url.PathEscape(notificationID) + "/read"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/notifications/read-all", nil, nil)
}

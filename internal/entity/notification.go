// internal/entity/notification.go

package entity

import "time"

// NotificationType tags what a notification is about.
type NotificationType string

const (
	NotificationLike      NotificationType = "like"
	NotificationComment   NotificationType = "comment"
	NotificationFollow    NotificationType = "follow"
	NotificationMessage   NotificationType = "message"
	NotificationMention   NotificationType = "mention"
	NotificationStoryView NotificationType = "story_view"
	NotificationSystem    NotificationType = "system"
)

// Notification is an in-app notification. Sender is a denormalized snapshot.
type Notification struct {
	ID        string           `json:"_id"`
	Sender    User             `json:"sender"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}

// internal/api/messages.go
// Conversation and message endpoints.

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/imadgeboyega/kiekky-client/internal/entity"
)

// GetConversations returns the signed-in user's conversations.
func (c *Client) GetConversations(ctx context.Context) ([]entity.Conversation, error) {
	var out []entity.Conversation
	if err := c.do(ctx, http.MethodGet, "/messages/conversations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMessages returns the messages of one conversation in server order.
func (c *Client) GetMessages(ctx context.Context, conversationID string) ([]entity.Message, error) {
	path := "/messages/" + url.PathEscape(conversationID)
	var out []entity.Message
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendMessage posts a message to a conversation and returns the stored
// record. Attachments are uploaded as multipart file parts; a plain JSON
// body is used when there are none.
func (c *Client) SendMessage(ctx context.Context, conversationID, content string, attachments []Attachment) (*entity.Message, error) {
	path := "/messages/" + url.PathEscape(conversationID)
	var out entity.Message

	if len(attachments) == 0 {
		body := struct {
			Content string `json:"content"`
		}{Content: content}
		if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}

	fields := map[string]string{"content": content}
	if err := c.doMultipart(ctx, path, fields, "attachments", attachments, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

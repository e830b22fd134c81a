// internal/api/posts.go
// Post and feed endpoints.

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/imadgeboyega/kiekky-client/internal/entity"
)

// CreatePostInput is the new-post request. Media attachments are uploaded
// as multipart file parts.
type CreatePostInput struct {
	Content    string            `validate:"required,max=5000"`
	Visibility entity.Visibility `validate:"omitempty,oneof=public friends private"`
	Feeling    string
	Location   string
	Media      []Attachment
}

// LikeResult is the authoritative like state returned by the server after
// a like toggle.
type LikeResult struct {
	Likes      []string `json:"likes"`
	LikesCount int      `json:"likesCount"`
}

// GetFeed returns one page of the home feed.
func (c *Client) GetFeed(ctx context.Context, page int) ([]entity.Post, error) {
	path := fmt.Sprintf("/posts/feed?page=%d", page)
	var out []entity.Post
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUserPosts returns the posts of a single user, newest first.
func (c *Client) GetUserPosts(ctx context.Context, username string) ([]entity.Post, error) {
	path := "/posts/user/" + url.PathEscape(username)
	var out []entity.Post
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePost publishes a new post and returns the stored record.
func (c *Client) CreatePost(ctx context.Context, input CreatePostInput) (*entity.Post, error) {
	fields := map[string]string{
		"content":    input.Content,
		"visibility": string(input.Visibility),
		"feeling":    input.Feeling,
		"location":   input.Location,
	}
	var out entity.Post
	if err := c.doMultipart(ctx, "/posts", fields, "media", input.Media, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LikePost toggles the signed-in user's like on a post and returns the
// server's authoritative like set and count.
func (c *Client) LikePost(ctx context.Context, postID string) (*LikeResult, error) {
	path := "/posts/" + url.PathEscape(postID) + "/like"
	var out LikeResult
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost removes a post owned by the signed-in user.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	path := "/posts/" + url.PathEscape(postID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

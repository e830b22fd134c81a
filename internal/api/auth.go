// internal/api/auth.go
// Auth endpoints: login, register, current user, logout, profile update.

package api

import (
	"context"
	"net/http"

	"github.com/imadgeboyega/kiekky-client/internal/entity"
)

// LoginCredentials is the login request body.
type LoginCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterData is the registration request body.
type RegisterData struct {
	Username    string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// ProfileUpdate carries the updatable profile fields. Empty fields are
// omitted and left unchanged server-side.
type ProfileUpdate struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Bio        string `json:"bio,omitempty" validate:"max=500"`
	Avatar     string `json:"avatar,omitempty"`
	CoverPhoto string `json:"coverPhoto,omitempty"`
	Location   string `json:"location,omitempty"`
	Website    string `json:"website,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, creds LoginCredentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, data RegisterData) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCurrentUser returns the signed-in user for the current token.
func (c *Client) GetCurrentUser(ctx context.Context) (*entity.User, error) {
	var out struct {
		User entity.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout invalidates the current session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// UpdateProfile updates the signed-in user's profile and returns the
// updated user.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*entity.User, error) {
	var out struct {
		User entity.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/users/profile", update, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

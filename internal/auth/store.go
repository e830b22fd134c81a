// internal/auth/store.go
// Auth store: the signed-in user, the session token and the sign-in flow.

package auth

import (
	"context"
	"log/slog"

	"github.com/imadgeboyega/kiekky-client/internal/api"
	"github.com/imadgeboyega/kiekky-client/internal/common/utils"
	"github.com/imadgeboyega/kiekky-client/internal/entity"
	"github.com/imadgeboyega/kiekky-client/internal/store"
)

// Fallback error messages when the server response carries none.
const (
	errLogin    = "Login failed"
	errRegister = "Registration failed"
	errLogout   = "Logout failed"
	errUpdate   = "Update failed"
)

// API is the slice of the REST client the auth store depends on.
type API interface {
	Login(ctx context.Context, creds api.LoginCredentials) (*api.AuthResponse, error)
	Register(ctx context.Context, data api.RegisterData) (*api.AuthResponse, error)
	GetCurrentUser(ctx context.Context) (*entity.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*entity.User, error)
	SetToken(token string)
	ClearToken()
}

// TokenStore persists the session token between runs.
type TokenStore interface {
	SetToken(token string) error
	ClearToken() error
}

// State is the auth store snapshot.
type State struct {
	User            *entity.User `json:"user,omitempty"`
	Token           string       `json:"-"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	Error           string       `json:"error,omitempty"`
}

// Store owns the auth state.
type Store struct {
	*store.Container[State]

	api    API
	tokens TokenStore
	logger *slog.Logger
}

// NewStore creates an auth store backed by the given API client and token
// persistence.
func NewStore(apiClient API, tokens TokenStore, logger *slog.Logger) *Store {
	return &Store{
		Container: store.New(State{}),
		api:       apiClient,
		tokens:    tokens,
		logger:    logger.With("store", "auth"),
	}
}

// SetCredentials installs a session: state, API bearer token and the
// persisted copy. Used by the sign-in thunks and by session restore at
// startup.
func (s *Store) SetCredentials(auth api.AuthResponse) {
	s.api.SetToken(auth.Token)
	if err := s.tokens.SetToken(auth.Token); err != nil {
		s.logger.Warn("persisting token failed", "error", err)
	}

	user := auth.User
	s.Update(func(state State) State {
		state.User = &user
		state.Token = auth.Token
		state.IsAuthenticated = true
		state.Error = ""
		return state
	})
}

// ClearAuth drops the session everywhere: state, API client and persisted
// copy.
func (s *Store) ClearAuth() {
	s.api.ClearToken()
	if err := s.tokens.ClearToken(); err != nil {
		s.logger.Warn("clearing persisted token failed", "error", err)
	}

	s.Update(func(State) State {
		return State{}
	})
}

// SetUser replaces the signed-in user record, keeping the session.
func (s *Store) SetUser(user entity.User) {
	s.Update(func(state State) State {
		state.User = &user
		return state
	})
}

// SetError sets the error field without touching the session.
func (s *Store) SetError(message string) {
	s.Update(func(state State) State {
		state.Error = message
		return state
	})
}

// ClearError clears the error field.
func (s *Store) ClearError() {
	s.SetError("")
}

// RestoreSession installs a persisted token and confirms it against the
// server. On failure the stale session is cleared everywhere.
func (s *Store) RestoreSession(ctx context.Context, token string) error {
	s.api.SetToken(token)
	s.Update(func(state State) State {
		state.Token = token
		return state
	})
	return s.LoadUser(ctx)
}

// Login signs in with email and password.
func (s *Store) Login(ctx context.Context, creds api.LoginCredentials) error {
	if err := utils.ValidateStruct(creds); err != nil {
		s.setError(err.Error())
		return err
	}

	s.setLoading()

	auth, err := s.api.Login(ctx, creds)
	if err != nil {
		s.setError(api.ErrorMessage(err, errLogin))
		return err
	}

	s.Update(func(state State) State {
		state.IsLoading = false
		return state
	})
	s.SetCredentials(*auth)
	return nil
}

// Register creates an account and signs in.
func (s *Store) Register(ctx context.Context, data api.RegisterData) error {
	if err := utils.ValidateStruct(data); err != nil {
		s.setError(err.Error())
		return err
	}

	s.setLoading()

	auth, err := s.api.Register(ctx, data)
	if err != nil {
		s.setError(api.ErrorMessage(err, errRegister))
		return err
	}

	s.Update(func(state State) State {
		state.IsLoading = false
		return state
	})
	s.SetCredentials(*auth)
	return nil
}

// LoadUser refreshes the signed-in user from the server, typically at
// startup with a restored token. A failure means the session is not usable
// and clears it; no error message is surfaced because the user simply sees
// the signed-out state.
func (s *Store) LoadUser(ctx context.Context) error {
	s.Update(func(state State) State {
		state.IsLoading = true
		return state
	})

	user, err := s.api.GetCurrentUser(ctx)
	if err != nil {
		s.logger.Info("session restore failed", "error", api.ErrorMessage(err, "unauthorized"))
		s.Update(func(state State) State {
			state.IsLoading = false
			return state
		})
		s.ClearAuth()
		return err
	}

	s.Update(func(state State) State {
		state.IsLoading = false
		state.User = user
		state.IsAuthenticated = true
		return state
	})
	return nil
}

// Logout ends the session server-side, then drops it locally.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.setError(api.ErrorMessage(err, errLogout))
		return err
	}

	s.ClearAuth()
	return nil
}

// UpdateProfile saves profile changes and replaces the local user with the
// server's copy.
func (s *Store) UpdateProfile(ctx context.Context, update api.ProfileUpdate) error {
	if err := utils.ValidateStruct(update); err != nil {
		s.setError(err.Error())
		return err
	}

	user, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		s.setError(api.ErrorMessage(err, errUpdate))
		return err
	}

	s.SetUser(*user)
	return nil
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

// internal/profile/store.go
// Profile store: one viewed profile and that user's posts. A missing
// profile is an empty state, not an error.

package profile

import (
	"context"
	"log/slog"

	"github.com/imadgeboyega/kiekky-client/internal/api"
	"github.com/imadgeboyega/kiekky-client/internal/entity"
	"github.com/imadgeboyega/kiekky-client/internal/store"
)

// Fallback error messages when the server response carries none.
const (
	errFetchProfile = "Failed to fetch profile"
	errFetchPosts   = "Failed to fetch posts"
)

// API is the slice of the REST client the profile store depends on.
type API interface {
	GetProfile(ctx context.Context, username string) (*entity.User, error)
	GetUserPosts(ctx context.Context, username string) ([]entity.Post, error)
}

// State is the profile store snapshot.
type State struct {
	Profile   *entity.User  `json:"profile,omitempty"`
	Posts     []entity.Post `json:"posts"`
	NotFound  bool          `json:"notFound"`
	IsLoading bool          `json:"isLoading"`
	Error     string        `json:"error,omitempty"`
}

// Store owns the viewed-profile state.
type Store struct {
	*store.Container[State]

	api    API
	logger *slog.Logger
}

// NewStore creates a profile store backed by the given API client.
func NewStore(apiClient API, logger *slog.Logger) *Store {
	return &Store{
		Container: store.New(State{}),
		api:       apiClient,
		logger:    logger.With("store", "profile"),
	}
}

// FetchProfile loads a user's profile by username. An absent profile sets
// NotFound and clears any previous profile; it is not surfaced as an error.
func (s *Store) FetchProfile(ctx context.Context, username string) error {
	s.Update(func(state State) State {
		state.IsLoading = true
		state.Error = ""
		state.NotFound = false
		return state
	})

	user, err := s.api.GetProfile(ctx, username)
	if err != nil {
		s.setError(api.ErrorMessage(err, errFetchProfile))
		return err
	}

	s.Update(func(state State) State {
		state.IsLoading = false
		state.Profile = user
		state.NotFound = user == nil
		if user == nil {
			state.Posts = nil
		}
		return state
	})
	return nil
}

// FetchPosts loads the viewed user's posts.
func (s *Store) FetchPosts(ctx context.Context, username string) error {
	posts, err := s.api.GetUserPosts(ctx, username)
	if err != nil {
		s.setError(api.ErrorMessage(err, errFetchPosts))
		return err
	}

	s.Update(func(state State) State {
		state.Posts = posts
		return state
	})
	return nil
}

// Clear resets the store when navigating away.
func (s *Store) Clear() {
	s.Update(func(State) State {
		return State{}
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

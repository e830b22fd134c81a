package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-client/internal/api"
	"github.com/imadgeboyega/kiekky-client/internal/entity"
)

type fakeAPI struct {
	authResp    *api.AuthResponse
	currentUser *entity.User
	updated     *entity.User
	err         error

	token      string
	setCalls   int
	clearCalls int
	logoutErr  error
}

func (f *fakeAPI) Login(context.Context, api.LoginCredentials) (*api.AuthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.authResp, nil
}

func (f *fakeAPI) Register(context.Context, api.RegisterData) (*api.AuthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.authResp, nil
}

func (f *fakeAPI) GetCurrentUser(context.Context) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.currentUser, nil
}

func (f *fakeAPI) Logout(context.Context) error { return f.logoutErr }

func (f *fakeAPI) UpdateProfile(context.Context, api.ProfileUpdate) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.updated, nil
}

func (f *fakeAPI) SetToken(token string) {
	f.token = token
	f.setCalls++
}

func (f *fakeAPI) ClearToken() {
	f.token = ""
	f.clearCalls++
}

type fakeTokens struct {
	token   string
	cleared bool
	err     error
}

func (f *fakeTokens) SetToken(token string) error {
	if f.err != nil {
		return f.err
	}
	f.token = token
	return nil
}

func (f *fakeTokens) ClearToken() error {
	if f.err != nil {
		return f.err
	}
	f.token = ""
	f.cleared = true
	return nil
}

func newTestStore(t *testing.T, fake *fakeAPI, tokens *fakeTokens) *Store {
	t.Helper()
	return NewStore(fake, tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validCreds() api.LoginCredentials {
	return api.LoginCredentials{Email: "jane@example.com", Password: "hunter2hunter2"}
}

func TestLoginSuccess(t *testing.T) {
	fake := &fakeAPI{authResp: &api.AuthResponse{
		Token: "tok-1",
		User:  entity.User{ID: "u1", Username: "jane"},
	}}
	tokens := &fakeTokens{}
	s := newTestStore(t, fake, tokens)

	require.NoError(t, s.Login(context.Background(), validCreds()))

	state := s.Snapshot()
	assert.True(t, state.IsAuthenticated)
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Error)
	require.NotNil(t, state.User)
	assert.Equal(t, "u1", state.User.ID)
	assert.Equal(t, "tok-1", state.Token)
	assert.Equal(t, "tok-1", fake.token)
	assert.Equal(t, "tok-1", tokens.token)
}

func TestLoginValidationShortCircuits(t *testing.T) {
	fake := &fakeAPI{}
	s := newTestStore(t, fake, &fakeTokens{})

	err := s.Login(context.Background(), api.LoginCredentials{Email: "not-an-email", Password: "x"})
	require.Error(t, err)

	state := s.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.Contains(t, state.Error, "Email")
	assert.Zero(t, fake.setCalls)
}

func TestLoginFailureUsesServerMessage(t *testing.T) {
	fake := &fakeAPI{err: &api.APIError{Status: 401, Message: "Invalid credentials"}}
	s := newTestStore(t, fake, &fakeTokens{})

	require.Error(t, s.Login(context.Background(), validCreds()))

	state := s.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.False(t, state.IsLoading)
	assert.Equal(t, "Invalid credentials", state.Error)
}

func TestLoginFailureFallbackMessage(t *testing.T) {
	fake := &fakeAPI{err: context.DeadlineExceeded}
	s := newTestStore(t, fake, &fakeTokens{})

	require.Error(t, s.Login(context.Background(), validCreds()))
	assert.Equal(t, "Login failed", s.Snapshot().Error)
}

func TestRegisterSuccess(t *testing.T) {
	fake := &fakeAPI{authResp: &api.AuthResponse{
		Token: "tok-2",
		User:  entity.User{ID: "u2", Username: "john"},
	}}
	s := newTestStore(t, fake, &fakeTokens{})

	data := api.RegisterData{
		Username:  "john42",
		Email:     "john@example.com",
		Password:  "hunter2hunter2",
		FirstName: "John",
		LastName:  "Doe",
	}
	require.NoError(t, s.Register(context.Background(), data))

	state := s.Snapshot()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "tok-2", state.Token)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestStore(t, &fakeAPI{}, &fakeTokens{})

	err := s.Register(context.Background(), api.RegisterData{Username: "ab"})
	require.Error(t, err)
	assert.NotEmpty(t, s.Snapshot().Error)
}

func TestRestoreSessionSuccess(t *testing.T) {
	fake := &fakeAPI{currentUser: &entity.User{ID: "u1", Username: "jane"}}
	s := newTestStore(t, fake, &fakeTokens{})

	require.NoError(t, s.RestoreSession(context.Background(), "persisted-tok"))

	state := s.Snapshot()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "persisted-tok", state.Token)
	assert.Equal(t, "persisted-tok", fake.token)
	require.NotNil(t, state.User)
	assert.Equal(t, "jane", state.User.Username)
}

func TestRestoreSessionFailureClearsEverywhere(t *testing.T) {
	fake := &fakeAPI{err: &api.APIError{Status: 401, Message: "token expired"}}
	tokens := &fakeTokens{token: "stale"}
	s := newTestStore(t, fake, tokens)

	require.Error(t, s.RestoreSession(context.Background(), "stale"))

	state := s.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
	// A failed restore means signed-out, not an error banner.
	assert.Empty(t, state.Error)
	assert.True(t, tokens.cleared)
	assert.Equal(t, 1, fake.clearCalls)
}

func TestLogout(t *testing.T) {
	fake := &fakeAPI{authResp: &api.AuthResponse{Token: "tok", User: entity.User{ID: "u1"}}}
	tokens := &fakeTokens{}
	s := newTestStore(t, fake, tokens)
	require.NoError(t, s.Login(context.Background(), validCreds()))

	require.NoError(t, s.Logout(context.Background()))

	state := s.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.True(t, tokens.cleared)
}

func TestLogoutFailureKeepsSession(t *testing.T) {
	fake := &fakeAPI{
		authResp:  &api.AuthResponse{Token: "tok", User: entity.User{ID: "u1"}},
		logoutErr: context.DeadlineExceeded,
	}
	s := newTestStore(t, fake, &fakeTokens{})
	require.NoError(t, s.Login(context.Background(), validCreds()))

	require.Error(t, s.Logout(context.Background()))

	state := s.Snapshot()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "Logout failed", state.Error)
}

func TestUpdateProfile(t *testing.T) {
	fake := &fakeAPI{
		authResp: &api.AuthResponse{Token: "tok", User: entity.User{ID: "u1", Bio: "old"}},
		updated:  &entity.User{ID: "u1", Bio: "new bio"},
	}
	s := newTestStore(t, fake, &fakeTokens{})
	require.NoError(t, s.Login(context.Background(), validCreds()))

	require.NoError(t, s.UpdateProfile(context.Background(), api.ProfileUpdate{Bio: "new bio"}))

	state := s.Snapshot()
	require.NotNil(t, state.User)
	assert.Equal(t, "new bio", state.User.Bio)
	assert.True(t, state.IsAuthenticated)
}

func TestSetErrorAndClearError(t *testing.T) {
	s := newTestStore(t, &fakeAPI{}, &fakeTokens{})

	s.SetError("boom")
	assert.Equal(t, "boom", s.Snapshot().Error)

	s.ClearError()
	assert.Empty(t, s.Snapshot().Error)
}

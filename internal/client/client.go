// internal/client/client.go
// Client wires the whole runtime together: REST client, the six domain
// stores, the socket transport and the realtime bridge.

package client

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/imadgeboyega/kiekky-client/internal/api"
	"github.com/imadgeboyega/kiekky-client/internal/auth"
	"github.com/imadgeboyega/kiekky-client/internal/bridge"
	"github.com/imadgeboyega/kiekky-client/internal/call"
	"github.com/imadgeboyega/kiekky-client/internal/common/utils"
	"github.com/imadgeboyega/kiekky-client/internal/config"
	"github.com/imadgeboyega/kiekky-client/internal/localdata"
	"github.com/imadgeboyega/kiekky-client/internal/messaging"
	"github.com/imadgeboyega/kiekky-client/internal/notifications"
	"github.com/imadgeboyega/kiekky-client/internal/posts"
	"github.com/imadgeboyega/kiekky-client/internal/profile"
	"github.com/imadgeboyega/kiekky-client/internal/socket"
	"github.com/imadgeboyega/kiekky-client/internal/ui"
)

// Client is the process-wide application state: one store per entity
// family, composed over a shared REST client and one push channel.
type Client struct {
	API    *api.Client
	Socket *socket.Client
	Bridge *bridge.Bridge

	Auth          *auth.Store
	Posts         *posts.Store
	Messages      *messaging.Store
	Notifications *notifications.Store
	Calls         *call.Store
	UI            *ui.Store
	Profile       *profile.Store

	local  *localdata.Store
	logger *slog.Logger
}

// New builds the full store set from configuration.
func New(cfg *config.Config, local *localdata.Store, logger *slog.Logger) *Client {
	apiClient := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger))
	sock := socket.New(cfg.SocketURL, socket.WithLogger(logger))

	c := &Client{
		API:           apiClient,
		Socket:        sock,
		Auth:          auth.NewStore(apiClient, local, logger),
		Posts:         posts.NewStore(apiClient, logger),
		Messages:      messaging.NewStore(apiClient, logger),
		Notifications: notifications.NewStore(apiClient, logger),
		Calls:         call.NewStore(logger),
		UI:            ui.NewStore(local, logger),
		Profile:       profile.NewStore(apiClient, logger),
		local:         local,
		logger:        logger,
	}

	c.Bridge = bridge.New(sock, c.Messages, c.Notifications, c.Calls, logger)
	return c
}

// RestoreSession presents the persisted token to the server, if one exists
// and is not past its expiry. A missing or expired token leaves the client
// signed out without error.
func (c *Client) RestoreSession(ctx context.Context) error {
	token := c.local.Token()
	if token == "" {
		return nil
	}
	if utils.TokenExpired(token) {
		c.logger.Info("persisted token expired, discarding")
		if err := c.local.ClearToken(); err != nil {
			c.logger.Warn("clearing persisted token failed", "error", err)
		}
		return nil
	}
	return c.Auth.RestoreSession(ctx, token)
}

// Run keeps the realtime bridge in step with credential availability until
// ctx is cancelled: the bridge starts when a session appears and stops when
// it is cleared. Stale state from a previous session is dropped on sign-out.
func (c *Client) Run(ctx context.Context) {
	unsubscribe := c.Auth.Subscribe(func(state auth.State) {
		if state.IsAuthenticated {
			if c.Bridge.State() == bridge.Disconnected {
				token := state.Token
				go c.startRealtime(ctx, token)
			}
			return
		}
		if c.Bridge.State() != bridge.Disconnected {
			c.Bridge.Stop()
			c.Messages.ClearMessages()
			c.Notifications.ClearNotifications()
			c.Posts.ClearPosts()
			c.Profile.Clear()
		}
	})
	defer unsubscribe()

	if state := c.Auth.Snapshot(); state.IsAuthenticated {
		c.startRealtime(ctx, state.Token)
	}

	<-ctx.Done()
	if c.Bridge.State() != bridge.Disconnected {
		c.Bridge.Stop()
	}
}

func (c *Client) startRealtime(ctx context.Context, token string) {
	if err := c.Bridge.Start(ctx, token); err != nil {
		c.logger.Error("starting realtime bridge failed", "error", err)
		return
	}

	// Prime the stores the way the app shell does on sign-in. Failures land
	// in each store's error field.
	_ = c.Messages.FetchConversations(ctx)
	_ = c.Notifications.FetchNotifications(ctx)
	_ = c.Posts.FetchFeed(ctx, 1)
}

// DumpState serializes every store snapshot for diagnostics. Session tokens
// and the call store's media handles are excluded from the output.
func (c *Client) DumpState() ([]byte, error) {
	state := struct {
		Auth          auth.State          `json:"auth"`
		Posts         posts.State         `json:"posts"`
		Messages      messaging.State     `json:"messages"`
		Notifications notifications.State `json:"notifications"`
		Call          call.State          `json:"call"`
		UI            ui.State            `json:"ui"`
		Profile       profile.State       `json:"profile"`
	}{
		Auth:          c.Auth.Snapshot(),
		Posts:         c.Posts.Snapshot(),
		Messages:      c.Messages.Snapshot(),
		Notifications: c.Notifications.Snapshot(),
		Call:          c.Calls.Snapshot(),
		UI:            c.UI.Snapshot(),
		Profile:       c.Profile.Snapshot(),
	}
	return json.MarshalIndent(state, "", "  ")
}

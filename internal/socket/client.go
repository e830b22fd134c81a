// internal/socket/client.go
// Websocket transport: connect with a token, receive named events, hand
// each to at most one registered handler.

package socket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrAlreadyConnected is returned by Connect when a connection is open.
var ErrAlreadyConnected = errors.New("already connected")

// WebSocket configuration constants
const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512 * 1024 // 512KB
)

// Handler consumes one event's raw payload.
type Handler func(data json.RawMessage)

// Event is the wire envelope for server pushes.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is a websocket client for the server's push channel. Exactly one
// handler is registered per event name; registering again replaces the
// previous handler. Handlers run sequentially on the read loop goroutine
// and never fire after Disconnect returns the connection to the closed
// state.
type Client struct {
	url    string
	dialer *websocket.Dialer
	logger *slog.Logger

	// dispatchMu is held across every handler invocation. Disconnect takes
	// it before tearing down, so it blocks until an in-flight dispatch
	// completes and no handler fires after it returns. Handlers must not
	// call back into Disconnect.
	dispatchMu sync.Mutex

	mu       sync.Mutex
	conn     *websocket.Conn
	handlers map[string]Handler
	onClose  func(error)
	done     chan struct{}
}

// Option configures the Client.
type Option func(*Client)

// WithDialer sets a custom websocket dialer.
func WithDialer(dialer *websocket.Dialer) Option {
	return func(c *Client) {
		c.dialer = dialer
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the given websocket URL.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:      url,
		dialer:   websocket.DefaultDialer,
		logger:   slog.Default(),
		handlers: make(map[string]Handler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// On registers the handler for an event name, replacing any previous one.
func (c *Client) On(event string, handler Handler) {
	c.mu.Lock()
	c.handlers[event] = handler
	c.mu.Unlock()
}

// OnClose registers a callback fired once when the connection drops for any
// reason other than an explicit Disconnect.
func (c *Client) OnClose(fn func(error)) {
	c.mu.Lock()
	c.onClose = fn
	c.mu.Unlock()
}

// Connected reports whether a connection is open.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Connect dials the push channel with the given bearer token and starts the
// read and ping loops.
func (c *Client) Connect(ctx context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return ErrAlreadyConnected
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := c.dialer.DialContext(ctx, c.url, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dialing %s: %w (status %d)", c.url, err, resp.StatusCode)
		}
		return fmt.Errorf("dialing %s: %w", c.url, err)
	}

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.conn = conn
	c.done = make(chan struct{})

	go c.readLoop(conn, c.done)
	go c.pingLoop(conn, c.done)

	return nil
}

// Disconnect tears the connection down, waiting for any in-flight handler
// to finish. All handler registrations stay in place for a later Connect,
// but none fires after Disconnect returns.
func (c *Client) Disconnect() {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

// closeLocked shuts the connection down. Callers hold c.mu.
func (c *Client) closeLocked() {
	if c.conn == nil {
		return
	}

	close(c.done)
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
	c.conn = nil
	c.done = nil
}

func (c *Client) readLoop(conn *websocket.Conn, done chan struct{}) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			deliberate := c.conn != conn // Disconnect already ran
			onClose := c.onClose
			if !deliberate {
				c.closeLocked()
			}
			c.mu.Unlock()

			if !deliberate {
				c.logger.Warn("socket closed", "error", err)
				if onClose != nil {
					onClose(err)
				}
			}
			return
		}

		var event Event
		if err := json.Unmarshal(raw, &event); err != nil || event.Event == "" {
			c.logger.Warn("dropping malformed socket frame", "error", err)
			continue
		}

		// dispatchMu is taken before the teardown check and held through the
		// handler call, so Disconnect cannot slip in between them.
		c.dispatchMu.Lock()
		c.mu.Lock()
		var handler Handler
		select {
		case <-done:
			// Torn down while this frame was in flight.
		default:
			handler = c.handlers[event.Event]
		}
		c.mu.Unlock()

		if handler != nil {
			handler(event.Data)
		}
		c.dispatchMu.Unlock()
	}
}

func (c *Client) pingLoop(conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

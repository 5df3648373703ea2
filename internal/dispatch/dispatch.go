// Package dispatch delivers session summaries to the backend over HTTP. The
// beacon path spools payloads to a local outbox so that summaries accepted
// while the process is shutting down survive it.
package dispatch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/ayoisaiah/pagetime/internal/clock"
	"github.com/ayoisaiah/pagetime/internal/session"
	"github.com/ayoisaiah/pagetime/store"
)

const (
	sessionsPath         = "/sessions"
	clientIDHeader       = "X-Client-Id"
	DefaultBeaconTimeout = 2 * time.Second
)

// Client implements session.Dispatcher.
type Client struct {
	http          *http.Client
	outbox        store.Outbox
	clock         clock.Clock
	logger        *slog.Logger
	endpoint      string
	clientID      string
	beaconTimeout time.Duration
}

var _ session.Dispatcher = (*Client)(nil)

// Option is used to set Client options.
type Option func(c *Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithOutbox makes Beacon spool summaries instead of sending them inline.
func WithOutbox(o store.Outbox) Option {
	return func(c *Client) {
		c.outbox = o
	}
}

// WithBeaconTimeout bounds the inline beacon request used when no outbox is
// configured.
func WithBeaconTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.beaconTimeout = d
		}
	}
}

// WithClientID sets the value of the X-Client-Id header.
func WithClientID(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.clientID = id
		}
	}
}

func WithClock(cl clock.Clock) Option {
	return func(c *Client) {
		c.clock = cl
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New returns a Client that posts to {baseURL}/sessions.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:          http.DefaultClient,
		clock:         clock.System{},
		logger:        slog.New(slog.DiscardHandler),
		endpoint:      strings.TrimRight(baseURL, "/") + sessionsPath,
		clientID:      uuid.NewString(),
		beaconTimeout: DefaultBeaconTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Endpoint is the URL summaries are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Encode validates s and returns the request body used by every delivery
// path.
func Encode(s session.Summary) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, errInvalidSummary.Wrap(err)
	}

	return json.Marshal(s)
}

// Send posts the summary and reports any failure. It does not retry.
func (c *Client) Send(ctx context.Context, s session.Summary) error {
	body, err := Encode(s)
	if err != nil {
		return err
	}

	return c.post(ctx, body)
}

// Beacon hands the summary to the outbox, or when there is none, makes a
// single short request. It never blocks for longer than the beacon timeout.
func (c *Client) Beacon(s session.Summary) bool {
	body, err := Encode(s)
	if err != nil {
		c.logger.Error("beacon rejected", slog.Any("error", err))
		return false
	}

	if c.outbox != nil {
		err = c.outbox.Enqueue(c.clock.Now(), body)
		if err != nil {
			c.logger.Error("outbox enqueue failed", slog.Any("error", err))
			return false
		}

		c.logger.Debug("summary spooled", slog.Any("summary", s))

		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.beaconTimeout)
	defer cancel()

	err = c.post(ctx, body)
	if err != nil {
		c.logger.Error("beacon failed", slog.Any("error", err))
		return false
	}

	return true
}

// Drain delivers spooled payloads oldest first and removes each one once
// the backend has accepted it. Entries the backend rejects outright, and
// entries that cannot be read back, are moved to the outbox's dead bucket so
// they never hold up the rest. Any other failure stops the drain, returning
// the number delivered so far.
func (c *Client) Drain(ctx context.Context) (int, error) {
	if c.outbox == nil {
		return 0, errNoOutbox
	}

	entries, err := c.outbox.Pending()
	if err != nil {
		return 0, err
	}

	var delivered int

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return delivered, err
		}

		if e.Corrupt {
			if err := c.reject(e, "unreadable outbox entry"); err != nil {
				return delivered, err
			}

			continue
		}

		if err := c.post(ctx, e.Body); err != nil {
			if !errors.Is(err, errRejected) {
				return delivered, err
			}

			if err := c.reject(e, err.Error()); err != nil {
				return delivered, err
			}

			continue
		}

		if err := c.outbox.Remove(e.ID); err != nil {
			return delivered, err
		}

		delivered++

		c.logger.Debug(
			"spooled summary delivered",
			slog.Uint64("id", e.ID),
			slog.Time("queued_at", e.QueuedAt),
		)
	}

	return delivered, nil
}

func (c *Client) reject(e store.Entry, reason string) error {
	err := c.outbox.Reject(c.clock.Now(), reason, e.ID)
	if err != nil {
		return err
	}

	c.logger.Warn(
		"spooled summary set aside",
		slog.Uint64("id", e.ID),
		slog.Time("queued_at", e.QueuedAt),
		slog.String("reason", reason),
	)

	return nil
}

// permanent reports whether a status means the same payload will never be
// accepted.
func permanent(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}

	return status >= 400 && status < 500
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint,
		bytes.NewReader(body),
	)
	if err != nil {
		return errRequestFailed.Fmt(c.endpoint).Wrap(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(clientIDHeader, c.clientID)

	resp, err := c.http.Do(req)
	if err != nil {
		return errRequestFailed.Fmt(c.endpoint).Wrap(err)
	}

	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if permanent(resp.StatusCode) {
		return errRejected.Fmt(resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errUnexpectedStatus.Fmt(resp.StatusCode)
	}

	return nil
}

package mesto

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/mesto/pkg/requestid"
)

const defaultTimeout = 10 * time.Second

// Client talks to one cohort of the Mesto API. It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for cfg. The base URL must be absolute and the token
// non-empty.
func New(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL must be an absolute http(s) URL", ErrInvalidConfig)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidConfig)
	}
	if cfg.Cohort != "" {
		base += "/" + url.PathEscape(cfg.Cohort)
	}

	c := &Client{
		baseURL: base,
		token:   cfg.Token,
		timeout: cfg.Timeout,
		http:    &http.Client{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the cohort URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) GetUserInfo(ctx context.Context) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, &user)
	return user, err
}

func (c *Client) GetCardList(ctx context.Context) ([]Card, error) {
	var cards []Card
	err := c.do(ctx, http.MethodGet, "/cards", nil, &cards)
	return cards, err
}

func (c *Client) SetUserInfo(ctx context.Context, name, about string) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPatch, "/users/me", profileUpdate{Name: name, About: about}, &user)
	return user, err
}

func (c *Client) SetUserAvatar(ctx context.Context, avatar string) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPatch, "/users/me/avatar", avatarUpdate{Avatar: avatar}, &user)
	return user, err
}

func (c *Client) AddCard(ctx context.Context, name, link string) (Card, error) {
	var card Card
	err := c.do(ctx, http.MethodPost, "/cards", newCard{Name: name, Link: link}, &card)
	return card, err
}

func (c *Client) DeleteCard(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(id), nil, nil)
}

// ChangeLikeCardStatus removes the like of the current user when isLiked is
// true and adds it otherwise. It returns the card with its updated likes.
func (c *Client) ChangeLikeCardStatus(ctx context.Context, id string, isLiked bool) (Card, error) {
	method := http.MethodPut
	if isLiked {
		method = http.MethodDelete
	}
	var card Card
	err := c.do(ctx, method, "/cards/likes/"+url.PathEscape(id), nil, &card)
	return card, err
}

// do sends one request and decodes a successful response into out, when out
// is not nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.Join(ErrEncodeRequest, err)
		}
		body = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("authorization", c.token)
	req.Header.Set("Accept", "application/json")
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "mesto request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
		// Error bodies are read for context only; 64KB is plenty.
		var m message
		if data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); json.Unmarshal(data, &m) == nil {
			se.Message = m.Message
		}
		return se
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrDecodeResponse, method, path, err)
	}
	return nil
}

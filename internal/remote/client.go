package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"backend-topout/internal/sessions"
	"backend-topout/internal/tracking"
	"backend-topout/internal/users"
)

// Store is the remote TopOut backend as the engine sees it: opaque
// success/failure calls with no partial-success semantics.
type Store interface {
	SaveSession(ctx context.Context, session sessions.Session) (sessions.Session, error)
	UpdateSession(ctx context.Context, session sessions.Session) error
	DeleteSession(ctx context.Context, id string) error
	PushTrackPoints(ctx context.Context, sessionID string, points []tracking.TrackPoint) error
	GetUser(ctx context.Context) (users.User, error)
	UpdateUser(ctx context.Context, user users.User) error
}

// Client talks JSON over HTTP to the remote backend.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SaveSession(ctx context.Context, session sessions.Session) (sessions.Session, error) {
	var saved sessions.Session
	if err := c.do(ctx, http.MethodPost, "/v1/sessions", session, &saved); err != nil {
		return sessions.Session{}, err
	}
	return saved, nil
}

func (c *Client) UpdateSession(ctx context.Context, session sessions.Session) error {
	return c.do(ctx, http.MethodPut, "/v1/sessions/"+session.ID, session, nil)
}

func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/sessions/"+id, nil, nil)
}

func (c *Client) PushTrackPoints(ctx context.Context, sessionID string, points []tracking.TrackPoint) error {
	return c.do(ctx, http.MethodPost, "/v1/sessions/"+sessionID+"/points", points, nil)
}

func (c *Client) GetUser(ctx context.Context) (users.User, error) {
	var user users.User
	if err := c.do(ctx, http.MethodGet, "/v1/user", nil, &user); err != nil {
		return users.User{}, err
	}
	return user, nil
}

func (c *Client) UpdateUser(ctx context.Context, user users.User) error {
	return c.do(ctx, http.MethodPut, "/v1/user", user, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remote %s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

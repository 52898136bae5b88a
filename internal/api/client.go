// Package api implements the service.Service interface against the TaskFlow
// REST backend. It is the single HTTP boundary: bearer auth, request ids,
// and the global 401 handling all live here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskflow/internal/config"
	"taskflow/internal/service"
	"taskflow/internal/session"
)

// Sentinel errors surfaced to commands for exit-code mapping.
var (
	// ErrUnauthorized is returned after any 401. The session has already
	// been cleared by the time the caller sees it.
	ErrUnauthorized = errors.New("session expired (run: taskflow login)")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrTimeout is returned when a call exceeds the configured timeout.
	ErrTimeout = errors.New("request timed out")
)

// AuthResponse is the payload returned by the login and signup endpoints.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        service.User `json:"user"`
}

// apiError is the backend's error body shape.
type apiError struct {
	Detail string `json:"detail"`
}

// Client implements service.Service over the TaskFlow REST API.
type Client struct {
	base    string // base URL including the /api prefix
	http    *http.Client
	store   *session.Store
	timeout time.Duration
	log     *zap.Logger
}

// New creates a client from config and the session store.
func New(cfg *config.Config, store *session.Store, log *zap.Logger) *Client {
	return &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/") + "/api",
		http:    &http.Client{},
		store:   store,
		timeout: cfg.Timeout,
		log:     log,
	}
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, store *session.Store, httpClient *http.Client) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/") + "/api",
		http:    httpClient,
		store:   store,
		timeout: config.DefaultTimeout,
		log:     zap.NewNop(),
	}
}

// userID returns the signed-in user's id for path construction only.
// Authorization is carried entirely by the bearer token.
func (c *Client) userID() string {
	return c.store.UserID()
}

// Login authenticates with email/password. The endpoint is form-encoded,
// matching the backend, and is the one call that sends no bearer header.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", false, &out)
	return out, err
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, email, password, name string) (AuthResponse, error) {
	body, err := jsonBody(map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})
	if err != nil {
		return AuthResponse{}, err
	}

	var out AuthResponse
	err = c.do(ctx, http.MethodPost, "/auth/signup", body, "application/json", false, &out)
	return out, err
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var out []service.Task
	path := fmt.Sprintf("/%s/tasks/", c.userID())
	if err := c.do(ctx, http.MethodGet, path, nil, "", true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, in service.TaskCreate) (service.Task, error) {
	body, err := jsonBody(in)
	if err != nil {
		return service.Task{}, err
	}
	var out service.Task
	path := fmt.Sprintf("/%s/tasks/", c.userID())
	err = c.do(ctx, http.MethodPost, path, body, "application/json", true, &out)
	return out, err
}

// GetTask implements service.Service.
func (c *Client) GetTask(ctx context.Context, taskID int64) (service.Task, error) {
	var out service.Task
	path := fmt.Sprintf("/%s/tasks/%d", c.userID(), taskID)
	err := c.do(ctx, http.MethodGet, path, nil, "", true, &out)
	return out, err
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, taskID int64, in service.TaskUpdate) (service.Task, error) {
	body, err := jsonBody(in)
	if err != nil {
		return service.Task{}, err
	}
	var out service.Task
	path := fmt.Sprintf("/%s/tasks/%d", c.userID(), taskID)
	err = c.do(ctx, http.MethodPut, path, body, "application/json", true, &out)
	return out, err
}

// ToggleTask implements service.Service.
func (c *Client) ToggleTask(ctx context.Context, taskID int64) (service.Task, error) {
	var out service.Task
	path := fmt.Sprintf("/%s/tasks/%d/complete", c.userID(), taskID)
	err := c.do(ctx, http.MethodPatch, path, nil, "", true, &out)
	return out, err
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, taskID int64) error {
	path := fmt.Sprintf("/%s/tasks/%d", c.userID(), taskID)
	return c.do(ctx, http.MethodDelete, path, nil, "", true, nil)
}

// Profile implements service.Service.
func (c *Client) Profile(ctx context.Context) (service.User, error) {
	var out service.User
	path := fmt.Sprintf("/users/%s", c.userID())
	err := c.do(ctx, http.MethodGet, path, nil, "", true, &out)
	return out, err
}

// UpdateProfile implements service.Service.
func (c *Client) UpdateProfile(ctx context.Context, in service.ProfileUpdate) (service.User, error) {
	body, err := jsonBody(in)
	if err != nil {
		return service.User{}, err
	}
	var out service.User
	path := fmt.Sprintf("/users/%s", c.userID())
	err = c.do(ctx, http.MethodPut, path, body, "application/json", true, &out)
	return out, err
}

// SendChat implements service.Service.
func (c *Client) SendChat(ctx context.Context, message string, conversationID int64) (service.ChatReply, error) {
	payload := map[string]any{"message": message}
	if conversationID != 0 {
		payload["conversation_id"] = conversationID
	}
	body, err := jsonBody(payload)
	if err != nil {
		return service.ChatReply{}, err
	}
	var out service.ChatReply
	path := fmt.Sprintf("/%s/chat", c.userID())
	err = c.do(ctx, http.MethodPost, path, body, "application/json", true, &out)
	return out, err
}

// Conversations implements service.Service.
func (c *Client) Conversations(ctx context.Context) ([]service.Conversation, error) {
	var out []service.Conversation
	path := fmt.Sprintf("/%s/conversations", c.userID())
	if err := c.do(ctx, http.MethodGet, path, nil, "", true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Messages implements service.Service.
func (c *Client) Messages(ctx context.Context, conversationID int64) ([]service.Message, error) {
	var out []service.Message
	path := fmt.Sprintf("/%s/conversations/%d/messages", c.userID(), conversationID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteConversation implements service.Service.
func (c *Client) DeleteConversation(ctx context.Context, conversationID int64) error {
	path := fmt.Sprintf("/%s/conversations/%d", c.userID(), conversationID)
	return c.do(ctx, http.MethodDelete, path, nil, "", true, nil)
}

// do executes one request/response round trip. On 401 it clears the local
// session before returning ErrUnauthorized, regardless of which call
// triggered it.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, authed bool, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if authed {
		if token := c.store.Token(); token != nil {
			token.SetAuthHeader(req)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return err
	}
	defer resp.Body.Close()

	c.log.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized && authed:
		// Global session boundary: any authed 401 invalidates the session.
		// Auth endpoints are exempt; there a 401 means bad credentials.
		if err := c.store.ClearSession(); err != nil {
			c.log.Debug("failed to clear session", zap.Error(err))
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return decodeError(resp)
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid response body: %w", err)
	}
	return nil
}

// decodeError extracts the backend's detail message when present.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var e apiError
	if json.Unmarshal(raw, &e) == nil && e.Detail != "" {
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, e.Detail)
	}
	return fmt.Errorf("backend returned %d", resp.StatusCode)
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Package hrclient is the Go client for the suite's session endpoints.
// It owns the stored credential and resolves every call into one of
// three outcomes: Ok, Rejected, or NetworkFailed. A failed login never
// touches the stored token; a failed rehydration always clears it, so
// a process never starts with a credential it could not verify.
package hrclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// Status tags the outcome of a session call.
type Status string

const (
	StatusOk            Status = "ok"
	StatusRejected      Status = "rejected"
	StatusNetworkFailed Status = "network_failed"
)

// NetworkErrorMessage is the one message shown for any transport-level
// failure, regardless of cause.
const NetworkErrorMessage = "Network error. Please try again."

// Identity mirrors the server's session identity wire shape.
type Identity struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

// Result is the outcome of a session call. Identity, Token, and
// HomePath are set only when Status is StatusOk.
type Result struct {
	Status   Status
	Identity *Identity
	Token    string
	HomePath string
	Message  string
}

type loginResponse struct {
	Identity
	Token      string   `json:"token"`
	HomePath   string   `json:"home_path"`
	Privileges []string `json:"privileges"`
}

// errorResponse covers both failure envelopes the server emits: the
// session endpoints use "message", the rest of the API uses "error".
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client talks to the auth endpoints and keeps the stored credential
// in sync with what the server will still accept.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   TokenStore
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

func New(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		store:   store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EstablishSession exchanges credentials for a token and stores it.
// A rejected login leaves any previously stored token in place; the
// caller decides whether to keep using the old session.
func (c *Client) EstablishSession(ctx context.Context, email, password string) (*Result, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Operators get the cause; users get the fixed message.
		log.Printf("hrclient: login transport failure: %v", err)
		return &Result{Status: StatusNetworkFailed, Message: NetworkErrorMessage}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Result{Status: StatusRejected, Message: readErrorMessage(resp, "Login failed")}, nil
	}

	var login loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	if err := c.store.Save(login.Token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	identity := login.Identity
	return &Result{
		Status:   StatusOk,
		Identity: &identity,
		Token:    login.Token,
		HomePath: login.HomePath,
	}, nil
}

// Rehydrate verifies the stored token against the server. Any failure,
// rejection or transport, clears the slot: a credential that could not
// be verified at startup is treated as dead rather than trusted.
func (c *Client) Rehydrate(ctx context.Context) (*Result, error) {
	token, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return &Result{Status: StatusRejected, Message: "no stored session"}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("hrclient: rehydrate transport failure: %v", err)
		if err := c.store.Clear(); err != nil {
			return nil, fmt.Errorf("clear token: %w", err)
		}
		return &Result{Status: StatusNetworkFailed, Message: NetworkErrorMessage}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if err := c.store.Clear(); err != nil {
			return nil, fmt.Errorf("clear token: %w", err)
		}
		return &Result{Status: StatusRejected, Message: readErrorMessage(resp, "")}, nil
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}

	return &Result{
		Status:   StatusOk,
		Identity: &identity,
		Token:    token,
	}, nil
}

// ClearSession invalidates the server-side session when possible and
// always clears the local slot. Idempotent; safe to call when no
// session exists.
func (c *Client) ClearSession(ctx context.Context) error {
	token, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}

	if token != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/logout", nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+token)
			// Best effort: the local slot is cleared either way.
			if resp, err := c.httpc.Do(req); err == nil {
				resp.Body.Close()
			}
		}
	}

	return c.store.Clear()
}

func readErrorMessage(resp *http.Response, fallback string) string {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if fallback != "" {
		return fallback
	}
	return resp.Status
}

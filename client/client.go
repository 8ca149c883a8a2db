// Package client is the Go SDK for the MarketHub backend. It wraps the HTTP
// API with per-resource gateways that parse the response envelope, and
// provides client-side state stores for admin, vendor and subscription
// screens. Failures surface as returned errors and transient notifications
// through the configured callback; the SDK never panics on a bad response.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Notification is a transient, user-facing failure message emitted by the
// SDK when a gateway call or store action fails.
type Notification struct {
	Source  string
	Message string
}

// NotifyFunc receives transient notifications. Implementations must not
// block; the SDK calls it synchronously on the failing goroutine.
type NotifyFunc func(Notification)

// Config configures a Client.
type Config struct {
	// BaseURL is the server root, e.g. "https://api.markethub.example".
	// The "/api/v1" prefix is appended by the client.
	BaseURL string

	// HTTPClient overrides the transport. Defaults to a client with a
	// 30 second timeout.
	HTTPClient *http.Client

	// Notify receives transient failure notifications. Optional.
	Notify NotifyFunc
}

// Client is the entry point of the SDK. Gateways share its transport and
// credentials; SetTokens after login makes subsequent calls authenticated.
type Client struct {
	baseURL string
	http    *http.Client
	notify  NotifyFunc

	mu           sync.RWMutex
	accessToken  string
	refreshToken string

	Auth          *AuthGateway
	Catalog       *CatalogGateway
	Onboarding    *OnboardingGateway
	Listings      *ListingGateway
	Subscriptions *SubscriptionGateway
	Trade         *TradeGateway
}

// New creates a Client for the given server.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + "/api/v1",
		http:    httpClient,
		notify:  cfg.Notify,
	}
	c.Auth = &AuthGateway{c: c}
	c.Catalog = &CatalogGateway{c: c}
	c.Onboarding = &OnboardingGateway{c: c}
	c.Listings = &ListingGateway{c: c}
	c.Subscriptions = &SubscriptionGateway{c: c}
	c.Trade = &TradeGateway{c: c}
	return c
}

// SetTokens installs the credential pair used for authenticated calls.
func (c *Client) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

// ClearTokens drops the stored credentials.
func (c *Client) ClearTokens() {
	c.SetTokens("", "")
}

// AccessToken returns the current access token, empty when signed out.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Client) currentRefreshToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken
}

// APIError is a non-2xx response mapped from the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) notifyFailure(source string, err error) {
	if c.notify == nil {
		return
	}
	c.notify(Notification{Source: source, Message: err.Error()})
}

// do issues one request and decodes the envelope into out. There are no
// retries or de-duplication; every call maps straight to one HTTP exchange.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, headers map[string]string, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		err = fmt.Errorf("%s %s: %w", method, path, err)
		c.notifyFailure(path, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		apiErr := &APIError{Status: resp.StatusCode, Message: "malformed response"}
		c.notifyFailure(path, apiErr)
		return apiErr
	}

	if resp.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Message: "request failed"}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		c.notifyFailure(path, apiErr)
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

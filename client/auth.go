package client

import (
	"context"
	"net/http"
)

// AuthGateway covers registration, login and session management. Login and
// Refresh install the returned tokens on the client so later calls are
// authenticated without further wiring.
type AuthGateway struct {
	c *Client
}

// RegisterRequest creates a new account. Role is "vendor" or "customer";
// admin accounts cannot self-register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates an account and returns its view.
func (g *AuthGateway) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := g.c.do(ctx, http.MethodPost, "/auth/register", req, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the credential pair on the client.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := g.c.do(ctx, http.MethodPost, "/auth/login", body, nil, &result); err != nil {
		return nil, err
	}
	g.c.SetTokens(result.Token.AccessToken, result.Token.RefreshToken)
	return &result, nil
}

// Refresh rotates the credential pair using the stored refresh token.
func (g *AuthGateway) Refresh(ctx context.Context) (*TokenPair, error) {
	body := map[string]string{"refresh_token": g.c.currentRefreshToken()}
	var result struct {
		Token TokenPair `json:"token"`
	}
	if err := g.c.do(ctx, http.MethodPost, "/auth/refresh", body, nil, &result); err != nil {
		return nil, err
	}
	g.c.SetTokens(result.Token.AccessToken, result.Token.RefreshToken)
	return &result.Token, nil
}

// Logout revokes the stored refresh token and clears the client's
// credentials regardless of the server outcome.
func (g *AuthGateway) Logout(ctx context.Context) error {
	body := map[string]string{"refresh_token": g.c.currentRefreshToken()}
	err := g.c.do(ctx, http.MethodPost, "/auth/logout", body, nil, nil)
	g.c.ClearTokens()
	return err
}

// Me returns the authenticated account.
func (g *AuthGateway) Me(ctx context.Context) (*User, error) {
	var user User
	if err := g.c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

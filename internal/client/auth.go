package client

import (
	"context"
	"net/http"

	"marketplace-client/internal/domain"
	"marketplace-client/internal/session"
)

var _ session.Validator = (*Client)(nil)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	var auth domain.AuthResponse
	err := c.do(ctx, call{
		op:       "Login",
		fallback: "Login failed",
		method:   http.MethodPost,
		path:     "/api/auth/login",
		body:     loginRequest{Email: email, Password: password},
	}, &auth)
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, call{
		op:       "Register",
		fallback: "Registration failed",
		method:   http.MethodPost,
		path:     "/api/auth/register",
		body:     req,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ValidateToken asks the backend who token belongs to. It ignores the
// session the client is bound to.
func (c *Client) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, call{
		op:       "ValidateToken",
		fallback: "Token validation failed",
		method:   http.MethodPost,
		path:     "/api/auth/validate",
		token:    token,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

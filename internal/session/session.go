package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"marketplace-client/internal/domain"
)

// Session is the signed-in state read once at startup or produced by a
// login. The zero value is an anonymous session.
type Session struct {
	Token string       `json:"-"`
	User  *domain.User `json:"user"`
}

func New(token string, user domain.User) Session {
	return Session{Token: token, User: &user}
}

func (s Session) Anonymous() bool {
	return s.Token == "" || s.User == nil
}

// Role is empty for an anonymous session.
func (s Session) Role() domain.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// TokenStore persists the auth token between runs.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type Validator interface {
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

// Init restores the persisted session. A missing token yields an anonymous
// session. An expired token, or one the backend rejects with a 4xx status,
// is cleared from the store and also yields an anonymous session. Any other
// validation failure keeps the token for the next start and returns the
// error with an anonymous session.
func Init(ctx context.Context, store TokenStore, validator Validator) (Session, error) {
	token, err := store.Load(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return Session{}, nil
	}

	if claims, err := ParseClaims(token); err == nil && claims.Expired(time.Now()) {
		log.Printf("SESSION: stored token for %s expired", claims.Email)
		return Session{}, discard(ctx, store)
	}

	user, err := validator.ValidateToken(ctx, token)
	if err != nil {
		if !rejected(err) {
			return Session{}, fmt.Errorf("validate token: %w", err)
		}
		log.Printf("SESSION: stored token rejected: %v", err)
		return Session{}, discard(ctx, store)
	}
	return New(token, *user), nil
}

// statusCoder is implemented by backend errors that carry an HTTP status.
type statusCoder interface {
	HTTPStatus() int
}

func rejected(err error) bool {
	var coder statusCoder
	if !errors.As(err, &coder) {
		return false
	}
	status := coder.HTTPStatus()
	return status >= 400 && status < 500
}

func discard(ctx context.Context, store TokenStore) error {
	if err := store.Clear(ctx); err != nil {
		log.Printf("ERROR: Failed to clear stored token: %v", err)
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

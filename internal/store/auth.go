package store

import (
	"context"
	"log"
	"sync"

	"marketplace-client/internal/client"
	"marketplace-client/internal/domain"
	"marketplace-client/internal/session"
)

type AuthState struct {
	User    *domain.User `json:"user"`
	Loading bool         `json:"isLoading"`
	Error   string       `json:"error,omitempty"`
}

// AuthStore owns the signed-in session and keeps the persisted token in
// step with it.
type AuthStore struct {
	api    AuthAPI
	tokens session.TokenStore

	mu      sync.Mutex
	session session.Session
	loading bool
	err     string
}

func NewAuthStore(api AuthAPI, tokens session.TokenStore) *AuthStore {
	return &AuthStore{api: api, tokens: tokens}
}

// Restore adopts a session produced by session.Init.
func (s *AuthStore) Restore(sess session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = sess
	s.err = ""
}

func (s *AuthStore) Login(ctx context.Context, email, password string) (session.Session, error) {
	s.begin()
	auth, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.fail(client.Message(err, "Login failed"))
		return session.Session{}, err
	}

	sess := session.New(auth.Token, auth.User)
	if err := s.tokens.Save(ctx, auth.Token); err != nil {
		log.Printf("ERROR: Failed to persist session token: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = sess
	s.loading = false
	s.err = ""
	return sess, nil
}

// Register creates an account. It does not sign the new user in.
func (s *AuthStore) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	s.begin()
	user, err := s.api.Register(ctx, req)
	if err != nil {
		s.fail(client.Message(err, "Registration failed"))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = ""
	return user, nil
}

func (s *AuthStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = session.Session{}
	s.err = ""
	s.mu.Unlock()
	return s.tokens.Clear(ctx)
}

func (s *AuthStore) Session() session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *AuthStore) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.User == nil {
		return domain.User{}, false
	}
	return *s.session.User, true
}

func (s *AuthStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *AuthStore) Snapshot() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := AuthState{Loading: s.loading, Error: s.err}
	if s.session.User != nil {
		u := *s.session.User
		state.User = &u
	}
	return state
}

func (s *AuthStore) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *AuthStore) fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = message
}

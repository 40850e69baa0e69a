// Package services contains application services for the cityreport client.
// This file defines the session service: login, register, logout, and
// startup session restoration, plus the derived role/verification flags.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/avetikov/cityreport/internal/client/api"
	"github.com/avetikov/cityreport/internal/client/models"
	"github.com/avetikov/cityreport/internal/client/tokenstore"
	"github.com/avetikov/cityreport/internal/logging"
)

// Session is a point-in-time snapshot of the authentication state. The
// flags are always derived from User; they are never set independently.
type Session struct {
	User       *models.User
	IsLoggedIn bool
	IsVerified bool
	IsAdmin    bool
}

// SessionService owns the session lifecycle.
//
// Contract:
//   - Login: authenticate, persist both tokens, cache the user.
//   - Register: create an account; when the backend auto-logs the account
//     in, behaves like Login and reports true.
//   - Logout: best-effort remote invalidation, unconditional local
//     sign-out. It cannot fail.
//   - Restore: rebuild the in-memory session from a persisted token by
//     fetching the profile; any failure forces a local logout.
//   - Current: snapshot of the session and its derived flags.
//
// A backend reply marked successful but missing tokens or a user is
// treated as a failure; the session is only ever mutated on a fully
// validated payload.
type SessionService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req models.RegisterRequest) (bool, error)
	Logout(ctx context.Context)
	Restore(ctx context.Context) error
	Current() Session
}

type sessionService struct {
	client api.Client
	store  tokenstore.Store
	log    logging.Logger

	mu   sync.RWMutex
	user *models.User
}

// NewSessionService constructs a SessionService bound to the given API
// client and token store. It registers itself as the client's auth-failure
// handler, so an exhausted refresh path signs the session out immediately.
func NewSessionService(client api.Client, store tokenstore.Store, log logging.Logger) SessionService {
	s := &sessionService{client: client, store: store, log: log}
	client.SetAuthFailureHandler(s.handleAuthFailure)
	return s
}

func (s *sessionService) Login(ctx context.Context, email, password string) error {
	payload, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.storeTokens(ctx, payload.Tokens); err != nil {
		return err
	}
	s.setUser(&payload.User)

	s.log.Info(ctx, "logged in", "user", payload.User.ID, "role", string(payload.User.Role))
	return nil
}

func (s *sessionService) Register(ctx context.Context, req models.RegisterRequest) (bool, error) {
	payload, err := s.client.Register(ctx, req)
	if err != nil {
		return false, err
	}
	if payload == nil {
		// No embedded tokens: account exists, the caller routes to login.
		return false, nil
	}

	if err := s.storeTokens(ctx, payload.Tokens); err != nil {
		return false, err
	}
	s.setUser(&payload.User)

	s.log.Info(ctx, "registered and logged in", "user", payload.User.ID)
	return true, nil
}

// Logout signs out. The backend call is best-effort: whatever it returns,
// both token slots are cleared and the cached user is dropped.
func (s *sessionService) Logout(ctx context.Context) {
	refresh, err := s.store.Get(ctx, tokenstore.KeyRefreshToken)
	if err == nil && refresh != "" {
		if err := s.client.Logout(ctx, refresh); err != nil {
			s.log.Warn(ctx, "remote logout failed, signing out locally", "error", err.Error())
		}
	}

	s.clearLocal(ctx)
	s.log.Info(ctx, "logged out")
}

// Restore rebuilds the session on startup. A persisted token that the
// server no longer accepts, or a profile reply without a resolvable user,
// leaves the client in the logged-out state with both slots cleared.
func (s *sessionService) Restore(ctx context.Context) error {
	token, err := s.store.Get(ctx, tokenstore.KeyAccessToken)
	if err != nil {
		return err
	}
	if token == "" {
		s.setUser(nil)
		return nil
	}

	user, err := s.client.Profile(ctx)
	if err != nil {
		s.Logout(ctx)
		return fmt.Errorf("session restore: %w", err)
	}

	s.setUser(user)
	s.log.Info(ctx, "session restored", "user", user.ID, "role", string(user.Role))
	return nil
}

func (s *sessionService) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return Session{}
	}
	u := *s.user
	return Session{
		User:       &u,
		IsLoggedIn: true,
		IsVerified: u.IsVerified,
		IsAdmin:    u.Role == models.RoleAdmin,
	}
}

func (s *sessionService) storeTokens(ctx context.Context, tokens models.TokenPair) error {
	if err := s.store.Set(ctx, tokenstore.KeyAccessToken, tokens.AccessToken); err != nil {
		return err
	}
	return s.store.Set(ctx, tokenstore.KeyRefreshToken, tokens.RefreshToken)
}

func (s *sessionService) setUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

func (s *sessionService) clearLocal(ctx context.Context) {
	if err := s.store.Clear(ctx, tokenstore.KeyAccessToken); err != nil {
		s.log.Error(ctx, "failed to clear access token", "error", err.Error())
	}
	if err := s.store.Clear(ctx, tokenstore.KeyRefreshToken); err != nil {
		s.log.Error(ctx, "failed to clear refresh token", "error", err.Error())
	}
	s.setUser(nil)
}

// handleAuthFailure runs when the request pipeline exhausts the refresh
// path. The pipeline has already cleared the token slots; only the cached
// user remains to drop.
func (s *sessionService) handleAuthFailure() {
	s.mu.Lock()
	hadUser := s.user != nil
	s.user = nil
	s.mu.Unlock()

	if hadUser {
		s.log.Warn(context.Background(), "session expired, signed out")
	}
}

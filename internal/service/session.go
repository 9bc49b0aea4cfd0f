package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mn-works/earnbot/internal/api"
	"github.com/mn-works/earnbot/internal/domain"
)

// TokenStore persists bearer tokens across restarts.
type TokenStore interface {
	Save(ctx context.Context, chatID int64, token string) error
	Get(ctx context.Context, chatID int64) (string, error)
	Delete(ctx context.Context, chatID int64) error
}

// SessionService is the auth context of the client: it owns the bearer token
// and the current user snapshot for each chat. The canonical user object is
// only ever touched under the lock; accessors hand out copies, so a snapshot
// a handler is rendering never changes mid-read. Consumers must treat a nil
// user as unauthenticated.
type SessionService struct {
	api   *api.Client
	store TokenStore

	mu     sync.RWMutex
	tokens map[int64]string
	users  map[int64]*domain.User
}

func NewSessionService(apiClient *api.Client, store TokenStore) *SessionService {
	return &SessionService{
		api:    apiClient,
		store:  store,
		tokens: make(map[int64]string),
		users:  make(map[int64]*domain.User),
	}
}

func (s *SessionService) Login(ctx context.Context, chatID int64, email, password string) (*domain.User, error) {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == 401 || apiErr.StatusCode == 400) {
			return nil, fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
		}
		return nil, err
	}
	return s.install(ctx, chatID, resp)
}

func (s *SessionService) Register(ctx context.Context, chatID int64, req api.RegisterRequest) (*domain.User, error) {
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.install(ctx, chatID, resp)
}

func (s *SessionService) install(ctx context.Context, chatID int64, resp *api.AuthResponse) (*domain.User, error) {
	if err := s.store.Save(ctx, chatID, resp.Token); err != nil {
		slog.Error("persist session token", "error", err, "chat_id", chatID)
	}
	user := resp.User
	s.mu.Lock()
	s.tokens[chatID] = resp.Token
	s.users[chatID] = &user
	s.mu.Unlock()
	return copyUser(&user), nil
}

func (s *SessionService) Logout(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	delete(s.tokens, chatID)
	delete(s.users, chatID)
	s.mu.Unlock()
	return s.store.Delete(ctx, chatID)
}

// Token returns the chat's bearer token, loading it from the store on a cold
// cache. Locally expired JWTs are discarded without a network call.
func (s *SessionService) Token(ctx context.Context, chatID int64) (string, error) {
	s.mu.RLock()
	token, ok := s.tokens[chatID]
	s.mu.RUnlock()
	if !ok {
		var err error
		token, err = s.store.Get(ctx, chatID)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				return "", domain.ErrNotAuthenticated
			}
			return "", err
		}
		s.mu.Lock()
		s.tokens[chatID] = token
		s.mu.Unlock()
	}

	if tokenExpired(token) {
		_ = s.Logout(ctx, chatID)
		return "", domain.ErrNotAuthenticated
	}
	return token, nil
}

// User returns the cached user for the chat, hydrating from the profile
// endpoint when the cache is cold. A failed hydration clears the stored token
// and reports unauthenticated; there is no automatic retry.
func (s *SessionService) User(ctx context.Context, chatID int64) (*domain.User, error) {
	s.mu.RLock()
	user, ok := s.users[chatID]
	if ok {
		user = copyUser(user)
	}
	s.mu.RUnlock()
	if ok {
		return user, nil
	}
	return s.Hydrate(ctx, chatID)
}

// CachedUser returns a copy of the user snapshot without any network call,
// or nil when the cache is cold.
func (s *SessionService) CachedUser(chatID int64) *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.users[chatID])
}

func (s *SessionService) Hydrate(ctx context.Context, chatID int64) (*domain.User, error) {
	token, err := s.Token(ctx, chatID)
	if err != nil {
		return nil, err
	}

	user, err := s.api.Profile(ctx, token)
	if err != nil {
		slog.Warn("profile hydration failed, clearing session", "error", err, "chat_id", chatID)
		_ = s.Logout(ctx, chatID)
		return nil, fmt.Errorf("%w: %w", domain.ErrNotAuthenticated, err)
	}

	s.mu.Lock()
	s.users[chatID] = user
	s.mu.Unlock()
	return copyUser(user), nil
}

func (s *SessionService) IsAuthenticated(ctx context.Context, chatID int64) bool {
	_, err := s.Token(ctx, chatID)
	return err == nil
}

// ApplyUserUpdate merges a partial update into the cached user under the
// session lock. No-op when the chat has no cached user.
func (s *SessionService) ApplyUserUpdate(chatID int64, update func(*domain.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[chatID]; ok {
		update(user)
	}
}

// ReplaceUser swaps the cached snapshot, e.g. after a full profile reload.
func (s *SessionService) ReplaceUser(chatID int64, user *domain.User) {
	s.mu.Lock()
	s.users[chatID] = user
	s.mu.Unlock()
}

// copyUser returns a shallow copy. Updates replace pointer fields wholesale
// rather than writing through them, so a shallow copy is enough to keep
// readers off the canonical struct.
func copyUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// tokenExpired reports whether the bearer token is a JWT whose exp claim has
// passed. Tokens that are not JWTs are left for the backend to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

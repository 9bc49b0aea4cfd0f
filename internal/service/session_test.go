package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mn-works/earnbot/internal/api"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTokenStore struct {
	tokens map[int64]string
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[int64]string)}
}

func (s *memoryTokenStore) Save(ctx context.Context, chatID int64, token string) error {
	s.tokens[chatID] = token
	return nil
}

func (s *memoryTokenStore) Get(ctx context.Context, chatID int64) (string, error) {
	token, ok := s.tokens[chatID]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return token, nil
}

func (s *memoryTokenStore) Delete(ctx context.Context, chatID int64) error {
	delete(s.tokens, chatID)
	return nil
}

// unsignedJWT builds a syntactically valid JWT with the given expiry; the
// session layer only reads claims, it never verifies.
func unsignedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"exp": exp.Unix(), "id": "u1"})
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".c2ln"
}

func TestSessionLoginInstallsTokenAndUser(t *testing.T) {
	token := unsignedJWT(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ali@example.com", req.Email)
		fmt.Fprintf(w, `{"token":%q,"user":{"_id":"u1","username":"ali"}}`, token)
	}))
	defer srv.Close()

	store := newMemoryTokenStore()
	sessions := NewSessionService(api.New(srv.URL), store)

	user, err := sessions.Login(context.Background(), 7, "ali@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ali", user.Username)

	got, err := sessions.Token(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, token, got)
	assert.Equal(t, token, store.tokens[7], "token must be persisted")
	assert.True(t, sessions.IsAuthenticated(context.Background(), 7))
}

func TestSessionLoginBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Invalid credentials"}`)
	}))
	defer srv.Close()

	sessions := NewSessionService(api.New(srv.URL), newMemoryTokenStore())

	_, err := sessions.Login(context.Background(), 7, "ali@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.Equal(t, "Invalid credentials", domain.ErrorMessage(err, "fallback"))
}

func TestSessionTokenColdLoadFromStore(t *testing.T) {
	token := unsignedJWT(t, time.Now().Add(time.Hour))
	store := newMemoryTokenStore()
	store.tokens[7] = token

	sessions := NewSessionService(api.New("http://unused.invalid"), store)

	got, err := sessions.Token(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, token, got)
}

func TestSessionExpiredTokenDiscarded(t *testing.T) {
	store := newMemoryTokenStore()
	store.tokens[7] = unsignedJWT(t, time.Now().Add(-time.Hour))

	sessions := NewSessionService(api.New("http://unused.invalid"), store)

	_, err := sessions.Token(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Empty(t, store.tokens, "expired token must be purged from the store")
}

func TestSessionHydrateFailureClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Token is not valid"}`)
	}))
	defer srv.Close()

	store := newMemoryTokenStore()
	store.tokens[7] = unsignedJWT(t, time.Now().Add(time.Hour))

	sessions := NewSessionService(api.New(srv.URL), store)

	_, err := sessions.Hydrate(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Empty(t, store.tokens, "rejected token must be cleared, no retry loop")
	assert.False(t, sessions.IsAuthenticated(context.Background(), 7))
}

func TestSessionApplyUserUpdate(t *testing.T) {
	token := unsignedJWT(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"token":%q,"user":{"_id":"u1","username":"ali","tasksCompleted":1}}`, token)
	}))
	defer srv.Close()

	sessions := NewSessionService(api.New(srv.URL), newMemoryTokenStore())
	_, err := sessions.Login(context.Background(), 7, "ali@example.com", "secret")
	require.NoError(t, err)

	sessions.ApplyUserUpdate(7, func(u *domain.User) { u.TasksCompleted++ })

	user := sessions.CachedUser(7)
	require.NotNil(t, user)
	assert.Equal(t, 2, user.TasksCompleted)

	// Unknown chats are a no-op.
	sessions.ApplyUserUpdate(99, func(u *domain.User) { u.TasksCompleted = 100 })
	assert.Nil(t, sessions.CachedUser(99))
}

func TestSessionHydrateRefreshesUser(t *testing.T) {
	token := unsignedJWT(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			fmt.Fprintf(w, `{"token":%q,"user":{"_id":"u1","username":"ali"}}`, token)
			return
		}
		// Profile after the backend moved the balance.
		fmt.Fprint(w, `{"_id":"u1","username":"ali","wallet":{"balance":"940"}}`)
	}))
	defer srv.Close()

	sessions := NewSessionService(api.New(srv.URL), newMemoryTokenStore())
	_, err := sessions.Login(context.Background(), 7, "ali@example.com", "secret")
	require.NoError(t, err)
	require.True(t, sessions.CachedUser(7).Wallet.Balance.IsZero())

	user, err := sessions.Hydrate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "940", user.Wallet.Balance.String())
	assert.Equal(t, "940", sessions.CachedUser(7).Wallet.Balance.String(),
		"the cache must carry the server balance")
}

func TestCachedUserReturnsSnapshot(t *testing.T) {
	token := unsignedJWT(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"token":%q,"user":{"_id":"u1","username":"ali"}}`, token)
	}))
	defer srv.Close()

	sessions := NewSessionService(api.New(srv.URL), newMemoryTokenStore())
	_, err := sessions.Login(context.Background(), 7, "ali@example.com", "secret")
	require.NoError(t, err)

	before := sessions.CachedUser(7)
	require.NotNil(t, before)

	sessions.ApplyUserUpdate(7, func(u *domain.User) {
		u.Wallet.Balance = decimal.NewFromInt(500)
	})

	assert.True(t, before.Wallet.Balance.IsZero(), "an earlier snapshot must not change")
	assert.Equal(t, "500", sessions.CachedUser(7).Wallet.Balance.String())

	// Writing through a returned snapshot must not leak into the cache.
	after := sessions.CachedUser(7)
	after.TasksCompleted = 99
	assert.Zero(t, sessions.CachedUser(7).TasksCompleted)
}

func TestCachedUserConcurrentWithUpdates(t *testing.T) {
	token := unsignedJWT(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"token":%q,"user":{"_id":"u1","username":"ali"}}`, token)
	}))
	defer srv.Close()

	sessions := NewSessionService(api.New(srv.URL), newMemoryTokenStore())
	_, err := sessions.Login(context.Background(), 7, "ali@example.com", "secret")
	require.NoError(t, err)

	const writers, rounds = 4, 200

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				sessions.ApplyUserUpdate(7, func(u *domain.User) {
					u.TasksCompleted++
					u.Wallet.Balance = u.Wallet.Balance.Add(decimal.NewFromInt(1))
				})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				if u := sessions.CachedUser(7); u != nil {
					_ = u.Wallet.Balance.String()
					_ = u.TasksCompleted
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*rounds, sessions.CachedUser(7).TasksCompleted)
}

func TestSessionLogout(t *testing.T) {
	token := unsignedJWT(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"token":%q,"user":{"_id":"u1","username":"ali"}}`, token)
	}))
	defer srv.Close()

	store := newMemoryTokenStore()
	sessions := NewSessionService(api.New(srv.URL), store)
	_, err := sessions.Login(context.Background(), 7, "ali@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, sessions.Logout(context.Background(), 7))
	assert.Empty(t, store.tokens)
	assert.Nil(t, sessions.CachedUser(7))
	assert.False(t, sessions.IsAuthenticated(context.Background(), 7))
}

package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"bookreview/internal/platform/logger"
	"bookreview/internal/platform/metrics"

	"github.com/google/uuid"
)

const CookieName = "sid"

// Manager owns session lifecycle: a session starts at Login and ends at Logout
// or when its TTL elapses. Teardown hooks run on every Logout.
type Manager struct {
	store Store
	ttl   time.Duration

	mu       sync.Mutex
	teardown []func(ctx context.Context, u User)
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// OnLogout registers fn to run after a session is removed.
func (m *Manager) OnLogout(fn func(ctx context.Context, u User)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardown = append(m.teardown, fn)
}

func (m *Manager) Login(ctx context.Context, username, password string) (string, User, error) {
	u, err := Login(username, password)
	if err != nil {
		metrics.Logins.WithLabelValues("rejected").Inc()
		return "", User{}, err
	}

	sid := uuid.NewString()
	if err := m.store.Set(ctx, sid, u, m.ttl); err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		return "", User{}, fmt.Errorf("store session: %w", err)
	}

	metrics.Logins.WithLabelValues("success").Inc()
	logger.Info().Str("initials", u.Initials).Msg("user logged in")
	return sid, u, nil
}

// Current returns the session's user. ok is false for unknown or expired sessions.
func (m *Manager) Current(ctx context.Context, sid string) (User, bool, error) {
	if sid == "" {
		return User{}, false, nil
	}
	u, err := m.store.Get(ctx, sid)
	if errors.Is(err, ErrNotFound) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func (m *Manager) IsAuthenticated(ctx context.Context, sid string) bool {
	_, ok, err := m.Current(ctx, sid)
	return err == nil && ok
}

// Logout removes the session. Logging out an unknown session is not an error.
func (m *Manager) Logout(ctx context.Context, sid string) error {
	u, ok, err := m.Current(ctx, sid)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := m.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	m.mu.Lock()
	hooks := append([]func(context.Context, User){}, m.teardown...)
	m.mu.Unlock()
	for _, fn := range hooks {
		fn(ctx, u)
	}

	logger.Info().Str("initials", u.Initials).Msg("user logged out")
	return nil
}

// Resolve reads the session cookie from r.
func (m *Manager) Resolve(r *http.Request) (string, string, bool, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", "", false, nil
	}
	u, ok, err := m.Current(r.Context(), c.Value)
	if err != nil || !ok {
		return "", "", false, err
	}
	return u.Username, u.Initials, true, nil
}

func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

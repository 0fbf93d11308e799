package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tracketo/storefront/internal/simulate"
	"github.com/tracketo/storefront/internal/storage"
)

const authKey = "auth"

var ErrGuestLogin = errors.New("session: guest role cannot log in")

// User is the authenticated identity. A fresh one is minted on every login;
// there is no account registry behind it.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Verified bool   `json:"verified"`
	Avatar   string `json:"avatar,omitempty"`
}

// Session holds zero-or-one authenticated User and mirrors it to the store.
// At most one identity is active per storefront instance.
type Session struct {
	store   storage.Store
	latency time.Duration

	mu      sync.RWMutex
	current *User
}

func New(store storage.Store, latency time.Duration) *Session {
	return &Session{store: store, latency: latency}
}

// Restore adopts the persisted identity, if any. It must complete before
// consumers branch on the current role. A corrupted record is cleared and
// treated as unauthenticated rather than crashing startup.
func (s *Session) Restore(ctx context.Context) (*User, error) {
	var user User

	err := storage.GetJSON(ctx, s.store, storage.Namespace, authKey, &user)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		return nil, nil
	case errors.Is(err, storage.ErrCorrupted):
		log.Warn().Err(err).Msg("session: persisted session corrupted, clearing")
		if err := s.store.Delete(ctx, storage.Namespace, authKey); err != nil {
			return nil, fmt.Errorf("session: failed to clear corrupted session: %w", err)
		}
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("session: failed to restore session: %w", err)
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	log.Info().Str("user_id", user.ID).Stringer("role", user.Role).Msg("session: restored")
	return &user, nil
}

// Login mints a User from the email and role, adopts it as the current
// identity and persists it. There is no password verification: any email and
// non-guest role pair succeeds.
func (s *Session) Login(ctx context.Context, email string, role Role) (*User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("session: unknown role %q", role)
	}
	if role == RoleGuest {
		return nil, ErrGuestLogin
	}

	if err := simulate.Latency(ctx, s.latency); err != nil {
		return nil, err
	}

	name, _, _ := strings.Cut(email, "@")
	user := &User{
		ID:       uuid.Must(uuid.NewV4()).String(),
		Name:     name,
		Email:    email,
		Role:     role,
		Verified: role != RoleVendor,
		Avatar:   "https://ui-avatars.com/api/?name=" + url.QueryEscape(email) + "&background=random",
	}

	if err := storage.PutJSON(ctx, s.store, storage.Namespace, authKey, user); err != nil {
		return nil, fmt.Errorf("session: failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	log.Info().Str("user_id", user.ID).Stringer("role", user.Role).Msg("session: logged in")
	return user, nil
}

// Logout clears the current identity and removes the persisted record.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, storage.Namespace, authKey); err != nil {
		return fmt.Errorf("session: failed to remove persisted session: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	log.Info().Msg("session: logged out")
	return nil
}

// Current returns the active identity, or nil when unauthenticated.
func (s *Session) Current() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// CurrentRole is the role navigation decisions branch on; an absent session
// is a guest.
func (s *Session) CurrentRole() Role {
	if u := s.Current(); u != nil {
		return u.Role
	}
	return RoleGuest
}

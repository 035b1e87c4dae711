// Package session holds the client's authentication state: the current user
// identity and the opaque bearer credential issued by the backend.
//
// The store is the single source of truth consulted by the HTTP adapter and
// the route guard. All mutation goes through Login/Logout/UpdateUser; no
// other code touches the fields, so a half-updated session is never
// observable. State persists under its own storage key and is restored on
// startup, the way the SPA kept it in localStorage.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/agrismart/agrismart-cli/internal/client/models"
	"github.com/agrismart/agrismart-cli/internal/client/storage"
	"github.com/agrismart/agrismart-cli/internal/common"
	"github.com/agrismart/agrismart-cli/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// StorageKey is the durable key this store owns exclusively.
const StorageKey = "auth-storage"

// persisted is the opaque serialized object written under StorageKey.
type persisted struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type Store struct {
	mu    sync.RWMutex
	user  *models.User
	token string

	repo storage.Repository
	log  logging.Logger
	subs []func()
}

func NewStore(repo storage.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log}
}

// Restore loads persisted session state, if any. Meant to run once at
// startup. A corrupt blob is treated as no session.
func (s *Store) Restore(ctx context.Context) error {
	data, err := s.repo.Get(ctx, StorageKey)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn(ctx, "discarding corrupt session state", "err", err)
		return nil
	}
	if p.Token == "" {
		return nil
	}

	s.mu.Lock()
	s.user = p.User
	s.token = p.Token
	s.mu.Unlock()
	s.notify()
	return nil
}

// Login sets user and credential atomically and persists them. An empty
// credential is rejected: authenticated state is derived from credential
// presence, so accepting one would break the session invariant.
func (s *Store) Login(ctx context.Context, user models.User, token string) error {
	if token == "" {
		return common.ErrEmptyCredential
	}

	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	s.mu.Unlock()

	s.persist(ctx)
	s.notify()
	return nil
}

// Logout clears user and credential atomically and persists the cleared
// state. It performs no navigation; callers navigate.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	s.persist(ctx)
	s.notify()
}

// UpdateUser shallow-merges the patch into the current user without touching
// the credential. Returns common.ErrNotAuthenticated when no session is
// active.
func (s *Store) UpdateUser(ctx context.Context, patch models.UserPatch) error {
	s.mu.Lock()
	if s.token == "" || s.user == nil {
		s.mu.Unlock()
		return common.ErrNotAuthenticated
	}
	merged := patch.Apply(*s.user)
	s.user = &merged
	s.mu.Unlock()

	s.persist(ctx)
	s.notify()
	return nil
}

// IsAuthenticated is derived strictly from credential presence; it is never
// stored separately.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// User returns a copy of the current identity, or false when logged out.
func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Token returns the current bearer credential ("" when logged out).
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt peeks the unverified exp claim of the credential, for display
// only. The client never makes auth decisions from it; the backend's 401 is
// the sole authority.
func (s *Store) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Subscribe registers a callback fired after every state transition.
// Callbacks run synchronously on the mutating goroutine, outside the lock.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// persist writes current state best-effort: a storage failure is logged but
// never blocks the in-memory transition (known limitation, mirrors
// localStorage quota behavior).
func (s *Store) persist(ctx context.Context) {
	s.mu.RLock()
	p := persisted{User: s.user, Token: s.token}
	s.mu.RUnlock()

	data, err := json.Marshal(p)
	if err != nil {
		s.log.Error(ctx, "failed to serialize session state", "err", err)
		return
	}
	if err := s.repo.Set(ctx, StorageKey, data); err != nil {
		s.log.Error(ctx, "failed to persist session state", "err", err)
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}

// Package prefs holds the user's interface preferences: language (en/hi) and
// dark mode. Exactly one of the two supported locales is active at any time.
package prefs

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/agrismart/agrismart-cli/internal/client/storage"
	"github.com/agrismart/agrismart-cli/internal/common"
	"github.com/agrismart/agrismart-cli/internal/logging"
)

// StorageKey is the durable key this store owns exclusively.
const StorageKey = "prefs-storage"

const (
	LangEnglish = "en"
	LangHindi   = "hi"
)

// ApplyThemeFunc is the global styling hook invoked whenever dark mode
// changes (the document-level class toggle of the web client). It must be
// safe to call repeatedly with the same value.
type ApplyThemeFunc func(dark bool)

type persisted struct {
	Language string `json:"language"`
	DarkMode bool   `json:"darkMode"`
}

type Store struct {
	mu       sync.RWMutex
	language string
	darkMode bool

	apply ApplyThemeFunc
	repo  storage.Repository
	log   logging.Logger
	subs  []func()
}

func NewStore(repo storage.Repository, apply ApplyThemeFunc, log logging.Logger) *Store {
	if apply == nil {
		apply = func(bool) {}
	}
	return &Store{language: LangEnglish, apply: apply, repo: repo, log: log}
}

// Restore loads persisted preferences; defaults (en, light) apply when
// nothing was stored. Call InitTheme afterwards to reconcile the styling
// hook with the restored state.
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
		s.log.Warn(ctx, "discarding corrupt preference state", "err", err)
		return nil
	}

	s.mu.Lock()
	if p.Language == LangEnglish || p.Language == LangHindi {
		s.language = p.Language
	}
	s.darkMode = p.DarkMode
	s.mu.Unlock()
	return nil
}

// InitTheme reconciles the styling hook with the current dark-mode state.
// Idempotent; run once at startup after Restore, because persisted state and
// visual state are initialized independently.
func (s *Store) InitTheme() {
	s.mu.RLock()
	dark := s.darkMode
	s.mu.RUnlock()
	s.apply(dark)
}

// ToggleTheme flips dark mode, applies the styling hook and persists.
func (s *Store) ToggleTheme(ctx context.Context) {
	s.mu.Lock()
	s.darkMode = !s.darkMode
	dark := s.darkMode
	s.mu.Unlock()

	s.apply(dark)
	s.persist(ctx)
	s.notify()
}

// SetLanguage switches to one of the two supported locales. Unsupported
// values are rejected with common.ErrUnsupportedLanguage and leave the
// current language untouched, so the UI never falls back to an unlabeled
// state.
func (s *Store) SetLanguage(ctx context.Context, lang string) error {
	if lang != LangEnglish && lang != LangHindi {
		return common.ErrUnsupportedLanguage
	}

	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()

	s.persist(ctx)
	s.notify()
	return nil
}

func (s *Store) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

// Subscribe registers a callback fired after every preference change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) persist(ctx context.Context) {
	s.mu.RLock()
	p := persisted{Language: s.language, DarkMode: s.darkMode}
	s.mu.RUnlock()

	data, err := json.Marshal(p)
	if err != nil {
		s.log.Error(ctx, "failed to serialize preference state", "err", err)
		return
	}
	if err := s.repo.Set(ctx, StorageKey, data); err != nil {
		s.log.Error(ctx, "failed to persist preference state", "err", err)
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

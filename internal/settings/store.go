package settings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lexread/lexread/internal/logger"
)

// ErrNoStore is returned when the store is used without being opened.
var ErrNoStore = errors.New("settings: store not provided")

// Backend persists the non-secret part of AppSettings.
type Backend interface {
	Load() (AppSettings, error)
	Save(AppSettings) error
}

// SecretStore persists the credential.
type SecretStore interface {
	Get() (string, error)
	Set(string) error
}

// Listener observes committed changes.
type Listener func(old, updated AppSettings)

// Store holds the current settings and writes every change through to its
// backend before returning.
type Store struct {
	mu        sync.Mutex
	current   AppSettings
	backend   Backend
	secrets   SecretStore
	listeners map[uint64]Listener
	nextID    uint64
}

// Open loads the record once. A failing load leaves defaults in place.
// secrets may be nil, in which case the credential lives in memory only.
func Open(backend Backend, secrets SecretStore) (*Store, error) {
	if backend == nil {
		return nil, ErrNoStore
	}
	s := &Store{
		backend:   backend,
		secrets:   secrets,
		listeners: make(map[uint64]Listener),
	}
	loaded, err := s.load()
	if err != nil {
		logger.Component("settings").Warn("Failed to load settings, using defaults", "error", err)
		loaded = Defaults()
	}
	s.current = loaded
	return s, nil
}

func (s *Store) load() (AppSettings, error) {
	loaded, err := s.backend.Load()
	if err != nil {
		return AppSettings{}, err
	}
	if s.secrets != nil {
		cred, err := s.secrets.Get()
		if err != nil {
			logger.Component("settings").Warn("Failed to read stored credential", "error", err)
		}
		loaded.Credential = cred
	}
	return loaded.Normalize(), nil
}

// Get returns a snapshot. A nil store yields Defaults.
func (s *Store) Get() AppSettings {
	if s == nil {
		return Defaults()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update applies fn to a copy of the current record and persists the result.
// On a persistence failure the in-memory record is left unchanged and a
// credential already written to the secret store is put back.
func (s *Store) Update(fn func(*AppSettings)) error {
	if s == nil {
		return ErrNoStore
	}
	s.mu.Lock()
	old := s.current
	next := old
	fn(&next)
	next = next.Normalize()
	if next == old {
		s.mu.Unlock()
		return nil
	}
	secretChanged := next.Credential != old.Credential && s.secrets != nil
	if secretChanged {
		if err := s.secrets.Set(next.Credential); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("save credential: %w", err)
		}
	}
	if err := s.backend.Save(next); err != nil {
		if secretChanged {
			if rerr := s.secrets.Set(old.Credential); rerr != nil {
				logger.Component("settings").Warn("Failed to restore stored credential", "error", rerr)
			}
		}
		s.mu.Unlock()
		return fmt.Errorf("save settings: %w", err)
	}
	s.current = next
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, old, next)
	return nil
}

// Reset restores defaults and clears the credential.
func (s *Store) Reset() error {
	return s.Update(func(a *AppSettings) { *a = Defaults() })
}

// Reload re-reads the backend, notifying listeners if anything changed.
func (s *Store) Reload() error {
	if s == nil {
		return ErrNoStore
	}
	loaded, err := s.load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	old := s.current
	if loaded == old {
		s.mu.Unlock()
		return nil
	}
	s.current = loaded
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, old, loaded)
	return nil
}

// Subscribe registers l and returns its unsubscribe function.
func (s *Store) Subscribe(l Listener) func() {
	if s == nil || l == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for id := uint64(1); id <= s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

func notify(listeners []Listener, old, updated AppSettings) {
	for _, l := range listeners {
		l(old, updated)
	}
}

// MemoryBackend keeps the record in memory. Used by tests and as a fallback
// when no durable location is available.
type MemoryBackend struct {
	mu    sync.Mutex
	saved *AppSettings
	Saves int
}

func (m *MemoryBackend) Load() (AppSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return Defaults(), nil
	}
	return *m.saved, nil
}

func (m *MemoryBackend) Save(a AppSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.Credential = ""
	m.saved = &a
	m.Saves++
	return nil
}

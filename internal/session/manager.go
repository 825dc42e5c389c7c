// Package session keeps one widget per browser session. Each widget
// persists into its own namespace of a shared key-value backend.
package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-widget/internal/dom"
	"github.com/adanyl0v/go-todo-widget/internal/models"
	"github.com/adanyl0v/go-todo-widget/internal/records"
	"github.com/adanyl0v/go-todo-widget/internal/storage"
	"github.com/adanyl0v/go-todo-widget/internal/view"
	"github.com/adanyl0v/go-todo-widget/internal/widget"
)

// Session is a widget mounted on its own document. All access goes
// through Manager.Do, which serializes it.
type Session struct {
	ID string

	mu       sync.Mutex
	doc      *dom.Document
	widget   *widget.Widget
	lastSeen time.Time
	evicted  bool
}

type Manager struct {
	logger  zerolog.Logger
	kv      storage.KeyValue
	key     string
	opts    widget.Options
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]*Session
}

// NewManager stores every session's list under "<session id>/<key>"
// in kv.
func NewManager(logger zerolog.Logger, kv storage.KeyValue, key string, opts widget.Options) *Manager {
	return &Manager{
		logger:  logger,
		kv:      kv,
		key:     key,
		opts:    opts,
		now:     time.Now,
		entries: make(map[string]*Session),
	}
}

// Do runs fn with exclusive access to the session with id, mounting
// its widget first if needed.
func (m *Manager) Do(ctx context.Context, id string, fn func(s *Session) error) error {
	for {
		s := m.lookup(id)
		s.mu.Lock()
		if s.evicted {
			s.mu.Unlock()
			continue
		}

		err := m.mount(ctx, s)
		if err == nil {
			s.lastSeen = m.now()
			err = fn(s)
		}
		s.mu.Unlock()
		return err
	}
}

func (m *Manager) lookup(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.entries[id]
	if !ok {
		s = &Session{ID: id, lastSeen: m.now()}
		m.entries[id] = s
	}
	return s
}

func (m *Manager) mount(ctx context.Context, s *Session) error {
	if s.widget != nil {
		return nil
	}
	logger := m.logger.With().Str("session_id", s.ID).Logger()
	doc := dom.NewDocument(view.RequiredMarkers...)
	store := records.New(logger, storage.Namespace(m.kv, s.ID), m.key)

	w, err := widget.New(ctx, logger, store, doc, doc, m.opts)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to mount widget")
		return err
	}
	s.doc = doc
	s.widget = w
	logger.Debug().Msg("mounted session widget")
	return nil
}

// Sweep closes sessions idle for at least idle and returns how many
// were closed. Busy sessions and sessions with unsaved changes are
// skipped.
func (m *Manager) Sweep(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	closed := 0
	for id, s := range m.entries {
		if !s.mu.TryLock() {
			continue
		}
		if s.widget != nil && s.widget.Tasks().Unsaved() {
			// Evicting would drop changes that only exist in memory.
			m.logger.Debug().
				Str("session_id", id).
				Msg("kept idle session with unsaved changes")
			s.mu.Unlock()
			continue
		}
		if m.now().Sub(s.lastSeen) >= idle {
			s.close()
			delete(m.entries, id)
			closed++
		}
		s.mu.Unlock()
	}
	if closed > 0 {
		m.logger.Info().
			Int("closed", closed).
			Int("active", len(m.entries)).
			Msg("swept idle sessions")
	}
	return closed
}

// Close closes every session.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.entries {
		s.mu.Lock()
		s.close()
		s.mu.Unlock()
		delete(m.entries, id)
	}
	m.logger.Info().Msg("closed all sessions")
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (s *Session) close() {
	if s.widget != nil {
		s.widget.Close()
	}
	s.evicted = true
}

// Dispatch copies the reported input values into the document, runs
// the event and returns the resulting document.
func (s *Session) Dispatch(ctx context.Context, ev dom.Event, values map[string]string) dom.Snapshot {
	for marker, value := range values {
		if slices.Contains(view.InputMarkers, marker) {
			s.doc.SetValue(marker, value)
		}
	}
	s.doc.Dispatch(ctx, ev)
	return s.doc.Snapshot()
}

func (s *Session) Snapshot() dom.Snapshot { return s.doc.Snapshot() }

func (s *Session) Tasks() []models.Task { return s.widget.Tasks().Tasks() }

func (s *Session) Unsaved() bool { return s.widget.Tasks().Unsaved() }

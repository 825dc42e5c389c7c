// Package records persists the task list as one JSON document in a
// single storage slot.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-widget/internal/models"
	"github.com/adanyl0v/go-todo-widget/internal/storage"
)

const DefaultKey = "todo-items"

var (
	ErrStorageRead  = errors.New("failed to read stored tasks")
	ErrStorageWrite = errors.New("failed to save tasks")
)

type Store struct {
	logger zerolog.Logger
	kv     storage.KeyValue
	key    string
}

// New returns a Store writing into kv under key. An empty key means
// DefaultKey.
func New(logger zerolog.Logger, kv storage.KeyValue, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		logger: logger,
		kv:     kv,
		key:    key,
	}
}

func (s *Store) Key() string { return s.key }

// Load never fails: an absent, unreadable or malformed slot yields an
// empty list and is only logged. Entries without an id and repeated
// ids are dropped.
func (s *Store) Load(ctx context.Context) []models.Task {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug().
				Str("key", s.key).
				Msg("no stored tasks")
			return []models.Task{}
		}

		s.logger.Error().
			Err(fmt.Errorf("%w: %w", ErrStorageRead, err)).
			Str("key", s.key).
			Msg("failed to get stored tasks")
		return []models.Task{}
	}

	var stored []models.Task
	err = json.Unmarshal([]byte(raw), &stored)
	if err != nil {
		s.logger.Error().
			Err(fmt.Errorf("%w: %w", ErrStorageRead, err)).
			Str("key", s.key).
			Msg("failed to parse stored tasks")
		return []models.Task{}
	}

	tasks := make([]models.Task, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, task := range stored {
		if task.ID == "" {
			s.logger.Warn().
				Str("key", s.key).
				Msg("dropped stored task without id")
			continue
		}
		if strings.TrimSpace(task.Title) == "" || strings.TrimSpace(task.About) == "" {
			s.logger.Warn().
				Str("task_id", task.ID).
				Msg("dropped stored task with empty field")
			continue
		}
		if _, ok := seen[task.ID]; ok {
			s.logger.Warn().
				Str("task_id", task.ID).
				Msg("dropped stored task with duplicate id")
			continue
		}
		seen[task.ID] = struct{}{}
		tasks = append(tasks, task)
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("loaded tasks")
	return tasks
}

// Save replaces the slot with the full snapshot of tasks.
func (s *Store) Save(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	err = s.kv.Set(ctx, s.key, string(payload))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", s.key).
			Int("count", len(tasks)).
			Msg("failed to save tasks")
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("saved tasks")
	return nil
}

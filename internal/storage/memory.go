package storage

import (
	"context"
	"sync"
)

// Memory keeps slots in process memory. A positive quota limits the
// total size of all stored values in bytes, the way a browser limits
// local storage.
type Memory struct {
	mu    sync.RWMutex
	m     map[string]string
	size  int
	quota int
}

func NewMemory(quota int) *Memory {
	return &Memory{m: make(map[string]string), quota: quota}
}

func (s *Memory) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *Memory) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	size := s.size - len(s.m[key]) + len(value)
	if s.quota > 0 && size > s.quota {
		return ErrQuotaExceeded
	}
	s.m[key] = value
	s.size = size
	return nil
}

func (s *Memory) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size -= len(s.m[key])
	delete(s.m, key)
	return nil
}

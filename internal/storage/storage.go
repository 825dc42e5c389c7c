// Package storage provides the string key-value slots the widget
// persists its task list into.
package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// KeyValue is a string blob store addressed by key.
type KeyValue interface {
	// Get returns ErrNotFound if nothing is stored under key.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove is a no-op for absent keys.
	Remove(ctx context.Context, key string) error
}

type namespaced struct {
	kv     KeyValue
	prefix string
}

// Namespace scopes every key of kv under prefix, so that several
// widgets can share one backend without seeing each other's slots.
func Namespace(kv KeyValue, prefix string) KeyValue {
	return &namespaced{kv: kv, prefix: prefix + "/"}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, error) {
	return n.kv.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.kv.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Remove(ctx context.Context, key string) error {
	return n.kv.Remove(ctx, n.prefix+key)
}

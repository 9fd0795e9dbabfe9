package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("storage: store is closed")

// Persisted setting keys. A missing key means the built-in default applies.
const (
	KeyAccent             = "accent"
	KeyMode               = "mode"
	KeyLanguage           = "language"
	KeyIconShape          = "iconShape"
	KeyIconSize           = "iconSize"
	KeyVolume             = "volume"
	KeyLockScreenConfig   = "lockScreenConfig"
	KeyLockScreenProfiles = "lockScreenProfiles"
)

// Store is string key/value persistence for device settings
type Store interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetOr returns the stored value or def when the key is absent or unreadable
func GetOr(ctx context.Context, s Store, key, def string) string {
	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return def
	}
	return v
}

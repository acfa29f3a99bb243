// Package kvstore holds the string key-value contract every persisted
// collection is written through, plus its desktop and on-disk backends.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-petcare/internal/config"
)

// Store is a flat string key-value store.
// Removing an absent key is not an error.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// LoadJSON decodes the JSON value under key into dst.
// It reports false when the key is absent or the stored value is malformed;
// malformed data is logged and left in place.
func LoadJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return false, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.WarnContext(ctx, config.MsgMalformedData,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyKey, key,
			config.LogKeyError, err)
		return false, nil
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncode, err)
	}
	if err := s.Set(key, string(b)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	return nil
}

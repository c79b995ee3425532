// Package prefs loads and persists small user preference lists (custom
// outputs, favorites) on top of a string key-value store. Reads fall back to
// empty values and writes are best-effort.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Preference keys.
const (
	KeyCustomOutputs    = "custom_outputs"
	KeyFavoriteOutputs  = "favorites.outputs"
	KeyFavoritePersonas = "favorites.personas"
	KeyFavoriteTones    = "favorites.tones"
)

// ErrNotFound is returned by MapKV for absent keys.
var ErrNotFound = errors.New("pref not found")

// KV is the durable string key-value storage backing preferences.
type KV interface {
	GetPref(ctx context.Context, key string) (string, error)
	SetPref(ctx context.Context, key, value string) error
}

// LoadList reads a JSON array of strings from key. Absent, unreadable or
// malformed data yields an empty list. Duplicates are dropped keeping the
// first occurrence.
func LoadList(ctx context.Context, kv KV, key string, log *zap.Logger) []string {
	if log == nil {
		log = zap.NewNop()
	}
	out := []string{}
	if kv == nil {
		return out
	}

	raw, err := kv.GetPref(ctx, key)
	if err != nil {
		log.Debug("pref unavailable, using default", zap.String("key", key), zap.Error(err))
		return out
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.Warn("malformed pref, using default", zap.String("key", key), zap.Error(err))
		return out
	}

	seen := map[string]bool{}
	for _, v := range list {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// MapKV is an in-memory KV.
type MapKV struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMapKV returns an empty in-memory KV.
func NewMapKV() *MapKV {
	return &MapKV{m: map[string]string{}}
}

func (k *MapKV) GetPref(_ context.Context, key string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (k *MapKV) SetPref(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m[key] = value
	return nil
}

// Package localstore provides the key-value storage each browser profile keeps its workout data in.
//
// Every operation is scoped to the profile returned by contexthelpers.ProfileID. Values are opaque strings, usually
// JSON documents written with SetJSON. Writes are last-writer-wins without conflict detection.
package localstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/myrjola/fitplan/internal/contexthelpers"
	"github.com/myrjola/fitplan/internal/errors"
)

var ErrNoProfile = errors.NewSentinel("no profile in context")

// Store is a profile-scoped key-value store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error
}

func profileID(ctx context.Context) (string, error) {
	id := contexthelpers.ProfileID(ctx)
	if id == "" {
		return "", ErrNoProfile
	}
	return id, nil
}

// GetJSON decodes the JSON value stored under key into a T. A missing key returns the zero T and false.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var v T
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return v, false, errors.Wrap(err, "get", slog.String("key", key))
	}
	if !ok {
		return v, false, nil
	}
	if err = json.Unmarshal([]byte(raw), &v); err != nil {
		return v, false, errors.Wrap(err, "unmarshal", slog.String("key", key))
	}
	return v, true, nil
}

// SetJSON encodes v as JSON and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal", slog.String("key", key))
	}
	if err = s.Set(ctx, key, string(raw)); err != nil {
		return errors.Wrap(err, "set", slog.String("key", key))
	}
	return nil
}

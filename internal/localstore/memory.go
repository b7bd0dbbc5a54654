package localstore

import (
	"context"
	"sync"
)

// MemoryStore keeps the profile storage in memory. It is meant for tests and ephemeral deployments.
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{mu: sync.Mutex{}, profiles: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	profile, err := profileID(ctx)
	if err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.profiles[profile][key]
	return value, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	profile, err := profileID(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profiles[profile] == nil {
		s.profiles[profile] = make(map[string]string)
	}
	s.profiles[profile][key] = value
	return nil
}

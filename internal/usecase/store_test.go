package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"

	domain "github.com/minh2003vt/OkiMart/internal/entity"
)

// memStore is an in-memory StateStore for tests. Snapshots survive as
// long as the map does, so "restart" is just building a new store over
// the same map.
type memStore struct {
	m          map[string][]byte
	failWrites bool
	writes     int
}

func newMemStore() *memStore { return &memStore{m: make(map[string][]byte)} }

func (s *memStore) Read(_ context.Context, key string) ([]byte, bool, error) {
	raw, ok := s.m[key]
	return raw, ok, nil
}

func (s *memStore) Write(_ context.Context, key string, data []byte) error {
	s.writes++
	if s.failWrites {
		return errors.New("disk full")
	}
	s.m[key] = data
	return nil
}

type stubOwner struct{ key domain.OwnerKey }

func (s stubOwner) OwnerKey() domain.OwnerKey { return s.key }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/dtroode/fyx-storefront/internal/model"
)

var _ model.Store = (*Store)(nil)

// Store keeps raw values in a map. Commits are applied under one lock.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, model.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) List(_ context.Context, prefix string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte)
	for k, v := range s.data {
		if strings.HasPrefix(k, prefix) {
			out[k] = append([]byte(nil), v...)
		}
	}
	return out, nil
}

func (s *Store) Commit(ctx context.Context, changes *model.Changeset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if changes.Empty() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range changes.Mutations() {
		if m.Delete {
			delete(s.data, m.Key)
			continue
		}
		s.data[m.Key] = append([]byte(nil), m.Value...)
	}
	return nil
}

// Seed writes raw values directly, e.g. to simulate corrupt data.
func (s *Store) Seed(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.data[k] = []byte(v)
	}
}

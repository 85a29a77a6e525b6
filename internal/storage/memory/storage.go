package memory

import (
	"context"
	"sync"

	"github.com/dtroode/fyx-storefront/internal/model"
)

var _ model.Storage = (*Storage)(nil)

// Storage keeps images in process memory. Used when no object store is configured.
type Storage struct {
	mu     sync.RWMutex
	images map[string]model.Image
}

func NewStorage() *Storage {
	return &Storage{images: make(map[string]model.Image)}
}

func (s *Storage) Put(_ context.Context, key string, image model.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[key] = model.Image{ContentType: image.ContentType, Data: append([]byte(nil), image.Data...)}
	return nil
}

func (s *Storage) Get(_ context.Context, key string) (model.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[key]
	if !ok {
		return model.Image{}, model.ErrNotFound
	}
	return model.Image{ContentType: img.ContentType, Data: append([]byte(nil), img.Data...)}, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.images, key)
	return nil
}

func (s *Storage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.images[key]
	return ok, nil
}

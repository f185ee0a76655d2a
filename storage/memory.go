package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-store-manager/product"
)

// Memory is an in-process Store with auto-assigned ids. It backs tests and
// local runs that do not need a database.
type Memory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]product.Product
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[int64]product.Product)}
}

func (s *Memory) Save(ctx context.Context, p product.Product) (product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		s.nextID++
		p.ID = s.nextID
	} else if p.ID > s.nextID {
		s.nextID = p.ID
	}
	s.items[p.ID] = p
	return p, nil
}

func (s *Memory) FindByID(ctx context.Context, id int64) (product.Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[id]
	return p, ok, nil
}

func (s *Memory) FindAll(ctx context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]product.Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Memory) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// Len reports how many records the store currently holds.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

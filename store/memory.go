package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a map-backed Gateway with the same visible behavior as
// DocumentStore. Tests use it directly; FailNext injects one gateway
// failure into the next mutating call.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]memoryDoc

	// FailNext, when non-nil, is returned by the next Create/Update/Delete
	// call and then cleared.
	FailNext error

	// Writes counts mutating calls, successful or not.
	Writes int
}

type memoryDoc struct {
	id      string
	ownerID string
	data    map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]memoryDoc)}
}

func (s *MemoryStore) takeFailure() error {
	s.Writes++
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *MemoryStore) ListByOwner(ctx context.Context, collection, ownerID string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []Record
	for _, d := range s.docs[collection] {
		if d.ownerID != ownerID {
			continue
		}
		records = append(records, Record{ID: d.id, Data: cloneData(d.data)})
	}
	return records, nil
}

func (s *MemoryStore) Create(ctx context.Context, collection, ownerID string, data map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return "", err
	}
	id := uuid.New().String()
	s.docs[collection] = append(s.docs[collection], memoryDoc{id: id, ownerID: ownerID, data: cloneData(data)})
	return id, nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return err
	}
	for i, d := range s.docs[collection] {
		if d.id == id {
			s.docs[collection][i].data = cloneData(data)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return err
	}
	docs := s.docs[collection]
	for i, d := range docs {
		if d.id == id {
			s.docs[collection] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Exists(ctx context.Context, collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.docs[collection] {
		if d.id == id {
			return true, nil
		}
	}
	return false, nil
}

func cloneData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

package planner

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps trip records in process memory. It backs tests and runs
// without a database; the semantics match BaseStore (last write wins).
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]TripRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]TripRecord)}
}

func (s *MemoryStore) Put(ctx context.Context, rec TripRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.TripID] = rec
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, tripID string) (*TripRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[tripID]
	if !ok {
		return nil, ErrTripNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) ListByOwner(ctx context.Context, ownerEmail string) ([]TripRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var trips []TripRecord
	for _, rec := range s.records {
		if rec.OwnerEmail == ownerEmail {
			trips = append(trips, rec)
		}
	}
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].TripID < trips[j].TripID
	})
	return trips, nil
}

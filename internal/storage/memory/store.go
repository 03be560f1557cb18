package memory

import (
	"context"
	"sync"

	"github.com/Peerawityam/classfund-web/internal/models"
	"github.com/Peerawityam/classfund-web/internal/storage"
)

// Store is an in-memory EntryStore, thread-safe for concurrent use. It backs
// unit tests and small single-node deployments.
type Store struct {
	mu      sync.Mutex
	entries map[string]models.LedgerEntry
	order   []string
}

func NewStore() *Store {
	return &Store{entries: make(map[string]models.LedgerEntry)}
}

func (s *Store) Save(ctx context.Context, entry models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[entry.ID]; !exists {
		s.order = append(s.order, entry.ID)
	}
	s.entries[entry.ID] = entry
	return nil
}

func (s *Store) FindPending(ctx context.Context, id string) (models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return models.LedgerEntry{}, models.ErrEntryNotFound
	}
	if entry.Status != models.StatusPending {
		return models.LedgerEntry{}, models.ErrInvalidState
	}
	return entry, nil
}

// Settle applies the terminal update only while the stored entry is still
// pending; the check and write happen under one lock, so concurrent reviews
// of the same entry see exactly one success.
func (s *Store) Settle(ctx context.Context, primary models.LedgerEntry, secondary *models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.entries[primary.ID]
	if !ok {
		return models.ErrEntryNotFound
	}
	if current.Status != models.StatusPending {
		return models.ErrInvalidState
	}

	s.entries[primary.ID] = primary
	if secondary != nil {
		if _, exists := s.entries[secondary.ID]; !exists {
			s.order = append(s.order, secondary.ID)
		}
		s.entries[secondary.ID] = *secondary
	}
	return nil
}

func (s *Store) ListApproved(ctx context.Context, filter storage.ApprovedFilter) ([]models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []models.LedgerEntry
	for _, id := range s.order {
		entry := s.entries[id]
		if entry.Status != models.StatusApproved {
			continue
		}
		if filter.OwnerID != "" && entry.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Period != "" && entry.Period != filter.Period {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

var _ storage.EntryStore = (*Store)(nil)

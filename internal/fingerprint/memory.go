package fingerprint

import (
	"context"
	"sync"

	"github.com/Peerawityam/classfund-web/internal/models"
)

// MemoryStore is an in-memory Store, used in tests and single-node setups.
type MemoryStore struct {
	mu     sync.Mutex
	claims map[string]Claim
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{claims: make(map[string]Claim)}
}

func (s *MemoryStore) IsClaimed(ctx context.Context, fp string) (Claim, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim, ok := s.claims[fp]
	return claim, ok, nil
}

func (s *MemoryStore) ClaimFingerprint(ctx context.Context, fp string, claim Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.claims[fp]; exists {
		return models.ErrFingerprintClaimed
	}
	s.claims[fp] = claim
	return nil
}

var _ Store = (*MemoryStore)(nil)

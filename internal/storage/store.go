package storage

import (
	"context"

	"github.com/Peerawityam/classfund-web/internal/models"
)

// ApprovedFilter narrows ListApproved. Zero values mean no filtering.
type ApprovedFilter struct {
	OwnerID string
	Period  string
}

// EntryStore persists ledger entries.
//
// Settle is the storage half of the approval state machine: it must apply
// the terminal update only while the entry is still pending (a conditional
// update), so two concurrent reviewers cannot both settle the same entry.
type EntryStore interface {
	Save(ctx context.Context, entry models.LedgerEntry) error

	// FindPending returns the entry only if it exists and is pending.
	// A missing entry is models.ErrEntryNotFound; an entry that has already
	// been settled is models.ErrInvalidState, so a stale second review
	// surfaces as a conflict rather than a missing resource.
	FindPending(ctx context.Context, id string) (models.LedgerEntry, error)

	// Settle writes the reviewed primary entry over its pending row and, when
	// secondary is non-nil, inserts the secondary entry in the same
	// transaction. Returns models.ErrInvalidState when the entry is no
	// longer pending.
	Settle(ctx context.Context, primary models.LedgerEntry, secondary *models.LedgerEntry) error

	ListApproved(ctx context.Context, filter ApprovedFilter) ([]models.LedgerEntry, error)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Peerawityam/classfund-web/internal/fingerprint"
	"github.com/Peerawityam/classfund-web/internal/models"
)

// FingerprintRepository keeps slip claims in Postgres next to the entries.
// The primary key on fingerprint makes the claim atomic.
type FingerprintRepository struct {
	db *sql.DB
}

func NewFingerprintRepository(db *sql.DB) *FingerprintRepository {
	return &FingerprintRepository{db: db}
}

func (r *FingerprintRepository) IsClaimed(ctx context.Context, fp string) (fingerprint.Claim, bool, error) {
	query := `SELECT entry_id, owner_label FROM slip_fingerprints WHERE fingerprint = $1`

	var claim fingerprint.Claim
	err := r.db.QueryRowContext(ctx, query, fp).Scan(&claim.EntryID, &claim.OwnerLabel)
	if err == sql.ErrNoRows {
		return fingerprint.Claim{}, false, nil
	}
	if err != nil {
		return fingerprint.Claim{}, false, fmt.Errorf("fingerprint lookup: %w", err)
	}
	return claim, true, nil
}

func (r *FingerprintRepository) ClaimFingerprint(ctx context.Context, fp string, claim fingerprint.Claim) error {
	query := `
		INSERT INTO slip_fingerprints (fingerprint, entry_id, owner_label)
		VALUES ($1, $2, $3)
		ON CONFLICT (fingerprint) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, fp, claim.EntryID, claim.OwnerLabel)
	if err != nil {
		return fmt.Errorf("claim fingerprint: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("claim fingerprint: %w", err)
	}
	if affected == 0 {
		return models.ErrFingerprintClaimed
	}
	return nil
}

var _ fingerprint.Store = (*FingerprintRepository)(nil)

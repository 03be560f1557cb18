package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Peerawityam/classfund-web/internal/models"
	"github.com/Peerawityam/classfund-web/internal/storage"
)

// EntryRepository is the Postgres-backed EntryStore.
type EntryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

const entryColumns = `id, owner_id, owner_label, direction, amount, period, note,
		status, evidence_ref, evidence_fingerprint, reviewer_label, created_at`

func (r *EntryRepository) Save(ctx context.Context, entry models.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.OwnerID,
		entry.OwnerLabel,
		entry.Direction,
		entry.Amount,
		entry.Period,
		entry.Note,
		entry.Status,
		entry.EvidenceRef,
		entry.EvidenceFingerprint,
		entry.ReviewerLabel,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save entry: %w", err)
	}
	return nil
}

func (r *EntryRepository) FindPending(ctx context.Context, id string) (models.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return models.LedgerEntry{}, models.ErrEntryNotFound
	}
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("find pending entry: %w", err)
	}
	// A settled entry is a conflict, not a missing resource.
	if entry.Status != models.StatusPending {
		return models.LedgerEntry{}, models.ErrInvalidState
	}
	return entry, nil
}

// Settle updates the reviewed entry with a conditional write on the pending
// status and inserts the secondary split entry, if any, in the same
// transaction. A concurrent review that already settled the entry makes the
// conditional update match zero rows, which surfaces as ErrInvalidState.
func (r *EntryRepository) Settle(ctx context.Context, primary models.LedgerEntry, secondary *models.LedgerEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settle: %w", err)
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE ledger_entries
		SET status = $1, period = $2, amount = $3, reviewer_label = $4
		WHERE id = $5 AND status = $6
	`
	res, err := tx.ExecContext(ctx, updateQuery,
		primary.Status,
		primary.Period,
		primary.Amount,
		primary.ReviewerLabel,
		primary.ID,
		models.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("settle entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("settle entry: %w", err)
	}
	if affected == 0 {
		return models.ErrInvalidState
	}

	if secondary != nil {
		insertQuery := `
			INSERT INTO ledger_entries (` + entryColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`
		_, err = tx.ExecContext(ctx, insertQuery,
			secondary.ID,
			secondary.OwnerID,
			secondary.OwnerLabel,
			secondary.Direction,
			secondary.Amount,
			secondary.Period,
			secondary.Note,
			secondary.Status,
			secondary.EvidenceRef,
			secondary.EvidenceFingerprint,
			secondary.ReviewerLabel,
			secondary.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("save split entry: %w", err)
		}
	}

	return tx.Commit()
}

func (r *EntryRepository) ListApproved(ctx context.Context, filter storage.ApprovedFilter) ([]models.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE status = $1
	`
	args := []any{models.StatusApproved}

	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if filter.Period != "" {
		args = append(args, filter.Period)
		query += fmt.Sprintf(" AND period = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list approved entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := row.Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.OwnerLabel,
		&entry.Direction,
		&entry.Amount,
		&entry.Period,
		&entry.Note,
		&entry.Status,
		&entry.EvidenceRef,
		&entry.EvidenceFingerprint,
		&entry.ReviewerLabel,
		&entry.CreatedAt,
	)
	return entry, err
}

var _ storage.EntryStore = (*EntryRepository)(nil)

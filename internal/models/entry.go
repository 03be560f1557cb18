package models

import "time"

type EntryStatus string

const (
	StatusPending  EntryStatus = "pending"
	StatusApproved EntryStatus = "approved"
	StatusRejected EntryStatus = "rejected"
)

// PeriodUnclassified is the placeholder period for member self-submissions
// that have not been assigned to a billing period yet. Review replaces it.
const PeriodUnclassified = "unclassified"

// LedgerEntry is one money movement in the classroom fund: a member's
// deposit waiting for review, or a settled deposit/expense.
type LedgerEntry struct {
	ID                  string      `json:"id" db:"id"`
	OwnerID             string      `json:"owner_id" db:"owner_id"` // empty for classroom-level entries
	OwnerLabel          string      `json:"owner_label" db:"owner_label"`
	Direction           Direction   `json:"direction" db:"direction"`
	Amount              Money       `json:"amount" db:"amount"`
	Period              string      `json:"period" db:"period"`
	Note                string      `json:"note" db:"note"`
	Status              EntryStatus `json:"status" db:"status"`
	EvidenceRef         string      `json:"evidence_ref,omitempty" db:"evidence_ref"`
	EvidenceFingerprint string      `json:"evidence_fingerprint,omitempty" db:"evidence_fingerprint"`
	ReviewerLabel       string      `json:"reviewer_label,omitempty" db:"reviewer_label"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
}

// Settled reports whether the entry has reached a terminal status.
func (e *LedgerEntry) Settled() bool {
	return e.Status == StatusApproved || e.Status == StatusRejected
}

// SubmitPaymentRequest is the payload for recording a payment or expense.
type SubmitPaymentRequest struct {
	Direction           Direction `json:"direction" binding:"required,oneof=deposit expense"`
	OwnerID             string    `json:"owner_id"`
	OwnerLabel          string    `json:"owner_label" binding:"required"`
	Amount              float64   `json:"amount" binding:"required"`
	Period              string    `json:"period"`
	Note                string    `json:"note"`
	EvidenceRef         string    `json:"evidence_ref"`
	EvidenceFingerprint string    `json:"evidence_fingerprint"`
	IsAdmin             bool      `json:"is_admin"`
}

// ReviewDecision is the reviewer's verdict on a pending entry.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

// ReviewRequest carries an approval or rejection. On approval the reviewer
// allocates the slip across one or two periods; the secondary slot is used
// only when both its period and a positive amount are given.
type ReviewRequest struct {
	Decision        ReviewDecision `json:"decision" binding:"required,oneof=approve reject"`
	ReviewerLabel   string         `json:"reviewer_label" binding:"required"`
	PrimaryPeriod   string         `json:"primary_period"`
	PrimaryAmount   float64        `json:"primary_amount"`
	SecondaryPeriod string         `json:"secondary_period"`
	SecondaryAmount float64        `json:"secondary_amount"`
}

// Database schema
const LedgerSchema = `
CREATE TABLE IF NOT EXISTS ledger_entries (
    id VARCHAR(36) PRIMARY KEY,
    owner_id VARCHAR(64),
    owner_label VARCHAR(128) NOT NULL,
    direction VARCHAR(10) NOT NULL,
    amount DECIMAL(19, 2) NOT NULL,
    period VARCHAR(64),
    note TEXT,
    status VARCHAR(10) NOT NULL,
    evidence_ref TEXT,
    evidence_fingerprint VARCHAR(64),
    reviewer_label VARCHAR(128),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_entries_owner ON ledger_entries (owner_id);
CREATE INDEX IF NOT EXISTS idx_entries_status ON ledger_entries (status);
CREATE INDEX IF NOT EXISTS idx_entries_period ON ledger_entries (period);

CREATE TABLE IF NOT EXISTS slip_fingerprints (
    fingerprint VARCHAR(64) PRIMARY KEY,
    entry_id VARCHAR(36) NOT NULL,
    owner_label VARCHAR(128) NOT NULL,
    claimed_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

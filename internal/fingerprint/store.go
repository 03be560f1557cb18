// Package fingerprint tracks which payment slips have already been used.
// Each slip is identified by a SHA-256 hex digest of its raw bytes, computed
// by the uploading client before the image ever reaches storage, so a
// duplicate can be refused before any upload cost is paid.
package fingerprint

import "context"

// Claim records who first used a fingerprint.
type Claim struct {
	EntryID    string
	OwnerLabel string
}

// Store maps slip fingerprints to the entry that first claimed them.
//
// Claims are permanent: a rejected submission keeps its claim, so the same
// slip cannot be resubmitted for a different purpose after a rejection.
type Store interface {
	// IsClaimed is a pure lookup with no side effect, safe to call as a
	// pre-check before uploading the slip image.
	IsClaimed(ctx context.Context, fp string) (Claim, bool, error)

	// ClaimFingerprint atomically reserves fp. It returns
	// models.ErrFingerprintClaimed when fp is already reserved; two
	// concurrent claims of the same fp see exactly one success.
	ClaimFingerprint(ctx context.Context, fp string, claim Claim) error
}

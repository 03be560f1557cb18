package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount rejects non-positive or non-finite amounts.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrEvidenceRequired rejects member deposits submitted without a slip.
	ErrEvidenceRequired = errors.New("payment slip is required for deposits")

	// ErrPeriodRequired rejects approvals with no primary period selected.
	ErrPeriodRequired = errors.New("a payment period must be selected")

	// ErrInvalidState rejects a review of an entry that is no longer pending.
	ErrInvalidState = errors.New("entry is not pending review")

	// ErrEntryNotFound is returned when no entry exists for the given id.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrFingerprintClaimed is returned by fingerprint stores when the hash
	// is already reserved. The service layer wraps it with the claiming
	// owner's label for display.
	ErrFingerprintClaimed = errors.New("slip fingerprint already claimed")
)

// DuplicateEvidenceError reports that a submitted slip was already used,
// and by whom, so the rejection can be shown to the member.
type DuplicateEvidenceError struct {
	OwnerLabel string
}

func (e *DuplicateEvidenceError) Error() string {
	if e.OwnerLabel == "" {
		return "this slip has already been submitted"
	}
	return fmt.Sprintf("this slip has already been submitted by %s", e.OwnerLabel)
}

// Is lets errors.Is match a DuplicateEvidenceError against the sentinel.
func (e *DuplicateEvidenceError) Is(target error) bool {
	return target == ErrFingerprintClaimed
}

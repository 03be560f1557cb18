package service

import (
	"fmt"
	"time"

	"github.com/Peerawityam/classfund-web/internal/models"
)

// splitNoteSuffix marks the supplementary half of a split approval, matching
// the wording members see in the app ("extra portion").
const splitNoteSuffix = "(ส่วนเพิ่ม)"

// NewSubmission validates a payment submission and builds the entry to
// persist. Admin submissions are authoritative and start approved; member
// submissions start pending, and member deposits must carry a slip
// fingerprint. No side effects; fingerprint claiming and persistence belong
// to the caller.
func NewSubmission(req models.SubmitPaymentRequest, id string, now time.Time) (models.LedgerEntry, error) {
	if !req.Direction.Valid() {
		return models.LedgerEntry{}, fmt.Errorf("unknown direction %q", req.Direction)
	}

	amount, err := models.NewMoney(req.Amount)
	if err != nil {
		return models.LedgerEntry{}, err
	}
	if !amount.IsPositive() {
		return models.LedgerEntry{}, models.ErrInvalidAmount
	}

	entry := models.LedgerEntry{
		ID:                  id,
		OwnerID:             req.OwnerID,
		OwnerLabel:          req.OwnerLabel,
		Direction:           req.Direction,
		Amount:              amount,
		Period:              req.Period,
		Note:                req.Note,
		EvidenceRef:         req.EvidenceRef,
		EvidenceFingerprint: req.EvidenceFingerprint,
		CreatedAt:           now,
	}

	if req.IsAdmin {
		// Admin entries skip review; the admin is the reviewer.
		entry.Status = models.StatusApproved
		entry.ReviewerLabel = req.OwnerLabel
		if entry.Direction == models.DirectionDeposit && entry.Period == "" {
			return models.LedgerEntry{}, models.ErrPeriodRequired
		}
		return entry, nil
	}

	entry.Status = models.StatusPending
	if entry.Direction == models.DirectionDeposit {
		if entry.EvidenceFingerprint == "" {
			return models.LedgerEntry{}, models.ErrEvidenceRequired
		}
		if entry.Period == "" {
			entry.Period = models.PeriodUnclassified
		}
	}
	return entry, nil
}

// ApplyReview takes a pending entry through its terminal transition and
// returns the resulting entries: the reviewed primary, plus a secondary
// entry when the reviewer split the slip across two periods.
//
// All validation happens before any field changes, so a failed review leaves
// the entry exactly as it was. The secondary entry never carries the slip
// fingerprint; only one physical slip exists and it stays attached to the
// primary.
func ApplyReview(entry models.LedgerEntry, req models.ReviewRequest, secondaryID string, now time.Time) (models.LedgerEntry, *models.LedgerEntry, error) {
	if entry.Status != models.StatusPending {
		return models.LedgerEntry{}, nil, models.ErrInvalidState
	}

	if req.Decision == models.DecisionReject {
		entry.Status = models.StatusRejected
		entry.ReviewerLabel = req.ReviewerLabel
		return entry, nil, nil
	}

	if req.PrimaryPeriod == "" {
		return models.LedgerEntry{}, nil, models.ErrPeriodRequired
	}

	primaryAmount, err := models.NewMoney(req.PrimaryAmount)
	if err != nil {
		return models.LedgerEntry{}, nil, err
	}
	secondaryAmount, err := models.NewMoney(req.SecondaryAmount)
	if err != nil {
		return models.LedgerEntry{}, nil, err
	}
	// The reviewer may correct a misreported total, but a settled entry can
	// never be zero.
	if !primaryAmount.IsPositive() || !primaryAmount.Add(secondaryAmount).IsPositive() {
		return models.LedgerEntry{}, nil, models.ErrInvalidAmount
	}

	entry.Status = models.StatusApproved
	entry.ReviewerLabel = req.ReviewerLabel
	entry.Period = req.PrimaryPeriod
	entry.Amount = primaryAmount

	if req.SecondaryPeriod == "" || !secondaryAmount.IsPositive() {
		return entry, nil, nil
	}

	note := splitNoteSuffix
	if entry.Note != "" {
		note = entry.Note + " " + splitNoteSuffix
	}
	secondary := models.LedgerEntry{
		ID:            secondaryID,
		OwnerID:       entry.OwnerID,
		OwnerLabel:    entry.OwnerLabel,
		Direction:     entry.Direction,
		Amount:        secondaryAmount,
		Period:        req.SecondaryPeriod,
		Note:          note,
		Status:        models.StatusApproved,
		EvidenceRef:   entry.EvidenceRef, // same slip shown for audit context
		ReviewerLabel: req.ReviewerLabel,
		CreatedAt:     now,
	}
	return entry, &secondary, nil
}

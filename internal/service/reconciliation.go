package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Peerawityam/classfund-web/internal/catalog"
	"github.com/Peerawityam/classfund-web/internal/fingerprint"
	"github.com/Peerawityam/classfund-web/internal/metrics"
	"github.com/Peerawityam/classfund-web/internal/models"
	"github.com/Peerawityam/classfund-web/internal/storage"
)

// ReconciliationService ties the fingerprint store, the approval rules and
// entry persistence together behind the operations the API layer calls.
type ReconciliationService struct {
	entries  storage.EntryStore
	slips    fingerprint.Store
	catalog  *catalog.Catalog
	notifier Notifier
	logger   *zap.Logger
}

func NewReconciliationService(entries storage.EntryStore, slips fingerprint.Store, cat *catalog.Catalog, notifier Notifier, logger *zap.Logger) *ReconciliationService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &ReconciliationService{
		entries:  entries,
		slips:    slips,
		catalog:  cat,
		notifier: notifier,
		logger:   logger,
	}
}

// CheckSlip answers whether a slip fingerprint is already used, and by whom.
// Clients call this before uploading the slip image so a duplicate costs
// nothing. Pure lookup; the fingerprint is not reserved here.
func (s *ReconciliationService) CheckSlip(ctx context.Context, fp string) (string, bool, error) {
	claim, claimed, err := s.slips.IsClaimed(ctx, fp)
	if err != nil {
		return "", false, fmt.Errorf("check slip: %w", err)
	}
	return claim.OwnerLabel, claimed, nil
}

// SubmitPayment validates and records a submission. When a fingerprint is
// present it is claimed first, atomically, so two submissions of the same
// slip produce exactly one entry; the claim is permanent even if the entry
// is later rejected.
func (s *ReconciliationService) SubmitPayment(ctx context.Context, req models.SubmitPaymentRequest) (models.LedgerEntry, error) {
	entry, err := NewSubmission(req, uuid.New().String(), time.Now())
	if err != nil {
		return models.LedgerEntry{}, err
	}

	if entry.EvidenceFingerprint != "" {
		claim := fingerprint.Claim{EntryID: entry.ID, OwnerLabel: entry.OwnerLabel}
		err := s.slips.ClaimFingerprint(ctx, entry.EvidenceFingerprint, claim)
		if errors.Is(err, models.ErrFingerprintClaimed) {
			metrics.DuplicateSlipsTotal.Inc()
			prior, _, lookupErr := s.slips.IsClaimed(ctx, entry.EvidenceFingerprint)
			if lookupErr != nil {
				s.logger.Warn("duplicate slip owner lookup failed", zap.Error(lookupErr))
			}
			return models.LedgerEntry{}, &models.DuplicateEvidenceError{OwnerLabel: prior.OwnerLabel}
		}
		if err != nil {
			return models.LedgerEntry{}, fmt.Errorf("claim slip: %w", err)
		}
	}

	if err := s.entries.Save(ctx, entry); err != nil {
		// The claim stays reserved; the member must contact the admin rather
		// than getting a window to reuse the slip.
		s.logger.Error("entry save failed after slip claim",
			zap.String("entry_id", entry.ID),
			zap.Error(err))
		return models.LedgerEntry{}, fmt.Errorf("save submission: %w", err)
	}

	metrics.SubmissionsTotal.WithLabelValues(string(entry.Direction)).Inc()
	s.logger.Info("payment submitted",
		zap.String("entry_id", entry.ID),
		zap.String("owner", entry.OwnerLabel),
		zap.String("direction", string(entry.Direction)),
		zap.String("status", string(entry.Status)),
		zap.String("amount", entry.Amount.String()))
	return entry, nil
}

// ReviewSubmission settles a pending entry. Approval may split the slip
// across two periods, producing a second approved entry; both are persisted
// in one storage transaction guarded by a conditional update, so a stale or
// concurrent second review fails with ErrInvalidState.
func (s *ReconciliationService) ReviewSubmission(ctx context.Context, entryID string, req models.ReviewRequest) (models.LedgerEntry, *models.LedgerEntry, error) {
	entry, err := s.entries.FindPending(ctx, entryID)
	if err != nil {
		if errors.Is(err, models.ErrEntryNotFound) || errors.Is(err, models.ErrInvalidState) {
			return models.LedgerEntry{}, nil, err
		}
		return models.LedgerEntry{}, nil, fmt.Errorf("load entry: %w", err)
	}

	primary, secondary, err := ApplyReview(entry, req, uuid.New().String(), time.Now())
	if err != nil {
		return models.LedgerEntry{}, nil, err
	}

	if err := s.entries.Settle(ctx, primary, secondary); err != nil {
		return models.LedgerEntry{}, nil, err
	}

	metrics.ReviewsTotal.WithLabelValues(string(req.Decision)).Inc()
	s.logger.Info("submission reviewed",
		zap.String("entry_id", primary.ID),
		zap.String("decision", string(req.Decision)),
		zap.String("reviewer", req.ReviewerLabel),
		zap.Bool("split", secondary != nil))

	s.notifyReviewed(ctx, primary)
	return primary, secondary, nil
}

func (s *ReconciliationService) notifyReviewed(ctx context.Context, entry models.LedgerEntry) {
	if entry.OwnerID == "" {
		return
	}
	var msg string
	if entry.Status == models.StatusApproved {
		msg = fmt.Sprintf("รายการ %s บาท ได้รับการอนุมัติแล้ว", entry.Amount)
	} else {
		msg = fmt.Sprintf("รายการ %s บาท ถูกปฏิเสธ กรุณาติดต่อผู้ดูแล", entry.Amount)
	}
	if err := s.notifier.Notify(ctx, entry.OwnerID, msg); err != nil {
		s.logger.Warn("review notification failed",
			zap.String("owner_id", entry.OwnerID),
			zap.Error(err))
	}
}

// AllocationSuggestion pre-fills the reviewer's split form: up to two
// periods guessed from the entry, each with the catalog price if one exists.
type AllocationSuggestion struct {
	Period string           `json:"period"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// SuggestAllocation proposes periods for a pending entry. The stored period
// wins when it names a known period; otherwise the note is matched against
// the catalog. Best effort only; the reviewer always has the final say.
func (s *ReconciliationService) SuggestAllocation(ctx context.Context, entryID string) ([]AllocationSuggestion, error) {
	entry, err := s.entries.FindPending(ctx, entryID)
	if err != nil {
		return nil, err
	}

	known := func(name string) bool {
		for _, p := range s.catalog.AllPeriodNames() {
			if p == name {
				return true
			}
		}
		return false
	}

	var periods []string
	if entry.Period != "" && entry.Period != models.PeriodUnclassified && known(entry.Period) {
		periods = []string{entry.Period}
	} else {
		periods = s.catalog.GuessPeriodsFromNote(entry.Note)
	}
	if len(periods) > 2 {
		periods = periods[:2]
	}

	suggestions := make([]AllocationSuggestion, 0, len(periods))
	for _, p := range periods {
		sg := AllocationSuggestion{Period: p}
		if price, ok := s.catalog.PriceOf(p); ok {
			sg.Amount = &price
		}
		suggestions = append(suggestions, sg)
	}
	return suggestions, nil
}

// MemberBalance is one row of the per-student balance table.
type MemberBalance struct {
	OwnerID    string          `json:"owner_id"`
	OwnerLabel string          `json:"owner_label"`
	Balance    decimal.Decimal `json:"balance"`
}

// QueryBalance computes a balance over approved entries, classroom-wide when
// ownerID is empty.
func (s *ReconciliationService) QueryBalance(ctx context.Context, ownerID string, mode BalanceMode) (decimal.Decimal, error) {
	entries, err := s.entries.ListApproved(ctx, storage.ApprovedFilter{OwnerID: ownerID})
	if err != nil {
		return decimal.Zero, fmt.Errorf("list entries: %w", err)
	}
	return Balance(entries, ownerID, mode), nil
}

// MemberBalances returns the net balance per member, for the individual
// dashboard tab. Classroom-level entries (empty owner) are excluded.
func (s *ReconciliationService) MemberBalances(ctx context.Context) ([]MemberBalance, error) {
	entries, err := s.entries.ListApproved(ctx, storage.ApprovedFilter{})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	byOwner := make(map[string]*MemberBalance)
	var order []string
	for _, entry := range entries {
		if entry.OwnerID == "" {
			continue
		}
		mb, ok := byOwner[entry.OwnerID]
		if !ok {
			mb = &MemberBalance{OwnerID: entry.OwnerID, OwnerLabel: entry.OwnerLabel}
			byOwner[entry.OwnerID] = mb
			order = append(order, entry.OwnerID)
		}
		mb.Balance = mb.Balance.Add(entry.Amount.Signed(entry.Direction))
	}

	result := make([]MemberBalance, 0, len(order))
	for _, id := range order {
		result = append(result, *byOwner[id])
	}
	return result, nil
}

// PeriodReport is the income collected for one billing period.
type PeriodReport struct {
	Period string          `json:"period"`
	Total  decimal.Decimal `json:"total"`
}

// PeriodTotals reports income per active period, in catalog order.
func (s *ReconciliationService) PeriodTotals(ctx context.Context) ([]PeriodReport, error) {
	entries, err := s.entries.ListApproved(ctx, storage.ApprovedFilter{})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	names := s.catalog.AllPeriodNames()
	reports := make([]PeriodReport, 0, len(names))
	for _, name := range names {
		reports = append(reports, PeriodReport{
			Period: name,
			Total:  PeriodTotal(entries, name),
		})
	}
	return reports, nil
}

package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Peerawityam/classfund-web/internal/models"
)

var testTime = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

func TestNewSubmission(t *testing.T) {
	tests := []struct {
		name       string
		req        models.SubmitPaymentRequest
		wantErr    error
		wantStatus models.EntryStatus
		wantPeriod string
	}{
		{
			name: "member deposit with slip is pending",
			req: models.SubmitPaymentRequest{
				Direction:           models.DirectionDeposit,
				OwnerID:             "u1",
				OwnerLabel:          "Somchai",
				Amount:              100,
				EvidenceFingerprint: "abc",
			},
			wantStatus: models.StatusPending,
			wantPeriod: models.PeriodUnclassified,
		},
		{
			name: "member deposit without slip rejected",
			req: models.SubmitPaymentRequest{
				Direction:  models.DirectionDeposit,
				OwnerID:    "u1",
				OwnerLabel: "Somchai",
				Amount:     100,
			},
			wantErr: models.ErrEvidenceRequired,
		},
		{
			name: "member deposit keeps chosen period",
			req: models.SubmitPaymentRequest{
				Direction:           models.DirectionDeposit,
				OwnerID:             "u1",
				OwnerLabel:          "Somchai",
				Amount:              100,
				Period:              "July",
				EvidenceFingerprint: "abc",
			},
			wantStatus: models.StatusPending,
			wantPeriod: "July",
		},
		{
			name: "admin deposit approved immediately",
			req: models.SubmitPaymentRequest{
				Direction:  models.DirectionDeposit,
				OwnerID:    "u1",
				OwnerLabel: "Admin",
				Amount:     100,
				Period:     "July",
				IsAdmin:    true,
			},
			wantStatus: models.StatusApproved,
			wantPeriod: "July",
		},
		{
			name: "admin deposit requires a period",
			req: models.SubmitPaymentRequest{
				Direction:  models.DirectionDeposit,
				OwnerLabel: "Admin",
				Amount:     100,
				IsAdmin:    true,
			},
			wantErr: models.ErrPeriodRequired,
		},
		{
			name: "admin expense needs no period",
			req: models.SubmitPaymentRequest{
				Direction:  models.DirectionExpense,
				OwnerLabel: "Admin",
				Amount:     250,
				Note:       "ซื้ออุปกรณ์",
				IsAdmin:    true,
			},
			wantStatus: models.StatusApproved,
		},
		{
			name: "negative amount rejected",
			req: models.SubmitPaymentRequest{
				Direction:           models.DirectionDeposit,
				OwnerLabel:          "Somchai",
				Amount:              -5,
				EvidenceFingerprint: "abc",
			},
			wantErr: models.ErrInvalidAmount,
		},
		{
			name: "zero amount rejected",
			req: models.SubmitPaymentRequest{
				Direction:           models.DirectionDeposit,
				OwnerLabel:          "Somchai",
				Amount:              0,
				EvidenceFingerprint: "abc",
			},
			wantErr: models.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewSubmission(tt.req, "id-1", testTime)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entry.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", entry.Status, tt.wantStatus)
			}
			if entry.Period != tt.wantPeriod {
				t.Errorf("period = %q, want %q", entry.Period, tt.wantPeriod)
			}
			if entry.ID != "id-1" || !entry.CreatedAt.Equal(testTime) {
				t.Errorf("id/createdAt not taken from arguments: %+v", entry)
			}
		})
	}
}

func TestNewSubmissionUnknownDirection(t *testing.T) {
	_, err := NewSubmission(models.SubmitPaymentRequest{
		Direction:  "transfer",
		OwnerLabel: "Somchai",
		Amount:     100,
	}, "id-1", testTime)
	if err == nil {
		t.Fatal("unknown direction must be rejected")
	}
}

func pendingEntry() models.LedgerEntry {
	amount, _ := models.NewMoney(100)
	return models.LedgerEntry{
		ID:                  "e1",
		OwnerID:             "u1",
		OwnerLabel:          "Somchai",
		Direction:           models.DirectionDeposit,
		Amount:              amount,
		Period:              models.PeriodUnclassified,
		Note:                "โอนค่าห้อง",
		Status:              models.StatusPending,
		EvidenceRef:         "https://img.example/slip.jpg",
		EvidenceFingerprint: "abc",
		CreatedAt:           testTime,
	}
}

func TestApplyReviewReject(t *testing.T) {
	entry := pendingEntry()

	primary, secondary, err := ApplyReview(entry, models.ReviewRequest{
		Decision:      models.DecisionReject,
		ReviewerLabel: "ครูสมศรี",
	}, "id-2", testTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secondary != nil {
		t.Fatal("reject must not create a second entry")
	}
	if primary.Status != models.StatusRejected {
		t.Errorf("status = %s, want rejected", primary.Status)
	}
	if primary.ReviewerLabel != "ครูสมศรี" {
		t.Errorf("reviewer = %q", primary.ReviewerLabel)
	}
	// Rejection changes nothing but status and reviewer.
	if primary.Amount.String() != "100" || primary.Period != models.PeriodUnclassified {
		t.Errorf("reject must not touch amount or period: %+v", primary)
	}
	if primary.EvidenceFingerprint != "abc" {
		t.Error("fingerprint must stay attached after rejection")
	}
}

func TestApplyReviewApproveSingle(t *testing.T) {
	entry := pendingEntry()

	primary, secondary, err := ApplyReview(entry, models.ReviewRequest{
		Decision:      models.DecisionApprove,
		ReviewerLabel: "ครูสมศรี",
		PrimaryPeriod: "July",
		PrimaryAmount: 120, // reviewer corrects the reported figure
	}, "id-2", testTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secondary != nil {
		t.Fatal("no secondary expected")
	}
	if primary.Status != models.StatusApproved || primary.Period != "July" {
		t.Errorf("primary = %+v", primary)
	}
	if primary.Amount.String() != "120" {
		t.Errorf("amount = %s, want 120", primary.Amount)
	}
	if primary.EvidenceFingerprint != "abc" || primary.EvidenceRef == "" {
		t.Error("evidence must stay on the primary entry")
	}
}

func TestApplyReviewApproveSplit(t *testing.T) {
	entry := pendingEntry()

	primary, secondary, err := ApplyReview(entry, models.ReviewRequest{
		Decision:        models.DecisionApprove,
		ReviewerLabel:   "ครูสมศรี",
		PrimaryPeriod:   "July",
		PrimaryAmount:   60,
		SecondaryPeriod: "August",
		SecondaryAmount: 40,
	}, "id-2", testTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secondary == nil {
		t.Fatal("expected a secondary entry")
	}

	if primary.Period != "July" || primary.Amount.String() != "60" {
		t.Errorf("primary = %+v", primary)
	}
	if secondary.Period != "August" || secondary.Amount.String() != "40" {
		t.Errorf("secondary = %+v", secondary)
	}
	if secondary.Status != models.StatusApproved {
		t.Errorf("secondary status = %s, want approved", secondary.Status)
	}
	if secondary.EvidenceFingerprint != "" {
		t.Error("secondary entry must never carry the fingerprint")
	}
	if secondary.EvidenceRef != primary.EvidenceRef {
		t.Error("secondary keeps the slip image reference for audit context")
	}
	if secondary.OwnerID != primary.OwnerID || secondary.Direction != primary.Direction {
		t.Error("secondary must copy owner and direction")
	}
	if !strings.Contains(secondary.Note, "ส่วนเพิ่ม") {
		t.Errorf("secondary note = %q, want supplementary marker", secondary.Note)
	}
	if secondary.ID != "id-2" {
		t.Errorf("secondary id = %q", secondary.ID)
	}
}

func TestApplyReviewValidation(t *testing.T) {
	tests := []struct {
		name    string
		entry   models.LedgerEntry
		req     models.ReviewRequest
		wantErr error
	}{
		{
			name:  "non-pending entry",
			entry: func() models.LedgerEntry { e := pendingEntry(); e.Status = models.StatusApproved; return e }(),
			req: models.ReviewRequest{
				Decision:      models.DecisionApprove,
				ReviewerLabel: "ครูสมศรี",
				PrimaryPeriod: "July",
				PrimaryAmount: 100,
			},
			wantErr: models.ErrInvalidState,
		},
		{
			name:  "rejected entry cannot be revived",
			entry: func() models.LedgerEntry { e := pendingEntry(); e.Status = models.StatusRejected; return e }(),
			req: models.ReviewRequest{
				Decision:      models.DecisionReject,
				ReviewerLabel: "ครูสมศรี",
			},
			wantErr: models.ErrInvalidState,
		},
		{
			name:  "approve without period",
			entry: pendingEntry(),
			req: models.ReviewRequest{
				Decision:      models.DecisionApprove,
				ReviewerLabel: "ครูสมศรี",
				PrimaryAmount: 100,
			},
			wantErr: models.ErrPeriodRequired,
		},
		{
			name:  "approve with zero total",
			entry: pendingEntry(),
			req: models.ReviewRequest{
				Decision:      models.DecisionApprove,
				ReviewerLabel: "ครูสมศรี",
				PrimaryPeriod: "July",
				PrimaryAmount: 0,
			},
			wantErr: models.ErrInvalidAmount,
		},
		{
			name:  "approve with negative primary",
			entry: pendingEntry(),
			req: models.ReviewRequest{
				Decision:      models.DecisionApprove,
				ReviewerLabel: "ครูสมศรี",
				PrimaryPeriod: "July",
				PrimaryAmount: -10,
			},
			wantErr: models.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ApplyReview(tt.entry, tt.req, "id-2", testTime)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// Secondary slot is ignored unless both a period and a positive amount are
// present.
func TestApplyReviewSecondarySlotGuard(t *testing.T) {
	tests := []struct {
		name      string
		period    string
		amount    float64
		wantSplit bool
	}{
		{name: "period without amount", period: "August", amount: 0, wantSplit: false},
		{name: "amount without period", period: "", amount: 40, wantSplit: false},
		{name: "both present", period: "August", amount: 40, wantSplit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, secondary, err := ApplyReview(pendingEntry(), models.ReviewRequest{
				Decision:        models.DecisionApprove,
				ReviewerLabel:   "ครูสมศรี",
				PrimaryPeriod:   "July",
				PrimaryAmount:   60,
				SecondaryPeriod: tt.period,
				SecondaryAmount: tt.amount,
			}, "id-2", testTime)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (secondary != nil) != tt.wantSplit {
				t.Errorf("secondary created = %v, want %v", secondary != nil, tt.wantSplit)
			}
		})
	}
}

package service

import (
	"testing"

	"github.com/Peerawityam/classfund-web/internal/models"
)

func entry(owner string, dir models.Direction, amount float64, status models.EntryStatus, period string) models.LedgerEntry {
	m, _ := models.NewMoney(amount)
	return models.LedgerEntry{
		ID:        owner + "-" + period + "-" + m.String(),
		OwnerID:   owner,
		Direction: dir,
		Amount:    m,
		Status:    status,
		Period:    period,
	}
}

func TestBalanceModes(t *testing.T) {
	entries := []models.LedgerEntry{
		entry("u1", models.DirectionDeposit, 100, models.StatusApproved, "July"),
		entry("u1", models.DirectionDeposit, 50, models.StatusApproved, "August"),
		entry("u1", models.DirectionExpense, 30, models.StatusApproved, ""),
		entry("u2", models.DirectionDeposit, 1000, models.StatusApproved, "July"),
		entry("u1", models.DirectionDeposit, 999, models.StatusPending, "July"),
		entry("u1", models.DirectionDeposit, 888, models.StatusRejected, "July"),
	}

	tests := []struct {
		name    string
		ownerID string
		mode    BalanceMode
		want    string
	}{
		{name: "classroom net", ownerID: "", mode: BalanceNet, want: "1120"},
		{name: "classroom income", ownerID: "", mode: BalanceIncomeOnly, want: "1150"},
		{name: "classroom expense", ownerID: "", mode: BalanceExpenseOnly, want: "30"},
		{name: "member net", ownerID: "u1", mode: BalanceNet, want: "120"},
		{name: "member income", ownerID: "u1", mode: BalanceIncomeOnly, want: "150"},
		{name: "member with no entries", ownerID: "u3", mode: BalanceNet, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Balance(entries, tt.ownerID, tt.mode)
			if got.String() != tt.want {
				t.Errorf("Balance(%q, %s) = %s, want %s", tt.ownerID, tt.mode, got, tt.want)
			}
		})
	}
}

func TestBalanceOwnerFilterScenario(t *testing.T) {
	// 3 approved deposits for u1 (100, 50, 25), 1 approved expense for u1
	// (30), 1 approved deposit for u2 (1000): u1 net is 145.
	entries := []models.LedgerEntry{
		entry("u1", models.DirectionDeposit, 100, models.StatusApproved, "July"),
		entry("u1", models.DirectionDeposit, 50, models.StatusApproved, "July"),
		entry("u1", models.DirectionDeposit, 25, models.StatusApproved, "July"),
		entry("u1", models.DirectionExpense, 30, models.StatusApproved, ""),
		entry("u2", models.DirectionDeposit, 1000, models.StatusApproved, "July"),
	}

	if got := Balance(entries, "u1", BalanceNet); got.String() != "145" {
		t.Errorf("Balance(u1, net) = %s, want 145", got)
	}
}

func TestBalanceEmpty(t *testing.T) {
	for _, mode := range []BalanceMode{BalanceNet, BalanceIncomeOnly, BalanceExpenseOnly} {
		if got := Balance(nil, "", mode); !got.IsZero() {
			t.Errorf("Balance(nil, %s) = %s, want 0", mode, got)
		}
	}
}

// Net must always equal income minus expenses, exactly.
func TestBalanceAdditivity(t *testing.T) {
	entries := []models.LedgerEntry{
		entry("u1", models.DirectionDeposit, 10.10, models.StatusApproved, "July"),
		entry("u1", models.DirectionExpense, 3.33, models.StatusApproved, ""),
		entry("u2", models.DirectionDeposit, 0.01, models.StatusApproved, "August"),
		entry("u2", models.DirectionExpense, 7.77, models.StatusApproved, ""),
		entry("u3", models.DirectionDeposit, 500, models.StatusPending, "July"),
	}

	net := Balance(entries, "", BalanceNet)
	income := Balance(entries, "", BalanceIncomeOnly)
	expense := Balance(entries, "", BalanceExpenseOnly)

	if !net.Equal(income.Sub(expense)) {
		t.Errorf("net %s != income %s - expense %s", net, income, expense)
	}
}

func TestPeriodTotal(t *testing.T) {
	entries := []models.LedgerEntry{
		entry("u1", models.DirectionDeposit, 60, models.StatusApproved, "July"),
		entry("u1", models.DirectionDeposit, 40, models.StatusApproved, "August"),
		entry("u2", models.DirectionDeposit, 100, models.StatusApproved, "July"),
		entry("u2", models.DirectionExpense, 25, models.StatusApproved, "July"),
		entry("u3", models.DirectionDeposit, 77, models.StatusPending, "July"),
	}

	if got := PeriodTotal(entries, "July"); got.String() != "160" {
		t.Errorf("PeriodTotal(July) = %s, want 160", got)
	}
	if got := PeriodTotal(entries, "September"); !got.IsZero() {
		t.Errorf("PeriodTotal(September) = %s, want 0", got)
	}
}

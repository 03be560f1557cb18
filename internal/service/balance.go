package service

import (
	"github.com/shopspring/decimal"

	"github.com/Peerawityam/classfund-web/internal/models"
)

// BalanceMode selects how approved entries fold into a balance.
type BalanceMode string

const (
	// BalanceNet sums deposits minus expenses.
	BalanceNet BalanceMode = "net"
	// BalanceIncomeOnly sums deposit amounts.
	BalanceIncomeOnly BalanceMode = "income"
	// BalanceExpenseOnly sums expense amounts.
	BalanceExpenseOnly BalanceMode = "expense"
)

// ValidBalanceMode reports whether m is a known mode.
func ValidBalanceMode(m BalanceMode) bool {
	switch m {
	case BalanceNet, BalanceIncomeOnly, BalanceExpenseOnly:
		return true
	}
	return false
}

// Balance folds entries into a single figure. Only approved entries count;
// ownerID narrows to one member when non-empty. An empty set yields zero.
// Pure function over the slice, no ordering requirement.
func Balance(entries []models.LedgerEntry, ownerID string, mode BalanceMode) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		if entry.Status != models.StatusApproved {
			continue
		}
		if ownerID != "" && entry.OwnerID != ownerID {
			continue
		}

		isDeposit := entry.Direction == models.DirectionDeposit
		switch mode {
		case BalanceIncomeOnly:
			if isDeposit {
				total = total.Add(entry.Amount.Decimal())
			}
		case BalanceExpenseOnly:
			if !isDeposit {
				total = total.Add(entry.Amount.Decimal())
			}
		default: // BalanceNet
			total = total.Add(entry.Amount.Signed(entry.Direction))
		}
	}
	return total
}

// PeriodTotal is the income collected for one billing period: approved
// deposits tagged with that period.
func PeriodTotal(entries []models.LedgerEntry, period string) decimal.Decimal {
	var matched []models.LedgerEntry
	for _, entry := range entries {
		if entry.Period == period {
			matched = append(matched, entry)
		}
	}
	return Balance(matched, "", BalanceIncomeOnly)
}

// Package catalog holds the classroom's billing periods and their prices.
// The catalog is read-only here; classroom settings own it.
package catalog

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Catalog is the ordered set of active billing periods for one classroom,
// with an optional fixed price per period and an optional default monthly
// fee used when a period has no price of its own.
type Catalog struct {
	periods    []string
	prices     map[string]decimal.Decimal
	monthlyFee decimal.Decimal
	hasFee     bool
}

// New builds a catalog. periods keeps its order; prices may be nil or
// partial; monthlyFee may be nil when the classroom has no default fee.
func New(periods []string, prices map[string]decimal.Decimal, monthlyFee *decimal.Decimal) *Catalog {
	c := &Catalog{
		periods: append([]string(nil), periods...),
		prices:  make(map[string]decimal.Decimal, len(prices)),
	}
	for name, price := range prices {
		c.prices[name] = price
	}
	if monthlyFee != nil {
		c.monthlyFee = *monthlyFee
		c.hasFee = true
	}
	return c
}

// AllPeriodNames returns the active periods in catalog order.
func (c *Catalog) AllPeriodNames() []string {
	return append([]string(nil), c.periods...)
}

// PriceOf returns the canonical price for a period: the period's own price
// if set, otherwise the classroom's monthly fee. The bool is false when
// neither exists.
func (c *Catalog) PriceOf(name string) (decimal.Decimal, bool) {
	if price, ok := c.prices[name]; ok {
		return price, true
	}
	if c.hasFee {
		return c.monthlyFee, true
	}
	return decimal.Decimal{}, false
}

// GuessPeriodsFromNote suggests which periods a free-text note refers to.
// Both sides are normalized (whitespace stripped, case folded) before a
// substring match; matches come back in catalog order. This is a reviewer
// convenience for pre-filling the split slots and never overrides an
// explicit choice.
func (c *Catalog) GuessPeriodsFromNote(note string) []string {
	norm := normalize(note)
	if norm == "" {
		return nil
	}
	var matches []string
	for _, name := range c.periods {
		if p := normalize(name); p != "" && strings.Contains(norm, p) {
			matches = append(matches, name)
		}
	}
	return matches
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

package entity

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ExpenseRecord represents one paid-and-split event. Amount is in minor
// currency units. Shares maps beneficiary name to a non-negative weight;
// weights need not be normalized.
type ExpenseRecord struct {
	Payer  string
	Amount int64
	Shares map[string]decimal.Decimal
	Memo   string
}

// Validate checks the record-local invariants. Membership of the payer and
// the beneficiaries is checked by the balance engine, which holds the group.
func (r ExpenseRecord) Validate() error {
	if r.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	if len(r.Shares) == 0 {
		return fmt.Errorf("%w: no beneficiaries", ErrInvalidShares)
	}
	positive := false
	for _, name := range r.ShareNames() {
		weight := r.Shares[name]
		if weight.IsNegative() {
			return fmt.Errorf("%w: negative weight for %s", ErrInvalidShares, name)
		}
		if weight.IsPositive() {
			positive = true
		}
	}
	if !positive {
		return fmt.Errorf("%w: all weights are zero", ErrInvalidShares)
	}
	return nil
}

// ShareNames returns the beneficiary names sorted.
func (r ExpenseRecord) ShareNames() []string {
	names := make([]string, 0, len(r.Shares))
	for name := range r.Shares {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

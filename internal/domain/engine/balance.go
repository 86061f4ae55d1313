package engine

import (
	"fmt"
	"math/big"

	"evenly.dev/internal/domain/entity"
)

// RationalBalances holds exact intermediate balances in minor units, one
// entry per group member. Values may be non-integral (a 100.00 three-way
// split) until the rounding step.
type RationalBalances map[string]*big.Rat

// Sum returns the exact aggregate of all balances.
func (b RationalBalances) Sum() *big.Rat {
	total := new(big.Rat)
	for _, balance := range b {
		total.Add(total, balance)
	}
	return total
}

// ComputeBalances folds the records into one net balance per group member.
// Each record credits the payer with the full amount and debits every
// beneficiary amount * weight / totalWeight in exact rational arithmetic, so
// the returned balances sum to precisely zero. The first invalid record
// aborts the fold with no partial result.
func ComputeBalances(group entity.Group, records []entity.ExpenseRecord) (RationalBalances, error) {
	balances := make(RationalBalances, group.Size())
	for _, name := range group.Names() {
		balances[name] = new(big.Rat)
	}

	for i, record := range records {
		if err := record.Validate(); err != nil {
			return nil, recordError(i, record, err)
		}
		if !group.Contains(record.Payer) {
			return nil, recordError(i, record, fmt.Errorf("payer %s: %w", record.Payer, entity.ErrUnknownParticipant))
		}

		names := record.ShareNames()
		totalWeight := new(big.Rat)
		for _, name := range names {
			if !group.Contains(name) {
				return nil, recordError(i, record, fmt.Errorf("beneficiary %s: %w", name, entity.ErrUnknownParticipant))
			}
			totalWeight.Add(totalWeight, record.Shares[name].Rat())
		}

		amount := new(big.Rat).SetInt64(record.Amount)
		balances[record.Payer].Add(balances[record.Payer], amount)

		for _, name := range names {
			weight := record.Shares[name].Rat()
			if weight.Sign() == 0 {
				continue
			}
			share := new(big.Rat).Mul(amount, weight)
			share.Quo(share, totalWeight)
			balances[name].Sub(balances[name], share)
		}
	}

	return balances, nil
}

func recordError(index int, record entity.ExpenseRecord, err error) error {
	if record.Memo != "" {
		return fmt.Errorf("record %d (%s): %w", index+1, record.Memo, err)
	}
	return fmt.Errorf("record %d: %w", index+1, err)
}

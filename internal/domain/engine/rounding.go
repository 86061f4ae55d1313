package engine

import (
	"fmt"
	"math/big"
	"sort"

	"evenly.dev/internal/domain/entity"
)

// RoundBalances converts exact rational balances into integer minor units
// with sign-aware largest-remainder apportionment: floor every balance, then
// hand the missing units one each to the largest fractional remainders (ties
// by name ascending). The result sums to exactly zero and moves no
// participant by a full minor unit or more.
func RoundBalances(raw RationalBalances) (entity.Balances, error) {
	if sum := raw.Sum(); sum.Sign() != 0 {
		return nil, fmt.Errorf("rational balances sum to %s: %w", sum.RatString(), entity.ErrUnbalancedInput)
	}

	type flooredBalance struct {
		name      string
		units     int64
		remainder *big.Rat
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	floored := make([]flooredBalance, 0, len(names))
	var floorSum int64
	for _, name := range names {
		balance := raw[name]
		units := floorRat(balance)
		if !units.IsInt64() {
			return nil, fmt.Errorf("balance for %s overflows minor units", name)
		}
		remainder := new(big.Rat).Sub(balance, new(big.Rat).SetInt(units))
		floored = append(floored, flooredBalance{name: name, units: units.Int64(), remainder: remainder})
		floorSum += units.Int64()
	}

	// Flooring only ever undershoots, so the deficit is how many single
	// units are still owed to the pool. The symmetric branch stays for the
	// impossible surplus case rather than trusting the precondition twice.
	deficit := -floorSum
	if deficit > int64(len(floored)) || -deficit > int64(len(floored)) {
		return nil, fmt.Errorf("flooring left a deficit of %d units across %d participants: %w",
			deficit, len(floored), entity.ErrRoundingInvariant)
	}
	switch {
	case deficit > 0:
		sort.SliceStable(floored, func(i, j int) bool {
			return floored[i].remainder.Cmp(floored[j].remainder) > 0
		})
		for i := int64(0); i < deficit; i++ {
			floored[i].units++
		}
	case deficit < 0:
		sort.SliceStable(floored, func(i, j int) bool {
			return floored[i].remainder.Cmp(floored[j].remainder) < 0
		})
		for i := int64(0); i < -deficit; i++ {
			floored[i].units--
		}
	}

	rounded := make(entity.Balances, len(floored))
	var check int64
	for _, b := range floored {
		rounded[b.name] = b.units
		check += b.units
	}
	if check != 0 {
		return nil, fmt.Errorf("adjusted balances sum to %d: %w", check, entity.ErrRoundingInvariant)
	}
	return rounded, nil
}

// floorRat returns the largest integer not greater than r. big.Int.Div is
// Euclidean, which is a floor for the always-positive denominator.
func floorRat(r *big.Rat) *big.Int {
	return new(big.Int).Div(r.Num(), r.Denom())
}

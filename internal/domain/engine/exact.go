package engine

import (
	"math/bits"

	"evenly.dev/internal/domain/entity"
)

// settleExact searches for the partition of the nonzero accounts into the
// greatest number of zero-sum subsets. Each subset settles independently with
// the greedy matcher in exactly size-1 transactions, because a maximum-count
// partition leaves no proper zero-sum subset inside any part; the plan total
// is therefore n - partitionCount, the provable minimum.
//
// The search is a subset DP over bitmasks, O(3^n) submask visits. Every visit
// costs one step against the budget; when the budget runs out the caller
// falls back to the greedy plan. Reports false when no partition beats the
// single-subset trivial one, since greedy already achieves n-1 there.
func (s *Solver) settleExact(accounts []account) (entity.SettlementPlan, bool) {
	n := len(accounts)
	size := 1 << n

	sums := make([]int64, size)
	for mask := 1; mask < size; mask++ {
		idx := bits.TrailingZeros(uint(mask))
		sums[mask] = sums[mask&(mask-1)] + accounts[idx].units
	}

	// best[mask] is the maximum number of zero-sum subsets exactly covering
	// mask; choice[mask] is the subset holding mask's lowest account, for
	// reconstruction. Pinning that account to one side halves the
	// enumeration and keeps partitions canonical.
	best := make([]int16, size)
	choice := make([]int, size)
	for mask := range best {
		best[mask] = -1
	}
	best[0] = 0

	steps := 0
	for mask := 1; mask < size; mask++ {
		if sums[mask] != 0 {
			continue
		}
		low := mask & -mask
		rest := mask ^ low
		for sub := rest; ; sub = (sub - 1) & rest {
			steps++
			if steps > s.cfg.ExactStepBudget {
				return nil, false
			}
			part := sub | low
			if sums[part] == 0 {
				if count := best[mask^part] + 1; count > best[mask] {
					best[mask] = count
					choice[mask] = part
				}
			}
			if sub == 0 {
				break
			}
		}
	}

	full := size - 1
	if best[full] <= 1 {
		return nil, false
	}

	// Peeling always removes the subset holding the lowest remaining account
	// index, so subsets come out ordered by their smallest participant name.
	plan := make(entity.SettlementPlan, 0, n-int(best[full]))
	for mask := full; mask != 0; mask ^= choice[mask] {
		part := choice[mask]
		subset := make([]account, 0, bits.OnesCount(uint(part)))
		for i := 0; i < n; i++ {
			if part&(1<<i) != 0 {
				subset = append(subset, accounts[i])
			}
		}
		plan = append(plan, settleGreedy(subset)...)
	}
	return plan, true
}

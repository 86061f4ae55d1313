package engine

import (
	"container/heap"
	"fmt"
	"strings"

	"evenly.dev/internal/domain/entity"
)

// Strategy selects how the solver searches for a settlement plan.
type Strategy string

const (
	// StrategyGreedy repeatedly matches the largest creditor against the
	// largest debtor. Never needs more than N-1 transactions for N nonzero
	// balances.
	StrategyGreedy Strategy = "greedy"
	// StrategyExact additionally searches for balance subsets that cancel on
	// their own, within a bounded step budget, and falls back to greedy when
	// the group is too large or the budget runs out.
	StrategyExact Strategy = "exact"
)

const (
	// DefaultExactMaxParticipants bounds the exact search to inputs where the
	// subset enumeration stays well under the default step budget.
	DefaultExactMaxParticipants = 12
	// DefaultExactStepBudget caps the number of subset-partition steps before
	// the exact search gives up.
	DefaultExactStepBudget = 2_000_000

	// exactHardCap is the absolute participant ceiling for the exact search
	// regardless of configuration; the partition search is O(3^n).
	exactHardCap = 16
)

// ParseStrategy maps a configuration string onto a solver strategy. The empty
// string means greedy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyGreedy, "":
		return StrategyGreedy, nil
	case StrategyExact:
		return StrategyExact, nil
	default:
		return "", fmt.Errorf("unknown solver strategy %q", s)
	}
}

// SolverConfig tunes the settlement solver.
type SolverConfig struct {
	Strategy             Strategy
	ExactMaxParticipants int
	ExactStepBudget      int
}

// Solver produces settlement plans from rounded balances.
type Solver struct {
	cfg SolverConfig
}

// NewSolver creates a solver, filling zero config fields with defaults and
// clamping the exact-search size to its hard cap.
func NewSolver(cfg SolverConfig) *Solver {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyGreedy
	}
	if cfg.ExactMaxParticipants <= 0 {
		cfg.ExactMaxParticipants = DefaultExactMaxParticipants
	}
	if cfg.ExactMaxParticipants > exactHardCap {
		cfg.ExactMaxParticipants = exactHardCap
	}
	if cfg.ExactStepBudget <= 0 {
		cfg.ExactStepBudget = DefaultExactStepBudget
	}
	return &Solver{cfg: cfg}
}

// Settle produces an ordered plan that zeroes every balance. Plans are
// deterministic: equal magnitudes break by participant name ascending.
func (s *Solver) Settle(balances entity.Balances) (entity.SettlementPlan, error) {
	if sum := balances.Sum(); sum != 0 {
		return nil, fmt.Errorf("settlement input sums to %d: %w", sum, entity.ErrUnbalancedInput)
	}

	accounts := nonzeroAccounts(balances)
	if len(accounts) == 0 {
		return entity.SettlementPlan{}, nil
	}

	if s.cfg.Strategy == StrategyExact && len(accounts) <= s.cfg.ExactMaxParticipants {
		if plan, ok := s.settleExact(accounts); ok {
			return plan, nil
		}
	}
	return settleGreedy(accounts), nil
}

// account is one nonzero balance tracked by the solver.
type account struct {
	name  string
	units int64
}

// nonzeroAccounts extracts the settled-relevant balances in name order.
func nonzeroAccounts(balances entity.Balances) []account {
	accounts := make([]account, 0, len(balances))
	for _, name := range balances.Names() {
		if units := balances[name]; units != 0 {
			accounts = append(accounts, account{name: name, units: units})
		}
	}
	return accounts
}

// magnitudeHeap pops the largest magnitude first, ties going to the
// lexicographically smaller name so plans are reproducible run to run.
type magnitudeHeap []account

func (h magnitudeHeap) Len() int { return len(h) }

func (h magnitudeHeap) Less(i, j int) bool {
	mi, mj := magnitude(h[i].units), magnitude(h[j].units)
	if mi != mj {
		return mi > mj
	}
	return h[i].name < h[j].name
}

func (h magnitudeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *magnitudeHeap) Push(x any) { *h = append(*h, x.(account)) }

func (h *magnitudeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// settleGreedy matches the largest creditor with the largest debtor until
// every account is flat. The zero-sum input guarantees both heaps empty
// together, after at most len(accounts)-1 transactions.
func settleGreedy(accounts []account) entity.SettlementPlan {
	creditors := &magnitudeHeap{}
	debtors := &magnitudeHeap{}
	for _, acc := range accounts {
		if acc.units > 0 {
			*creditors = append(*creditors, acc)
		} else {
			*debtors = append(*debtors, acc)
		}
	}
	heap.Init(creditors)
	heap.Init(debtors)

	plan := make(entity.SettlementPlan, 0, max(len(accounts)-1, 0))
	for creditors.Len() > 0 && debtors.Len() > 0 {
		creditor := heap.Pop(creditors).(account)
		debtor := heap.Pop(debtors).(account)

		amount := min(creditor.units, -debtor.units)
		plan = append(plan, entity.Transaction{From: debtor.name, To: creditor.name, Amount: amount})

		creditor.units -= amount
		debtor.units += amount
		if creditor.units != 0 {
			heap.Push(creditors, creditor)
		}
		if debtor.units != 0 {
			heap.Push(debtors, debtor)
		}
	}
	return plan
}

func magnitude(units int64) int64 {
	if units < 0 {
		return -units
	}
	return units
}

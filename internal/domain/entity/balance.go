package entity

import "sort"

// Balances maps participant name to net minor units: positive means the
// group owes the participant, negative means the participant owes the group.
type Balances map[string]int64

// Sum returns the aggregate of all balances. A consistent mapping sums to
// zero.
func (b Balances) Sum() int64 {
	var total int64
	for _, units := range b {
		total += units
	}
	return total
}

// Names returns the participant names sorted.
func (b Balances) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

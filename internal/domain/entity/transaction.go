package entity

// Transaction is one settlement payment: From pays To Amount minor units.
// Amount is always positive and From never equals To.
type Transaction struct {
	From   string
	To     string
	Amount int64
}

// SettlementPlan is the ordered list of payments that zeroes every balance.
type SettlementPlan []Transaction

// SettlementReport bundles the rounded balances and the plan for
// presentation. Scale is the number of minor-unit digits.
type SettlementReport struct {
	Scale    int32
	Balances Balances
	Plan     SettlementPlan
}

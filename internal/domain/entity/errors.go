package entity

import "errors"

// Input errors: a record references something the model rejects.
var (
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrInvalidShares      = errors.New("invalid shares")
	ErrNonPositiveAmount  = errors.New("amount must be greater than zero")
)

// Consistency errors. These never fire on valid input; they guard the
// zero-sum invariant instead of silently correcting a drift.
var (
	ErrUnbalancedInput   = errors.New("balances do not sum to zero")
	ErrRoundingInvariant = errors.New("rounded balances do not sum to zero")
)

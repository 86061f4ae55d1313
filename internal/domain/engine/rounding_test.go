package engine

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evenly.dev/internal/domain/entity"
)

func rat(num, den int64) *big.Rat {
	return big.NewRat(num, den)
}

func TestRoundBalances(t *testing.T) {
	tests := []struct {
		name string
		raw  RationalBalances
		want entity.Balances
	}{
		{
			name: "integral balances unchanged",
			raw:  RationalBalances{"alice": rat(5000, 1), "bob": rat(-5000, 1)},
			want: entity.Balances{"alice": 5000, "bob": -5000},
		},
		{
			name: "three way thirds with name tiebreak",
			raw: RationalBalances{
				"alice": rat(20000, 3),
				"bob":   rat(-10000, 3),
				"carol": rat(-10000, 3),
			},
			// All three remainders are 2/3, so the two missing units go to
			// alice and bob by name order.
			want: entity.Balances{"alice": 6667, "bob": -3333, "carol": -3334},
		},
		{
			name: "larger remainder wins over name order",
			raw: RationalBalances{
				"alice": rat(1, 4),
				"bob":   rat(3, 4),
				"carol": rat(-1, 1),
			},
			want: entity.Balances{"alice": 0, "bob": 1, "carol": -1},
		},
		{
			name: "negative halves",
			raw: RationalBalances{
				"alice": rat(1, 1),
				"bob":   rat(-1, 2),
				"carol": rat(-1, 2),
			},
			// Floors are 1, -1, -1; the missing unit goes to bob by name.
			want: entity.Balances{"alice": 1, "bob": 0, "carol": -1},
		},
		{
			name: "all zero",
			raw:  RationalBalances{"alice": rat(0, 1), "bob": rat(0, 1)},
			want: entity.Balances{"alice": 0, "bob": 0},
		},
		{
			name: "empty",
			raw:  RationalBalances{},
			want: entity.Balances{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RoundBalances(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Zero(t, got.Sum(), "rounded balances must sum to zero")
		})
	}
}

func TestRoundBalancesErrorBound(t *testing.T) {
	raw := RationalBalances{
		"alice": rat(20000, 3),
		"bob":   rat(-10000, 3),
		"carol": rat(-10000, 3),
		"dave":  rat(1, 7),
		"erin":  rat(-1, 7),
	}

	got, err := RoundBalances(raw)
	require.NoError(t, err)

	one := rat(1, 1)
	for name, exact := range raw {
		diff := new(big.Rat).Sub(rat(got[name], 1), exact)
		assert.Negative(t, diff.Abs(diff).Cmp(one),
			"participant %s moved a full unit: exact %s, rounded %d", name, exact.RatString(), got[name])
	}
}

func TestRoundBalancesUnbalancedInput(t *testing.T) {
	raw := RationalBalances{"alice": rat(1, 2)}

	got, err := RoundBalances(raw)
	require.ErrorIs(t, err, entity.ErrUnbalancedInput)
	assert.Nil(t, got)
}

func TestRoundBalancesDeterministic(t *testing.T) {
	raw := RationalBalances{
		"alice": rat(20000, 3),
		"bob":   rat(-10000, 3),
		"carol": rat(-10000, 3),
	}

	first, err := RoundBalances(raw)
	require.NoError(t, err)
	second, err := RoundBalances(raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

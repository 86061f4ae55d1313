package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecords(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCSVSourceLoad(t *testing.T) {
	path := writeRecords(t, "records.csv",
		"sponsor,amount,debtors,memo\n"+
			"alice,100.00,\"bob,carol\",dinner\n"+
			"bob,30.00,alice,\n")

	group, records, err := NewCSVSource(path, 2, nil).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob", "carol"}, group.Names())
	require.Len(t, records, 2)

	assert.Equal(t, "alice", records[0].Payer)
	assert.Equal(t, int64(10000), records[0].Amount)
	assert.Equal(t, []string{"alice", "bob", "carol"}, records[0].ShareNames())
	assert.Equal(t, "dinner", records[0].Memo)

	assert.Equal(t, "bob", records[1].Payer)
	assert.Equal(t, int64(3000), records[1].Amount)
	assert.Equal(t, []string{"alice", "bob"}, records[1].ShareNames())
	assert.Empty(t, records[1].Memo)
}

func TestCSVSourceLoadWithoutMemoColumn(t *testing.T) {
	path := writeRecords(t, "records.csv",
		"sponsor,amount,debtors\n"+
			"alice,12.50,bob\n")

	group, records, err := NewCSVSource(path, 2, nil).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob"}, group.Names())
	require.Len(t, records, 1)
	assert.Equal(t, int64(1250), records[0].Amount)
	assert.Empty(t, records[0].Memo)
}

func TestCSVSourceSponsorListedAsDebtor(t *testing.T) {
	path := writeRecords(t, "records.csv",
		"sponsor,amount,debtors\n"+
			"alice,50.00,\"alice,bob\"\n")

	_, records, err := NewCSVSource(path, 2, nil).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, []string{"alice", "bob"}, records[0].ShareNames(),
		"the sponsor's implicit share must not double up")
	assert.True(t, records[0].Shares["alice"].Equal(decimal.NewFromInt(1)))
}

func TestCSVSourceEmptyDebtors(t *testing.T) {
	path := writeRecords(t, "records.csv",
		"sponsor,amount,debtors\n"+
			"alice,9.99,\n")

	_, records, err := NewCSVSource(path, 2, nil).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, []string{"alice"}, records[0].ShareNames())
}

func TestCSVSourceExplicitParticipants(t *testing.T) {
	path := writeRecords(t, "records.csv",
		"sponsor,amount,debtors\n"+
			"alice,10.00,bob\n")

	group, _, err := NewCSVSource(path, 2, []string{"alice", "bob", "carol"}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob", "carol"}, group.Names(),
		"an explicit participant list is the closed set even when unmentioned")
}

func TestCSVSourceScaleZero(t *testing.T) {
	path := writeRecords(t, "records.csv",
		"sponsor,amount,debtors\n"+
			"alice,1200,bob\n")

	_, records, err := NewCSVSource(path, 0, nil).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, int64(1200), records[0].Amount)
}

func TestCSVSourceErrors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "missing required column",
			content:     "payer,amount,debtors\nalice,10.00,bob\n",
			errContains: "missing required columns: sponsor",
		},
		{
			name:        "invalid amount",
			content:     "sponsor,amount,debtors\nalice,abc,bob\n",
			errContains: "line 2",
		},
		{
			name:        "amount beyond scale",
			content:     "sponsor,amount,debtors\nalice,10.123,bob\n",
			errContains: "line 2",
		},
		{
			name:        "empty sponsor",
			content:     "sponsor,amount,debtors\n,10.00,bob\n",
			errContains: "sponsor must not be empty",
		},
		{
			name:        "short row",
			content:     "sponsor,amount,debtors\nalice,10.00\n",
			errContains: "line 2",
		},
		{
			name:        "empty file",
			content:     "",
			errContains: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRecords(t, "records.csv", tt.content)

			_, _, err := NewCSVSource(path, 2, nil).Load(context.Background())
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestCSVSourceMissingFile(t *testing.T) {
	source := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"), 2, nil)

	_, _, err := source.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "open records file")
}

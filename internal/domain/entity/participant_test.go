package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroup(t *testing.T) {
	tests := []struct {
		name      string
		input     []string
		wantNames []string
		wantErr   bool
	}{
		{
			name:      "sorts members",
			input:     []string{"carol", "alice", "bob"},
			wantNames: []string{"alice", "bob", "carol"},
		},
		{
			name:      "deduplicates",
			input:     []string{"alice", "bob", "alice"},
			wantNames: []string{"alice", "bob"},
		},
		{
			name:      "trims whitespace",
			input:     []string{" alice ", "bob"},
			wantNames: []string{"alice", "bob"},
		},
		{
			name:      "empty group",
			input:     nil,
			wantNames: []string{},
		},
		{
			name:    "rejects empty name",
			input:   []string{"alice", ""},
			wantErr: true,
		},
		{
			name:    "rejects blank name",
			input:   []string{"alice", "   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, err := NewGroup(tt.input...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, group.Names())
			assert.Equal(t, len(tt.wantNames), group.Size())
		})
	}
}

func TestGroup_Contains(t *testing.T) {
	group, err := NewGroup("alice", "bob")
	require.NoError(t, err)

	assert.True(t, group.Contains("alice"))
	assert.True(t, group.Contains("bob"))
	assert.False(t, group.Contains("carol"))
	assert.False(t, group.Contains(""))
}

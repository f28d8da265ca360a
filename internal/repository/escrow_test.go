package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscrowRepository_Balances(t *testing.T) {
	repo := NewEscrowRepository()

	assert.Equal(t, uint64(0), repo.GetBalance(1, "0xa"))

	repo.SetBalance(1, "0xa", 50)
	assert.Equal(t, uint64(50), repo.GetBalance(1, "0xa"))

	repo.SetBalance(1, "0xa", 0)
	assert.Equal(t, uint64(0), repo.GetBalance(1, "0xa"))
}

func TestEscrowRepository_CreditAccumulates(t *testing.T) {
	repo := NewEscrowRepository()

	repo.Credit(1, "0xa", 50)
	repo.Credit(1, "0xa", 70)

	assert.Equal(t, uint64(120), repo.GetBalance(1, "0xa"))
}

func TestEscrowRepository_EntriesScopedToAsset(t *testing.T) {
	repo := NewEscrowRepository()

	repo.SetBalance(1, "0xa", 50)
	repo.SetBalance(1, "0xb", 60)
	repo.SetBalance(2, "0xa", 70)

	entries := repo.GetEntries(1)
	require.Len(t, entries, 2)
	assert.Equal(t, "0xa", entries[0].Bidder)
	assert.Equal(t, uint64(50), entries[0].Balance)
	assert.Equal(t, "0xb", entries[1].Bidder)
}

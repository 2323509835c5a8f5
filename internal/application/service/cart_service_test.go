package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	"github.com/kanhaiyya/billing-api/pkg/apperror"
)

func TestCartSetQuantityKeepsInsertionOrder(t *testing.T) {
	carts := NewCartService()

	require.NoError(t, carts.SetQuantity("5", "Samosa", 2))
	require.NoError(t, carts.SetQuantity("5", "Chai", 1))
	require.NoError(t, carts.SetQuantity("5", "Vada Pav", 3))

	snapshot := carts.Snapshot("5")
	require.Len(t, snapshot.Lines, 3)
	assert.Equal(t, "Samosa", snapshot.Lines[0].ItemName)
	assert.Equal(t, "Chai", snapshot.Lines[1].ItemName)
	assert.Equal(t, "Vada Pav", snapshot.Lines[2].ItemName)
}

func TestCartSetQuantityLastWriteWins(t *testing.T) {
	carts := NewCartService()

	require.NoError(t, carts.SetQuantity("5", "Samosa", 2))
	require.NoError(t, carts.SetQuantity("5", "Chai", 1))
	require.NoError(t, carts.SetQuantity("5", "Samosa", 7))

	snapshot := carts.Snapshot("5")
	require.Len(t, snapshot.Lines, 2)
	// Updating a line keeps its original position.
	assert.Equal(t, entity.CartLine{ItemName: "Samosa", Quantity: 7}, snapshot.Lines[0])
	assert.Equal(t, entity.CartLine{ItemName: "Chai", Quantity: 1}, snapshot.Lines[1])
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	carts := NewCartService()

	require.NoError(t, carts.SetQuantity("5", "Samosa", 2))
	require.NoError(t, carts.SetQuantity("5", "Chai", 1))
	require.NoError(t, carts.SetQuantity("5", "Samosa", 0))

	snapshot := carts.Snapshot("5")
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, "Chai", snapshot.Lines[0].ItemName)

	// Removing an absent line is a no-op, on known and unknown tables alike.
	require.NoError(t, carts.SetQuantity("5", "Samosa", 0))
	require.NoError(t, carts.SetQuantity("99", "Samosa", 0))
	assert.Len(t, carts.Snapshot("5").Lines, 1)
	assert.True(t, carts.Snapshot("99").Empty())
}

func TestCartSetQuantityRejectsNegative(t *testing.T) {
	carts := NewCartService()
	require.NoError(t, carts.SetQuantity("5", "Samosa", 2))

	err := carts.SetQuantity("5", "Samosa", -1)
	assert.ErrorIs(t, err, apperror.ErrInvalidQuantity)

	// The failed write leaves the cart untouched.
	snapshot := carts.Snapshot("5")
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 2, snapshot.Lines[0].Quantity)
}

func TestCartSnapshotIsDetached(t *testing.T) {
	carts := NewCartService()
	require.NoError(t, carts.SetQuantity("5", "Samosa", 2))

	snapshot := carts.Snapshot("5")
	require.NoError(t, carts.SetQuantity("5", "Samosa", 9))
	require.NoError(t, carts.SetQuantity("5", "Chai", 1))

	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 2, snapshot.Lines[0].Quantity)
}

func TestCartTablesAreIndependent(t *testing.T) {
	carts := NewCartService()
	require.NoError(t, carts.SetQuantity("1", "Samosa", 1))
	require.NoError(t, carts.SetQuantity("2", "Chai", 4))

	carts.Clear("1")

	assert.True(t, carts.Snapshot("1").Empty())
	snapshot := carts.Snapshot("2")
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 4, snapshot.Lines[0].Quantity)
}

func TestCartClearIsIdempotent(t *testing.T) {
	carts := NewCartService()
	require.NoError(t, carts.SetQuantity("5", "Samosa", 2))

	carts.Clear("5")
	carts.Clear("5")
	carts.Clear("never-seen")

	assert.True(t, carts.Snapshot("5").Empty())
}

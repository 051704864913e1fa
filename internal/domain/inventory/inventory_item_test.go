package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/shared/valueobject"
)

func newTestItem(t *testing.T, received int64) *InventoryItem {
	t.Helper()
	item, err := NewInventoryItem("Cement 50kg", "2026-01-15", valueobject.NewMoneyGHSFromFloat(85.00), received, "kwame")
	require.NoError(t, err)
	return item
}

func TestNewInventoryItem(t *testing.T) {
	t.Run("creates item with nothing issued", func(t *testing.T) {
		item := newTestItem(t, 40)
		assert.Equal(t, "Cement 50kg", item.ItemName)
		assert.Equal(t, int64(40), item.QuantityReceived)
		assert.Equal(t, int64(0), item.QuantityIssued)
		assert.Equal(t, int64(40), item.QuantityRemaining)
		assert.Equal(t, "3400.00", item.TotalCost.StringFixed(2))
		assert.NotEqual(t, "", item.ID.String())
	})

	t.Run("trims item name", func(t *testing.T) {
		item, err := NewInventoryItem("  Iron Rods  ", "2026-01-15", valueobject.NewMoneyGHSFromFloat(30), 5, "kwame")
		require.NoError(t, err)
		assert.Equal(t, "Iron Rods", item.ItemName)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewInventoryItem("   ", "2026-01-15", valueobject.NewMoneyGHSFromFloat(10), 5, "kwame")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "item name")
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewInventoryItem("Nails", "2026-01-15", valueobject.NewMoneyGHSFromFloat(10), 0, "kwame")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "positive")
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		_, err := NewInventoryItem("Nails", "2026-01-15", valueobject.ZeroGHS(), 5, "kwame")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unit price")
	})
}

func TestInventoryItemUpdate(t *testing.T) {
	t.Run("re-derives remaining from issued", func(t *testing.T) {
		item := newTestItem(t, 40)
		require.NoError(t, item.Reserve(15))

		err := item.Update(50, valueobject.NewMoneyGHSFromFloat(90))
		require.NoError(t, err)
		assert.Equal(t, int64(50), item.QuantityReceived)
		assert.Equal(t, int64(15), item.QuantityIssued)
		assert.Equal(t, int64(35), item.QuantityRemaining)
		assert.Equal(t, "4500.00", item.TotalCost.StringFixed(2))
	})

	t.Run("rejects received below issued", func(t *testing.T) {
		item := newTestItem(t, 40)
		require.NoError(t, item.Reserve(30))

		err := item.Update(20, valueobject.NewMoneyGHSFromFloat(90))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("rejects non-positive inputs", func(t *testing.T) {
		item := newTestItem(t, 40)
		assert.Error(t, item.Update(0, valueobject.NewMoneyGHSFromFloat(90)))
		assert.Error(t, item.Update(10, valueobject.ZeroGHS()))
	})
}

func TestInventoryItemReserve(t *testing.T) {
	t.Run("moves quantity from remaining to issued", func(t *testing.T) {
		item := newTestItem(t, 40)
		require.NoError(t, item.Reserve(25))
		assert.Equal(t, int64(25), item.QuantityIssued)
		assert.Equal(t, int64(15), item.QuantityRemaining)
	})

	t.Run("allows reserving exactly the remaining stock", func(t *testing.T) {
		item := newTestItem(t, 40)
		require.NoError(t, item.Reserve(40))
		assert.Equal(t, int64(0), item.QuantityRemaining)
	})

	t.Run("fails when quantity exceeds remaining", func(t *testing.T) {
		item := newTestItem(t, 10)
		err := item.Reserve(11)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, int64(10), item.QuantityRemaining)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		item := newTestItem(t, 10)
		assert.Error(t, item.Reserve(0))
		assert.Error(t, item.Reserve(-3))
	})
}

func TestInventoryItemRelease(t *testing.T) {
	t.Run("returns quantity to remaining", func(t *testing.T) {
		item := newTestItem(t, 40)
		require.NoError(t, item.Reserve(25))
		require.NoError(t, item.Release(10))
		assert.Equal(t, int64(15), item.QuantityIssued)
		assert.Equal(t, int64(25), item.QuantityRemaining)
	})

	t.Run("fails when releasing more than issued", func(t *testing.T) {
		item := newTestItem(t, 40)
		require.NoError(t, item.Reserve(5))

		err := item.Release(6)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVENTORY_CORRUPTION", domainErr.Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		item := newTestItem(t, 40)
		assert.Error(t, item.Release(0))
	})
}

func TestInventoryItemRoundTrip(t *testing.T) {
	// reserving then releasing the same quantity restores the item exactly
	item := newTestItem(t, 40)
	require.NoError(t, item.Reserve(18))
	require.NoError(t, item.Release(18))
	assert.Equal(t, int64(0), item.QuantityIssued)
	assert.Equal(t, int64(40), item.QuantityRemaining)
}

func TestInventoryItemHasRemaining(t *testing.T) {
	item := newTestItem(t, 10)
	assert.True(t, item.HasRemaining(10))
	assert.False(t, item.HasRemaining(11))
}

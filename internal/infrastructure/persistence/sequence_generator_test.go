package persistence

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rosemer/ledger/internal/domain/trade"
)

func TestSqliteTransactionIDGeneratorSequential(t *testing.T) {
	db := setupTestDB(t)
	gen := NewSqliteTransactionIDGenerator(db)
	ctx := context.Background()

	first, err := gen.NextID(ctx, "2026-01-15")
	require.NoError(t, err)
	second, err := gen.NextID(ctx, "2026-01-15")
	require.NoError(t, err)
	third, err := gen.NextID(ctx, "2026-01-15")
	require.NoError(t, err)

	assert.Equal(t, "INV-20260115-00001", first)
	assert.Equal(t, "INV-20260115-00002", second)
	assert.Equal(t, "INV-20260115-00003", third)
}

func TestSqliteTransactionIDGeneratorIndependentDates(t *testing.T) {
	db := setupTestDB(t)
	gen := NewSqliteTransactionIDGenerator(db)
	ctx := context.Background()

	_, err := gen.NextID(ctx, "2026-01-15")
	require.NoError(t, err)
	_, err = gen.NextID(ctx, "2026-01-15")
	require.NoError(t, err)

	// A new trading date starts over at one
	id, err := gen.NextID(ctx, "2026-01-16")
	require.NoError(t, err)
	assert.Equal(t, "INV-20260116-00001", id)
}

func TestSqliteTransactionIDGeneratorConcurrentCallers(t *testing.T) {
	// a shared file database so every goroutine contends on the same
	// sequence row
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "ledger.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&trade.TransactionSequence{}))

	gen := NewSqliteTransactionIDGenerator(db)
	ctx := context.Background()

	const callers = 30
	ids := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := gen.NextID(ctx, "2026-01-15")
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, callers)
	for id := range ids {
		assert.False(t, seen[id], "id %s issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, callers)
}

func TestSqliteTransactionIDGeneratorValidFormat(t *testing.T) {
	db := setupTestDB(t)
	gen := NewSqliteTransactionIDGenerator(db)

	id, err := gen.NextID(context.Background(), "2026-01-15")
	require.NoError(t, err)
	assert.True(t, trade.IsValidTransactionID(id))
}

func TestSqliteTransactionIDGeneratorRequiresDate(t *testing.T) {
	db := setupTestDB(t)
	gen := NewSqliteTransactionIDGenerator(db)

	_, err := gen.NextID(context.Background(), "")
	assert.Error(t, err)
}

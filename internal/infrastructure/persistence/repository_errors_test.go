package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rosemer/ledger/internal/domain/shared"
)

// newMockGormDB opens GORM over a mocked SQL connection for driving
// error paths that an in-memory database cannot produce.
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	mock.ExpectQuery(`select sqlite_version\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"sqlite_version()"}).AddRow("3.45.1"))

	db, err := gorm.Open(sqlite.Dialector{Conn: mockDB}, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestGormTransactionRepositoryPropagatesDriverError(t *testing.T) {
	db, mock := newMockGormDB(t)
	repo := NewGormTransactionRepository(db)

	driverErr := errors.New("disk I/O error")
	mock.ExpectQuery(`SELECT \* FROM .transactions.`).WillReturnError(driverErr)

	_, err := repo.FindByTransactionID(context.Background(), "INV-20260115-00001")
	assert.ErrorIs(t, err, driverErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormInventoryItemRepositoryPropagatesDriverError(t *testing.T) {
	db, mock := newMockGormDB(t)
	repo := NewGormInventoryItemRepository(db)

	driverErr := errors.New("disk I/O error")
	mock.ExpectQuery(`SELECT count\(\*\) FROM .inventory_items.`).WillReturnError(driverErr)

	_, err := repo.ExistsByName(context.Background(), "Cement 50kg")
	assert.ErrorIs(t, err, driverErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSqliteTransactionIDGeneratorMapsLockTimeout(t *testing.T) {
	db, mock := newMockGormDB(t)
	gen := NewSqliteTransactionIDGenerator(db)

	mock.ExpectQuery(`INSERT INTO transaction_sequences`).
		WillReturnError(errors.New("database is locked (5) (SQLITE_BUSY)"))

	_, err := gen.NextID(context.Background(), "2026-01-15")
	assert.ErrorIs(t, err, shared.ErrConcurrencyTimeout)
	assert.NoError(t, mock.ExpectationsWereMet())
}

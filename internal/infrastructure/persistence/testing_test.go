package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rosemer/ledger/internal/domain/finance"
	"github.com/rosemer/ledger/internal/domain/identity"
	"github.com/rosemer/ledger/internal/domain/inventory"
	"github.com/rosemer/ledger/internal/domain/partner"
	"github.com/rosemer/ledger/internal/domain/shared/valueobject"
	"github.com/rosemer/ledger/internal/domain/trade"
	"github.com/rosemer/ledger/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&inventory.InventoryItem{},
		&models.TransactionModel{},
		&trade.TransactionSequence{},
		&finance.Payment{},
		&partner.Customer{},
		&identity.User{},
	)
	require.NoError(t, err)

	return db
}

func newStoredItem(t *testing.T, name string, quantity int64) *inventory.InventoryItem {
	t.Helper()

	item, err := inventory.NewInventoryItem(name, "2026-01-15", valueobject.NewMoneyGHSFromFloat(85), quantity, "kwame")
	require.NoError(t, err)
	return item
}

func newStoredTransaction(t *testing.T, transactionID string) *trade.Transaction {
	t.Helper()

	customer, err := trade.NewCustomerDetails("Ama Serwaa", "Kumasi", "0244123456")
	require.NoError(t, err)

	tx, err := trade.NewTransaction(transactionID, customer, "2026-01-15", "2026-01-15 09:30:00", "kwame")
	require.NoError(t, err)

	cement, err := trade.NewLineItem("Cement 50kg", valueobject.NewMoneyGHSFromFloat(85), 10, valueobject.ZeroGHS())
	require.NoError(t, err)
	rods, err := trade.NewLineItem("Iron Rods", valueobject.NewMoneyGHSFromFloat(25), 5, valueobject.NewMoneyGHSFromFloat(20))
	require.NoError(t, err)

	tx.AddItem(cement)
	tx.AddItem(rods)
	return tx
}

func newStoredPayment(t *testing.T, transactionID, entryTime string, amount float64) *finance.Payment {
	t.Helper()

	payment, err := finance.NewPayment(
		transactionID, "Ama Serwaa", "Cement 50kg, Iron Rods",
		valueobject.NewMoneyGHSFromFloat(amount), finance.PaymentModeCash, finance.ChequeDetails{},
		entryTime, "2026-01-15", "kwame",
	)
	require.NoError(t, err)
	return payment
}

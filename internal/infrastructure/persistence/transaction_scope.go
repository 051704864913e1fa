package persistence

import (
	"context"

	"gorm.io/gorm"

	appfinance "github.com/rosemer/ledger/internal/application/finance"
	apptrade "github.com/rosemer/ledger/internal/application/trade"
	"github.com/rosemer/ledger/internal/domain/finance"
	"github.com/rosemer/ledger/internal/domain/inventory"
	"github.com/rosemer/ledger/internal/domain/partner"
	"github.com/rosemer/ledger/internal/domain/trade"
)

// TradeTransactionScope implements the sale-facing TransactionScope
// using GORM transactions. Every repository handed to the callback is
// bound to the same database transaction.
type TradeTransactionScope struct {
	db *gorm.DB
}

// NewTradeTransactionScope creates a new TradeTransactionScope
func NewTradeTransactionScope(db *gorm.DB) *TradeTransactionScope {
	return &TradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
func (s *TradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&tradeTransactionalRepositories{tx: tx})
	})
}

type tradeTransactionalRepositories struct {
	tx *gorm.DB
}

// InventoryRepo returns the inventory item repository scoped to the current transaction.
func (r *tradeTransactionalRepositories) InventoryRepo() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

// TransactionRepo returns the sale transaction repository scoped to the current transaction.
func (r *tradeTransactionalRepositories) TransactionRepo() trade.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// PaymentRepo returns the payment repository scoped to the current transaction.
func (r *tradeTransactionalRepositories) PaymentRepo() finance.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// CustomerRepo returns the customer directory repository scoped to the current transaction.
func (r *tradeTransactionalRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// FinanceTransactionScope implements the payment-facing
// TransactionScope using GORM transactions.
type FinanceTransactionScope struct {
	db *gorm.DB
}

// NewFinanceTransactionScope creates a new FinanceTransactionScope
func NewFinanceTransactionScope(db *gorm.DB) *FinanceTransactionScope {
	return &FinanceTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
func (s *FinanceTransactionScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&financeTransactionalRepositories{tx: tx})
	})
}

type financeTransactionalRepositories struct {
	tx *gorm.DB
}

// TransactionRepo returns the sale transaction repository scoped to the current transaction.
func (r *financeTransactionalRepositories) TransactionRepo() trade.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// PaymentRepo returns the payment repository scoped to the current transaction.
func (r *financeTransactionalRepositories) PaymentRepo() finance.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

var _ apptrade.TransactionScope = (*TradeTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*tradeTransactionalRepositories)(nil)
var _ appfinance.TransactionScope = (*FinanceTransactionScope)(nil)
var _ appfinance.TransactionalRepositories = (*financeTransactionalRepositories)(nil)

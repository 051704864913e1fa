package trade

import (
	"context"

	"github.com/rosemer/ledger/internal/domain/finance"
	"github.com/rosemer/ledger/internal/domain/inventory"
	"github.com/rosemer/ledger/internal/domain/partner"
	"github.com/rosemer/ledger/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a
// sale touches. All repository operations inside Execute share one
// database transaction and commit or roll back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction. An error from fn
	// rolls everything back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories scoped to the
// current transaction
type TransactionalRepositories interface {
	InventoryRepo() inventory.InventoryItemRepository
	TransactionRepo() trade.TransactionRepository
	PaymentRepo() finance.PaymentRepository
	CustomerRepo() partner.CustomerRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for testing.
type NoOpTransactionScope struct {
	inventoryRepo   inventory.InventoryItemRepository
	transactionRepo trade.TransactionRepository
	paymentRepo     finance.PaymentRepository
	customerRepo    partner.CustomerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	inventoryRepo inventory.InventoryItemRepository,
	transactionRepo trade.TransactionRepository,
	paymentRepo finance.PaymentRepository,
	customerRepo partner.CustomerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		inventoryRepo:   inventoryRepo,
		transactionRepo: transactionRepo,
		paymentRepo:     paymentRepo,
		customerRepo:    customerRepo,
	}
}

// Execute implements TransactionScope
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InventoryRepo implements TransactionalRepositories
func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryItemRepository {
	return s.inventoryRepo
}

// TransactionRepo implements TransactionalRepositories
func (s *NoOpTransactionScope) TransactionRepo() trade.TransactionRepository {
	return s.transactionRepo
}

// PaymentRepo implements TransactionalRepositories
func (s *NoOpTransactionScope) PaymentRepo() finance.PaymentRepository {
	return s.paymentRepo
}

// CustomerRepo implements TransactionalRepositories
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository {
	return s.customerRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

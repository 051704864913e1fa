package finance

import (
	"context"

	"github.com/rosemer/ledger/internal/domain/finance"
	"github.com/rosemer/ledger/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a
// payment touches
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories scoped to the
// current transaction
type TransactionalRepositories interface {
	TransactionRepo() trade.TransactionRepository
	PaymentRepo() finance.PaymentRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for testing.
type NoOpTransactionScope struct {
	transactionRepo trade.TransactionRepository
	paymentRepo     finance.PaymentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(transactionRepo trade.TransactionRepository, paymentRepo finance.PaymentRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		transactionRepo: transactionRepo,
		paymentRepo:     paymentRepo,
	}
}

// Execute implements TransactionScope
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// TransactionRepo implements TransactionalRepositories
func (s *NoOpTransactionScope) TransactionRepo() trade.TransactionRepository {
	return s.transactionRepo
}

// PaymentRepo implements TransactionalRepositories
func (s *NoOpTransactionScope) PaymentRepo() finance.PaymentRepository {
	return s.paymentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

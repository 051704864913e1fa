package trade

import (
	"context"

	"github.com/rosemer/ledger/internal/domain/shared"
)

// TransactionRepository defines persistence for sale transactions
type TransactionRepository interface {
	FindByTransactionID(ctx context.Context, transactionID string) (*Transaction, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Transaction, error)
	FindByDate(ctx context.Context, transactionDate string) ([]Transaction, error)
	FindDebtors(ctx context.Context) ([]Transaction, error)
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)
	Save(ctx context.Context, transaction *Transaction) error
	Delete(ctx context.Context, transactionID string) error
}

package finance

import "context"

// PaymentRepository defines persistence for payment rows
type PaymentRepository interface {
	FindByEntryKey(ctx context.Context, transactionID, entryDateAndTime string) (*Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, transactionID, entryDateAndTime string) error
	DeleteByTransactionID(ctx context.Context, transactionID string) error
	UpdateItemName(ctx context.Context, transactionID, itemName string) error
}

package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rosemer/ledger/internal/domain/finance"
	"github.com/rosemer/ledger/internal/domain/shared"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByEntryKey finds a payment by transaction identifier and entry timestamp
func (r *GormPaymentRepository) FindByEntryKey(ctx context.Context, transactionID, entryDateAndTime string) (*finance.Payment, error) {
	var payment finance.Payment
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ? AND entry_date_and_time = ?", transactionID, entryDateAndTime).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByTransactionID finds all payments recorded against a transaction
func (r *GormPaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) ([]finance.Payment, error) {
	var payments []finance.Payment
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("entry_date_and_time ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// Delete removes a single payment entry
func (r *GormPaymentRepository) Delete(ctx context.Context, transactionID, entryDateAndTime string) error {
	result := r.db.WithContext(ctx).
		Where("transaction_id = ? AND entry_date_and_time = ?", transactionID, entryDateAndTime).
		Delete(&finance.Payment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByTransactionID removes every payment recorded against a
// transaction. Deleting zero rows is not an error because fully unpaid
// transactions have no payment history.
func (r *GormPaymentRepository) DeleteByTransactionID(ctx context.Context, transactionID string) error {
	return r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Delete(&finance.Payment{}).Error
}

// UpdateItemName rewrites the item name snapshot on every payment of a transaction
func (r *GormPaymentRepository) UpdateItemName(ctx context.Context, transactionID, itemName string) error {
	return r.db.WithContext(ctx).
		Model(&finance.Payment{}).
		Where("transaction_id = ?", transactionID).
		Update("item_name", itemName).Error
}

var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)

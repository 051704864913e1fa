package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/trade"
	"github.com/rosemer/ledger/internal/infrastructure/persistence/models"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByTransactionID finds a transaction by its ledger identifier
func (r *GormTransactionRepository) FindByTransactionID(ctx context.Context, transactionID string) (*trade.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).First(&model, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds all transactions matching the filter
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("transaction_id LIKE ? OR customer_name LIKE ? OR customer_contact LIKE ?",
			pattern, pattern, pattern)
	}
	query = applyFilter(query, filter, "created_at")

	var transactionModels []models.TransactionModel
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(transactionModels)
}

// FindByDate finds all transactions recorded for the given trading date
func (r *GormTransactionRepository) FindByDate(ctx context.Context, transactionDate string) ([]trade.Transaction, error) {
	var transactionModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("transaction_date = ?", transactionDate).
		Order("transaction_id ASC").
		Find(&transactionModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(transactionModels)
}

// FindDebtors finds all transactions that still carry debt
func (r *GormTransactionRepository) FindDebtors(ctx context.Context) ([]trade.Transaction, error) {
	var transactionModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("remaining_debt > 0").
		Order("transaction_date ASC, transaction_id ASC").
		Find(&transactionModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(transactionModels)
}

// ExistsByTransactionID checks whether a transaction with the given identifier exists
func (r *GormTransactionRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, transaction *trade.Transaction) error {
	model := models.TransactionModelFromDomain(transaction)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a transaction
func (r *GormTransactionRepository) Delete(ctx context.Context, transactionID string) error {
	result := r.db.WithContext(ctx).Delete(&models.TransactionModel{}, "transaction_id = ?", transactionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormTransactionRepository) toDomainSlice(transactionModels []models.TransactionModel) ([]trade.Transaction, error) {
	transactions := make([]trade.Transaction, len(transactionModels))
	for i := range transactionModels {
		transaction, err := transactionModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		transactions[i] = *transaction
	}
	return transactions, nil
}

var _ trade.TransactionRepository = (*GormTransactionRepository)(nil)

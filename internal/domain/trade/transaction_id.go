package trade

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// TransactionIDGenerator hands out date-scoped sequential transaction IDs.
// IDs must be unique across concurrent callers; gaps left by failed sales
// are acceptable.
type TransactionIDGenerator interface {
	NextID(ctx context.Context, transactionDate string) (string, error)
}

// TransactionSequence tracks the last sequence number issued per date
type TransactionSequence struct {
	Date         string `gorm:"primaryKey"`
	LastSequence int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (TransactionSequence) TableName() string {
	return "transaction_sequences"
}

var transactionIDPattern = regexp.MustCompile(`^INV-\d{8}-\d{5}$`)

// FormatTransactionID renders an ID such as INV-20260115-00001 from a
// 2006-01-02 date and a sequence number
func FormatTransactionID(transactionDate string, sequence int64) string {
	datePart := strings.ReplaceAll(transactionDate, "-", "")
	return fmt.Sprintf("INV-%s-%05d", datePart, sequence)
}

// IsValidTransactionID reports whether id matches the generated format
func IsValidTransactionID(id string) bool {
	return transactionIDPattern.MatchString(id)
}

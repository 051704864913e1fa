package persistence

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/trade"
)

// SqliteTransactionIDGenerator issues date-scoped sequential transaction
// identifiers. Each trading date owns an independent counter starting at
// one. The increment is a single upsert statement, so concurrent callers
// can never observe the same sequence number.
type SqliteTransactionIDGenerator struct {
	db *gorm.DB
}

// NewSqliteTransactionIDGenerator creates a new SqliteTransactionIDGenerator
func NewSqliteTransactionIDGenerator(db *gorm.DB) *SqliteTransactionIDGenerator {
	return &SqliteTransactionIDGenerator{db: db}
}

// NextID claims the next sequence number for the given trading date and
// formats it as a transaction identifier.
func (g *SqliteTransactionIDGenerator) NextID(ctx context.Context, transactionDate string) (string, error) {
	if transactionDate == "" {
		return "", shared.NewDomainError("INVALID_INPUT", "transaction date is required")
	}

	var sequence int64
	err := g.db.WithContext(ctx).Raw(
		`INSERT INTO transaction_sequences (date, last_sequence) VALUES (?, 1)
		 ON CONFLICT(date) DO UPDATE SET last_sequence = last_sequence + 1
		 RETURNING last_sequence`,
		transactionDate,
	).Scan(&sequence).Error
	if err != nil {
		if isLockTimeout(err) {
			return "", fmt.Errorf("%w: could not claim a transaction sequence for %s", shared.ErrConcurrencyTimeout, transactionDate)
		}
		return "", fmt.Errorf("claim transaction sequence for %s: %w", transactionDate, err)
	}

	return trade.FormatTransactionID(transactionDate, sequence), nil
}

// isLockTimeout reports whether the error is SQLite giving up on a
// locked database after the busy timeout expired.
func isLockTimeout(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}

var _ trade.TransactionIDGenerator = (*SqliteTransactionIDGenerator)(nil)

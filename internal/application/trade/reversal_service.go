package trade

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rosemer/ledger/internal/domain/shared"
)

// ReversalService undoes whole transactions and single payments
type ReversalService struct {
	scope    TransactionScope
	gate     AdminGate
	audit    shared.AuditLog
	validate *validator.Validate
	logger   *zap.Logger
}

// NewReversalService creates a new ReversalService
func NewReversalService(scope TransactionScope, gate AdminGate, audit shared.AuditLog, logger *zap.Logger) *ReversalService {
	return &ReversalService{
		scope:    scope,
		gate:     gate,
		audit:    audit,
		validate: validator.New(),
		logger:   logger,
	}
}

// ReverseTransaction releases every line's stock back to inventory,
// deletes all payment rows for the transaction and finally the
// transaction itself. Everything happens in one database transaction.
func (s *ReversalService) ReverseTransaction(ctx context.Context, req ReverseTransactionRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, err.Error())
	}
	if err := s.gate.RequireAdmin(ctx, req.AdminUsername, req.AdminPassword); err != nil {
		return err
	}

	var customerName string
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		tx, err := repos.TransactionRepo().FindByTransactionID(ctx, req.TransactionID)
		if err != nil {
			return err
		}
		customerName = tx.Customer.Name

		for _, line := range tx.Items {
			item, err := repos.InventoryRepo().FindByName(ctx, line.ProductName)
			if err != nil {
				return fmt.Errorf("item %q: %w", line.ProductName, err)
			}
			if err := item.Release(line.Quantity); err != nil {
				return err
			}
			if err := repos.InventoryRepo().Save(ctx, item); err != nil {
				return err
			}
		}

		if err := repos.PaymentRepo().DeleteByTransactionID(ctx, req.TransactionID); err != nil {
			return err
		}
		return repos.TransactionRepo().Delete(ctx, req.TransactionID)
	})
	if err != nil {
		return err
	}

	s.appendAudit(ctx, fmt.Sprintf("%s reversed transaction %s for %s",
		req.AdminUsername, req.TransactionID, customerName))
	s.logger.Info("transaction reversed",
		zap.String("transaction_id", req.TransactionID),
		zap.String("customer", customerName))
	return nil
}

// ReversePayment deletes one payment row, identified by transaction ID
// and entry timestamp, and restores the debt it had settled.
func (s *ReversalService) ReversePayment(ctx context.Context, req ReversePaymentRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, err.Error())
	}
	if err := s.gate.RequireAdmin(ctx, req.AdminUsername, req.AdminPassword); err != nil {
		return err
	}

	var reversedAmount string
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		payment, err := repos.PaymentRepo().FindByEntryKey(ctx, req.TransactionID, req.EntryDateAndTime)
		if err != nil {
			return err
		}
		tx, err := repos.TransactionRepo().FindByTransactionID(ctx, req.TransactionID)
		if err != nil {
			return err
		}

		if payment.AmountPaid.IsPositive() {
			if err := tx.ReverseAppliedPayment(payment.AmountPaid); err != nil {
				return err
			}
			if err := repos.TransactionRepo().Save(ctx, tx); err != nil {
				return err
			}
		}
		reversedAmount = payment.AmountPaid.StringFixed(2)

		return repos.PaymentRepo().Delete(ctx, req.TransactionID, req.EntryDateAndTime)
	})
	if err != nil {
		return err
	}

	s.appendAudit(ctx, fmt.Sprintf("%s reversed payment of GHS %s on transaction %s",
		req.AdminUsername, reversedAmount, req.TransactionID))
	s.logger.Info("payment reversed",
		zap.String("transaction_id", req.TransactionID),
		zap.String("entry_time", req.EntryDateAndTime),
		zap.String("amount", reversedAmount))
	return nil
}

func (s *ReversalService) appendAudit(ctx context.Context, text string) {
	if err := s.audit.Append(ctx, text); err != nil {
		s.logger.Warn("failed to append audit entry", zap.Error(err))
	}
}

package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rosemer/ledger/internal/domain/finance"
	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/shared/valueobject"
)

const entryTimeLayout = "2006-01-02 15:04:05"

// AdminGate checks credentials and rejects callers without the
// administrator role
type AdminGate interface {
	RequireAdmin(ctx context.Context, username, password string) error
}

// PaymentService settles and adjusts payments against transactions
type PaymentService struct {
	scope    TransactionScope
	gate     AdminGate
	audit    shared.AuditLog
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(scope TransactionScope, gate AdminGate, audit shared.AuditLog, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		scope:    scope,
		gate:     gate,
		audit:    audit,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// ApplyPayment credits a payment against the transaction's debt. An
// amount above the remaining debt is clamped to it; the clamp is logged
// and reported in the response. A transaction with no remaining debt
// rejects further payments rather than recording a zero-amount row.
func (s *PaymentService) ApplyPayment(ctx context.Context, req ApplyPaymentRequest) (*ApplyPaymentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidInput, err.Error())
	}
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "payment amount must be positive")
	}
	mode := finance.PaymentMode(req.PaymentMode)
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown payment mode")
	}

	entryTime := s.now().Format(entryTimeLayout)

	var resp *ApplyPaymentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		tx, err := repos.TransactionRepo().FindByTransactionID(ctx, req.TransactionID)
		if err != nil {
			return err
		}
		if !tx.HasDebt() {
			return shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("transaction %s has no remaining debt", req.TransactionID))
		}

		applied, clamped, err := tx.ApplyPayment(valueobject.NewMoneyGHS(req.Amount))
		if err != nil {
			return err
		}
		if clamped {
			s.logger.Warn("payment exceeded remaining debt, clamped",
				zap.String("transaction_id", req.TransactionID),
				zap.String("requested", req.Amount.String()),
				zap.String("applied", applied.StringFixed(2)))
		}

		payment, err := finance.NewPayment(
			tx.TransactionID, tx.Customer.Name, strings.Join(tx.ItemNames(), ", "),
			applied, mode,
			finance.ChequeDetails{Number: req.ChequeNumber, Bank: req.ChequeBank, ClearanceDate: req.ChequeClearanceDate},
			entryTime, req.TransactionDate, req.RecordedBy,
		)
		if err != nil {
			return err
		}

		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}
		if err := repos.TransactionRepo().Save(ctx, tx); err != nil {
			return err
		}

		resp = &ApplyPaymentResponse{
			Payment:       newPaymentResponse(payment),
			AmountApplied: applied.Amount(),
			Clamped:       clamped,
			RemainingDebt: tx.RemainingDebt.Amount(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.appendAudit(ctx, fmt.Sprintf("%s applied payment of GHS %s to transaction %s",
		req.RecordedBy, resp.AmountApplied.StringFixed(2), req.TransactionID))
	s.logger.Info("payment applied",
		zap.String("transaction_id", req.TransactionID),
		zap.String("amount", resp.AmountApplied.StringFixed(2)),
		zap.Bool("clamped", resp.Clamped))
	return resp, nil
}

// EditPayment changes the amount on an existing payment row and shifts
// the parent transaction's totals by the difference
func (s *PaymentService) EditPayment(ctx context.Context, req EditPaymentRequest) (*PaymentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidInput, err.Error())
	}
	if err := s.gate.RequireAdmin(ctx, req.AdminUsername, req.AdminPassword); err != nil {
		return nil, err
	}

	var resp *PaymentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		payment, err := repos.PaymentRepo().FindByEntryKey(ctx, req.TransactionID, req.EntryDateAndTime)
		if err != nil {
			return err
		}
		tx, err := repos.TransactionRepo().FindByTransactionID(ctx, req.TransactionID)
		if err != nil {
			return err
		}

		delta, err := payment.Reprice(valueobject.NewMoneyGHS(req.NewAmount))
		if err != nil {
			return err
		}
		if err := tx.AdjustPayment(delta); err != nil {
			return err
		}

		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}
		if err := repos.TransactionRepo().Save(ctx, tx); err != nil {
			return err
		}

		r := newPaymentResponse(payment)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.appendAudit(ctx, fmt.Sprintf("%s edited payment on transaction %s to GHS %s",
		req.AdminUsername, req.TransactionID, resp.AmountPaid.StringFixed(2)))
	s.logger.Info("payment edited",
		zap.String("transaction_id", req.TransactionID),
		zap.String("entry_time", req.EntryDateAndTime))
	return resp, nil
}

// ListByTransaction returns all payment rows for a transaction
func (s *PaymentService) ListByTransaction(ctx context.Context, transactionID string) ([]PaymentResponse, error) {
	var resp []PaymentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		payments, err := repos.PaymentRepo().FindByTransactionID(ctx, transactionID)
		if err != nil {
			return err
		}
		resp = make([]PaymentResponse, len(payments))
		for i := range payments {
			resp[i] = newPaymentResponse(&payments[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *PaymentService) appendAudit(ctx context.Context, text string) {
	if err := s.audit.Append(ctx, text); err != nil {
		s.logger.Warn("failed to append audit entry", zap.Error(err))
	}
}


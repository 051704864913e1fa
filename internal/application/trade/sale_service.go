package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rosemer/ledger/internal/domain/finance"
	"github.com/rosemer/ledger/internal/domain/partner"
	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/shared/valueobject"
	"github.com/rosemer/ledger/internal/domain/trade"
)

const entryTimeLayout = "2006-01-02 15:04:05"

// SaleService records multi-line sales against inventory
type SaleService struct {
	scope    TransactionScope
	idGen    trade.TransactionIDGenerator
	audit    shared.AuditLog
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewSaleService creates a new SaleService
func NewSaleService(scope TransactionScope, idGen trade.TransactionIDGenerator, audit shared.AuditLog, logger *zap.Logger) *SaleService {
	return &SaleService{
		scope:    scope,
		idGen:    idGen,
		audit:    audit,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// RecordSale reserves stock for every line that can be served, skips the
// lines that cannot, and persists the transaction with its optional
// initial payment. The initial payment is recorded in full, so an
// amount above the total owed leaves a negative remaining debt. When
// every line is short on stock nothing is saved.
func (s *SaleService) RecordSale(ctx context.Context, req RecordSaleRequest) (*RecordSaleResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidInput, err.Error())
	}

	customer, err := trade.NewCustomerDetails(req.CustomerName, req.Location, req.Contact)
	if err != nil {
		return nil, err
	}

	mode := finance.PaymentMode(req.PaymentMode)
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown payment mode")
	}
	if req.AmountPaid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "amount paid cannot be negative")
	}
	if !hasPositiveQuantity(req.Items) {
		return nil, shared.NewDomainError("INVALID_INPUT", "at least one line must have a positive quantity")
	}
	if name := duplicateItemName(req.Items); name != "" {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("item %q appears on more than one line", name))
	}

	// The sequence counter commits independently, so a sale that fails
	// after this point leaves a gap in the day's numbering.
	transactionID, err := s.idGen.NextID(ctx, req.TransactionDate)
	if err != nil {
		return nil, err
	}
	entryTime := s.now().Format(entryTimeLayout)

	var resp *RecordSaleResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		tx, err := trade.NewTransaction(transactionID, customer, req.TransactionDate, entryTime, req.RecordedBy)
		if err != nil {
			return err
		}

		var skipped []string
		for _, input := range req.Items {
			if input.Quantity <= 0 {
				continue
			}
			item, err := repos.InventoryRepo().FindByName(ctx, input.ItemName)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return fmt.Errorf("item %q: %w", input.ItemName, shared.ErrNotFound)
				}
				return err
			}

			if err := item.Reserve(input.Quantity); err != nil {
				if shared.IsCode(err, "INSUFFICIENT_STOCK") {
					skipped = append(skipped, input.ItemName)
					continue
				}
				return err
			}
			if err := repos.InventoryRepo().Save(ctx, item); err != nil {
				return err
			}

			line, err := trade.NewLineItem(item.ItemName, item.UnitPrice, input.Quantity, valueobject.NewMoneyGHS(input.BulkDiscount))
			if err != nil {
				return err
			}
			tx.AddItem(line)
		}

		if len(tx.Items) == 0 {
			return fmt.Errorf("%w: no stock for %s", shared.ErrInsufficientStock, strings.Join(skipped, ", "))
		}

		applied := valueobject.ZeroGHS()
		if req.AmountPaid.IsPositive() {
			applied = valueobject.NewMoneyGHS(req.AmountPaid)
			if err := tx.TakePayment(applied); err != nil {
				return err
			}

			payment, err := finance.NewPayment(
				transactionID, customer.Name, strings.Join(tx.ItemNames(), ", "),
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
		}

		if err := repos.TransactionRepo().Save(ctx, tx); err != nil {
			return err
		}
		if err := s.upsertCustomer(ctx, repos, customer); err != nil {
			return err
		}

		resp = &RecordSaleResponse{
			Transaction:   newTransactionResponse(tx),
			SkippedItems:  skipped,
			AmountApplied: applied.Amount(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.appendAudit(ctx, fmt.Sprintf("%s recorded sale %s for %s, owed GHS %s, paid GHS %s",
		req.RecordedBy, transactionID, customer.Name,
		resp.Transaction.TotalOwed.StringFixed(2), resp.AmountApplied.StringFixed(2)))
	s.logger.Info("sale recorded",
		zap.String("transaction_id", transactionID),
		zap.String("customer", customer.Name),
		zap.Int("lines", len(resp.Transaction.Items)),
		zap.Strings("skipped_items", resp.SkippedItems))
	return resp, nil
}

// GetByTransactionID returns one transaction
func (s *SaleService) GetByTransactionID(ctx context.Context, transactionID string) (*TransactionResponse, error) {
	var resp *TransactionResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		tx, err := repos.TransactionRepo().FindByTransactionID(ctx, transactionID)
		if err != nil {
			return err
		}
		resp = newTransactionResponse(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List returns transactions matching the filter
func (s *SaleService) List(ctx context.Context, filter shared.Filter) ([]TransactionResponse, error) {
	var resp []TransactionResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		txs, err := repos.TransactionRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		resp = make([]TransactionResponse, len(txs))
		for i := range txs {
			resp[i] = *newTransactionResponse(&txs[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListDebtors returns transactions that still carry debt
func (s *SaleService) ListDebtors(ctx context.Context) ([]TransactionResponse, error) {
	var resp []TransactionResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		txs, err := repos.TransactionRepo().FindDebtors(ctx)
		if err != nil {
			return err
		}
		resp = make([]TransactionResponse, len(txs))
		for i := range txs {
			resp[i] = *newTransactionResponse(&txs[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListCustomers returns the customer directory
func (s *SaleService) ListCustomers(ctx context.Context, filter shared.Filter) ([]CustomerResponse, error) {
	var resp []CustomerResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		customers, err := repos.CustomerRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		resp = make([]CustomerResponse, len(customers))
		for i, customer := range customers {
			resp[i] = CustomerResponse{
				Name:     customer.Name,
				Location: customer.Location,
				Contact:  customer.Contact,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *SaleService) upsertCustomer(ctx context.Context, repos TransactionalRepositories, details trade.CustomerDetails) error {
	existing, err := repos.CustomerRepo().FindByContact(ctx, details.Contact)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		customer, err := partner.NewCustomer(details.Name, details.Location, details.Contact)
		if err != nil {
			return err
		}
		return repos.CustomerRepo().Save(ctx, customer)
	}

	if err := existing.UpdateDetails(details.Name, details.Location); err != nil {
		return err
	}
	return repos.CustomerRepo().Save(ctx, existing)
}

func (s *SaleService) appendAudit(ctx context.Context, text string) {
	if err := s.audit.Append(ctx, text); err != nil {
		s.logger.Warn("failed to append audit entry", zap.Error(err))
	}
}

// duplicateItemName returns the first product named on more than one
// line, or an empty string. Inventory reconciliation works on one line
// per product.
func duplicateItemName(items []LineItemInput) string {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.ItemName] {
			return item.ItemName
		}
		seen[item.ItemName] = true
	}
	return ""
}

func hasPositiveQuantity(items []LineItemInput) bool {
	for _, item := range items {
		if item.Quantity > 0 {
			return true
		}
	}
	return false
}

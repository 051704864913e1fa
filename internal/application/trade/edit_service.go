package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/shared/valueobject"
	"github.com/rosemer/ledger/internal/domain/trade"
)

// AdminGate checks credentials and rejects callers without the
// administrator role
type AdminGate interface {
	RequireAdmin(ctx context.Context, username, password string) error
}

// EditService replaces the line set of recorded transactions,
// reconciling inventory by the per-item quantity deltas
type EditService struct {
	scope    TransactionScope
	gate     AdminGate
	audit    shared.AuditLog
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewEditService creates a new EditService
func NewEditService(scope TransactionScope, gate AdminGate, audit shared.AuditLog, logger *zap.Logger) *EditService {
	return &EditService{
		scope:    scope,
		gate:     gate,
		audit:    audit,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// EditTransaction applies the new line set. Only the difference between
// the new and previous quantity touches inventory: growth reserves,
// shrinkage releases. Lines that cannot grow for lack of stock keep
// their previous quantity and are reported as skipped. Zero-quantity
// lines drop off the transaction and release their stock. TotalOwed is
// recomputed; payments already taken are carried over unchanged.
func (s *EditService) EditTransaction(ctx context.Context, req EditTransactionRequest) (*EditTransactionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidInput, err.Error())
	}
	if name := duplicateItemName(req.Items); name != "" {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("item %q appears on more than one line", name))
	}
	if err := s.gate.RequireAdmin(ctx, req.AdminUsername, req.AdminPassword); err != nil {
		return nil, err
	}

	var resp *EditTransactionResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		tx, err := repos.TransactionRepo().FindByTransactionID(ctx, req.TransactionID)
		if err != nil {
			return err
		}

		var newLines []trade.LineItem
		var skipped []string
		seen := make(map[string]bool)

		for _, input := range req.Items {
			seen[input.ItemName] = true
			previous := tx.QuantityOf(input.ItemName)

			if input.Quantity <= 0 {
				if previous > 0 {
					if err := s.releaseStock(ctx, repos, input.ItemName, previous); err != nil {
						return err
					}
				}
				continue
			}

			item, err := repos.InventoryRepo().FindByName(ctx, input.ItemName)
			if err != nil {
				return fmt.Errorf("item %q: %w", input.ItemName, err)
			}

			quantity := input.Quantity
			delta := input.Quantity - previous
			switch {
			case delta > 0:
				if err := item.Reserve(delta); err != nil {
					if shared.IsCode(err, "INSUFFICIENT_STOCK") {
						skipped = append(skipped, input.ItemName)
						if previous == 0 {
							continue
						}
						quantity = previous
						break
					}
					return err
				}
			case delta < 0:
				if err := item.Release(-delta); err != nil {
					return err
				}
			}
			if quantity != previous {
				if err := repos.InventoryRepo().Save(ctx, item); err != nil {
					return err
				}
			}

			line, err := trade.NewLineItem(item.ItemName, item.UnitPrice, quantity, valueobject.NewMoneyGHS(input.BulkDiscount))
			if err != nil {
				return err
			}
			newLines = append(newLines, line)
		}

		// lines absent from the new set release their full quantity
		for _, old := range tx.Items {
			if !seen[old.ProductName] {
				if err := s.releaseStock(ctx, repos, old.ProductName, old.Quantity); err != nil {
					return err
				}
			}
		}

		if err := tx.ReplaceItems(newLines); err != nil {
			return err
		}
		if err := repos.TransactionRepo().Save(ctx, tx); err != nil {
			return err
		}
		if err := repos.PaymentRepo().UpdateItemName(ctx, tx.TransactionID, strings.Join(tx.ItemNames(), ", ")); err != nil {
			return err
		}

		resp = &EditTransactionResponse{
			Transaction:  newTransactionResponse(tx),
			SkippedItems: skipped,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.appendAudit(ctx, fmt.Sprintf("%s edited transaction %s, new total GHS %s",
		req.RecordedBy, req.TransactionID, resp.Transaction.TotalOwed.StringFixed(2)))
	s.logger.Info("transaction edited",
		zap.String("transaction_id", req.TransactionID),
		zap.Strings("skipped_items", resp.SkippedItems))
	return resp, nil
}

func (s *EditService) releaseStock(ctx context.Context, repos TransactionalRepositories, itemName string, quantity int64) error {
	item, err := repos.InventoryRepo().FindByName(ctx, itemName)
	if err != nil {
		return fmt.Errorf("item %q: %w", itemName, err)
	}
	if err := item.Release(quantity); err != nil {
		return err
	}
	return repos.InventoryRepo().Save(ctx, item)
}

func (s *EditService) appendAudit(ctx context.Context, text string) {
	if err := s.audit.Append(ctx, text); err != nil {
		s.logger.Warn("failed to append audit entry", zap.Error(err))
	}
}

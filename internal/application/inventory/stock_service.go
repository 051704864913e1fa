package inventory

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rosemer/ledger/internal/domain/inventory"
	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/shared/valueobject"
)

// AdminGate checks credentials and rejects callers without the
// administrator role
type AdminGate interface {
	RequireAdmin(ctx context.Context, username, password string) error
}

// StockService manages the inventory ledger
type StockService struct {
	itemRepo inventory.InventoryItemRepository
	gate     AdminGate
	audit    shared.AuditLog
	validate *validator.Validate
	logger   *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(itemRepo inventory.InventoryItemRepository, gate AdminGate, audit shared.AuditLog, logger *zap.Logger) *StockService {
	return &StockService{
		itemRepo: itemRepo,
		gate:     gate,
		audit:    audit,
		validate: validator.New(),
		logger:   logger,
	}
}

// AddStock registers a new stock line. Item names are unique across the ledger.
func (s *StockService) AddStock(ctx context.Context, req AddStockRequest) (*StockItemResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidInput, err.Error())
	}

	exists, err := s.itemRepo.ExistsByName(ctx, req.ItemName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("item %q: %w", req.ItemName, shared.ErrAlreadyExists)
	}

	item, err := inventory.NewInventoryItem(req.ItemName, req.DateReceived, valueobject.NewMoneyGHS(req.UnitPrice), req.QuantityReceived, req.RecordedBy)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.appendAudit(ctx, fmt.Sprintf("%s added stock %s, %d units at GHS %s",
		req.RecordedBy, item.ItemName, item.QuantityReceived, item.UnitPrice.StringFixed(2)))
	s.logger.Info("stock added",
		zap.String("item", item.ItemName),
		zap.Int64("quantity", item.QuantityReceived))
	return newStockItemResponse(item), nil
}

// EditStock replaces the received quantity and unit price of a stock
// line. The remaining quantity is re-derived from what has been issued.
func (s *StockService) EditStock(ctx context.Context, req EditStockRequest) (*StockItemResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidInput, err.Error())
	}

	item, err := s.itemRepo.FindByName(ctx, req.ItemName)
	if err != nil {
		return nil, err
	}
	if err := item.Update(req.QuantityReceived, valueobject.NewMoneyGHS(req.UnitPrice)); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.appendAudit(ctx, fmt.Sprintf("%s edited stock %s to %d units at GHS %s",
		req.RecordedBy, item.ItemName, item.QuantityReceived, item.UnitPrice.StringFixed(2)))
	s.logger.Info("stock edited",
		zap.String("item", item.ItemName),
		zap.Int64("quantity_received", item.QuantityReceived),
		zap.Int64("quantity_remaining", item.QuantityRemaining))
	return newStockItemResponse(item), nil
}

// DeleteStock removes a stock line. Lines with issued stock cannot be
// deleted while transactions still reference them.
func (s *StockService) DeleteStock(ctx context.Context, req DeleteStockRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, err.Error())
	}
	if err := s.gate.RequireAdmin(ctx, req.AdminUsername, req.AdminPassword); err != nil {
		return err
	}

	item, err := s.itemRepo.FindByName(ctx, req.ItemName)
	if err != nil {
		return err
	}
	if item.QuantityIssued > 0 {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("item %s has %d units issued and cannot be deleted", item.ItemName, item.QuantityIssued))
	}
	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		return err
	}

	s.appendAudit(ctx, fmt.Sprintf("%s deleted stock %s", req.AdminUsername, item.ItemName))
	s.logger.Info("stock deleted", zap.String("item", item.ItemName))
	return nil
}

// GetByName returns one stock line
func (s *StockService) GetByName(ctx context.Context, itemName string) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByName(ctx, itemName)
	if err != nil {
		return nil, err
	}
	return newStockItemResponse(item), nil
}

// List returns stock lines matching the filter
func (s *StockService) List(ctx context.Context, filter shared.Filter) ([]StockItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]StockItemResponse, len(items))
	for i := range items {
		resp[i] = *newStockItemResponse(&items[i])
	}
	return resp, nil
}

func (s *StockService) appendAudit(ctx context.Context, text string) {
	if err := s.audit.Append(ctx, text); err != nil {
		s.logger.Warn("failed to append audit entry", zap.Error(err))
	}
}

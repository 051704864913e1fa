package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/rosemer/ledger/internal/domain/shared"
)

// InventoryItemRepository defines persistence for inventory items
type InventoryItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	FindByName(ctx context.Context, itemName string) (*InventoryItem, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)
	ExistsByName(ctx context.Context, itemName string) (bool, error)
	Save(ctx context.Context, item *InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

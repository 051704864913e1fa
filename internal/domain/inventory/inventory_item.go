package inventory

import (
	"fmt"
	"strings"

	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/shared/valueobject"
)

// InventoryItem is the aggregate root for a stock line.
// QuantityRemaining is always QuantityReceived minus QuantityIssued;
// every mutation re-derives it and neither side may go negative.
type InventoryItem struct {
	shared.BaseEntity
	ItemName          string            `gorm:"uniqueIndex;not null"`
	DateReceived      string            `gorm:"not null"`
	UnitPrice         valueobject.Money `gorm:"type:decimal(20,2)"`
	QuantityReceived  int64             `gorm:"not null"`
	QuantityIssued    int64             `gorm:"not null;default:0"`
	QuantityRemaining int64             `gorm:"not null"`
	TotalCost         valueobject.Money `gorm:"type:decimal(20,2)"`
	RecordedBy        string
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates a new stock line with nothing issued yet
func NewInventoryItem(itemName, dateReceived string, unitPrice valueobject.Money, quantityReceived int64, recordedBy string) (*InventoryItem, error) {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "item name is required")
	}
	if dateReceived == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "date received is required")
	}
	if quantityReceived <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "quantity received must be positive")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unit price must be positive")
	}

	return &InventoryItem{
		BaseEntity:        shared.NewBaseEntity(),
		ItemName:          itemName,
		DateReceived:      dateReceived,
		UnitPrice:         unitPrice,
		QuantityReceived:  quantityReceived,
		QuantityIssued:    0,
		QuantityRemaining: quantityReceived,
		TotalCost:         unitPrice.MultiplyByInt(quantityReceived),
		RecordedBy:        recordedBy,
	}, nil
}

// Update replaces the received quantity and unit price, keeping the
// issued count. The new received quantity cannot fall below what has
// already been issued.
func (i *InventoryItem) Update(quantityReceived int64, unitPrice valueobject.Money) error {
	if quantityReceived <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "quantity received must be positive")
	}
	if !unitPrice.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "unit price must be positive")
	}
	if quantityReceived < i.QuantityIssued {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("quantity received %d cannot be below quantity already issued %d", quantityReceived, i.QuantityIssued))
	}

	i.QuantityReceived = quantityReceived
	i.QuantityRemaining = quantityReceived - i.QuantityIssued
	i.UnitPrice = unitPrice
	i.TotalCost = unitPrice.MultiplyByInt(quantityReceived)
	i.Touch()
	return nil
}

// Reserve issues quantity out of the remaining stock
func (i *InventoryItem) Reserve(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "quantity to reserve must be positive")
	}
	if quantity > i.QuantityRemaining {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("item %s has %d remaining, requested %d", i.ItemName, i.QuantityRemaining, quantity))
	}

	i.QuantityIssued += quantity
	i.QuantityRemaining -= quantity
	i.Touch()
	return i.checkQuantities()
}

// Release returns previously issued quantity back to stock
func (i *InventoryItem) Release(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "quantity to release must be positive")
	}
	if quantity > i.QuantityIssued {
		return shared.NewDomainError("INVENTORY_CORRUPTION",
			fmt.Sprintf("item %s has %d issued, cannot release %d", i.ItemName, i.QuantityIssued, quantity))
	}

	i.QuantityIssued -= quantity
	i.QuantityRemaining += quantity
	i.Touch()
	return i.checkQuantities()
}

// HasRemaining reports whether at least quantity units are still in stock
func (i *InventoryItem) HasRemaining(quantity int64) bool {
	return i.QuantityRemaining >= quantity
}

func (i *InventoryItem) checkQuantities() error {
	if i.QuantityIssued < 0 || i.QuantityRemaining < 0 ||
		i.QuantityRemaining != i.QuantityReceived-i.QuantityIssued {
		return shared.NewDomainError("INVENTORY_CORRUPTION",
			fmt.Sprintf("item %s quantities inconsistent: received=%d issued=%d remaining=%d",
				i.ItemName, i.QuantityReceived, i.QuantityIssued, i.QuantityRemaining))
	}
	return nil
}

package trade

import (
	"strings"

	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/shared/valueobject"
)

// LineItem is one product position on a transaction. A positive bulk
// discount replaces the unit price for this line.
type LineItem struct {
	ProductName  string
	UnitPrice    valueobject.Money
	Quantity     int64
	BulkDiscount valueobject.Money
}

// NewLineItem creates a validated line item
func NewLineItem(productName string, unitPrice valueobject.Money, quantity int64, bulkDiscount valueobject.Money) (LineItem, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return LineItem{}, shared.NewDomainError("INVALID_INPUT", "product name is required")
	}
	if strings.Contains(productName, ",") {
		return LineItem{}, shared.NewDomainError("INVALID_INPUT", "product name cannot contain commas")
	}
	if quantity <= 0 {
		return LineItem{}, shared.NewDomainError("INVALID_INPUT", "quantity must be positive")
	}
	if unitPrice.IsNegative() || bulkDiscount.IsNegative() {
		return LineItem{}, shared.NewDomainError("INVALID_INPUT", "prices cannot be negative")
	}
	return LineItem{
		ProductName:  productName,
		UnitPrice:    unitPrice,
		Quantity:     quantity,
		BulkDiscount: bulkDiscount,
	}, nil
}

// AppliedPrice returns the effective per-unit price for this line
func (l LineItem) AppliedPrice() valueobject.Money {
	if l.BulkDiscount.IsPositive() {
		return l.BulkDiscount
	}
	return l.UnitPrice
}

// Total returns the line total at the applied price
func (l LineItem) Total() valueobject.Money {
	return l.AppliedPrice().MultiplyByInt(l.Quantity)
}

package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/rosemer/ledger/internal/domain/inventory"
)

// AddStockRequest registers a new stock line
type AddStockRequest struct {
	ItemName         string          `json:"item_name" validate:"required"`
	DateReceived     string          `json:"date_received" validate:"required,datetime=2006-01-02"`
	UnitPrice        decimal.Decimal `json:"unit_price" validate:"required"`
	QuantityReceived int64           `json:"quantity_received" validate:"required,gt=0"`
	RecordedBy       string          `json:"recorded_by" validate:"required"`
}

// EditStockRequest changes the received quantity and price of a stock line
type EditStockRequest struct {
	ItemName         string          `json:"item_name" validate:"required"`
	UnitPrice        decimal.Decimal `json:"unit_price" validate:"required"`
	QuantityReceived int64           `json:"quantity_received" validate:"required,gt=0"`
	RecordedBy       string          `json:"recorded_by" validate:"required"`
}

// DeleteStockRequest removes a stock line. Requires administrator credentials.
type DeleteStockRequest struct {
	ItemName      string `json:"item_name" validate:"required"`
	AdminUsername string `json:"admin_username" validate:"required"`
	AdminPassword string `json:"admin_password" validate:"required"`
}

// StockItemResponse is the stock line representation returned to callers
type StockItemResponse struct {
	ItemName          string          `json:"item_name"`
	DateReceived      string          `json:"date_received"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	QuantityReceived  int64           `json:"quantity_received"`
	QuantityIssued    int64           `json:"quantity_issued"`
	QuantityRemaining int64           `json:"quantity_remaining"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	RecordedBy        string          `json:"recorded_by"`
}

func newStockItemResponse(item *inventory.InventoryItem) *StockItemResponse {
	return &StockItemResponse{
		ItemName:          item.ItemName,
		DateReceived:      item.DateReceived,
		UnitPrice:         item.UnitPrice.Amount(),
		QuantityReceived:  item.QuantityReceived,
		QuantityIssued:    item.QuantityIssued,
		QuantityRemaining: item.QuantityRemaining,
		TotalCost:         item.TotalCost.Amount(),
		RecordedBy:        item.RecordedBy,
	}
}

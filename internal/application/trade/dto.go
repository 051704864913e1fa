package trade

import (
	"github.com/shopspring/decimal"

	"github.com/rosemer/ledger/internal/domain/trade"
)

// LineItemInput is one product position on an incoming sale or edit
type LineItemInput struct {
	ItemName     string          `json:"item_name" validate:"required"`
	Quantity     int64           `json:"quantity" validate:"gte=0"`
	BulkDiscount decimal.Decimal `json:"bulk_discount"`
}

// RecordSaleRequest captures a full sale entry
type RecordSaleRequest struct {
	CustomerName        string          `json:"customer_name" validate:"required"`
	Location            string          `json:"location"`
	Contact             string          `json:"contact" validate:"required,len=10,numeric"`
	TransactionDate     string          `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	Items               []LineItemInput `json:"items" validate:"required,min=1,dive"`
	AmountPaid          decimal.Decimal `json:"amount_paid"`
	PaymentMode         string          `json:"payment_mode" validate:"required"`
	ChequeNumber        string          `json:"cheque_number"`
	ChequeBank          string          `json:"cheque_bank"`
	ChequeClearanceDate string          `json:"cheque_clearance_date"`
	RecordedBy          string          `json:"recorded_by" validate:"required"`
}

// EditTransactionRequest replaces the line set of an existing transaction.
// Requires administrator credentials.
type EditTransactionRequest struct {
	TransactionID string          `json:"transaction_id" validate:"required"`
	Items         []LineItemInput `json:"items" validate:"required,min=1,dive"`
	AdminUsername string          `json:"admin_username" validate:"required"`
	AdminPassword string          `json:"admin_password" validate:"required"`
	RecordedBy    string          `json:"recorded_by" validate:"required"`
}

// ReverseTransactionRequest undoes a whole transaction.
// Requires administrator credentials.
type ReverseTransactionRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	AdminUsername string `json:"admin_username" validate:"required"`
	AdminPassword string `json:"admin_password" validate:"required"`
}

// ReversePaymentRequest deletes a single payment row and restores the
// debt it had settled. Requires administrator credentials.
type ReversePaymentRequest struct {
	TransactionID    string `json:"transaction_id" validate:"required"`
	EntryDateAndTime string `json:"entry_date_and_time" validate:"required"`
	AdminUsername    string `json:"admin_username" validate:"required"`
	AdminPassword    string `json:"admin_password" validate:"required"`
}

// LineItemResponse is one product position on a returned transaction
type LineItemResponse struct {
	ItemName     string          `json:"item_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int64           `json:"quantity"`
	BulkDiscount decimal.Decimal `json:"bulk_discount"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// TransactionResponse is the transaction representation returned to callers
type TransactionResponse struct {
	TransactionID    string             `json:"transaction_id"`
	CustomerName     string             `json:"customer_name"`
	Location         string             `json:"location"`
	Contact          string             `json:"contact"`
	Items            []LineItemResponse `json:"items"`
	TotalOwed        decimal.Decimal    `json:"total_owed"`
	TotalPaid        decimal.Decimal    `json:"total_paid"`
	RemainingDebt    decimal.Decimal    `json:"remaining_debt"`
	EntryDateAndTime string             `json:"entry_date_and_time"`
	TransactionDate  string             `json:"transaction_date"`
	RecordedBy       string             `json:"recorded_by"`
}

// RecordSaleResponse reports the outcome of a sale entry
type RecordSaleResponse struct {
	Transaction   *TransactionResponse `json:"transaction"`
	SkippedItems  []string             `json:"skipped_items,omitempty"`
	AmountApplied decimal.Decimal      `json:"amount_applied"`
}

// CustomerResponse describes one customer directory entry
type CustomerResponse struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Contact  string `json:"contact"`
}

// EditTransactionResponse reports the outcome of a transaction edit
type EditTransactionResponse struct {
	Transaction  *TransactionResponse `json:"transaction"`
	SkippedItems []string             `json:"skipped_items,omitempty"`
}

func newTransactionResponse(tx *trade.Transaction) *TransactionResponse {
	items := make([]LineItemResponse, len(tx.Items))
	for i, item := range tx.Items {
		items[i] = LineItemResponse{
			ItemName:     item.ProductName,
			UnitPrice:    item.UnitPrice.Amount(),
			Quantity:     item.Quantity,
			BulkDiscount: item.BulkDiscount.Amount(),
			LineTotal:    item.Total().Amount(),
		}
	}
	return &TransactionResponse{
		TransactionID:    tx.TransactionID,
		CustomerName:     tx.Customer.Name,
		Location:         tx.Customer.Location,
		Contact:          tx.Customer.Contact,
		Items:            items,
		TotalOwed:        tx.TotalOwed.Amount(),
		TotalPaid:        tx.TotalPaid.Amount(),
		RemainingDebt:    tx.RemainingDebt.Amount(),
		EntryDateAndTime: tx.EntryDateAndTime,
		TransactionDate:  tx.TransactionDate,
		RecordedBy:       tx.RecordedBy,
	}
}

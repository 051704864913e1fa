package finance

import (
	"github.com/shopspring/decimal"

	"github.com/rosemer/ledger/internal/domain/finance"
)

// ApplyPaymentRequest settles part of a transaction's debt
type ApplyPaymentRequest struct {
	TransactionID       string          `json:"transaction_id" validate:"required"`
	Amount              decimal.Decimal `json:"amount" validate:"required"`
	PaymentMode         string          `json:"payment_mode" validate:"required"`
	ChequeNumber        string          `json:"cheque_number"`
	ChequeBank          string          `json:"cheque_bank"`
	ChequeClearanceDate string          `json:"cheque_clearance_date"`
	TransactionDate     string          `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	RecordedBy          string          `json:"recorded_by" validate:"required"`
}

// EditPaymentRequest changes the amount on an existing payment row.
// Requires administrator credentials.
type EditPaymentRequest struct {
	TransactionID    string          `json:"transaction_id" validate:"required"`
	EntryDateAndTime string          `json:"entry_date_and_time" validate:"required"`
	NewAmount        decimal.Decimal `json:"new_amount" validate:"required"`
	AdminUsername    string          `json:"admin_username" validate:"required"`
	AdminPassword    string          `json:"admin_password" validate:"required"`
}

// PaymentResponse is the payment representation returned to callers
type PaymentResponse struct {
	TransactionID       string          `json:"transaction_id"`
	CustomerName        string          `json:"customer_name"`
	ItemName            string          `json:"item_name"`
	AmountPaid          decimal.Decimal `json:"amount_paid"`
	PaymentMode         string          `json:"payment_mode"`
	ChequeNumber        string          `json:"cheque_number,omitempty"`
	ChequeBank          string          `json:"cheque_bank,omitempty"`
	ChequeClearanceDate string          `json:"cheque_clearance_date,omitempty"`
	EntryDateAndTime    string          `json:"entry_date_and_time"`
	TransactionDate     string          `json:"transaction_date"`
	RecordedBy          string          `json:"recorded_by"`
}

// ApplyPaymentResponse reports the outcome of a settlement
type ApplyPaymentResponse struct {
	Payment       PaymentResponse `json:"payment"`
	AmountApplied decimal.Decimal `json:"amount_applied"`
	Clamped       bool            `json:"clamped"`
	RemainingDebt decimal.Decimal `json:"remaining_debt"`
}

func newPaymentResponse(p *finance.Payment) PaymentResponse {
	return PaymentResponse{
		TransactionID:       p.TransactionID,
		CustomerName:        p.CustomerName,
		ItemName:            p.ItemName,
		AmountPaid:          p.AmountPaid.Amount(),
		PaymentMode:         string(p.PaymentMode),
		ChequeNumber:        p.ChequeNumber,
		ChequeBank:          p.ChequeBank,
		ChequeClearanceDate: p.ChequeClearanceDate,
		EntryDateAndTime:    p.EntryDateAndTime,
		TransactionDate:     p.TransactionDate,
		RecordedBy:          p.RecordedBy,
	}
}

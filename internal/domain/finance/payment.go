package finance

import (
	"strings"

	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/shared/valueobject"
)

// PaymentMode enumerates how a payment was made
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "Cash"
	PaymentModeCheque PaymentMode = "Cheque"
	PaymentModeCredit PaymentMode = "Credit"
)

// IsValid reports whether the mode is one of the known values
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeCheque, PaymentModeCredit:
		return true
	}
	return false
}

// ChequeDetails carries the extra fields a cheque payment needs
type ChequeDetails struct {
	Number        string
	Bank          string
	ClearanceDate string
}

// Payment is one settlement row against a transaction. A payment is
// identified by its transaction ID together with its entry timestamp.
type Payment struct {
	shared.BaseEntity
	TransactionID       string            `gorm:"index;not null"`
	CustomerName        string            `gorm:"not null"`
	ItemName            string            `gorm:"not null"`
	AmountPaid          valueobject.Money `gorm:"type:decimal(20,2)"`
	PaymentMode         PaymentMode       `gorm:"not null"`
	ChequeNumber        string
	ChequeBank          string
	ChequeClearanceDate string
	EntryDateAndTime    string `gorm:"index;not null"`
	TransactionDate     string
	RecordedBy          string
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a validated payment row
func NewPayment(transactionID, customerName, itemName string, amount valueobject.Money, mode PaymentMode, cheque ChequeDetails, entryDateAndTime, transactionDate, recordedBy string) (*Payment, error) {
	if transactionID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "transaction id is required")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "customer name is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "payment amount cannot be negative")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown payment mode")
	}
	if mode == PaymentModeCheque {
		if cheque.Number == "" || cheque.Bank == "" || cheque.ClearanceDate == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "cheque payments require number, bank and clearance date")
		}
	} else {
		cheque = ChequeDetails{}
	}

	return &Payment{
		BaseEntity:          shared.NewBaseEntity(),
		TransactionID:       transactionID,
		CustomerName:        strings.TrimSpace(customerName),
		ItemName:            itemName,
		AmountPaid:          amount,
		PaymentMode:         mode,
		ChequeNumber:        cheque.Number,
		ChequeBank:          cheque.Bank,
		ChequeClearanceDate: cheque.ClearanceDate,
		EntryDateAndTime:    entryDateAndTime,
		TransactionDate:     transactionDate,
		RecordedBy:          recordedBy,
	}, nil
}

// Reprice changes the paid amount and returns the signed delta against
// the previous value
func (p *Payment) Reprice(newAmount valueobject.Money) (valueobject.Money, error) {
	if !newAmount.IsPositive() {
		return valueobject.ZeroGHS(), shared.NewDomainError("INVALID_INPUT", "payment amount must be positive")
	}
	delta := newAmount.MustSubtract(p.AmountPaid)
	p.AmountPaid = newAmount
	p.Touch()
	return delta, nil
}

// RefreshItemName updates the item snapshot carried on the row
func (p *Payment) RefreshItemName(itemName string) {
	p.ItemName = itemName
	p.Touch()
}

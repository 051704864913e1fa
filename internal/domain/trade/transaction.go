package trade

import (
	"fmt"

	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/shared/valueobject"
)

// Transaction is the aggregate root for one multi-line sale.
// RemainingDebt always equals TotalOwed minus TotalPaid.
type Transaction struct {
	shared.BaseEntity
	TransactionID    string
	Customer         CustomerDetails
	Items            []LineItem
	TotalOwed        valueobject.Money
	TotalPaid        valueobject.Money
	RemainingDebt    valueobject.Money
	EntryDateAndTime string
	TransactionDate  string
	RecordedBy       string
}

// NewTransaction creates an empty transaction for the given customer
func NewTransaction(transactionID string, customer CustomerDetails, transactionDate, entryDateAndTime, recordedBy string) (*Transaction, error) {
	if transactionID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "transaction id is required")
	}
	if transactionDate == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "transaction date is required")
	}

	return &Transaction{
		BaseEntity:       shared.NewBaseEntity(),
		TransactionID:    transactionID,
		Customer:         customer,
		Items:            []LineItem{},
		TotalOwed:        valueobject.ZeroGHS(),
		TotalPaid:        valueobject.ZeroGHS(),
		RemainingDebt:    valueobject.ZeroGHS(),
		EntryDateAndTime: entryDateAndTime,
		TransactionDate:  transactionDate,
		RecordedBy:       recordedBy,
	}, nil
}

// AddItem appends a line and folds its total into the owed amount
func (t *Transaction) AddItem(item LineItem) {
	t.Items = append(t.Items, item)
	t.recalculateTotals()
}

// ReplaceItems swaps the full line set. TotalOwed is recomputed from the
// new lines; TotalPaid is carried over unchanged, so RemainingDebt can go
// negative when payments already exceed the new total.
func (t *Transaction) ReplaceItems(items []LineItem) error {
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "transaction must keep at least one line item")
	}
	t.Items = items
	t.recalculateTotals()
	return nil
}

// QuantityOf returns the quantity currently held for the named product,
// zero when the product is not on the transaction
func (t *Transaction) QuantityOf(productName string) int64 {
	for _, item := range t.Items {
		if item.ProductName == productName {
			return item.Quantity
		}
	}
	return 0
}

// ItemNames returns the product names in line order
func (t *Transaction) ItemNames() []string {
	names := make([]string, len(t.Items))
	for i, item := range t.Items {
		names[i] = item.ProductName
	}
	return names
}

// TakePayment credits the tendered amount in full, with no clamping.
// Used at sale time, where the amount is recorded exactly as given and
// the remaining debt goes negative when the customer pays more than
// the total owed.
func (t *Transaction) TakePayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "payment amount must be positive")
	}
	t.TotalPaid = t.TotalPaid.MustAdd(amount)
	t.RemainingDebt = t.TotalOwed.MustSubtract(t.TotalPaid)
	t.Touch()
	return nil
}

// ApplyPayment credits a payment against the debt. Amounts above the
// remaining debt are clamped; the applied amount and whether clamping
// happened are returned.
func (t *Transaction) ApplyPayment(amount valueobject.Money) (valueobject.Money, bool, error) {
	if !amount.IsPositive() {
		return valueobject.ZeroGHS(), false, shared.NewDomainError("INVALID_INPUT", "payment amount must be positive")
	}

	applied := amount
	clamped := false
	if over, err := amount.GreaterThan(t.RemainingDebt); err != nil {
		return valueobject.ZeroGHS(), false, err
	} else if over {
		applied = t.RemainingDebt
		clamped = true
	}
	if applied.IsNegative() {
		applied = valueobject.ZeroGHS()
	}

	t.TotalPaid = t.TotalPaid.MustAdd(applied)
	t.RemainingDebt = t.TotalOwed.MustSubtract(t.TotalPaid)
	t.Touch()
	return applied, clamped, nil
}

// ReverseAppliedPayment removes a previously applied amount, restoring
// the debt it had settled
func (t *Transaction) ReverseAppliedPayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "reversal amount must be positive")
	}
	if over, err := amount.GreaterThan(t.TotalPaid); err != nil {
		return err
	} else if over {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("cannot reverse %s, only %s has been paid", amount.String(), t.TotalPaid.String()))
	}

	t.TotalPaid = t.TotalPaid.MustSubtract(amount)
	t.RemainingDebt = t.TotalOwed.MustSubtract(t.TotalPaid)
	t.Touch()
	return nil
}

// AdjustPayment shifts the paid total by a signed delta, used when a
// payment row is edited in place
func (t *Transaction) AdjustPayment(delta valueobject.Money) error {
	newPaid := t.TotalPaid.MustAdd(delta)
	if newPaid.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "adjustment would make total paid negative")
	}
	t.TotalPaid = newPaid
	t.RemainingDebt = t.TotalOwed.MustSubtract(t.TotalPaid)
	t.Touch()
	return nil
}

// HasDebt reports whether any amount is still owed
func (t *Transaction) HasDebt() bool {
	return t.RemainingDebt.IsPositive()
}

func (t *Transaction) recalculateTotals() {
	total := valueobject.ZeroGHS()
	for _, item := range t.Items {
		total = total.MustAdd(item.Total())
	}
	t.TotalOwed = total
	t.RemainingDebt = t.TotalOwed.MustSubtract(t.TotalPaid)
	t.Touch()
}

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/shared/valueobject"
	"github.com/rosemer/ledger/internal/domain/trade"
)

// lineSeparator joins the per-line columns of a transaction row.
// Product names reject commas at the domain boundary so the join is
// unambiguous.
const lineSeparator = ", "

// TransactionModel is the persistence model for the Transaction
// aggregate. Line items are flattened into four parallel string
// columns, one position per line.
type TransactionModel struct {
	ID               uuid.UUID `gorm:"type:text;primaryKey"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
	TransactionID    string    `gorm:"uniqueIndex;not null"`
	CustomerName     string    `gorm:"not null"`
	CustomerLocation string
	CustomerContact  string            `gorm:"index;not null"`
	ProductNames     string            `gorm:"not null"`
	UnitPrices       string            `gorm:"not null"`
	Quantities       string            `gorm:"not null"`
	BulkDiscounts    string            `gorm:"not null"`
	TotalOwed        valueobject.Money `gorm:"type:decimal(20,2)"`
	TotalPaid        valueobject.Money `gorm:"type:decimal(20,2)"`
	RemainingDebt    valueobject.Money `gorm:"type:decimal(20,2)"`
	EntryDateAndTime string            `gorm:"not null"`
	TransactionDate  string            `gorm:"index;not null"`
	RecordedBy       string
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction.
// It fails when the parallel line columns have drifted out of step.
func (m *TransactionModel) ToDomain() (*trade.Transaction, error) {
	items, err := decodeLineItems(m.ProductNames, m.UnitPrices, m.Quantities, m.BulkDiscounts)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", m.TransactionID, err)
	}

	return &trade.Transaction{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TransactionID: m.TransactionID,
		Customer: trade.CustomerDetails{
			Name:     m.CustomerName,
			Location: m.CustomerLocation,
			Contact:  m.CustomerContact,
		},
		Items:            items,
		TotalOwed:        m.TotalOwed,
		TotalPaid:        m.TotalPaid,
		RemainingDebt:    m.RemainingDebt,
		EntryDateAndTime: m.EntryDateAndTime,
		TransactionDate:  m.TransactionDate,
		RecordedBy:       m.RecordedBy,
	}, nil
}

// FromDomain populates the persistence model from a domain Transaction.
func (m *TransactionModel) FromDomain(t *trade.Transaction) {
	m.ID = t.ID
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
	m.TransactionID = t.TransactionID
	m.CustomerName = t.Customer.Name
	m.CustomerLocation = t.Customer.Location
	m.CustomerContact = t.Customer.Contact
	m.ProductNames, m.UnitPrices, m.Quantities, m.BulkDiscounts = encodeLineItems(t.Items)
	m.TotalOwed = t.TotalOwed
	m.TotalPaid = t.TotalPaid
	m.RemainingDebt = t.RemainingDebt
	m.EntryDateAndTime = t.EntryDateAndTime
	m.TransactionDate = t.TransactionDate
	m.RecordedBy = t.RecordedBy
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction.
func TransactionModelFromDomain(t *trade.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}

func encodeLineItems(items []trade.LineItem) (names, prices, quantities, discounts string) {
	nameList := make([]string, len(items))
	priceList := make([]string, len(items))
	quantityList := make([]string, len(items))
	discountList := make([]string, len(items))

	for i, item := range items {
		nameList[i] = item.ProductName
		priceList[i] = item.UnitPrice.String()
		quantityList[i] = strconv.FormatInt(item.Quantity, 10)
		discountList[i] = item.BulkDiscount.String()
	}

	return strings.Join(nameList, lineSeparator),
		strings.Join(priceList, lineSeparator),
		strings.Join(quantityList, lineSeparator),
		strings.Join(discountList, lineSeparator)
}

func decodeLineItems(names, prices, quantities, discounts string) ([]trade.LineItem, error) {
	if names == "" {
		return []trade.LineItem{}, nil
	}

	nameList := strings.Split(names, lineSeparator)
	priceList := strings.Split(prices, lineSeparator)
	quantityList := strings.Split(quantities, lineSeparator)
	discountList := strings.Split(discounts, lineSeparator)

	if len(priceList) != len(nameList) || len(quantityList) != len(nameList) || len(discountList) != len(nameList) {
		return nil, fmt.Errorf("line columns out of step: %d names, %d prices, %d quantities, %d discounts",
			len(nameList), len(priceList), len(quantityList), len(discountList))
	}

	items := make([]trade.LineItem, len(nameList))
	for i := range nameList {
		price, err := valueobject.NewMoneyGHSFromString(priceList[i])
		if err != nil {
			return nil, fmt.Errorf("unit price %q: %w", priceList[i], err)
		}
		discount, err := valueobject.NewMoneyGHSFromString(discountList[i])
		if err != nil {
			return nil, fmt.Errorf("bulk discount %q: %w", discountList[i], err)
		}
		quantity, err := strconv.ParseInt(quantityList[i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("quantity %q: %w", quantityList[i], err)
		}
		items[i] = trade.LineItem{
			ProductName:  nameList[i],
			UnitPrice:    price,
			Quantity:     quantity,
			BulkDiscount: discount,
		}
	}
	return items, nil
}

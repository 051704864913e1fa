package partner

import (
	"strings"

	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/trade"
)

// Customer is a directory entry keyed by contact number. The directory
// remembers every customer a sale has been recorded for.
type Customer struct {
	shared.BaseEntity
	Name     string `gorm:"not null"`
	Location string
	Contact  string `gorm:"uniqueIndex;not null"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers_directory"
}

// NewCustomer creates a directory entry with a validated contact
func NewCustomer(name, location, contact string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "customer name is required")
	}
	if !trade.IsValidContact(contact) {
		return nil, shared.NewDomainError("INVALID_INPUT", "contact must be ten digits starting with 0")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Location:   strings.TrimSpace(location),
		Contact:    contact,
	}, nil
}

// UpdateDetails refreshes the name and location kept for this contact
func (c *Customer) UpdateDetails(name, location string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "customer name is required")
	}
	c.Name = name
	c.Location = strings.TrimSpace(location)
	c.Touch()
	return nil
}

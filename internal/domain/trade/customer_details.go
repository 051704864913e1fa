package trade

import (
	"regexp"
	"strings"

	"github.com/rosemer/ledger/internal/domain/shared"
)

var contactPattern = regexp.MustCompile(`^0\d{9}$`)

// CustomerDetails is the customer snapshot carried on a transaction
type CustomerDetails struct {
	Name     string
	Location string
	Contact  string
}

// NewCustomerDetails validates and creates a customer snapshot.
// A contact must be exactly ten digits and start with zero.
func NewCustomerDetails(name, location, contact string) (CustomerDetails, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CustomerDetails{}, shared.NewDomainError("INVALID_INPUT", "customer name is required")
	}
	if !contactPattern.MatchString(contact) {
		return CustomerDetails{}, shared.NewDomainError("INVALID_INPUT", "contact must be ten digits starting with 0")
	}
	return CustomerDetails{
		Name:     name,
		Location: strings.TrimSpace(location),
		Contact:  contact,
	}, nil
}

// IsValidContact reports whether contact is a valid phone number
func IsValidContact(contact string) bool {
	return contactPattern.MatchString(contact)
}

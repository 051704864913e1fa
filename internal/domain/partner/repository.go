package partner

import (
	"context"

	"github.com/rosemer/ledger/internal/domain/shared"
)

// CustomerRepository defines persistence for the customer directory
type CustomerRepository interface {
	FindByContact(ctx context.Context, contact string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, contact string) error
}

package trade

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rosemer/ledger/internal/domain/finance"
	"github.com/rosemer/ledger/internal/domain/inventory"
	"github.com/rosemer/ledger/internal/domain/partner"
	"github.com/rosemer/ledger/internal/domain/shared"
	"github.com/rosemer/ledger/internal/domain/shared/valueobject"
	"github.com/rosemer/ledger/internal/domain/trade"
)

// In-memory repositories backing NoOpTransactionScope in service tests.

type memInventoryRepo struct {
	mu    sync.Mutex
	items map[string]*inventory.InventoryItem
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{items: make(map[string]*inventory.InventoryItem)}
}

func (r *memInventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memInventoryRepo) FindByName(ctx context.Context, itemName string) (*inventory.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemName]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (r *memInventoryRepo) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inventory.InventoryItem
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *memInventoryRepo) ExistsByName(ctx context.Context, itemName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[itemName]
	return ok, nil
}

func (r *memInventoryRepo) Save(ctx context.Context, item *inventory.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ItemName] = item
	return nil
}

func (r *memInventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, item := range r.items {
		if item.ID == id {
			delete(r.items, name)
			return nil
		}
	}
	return shared.ErrNotFound
}

type memTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*trade.Transaction
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{transactions: make(map[string]*trade.Transaction)}
}

func (r *memTransactionRepo) FindByTransactionID(ctx context.Context, transactionID string) (*trade.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[transactionID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return tx, nil
}

func (r *memTransactionRepo) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []trade.Transaction
	for _, tx := range r.transactions {
		out = append(out, *tx)
	}
	return out, nil
}

func (r *memTransactionRepo) FindByDate(ctx context.Context, transactionDate string) ([]trade.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []trade.Transaction
	for _, tx := range r.transactions {
		if tx.TransactionDate == transactionDate {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *memTransactionRepo) FindDebtors(ctx context.Context) ([]trade.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []trade.Transaction
	for _, tx := range r.transactions {
		if tx.HasDebt() {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *memTransactionRepo) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.transactions[transactionID]
	return ok, nil
}

func (r *memTransactionRepo) Save(ctx context.Context, transaction *trade.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[transaction.TransactionID] = transaction
	return nil
}

func (r *memTransactionRepo) Delete(ctx context.Context, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[transactionID]; !ok {
		return shared.ErrNotFound
	}
	delete(r.transactions, transactionID)
	return nil
}

type memPaymentRepo struct {
	mu       sync.Mutex
	payments []*finance.Payment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{}
}

func (r *memPaymentRepo) FindByEntryKey(ctx context.Context, transactionID, entryDateAndTime string) (*finance.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.TransactionID == transactionID && p.EntryDateAndTime == entryDateAndTime {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPaymentRepo) FindByTransactionID(ctx context.Context, transactionID string) ([]finance.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []finance.Payment
	for _, p := range r.payments {
		if p.TransactionID == transactionID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) Save(ctx context.Context, payment *finance.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.payments {
		if p.ID == payment.ID {
			r.payments[i] = payment
			return nil
		}
	}
	r.payments = append(r.payments, payment)
	return nil
}

func (r *memPaymentRepo) Delete(ctx context.Context, transactionID, entryDateAndTime string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.payments {
		if p.TransactionID == transactionID && p.EntryDateAndTime == entryDateAndTime {
			r.payments = append(r.payments[:i], r.payments[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memPaymentRepo) DeleteByTransactionID(ctx context.Context, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*finance.Payment
	for _, p := range r.payments {
		if p.TransactionID != transactionID {
			kept = append(kept, p)
		}
	}
	r.payments = kept
	return nil
}

func (r *memPaymentRepo) UpdateItemName(ctx context.Context, transactionID, itemName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.TransactionID == transactionID {
			p.ItemName = itemName
		}
	}
	return nil
}

type memCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*partner.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[string]*partner.Customer)}
}

func (r *memCustomerRepo) FindByContact(ctx context.Context, contact string) (*partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[contact]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *memCustomerRepo) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []partner.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCustomerRepo) Save(ctx context.Context, customer *partner.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[customer.Contact] = customer
	return nil
}

func (r *memCustomerRepo) Delete(ctx context.Context, contact string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[contact]; !ok {
		return shared.ErrNotFound
	}
	delete(r.customers, contact)
	return nil
}

// fakeIDGen hands out sequential IDs without touching a database
type fakeIDGen struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func newFakeIDGen() *fakeIDGen {
	return &fakeIDGen{seqs: make(map[string]int64)}
}

func (g *fakeIDGen) NextID(ctx context.Context, transactionDate string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seqs[transactionDate]++
	return trade.FormatTransactionID(transactionDate, g.seqs[transactionDate]), nil
}

// fakeGate accepts a single admin credential pair
type fakeGate struct {
	username string
	password string
}

func (g *fakeGate) RequireAdmin(ctx context.Context, username, password string) error {
	if username != g.username || password != g.password {
		return fmt.Errorf("%w: administrator role required", shared.ErrAccessDenied)
	}
	return nil
}

type tradeFixture struct {
	inventoryRepo   *memInventoryRepo
	transactionRepo *memTransactionRepo
	paymentRepo     *memPaymentRepo
	customerRepo    *memCustomerRepo
	scope           *NoOpTransactionScope
	idGen           *fakeIDGen
	gate            *fakeGate
}

func newTradeFixture() *tradeFixture {
	f := &tradeFixture{
		inventoryRepo:   newMemInventoryRepo(),
		transactionRepo: newMemTransactionRepo(),
		paymentRepo:     newMemPaymentRepo(),
		customerRepo:    newMemCustomerRepo(),
		idGen:           newFakeIDGen(),
		gate:            &fakeGate{username: "afia", password: "adminpass"},
	}
	f.scope = NewNoOpTransactionScope(f.inventoryRepo, f.transactionRepo, f.paymentRepo, f.customerRepo)
	return f
}

func (f *tradeFixture) seedItem(t *testing.T, name string, price float64, quantity int64) *inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem(name, "2026-01-10", valueobject.NewMoneyGHSFromFloat(price), quantity, "kwame")
	require.NoError(t, err)
	require.NoError(t, f.inventoryRepo.Save(context.Background(), item))
	return item
}

var _ inventory.InventoryItemRepository = (*memInventoryRepo)(nil)
var _ trade.TransactionRepository = (*memTransactionRepo)(nil)
var _ finance.PaymentRepository = (*memPaymentRepo)(nil)
var _ partner.CustomerRepository = (*memCustomerRepo)(nil)

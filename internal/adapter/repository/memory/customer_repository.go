// Package memory holds the in-memory repositories backing the bank registry.
// Durable storage is deliberately absent; these maps are the system of record
// for the lifetime of the process.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
	order     []string
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{customers: make(map[string]*domain.Customer)}
}

func (r *CustomerRepository) Create(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[customer.ID()]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateCustomer, customer.ID())
	}
	r.customers[customer.ID()] = customer
	r.order = append(r.order, customer.ID())
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, customerID string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, customerID)
	}
	return customer, nil
}

func (r *CustomerRepository) List(_ context.Context) ([]*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Customer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.customers[id])
	}
	return out, nil
}

func (r *CustomerRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.customers), nil
}

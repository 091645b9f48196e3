package repo_interfaces

import (
	"context"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, customerID string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Count(ctx context.Context) (int, error)
}

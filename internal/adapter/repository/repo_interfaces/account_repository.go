package repo_interfaces

import (
	"context"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) error
	GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Count(ctx context.Context) (int, error)
}

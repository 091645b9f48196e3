package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	order    []string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]domain.Account)}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Number()]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAccount, account.Number())
	}
	r.accounts[account.Number()] = account
	r.order = append(r.order, account.Number())
	return nil
}

func (r *AccountRepository) GetByNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[accountNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountNumber)
	}
	return account, nil
}

func (r *AccountRepository) List(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.order))
	for _, number := range r.order {
		out = append(out, r.accounts[number])
	}
	return out, nil
}

func (r *AccountRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts), nil
}

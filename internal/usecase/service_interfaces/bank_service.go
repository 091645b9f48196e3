package service_interfaces

import (
	"context"

	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/usecase/services"
	"github.com/shopspring/decimal"
)

type BankService interface {
	RegisterCustomer(ctx context.Context, customerID, name, email, pin string) (*domain.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	VerifyCustomerPIN(ctx context.Context, customerID, pin string) (bool, error)
	ResetCustomerPIN(ctx context.Context, customerID, oldPIN, newPIN string) (bool, error)
	UnlockCustomer(ctx context.Context, customerID, adminKey string) (bool, error)
	VerifyEmployeePIN(pin string) bool

	CreateAccount(ctx context.Context, customerID string, kind domain.Kind, initialBalance decimal.Decimal, params services.AccountParams) (domain.Account, error)
	GetAccount(ctx context.Context, accountNumber string) (domain.Account, error)
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, pin string) error
	Transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal, pin string) error
	Statement(ctx context.Context, accountNumber string) (domain.Statement, error)

	CustomerTotalBalance(ctx context.Context, customerID string) (decimal.Decimal, error)
	CustomerAccountsSummary(ctx context.Context, customerID string) ([]domain.AccountSummary, error)
	ApplyMonthlyUpdates(ctx context.Context) error
	Summary(ctx context.Context) (domain.BankSummary, error)
}

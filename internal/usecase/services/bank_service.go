package services

import (
	"context"
	"fmt"

	"github.com/api-sage/retail-bank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-bank-core/internal/config"
	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// monthlyUpdateWorkers bounds the fan-out of ApplyMonthlyUpdates.
const monthlyUpdateWorkers = 8

// AccountParams carries optional per-variant overrides for CreateAccount.
// Nil fields fall back to the configured defaults.
type AccountParams struct {
	InterestRate   *decimal.Decimal
	OverdraftLimit *decimal.Decimal
}

// BankService is the registry and orchestration layer: it owns the customer
// and account indexes and routes operations to the domain entities. It never
// bypasses an account's own invariant checks.
type BankService struct {
	customerRepo repo_interfaces.CustomerRepository
	accountRepo  repo_interfaces.AccountRepository
	cfg          config.Config
}

func NewBankService(
	customerRepo repo_interfaces.CustomerRepository,
	accountRepo repo_interfaces.AccountRepository,
	cfg config.Config,
) *BankService {
	return &BankService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		cfg:          cfg,
	}
}

func (s *BankService) RegisterCustomer(ctx context.Context, customerID, name, email, pin string) (*domain.Customer, error) {
	logger.Info("bank service register customer request", logger.Fields{
		"customerId": customerID,
		"name":       name,
	})

	customer := domain.NewCustomer(
		customerID, name, email, pin,
		domain.WithAdminKey(s.cfg.AdminKey),
		domain.WithMaxPINAttempts(s.cfg.MaxPINAttempts),
	)
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		logger.Error("bank service register customer failed", err, logger.Fields{
			"customerId": customerID,
		})
		return nil, err
	}
	return customer, nil
}

func (s *BankService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, customerID)
}

func (s *BankService) VerifyCustomerPIN(ctx context.Context, customerID, pin string) (bool, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return false, err
	}
	return customer.VerifyPIN(pin)
}

func (s *BankService) ResetCustomerPIN(ctx context.Context, customerID, oldPIN, newPIN string) (bool, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return false, err
	}

	ok, err := customer.ResetPIN(oldPIN, newPIN)
	if err != nil {
		logger.Error("bank service reset pin failed", err, logger.Fields{
			"customerId": customerID,
		})
		return false, err
	}
	return ok, nil
}

func (s *BankService) UnlockCustomer(ctx context.Context, customerID, adminKey string) (bool, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return false, err
	}

	unlocked := customer.Unlock(adminKey)
	logger.Info("bank service unlock customer", logger.Fields{
		"customerId": customerID,
		"unlocked":   unlocked,
	})
	return unlocked, nil
}

// VerifyEmployeePIN gates employee-level operations with the configured
// shared PIN. Exact match, no hashing; the surrounding session handling is
// the caller's concern.
func (s *BankService) VerifyEmployeePIN(pin string) bool {
	return pin != "" && pin == s.cfg.EmployeePIN
}

// CreateAccount builds a variant account for an existing customer and
// registers it in the customer's portfolio and the global index. Account
// numbers are derived as <customerID>-<sequence> from the portfolio size.
func (s *BankService) CreateAccount(ctx context.Context, customerID string, kind domain.Kind, initialBalance decimal.Decimal, params AccountParams) (domain.Account, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	accountNumber := fmt.Sprintf("%s-%03d", customerID, customer.AccountCount()+1)

	var account domain.Account
	switch kind {
	case domain.KindSavings:
		rate := s.cfg.SavingsInterestRate
		if params.InterestRate != nil {
			rate = *params.InterestRate
		}
		account = domain.NewSavingsAccount(accountNumber, customer, initialBalance, rate, s.cfg.SavingsMinimumBalance)
	case domain.KindChecking:
		limit := s.cfg.CheckingOverdraftLimit
		if params.OverdraftLimit != nil {
			limit = *params.OverdraftLimit
		}
		account = domain.NewCheckingAccount(accountNumber, customer, initialBalance, limit, s.cfg.OverdraftFee)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAccountKind, kind)
	}

	if err := customer.AddAccount(account); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		logger.Error("bank service create account index failed", err, logger.Fields{
			"customerId":    customerID,
			"accountNumber": accountNumber,
		})
		return nil, err
	}

	logger.Info("bank service account created", logger.Fields{
		"customerId":    customerID,
		"accountNumber": accountNumber,
		"kind":          string(kind),
	})
	return account, nil
}

func (s *BankService) GetAccount(ctx context.Context, accountNumber string) (domain.Account, error) {
	return s.accountRepo.GetByNumber(ctx, accountNumber)
}

func (s *BankService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) error {
	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return err
	}
	return account.Deposit(amount)
}

func (s *BankService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, pin string) error {
	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return err
	}
	return account.Withdraw(amount, pin)
}

// Transfer resolves both accounts and delegates to the source account, which
// performs the move atomically. Domain errors propagate unchanged.
func (s *BankService) Transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal, pin string) error {
	from, err := s.accountRepo.GetByNumber(ctx, fromNumber)
	if err != nil {
		return err
	}
	to, err := s.accountRepo.GetByNumber(ctx, toNumber)
	if err != nil {
		return err
	}

	if err := from.Transfer(to, amount, pin); err != nil {
		logger.Error("bank service transfer failed", err, logger.Fields{
			"fromAccount": fromNumber,
			"toAccount":   toNumber,
			"amount":      amount.String(),
		})
		return err
	}

	logger.Info("bank service transfer success", logger.Fields{
		"fromAccount": fromNumber,
		"toAccount":   toNumber,
		"amount":      amount.String(),
	})
	return nil
}

func (s *BankService) Statement(ctx context.Context, accountNumber string) (domain.Statement, error) {
	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return domain.Statement{}, err
	}
	return account.Statement(), nil
}

func (s *BankService) CustomerTotalBalance(ctx context.Context, customerID string) (decimal.Decimal, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return customer.TotalBalance(), nil
}

func (s *BankService) CustomerAccountsSummary(ctx context.Context, customerID string) ([]domain.AccountSummary, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return customer.AccountsSummary(), nil
}

// ApplyMonthlyUpdates runs the periodic accrual on every registered account.
// Accruals are independent per account, so they fan out over a bounded worker
// group; each account serializes on its own lock.
func (s *BankService) ApplyMonthlyUpdates(ctx context.Context) error {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(monthlyUpdateWorkers)
	for _, account := range accounts {
		account := account
		g.Go(func() error {
			account.ApplyMonthlyCharge()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("bank service monthly updates applied", logger.Fields{
		"accounts": len(accounts),
	})
	return nil
}

func (s *BankService) Summary(ctx context.Context) (domain.BankSummary, error) {
	customerCount, err := s.customerRepo.Count(ctx)
	if err != nil {
		return domain.BankSummary{}, err
	}
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return domain.BankSummary{}, err
	}

	totalDeposits := decimal.Zero
	byKind := map[domain.Kind]int{
		domain.KindSavings:  0,
		domain.KindChecking: 0,
	}
	for _, account := range accounts {
		totalDeposits = totalDeposits.Add(account.Balance())
		byKind[account.Kind()]++
	}

	return domain.BankSummary{
		BankName:       s.cfg.BankName,
		TotalCustomers: customerCount,
		TotalAccounts:  len(accounts),
		TotalDeposits:  totalDeposits,
		AccountsByKind: byKind,
	}, nil
}

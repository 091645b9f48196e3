package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// SavingsAccount accrues monthly interest and may never drop below its
// minimum balance through a withdrawal.
type SavingsAccount struct {
	baseAccount
	interestRate   decimal.Decimal
	minimumBalance decimal.Decimal
}

func NewSavingsAccount(number string, owner *Customer, initialBalance, interestRate, minimumBalance decimal.Decimal) *SavingsAccount {
	return &SavingsAccount{
		baseAccount:    newBaseAccount(number, KindSavings, owner, initialBalance),
		interestRate:   interestRate,
		minimumBalance: minimumBalance,
	}
}

func (a *SavingsAccount) Withdraw(amount decimal.Decimal, pin string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawLocked(amount, pin)
}

func (a *SavingsAccount) withdrawLocked(amount decimal.Decimal, pin string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: withdrawal of %s", ErrInvalidAmount, amount)
	}
	if err := a.verifyOwnerPINLocked(pin); err != nil {
		return err
	}
	if a.balance.Sub(amount).LessThan(a.minimumBalance) {
		return fmt.Errorf("%w: cannot go below minimum balance of %s", ErrInsufficientFunds, a.minimumBalance)
	}
	a.balance = a.balance.Sub(amount)
	a.logLocked(TransactionWithdraw, amount, "")
	return nil
}

// coversLocked reports whether the balance alone covers the amount. Savings
// has no overdraft allowance; the minimum-balance floor is enforced by
// withdrawLocked.
func (a *SavingsAccount) coversLocked(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(a.balance)
}

func (a *SavingsAccount) Transfer(target Account, amount decimal.Decimal, pin string) error {
	return transferFunds(a, target, amount, pin)
}

// ApplyMonthlyCharge credits one month of interest when the balance sits at
// or above the minimum; below it, nothing happens and nothing is logged.
// Callers are responsible for invoking this at most once per period.
func (a *SavingsAccount) ApplyMonthlyCharge() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.balance.LessThan(a.minimumBalance) {
		return
	}
	interest := a.balance.Mul(a.interestRate).Div(monthsPerYear)
	a.balance = a.balance.Add(interest)
	a.logLocked(TransactionInterest, interest, "")
}

func (a *SavingsAccount) InterestRate() decimal.Decimal {
	return a.interestRate
}

func (a *SavingsAccount) MinimumBalance() decimal.Decimal {
	return a.minimumBalance
}

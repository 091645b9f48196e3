package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CheckingAccount allows the balance to go negative up to its overdraft
// limit; a negative balance draws a fixed fee at the monthly update.
type CheckingAccount struct {
	baseAccount
	overdraftLimit decimal.Decimal
	overdraftFee   decimal.Decimal
}

func NewCheckingAccount(number string, owner *Customer, initialBalance, overdraftLimit, overdraftFee decimal.Decimal) *CheckingAccount {
	return &CheckingAccount{
		baseAccount:    newBaseAccount(number, KindChecking, owner, initialBalance),
		overdraftLimit: overdraftLimit,
		overdraftFee:   overdraftFee,
	}
}

func (a *CheckingAccount) Withdraw(amount decimal.Decimal, pin string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawLocked(amount, pin)
}

func (a *CheckingAccount) withdrawLocked(amount decimal.Decimal, pin string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: withdrawal of %s", ErrInvalidAmount, amount)
	}
	if err := a.verifyOwnerPINLocked(pin); err != nil {
		return err
	}
	if a.balance.Sub(amount).LessThan(a.overdraftLimit.Neg()) {
		return fmt.Errorf("%w: cannot exceed overdraft limit of %s", ErrInsufficientFunds, a.overdraftLimit)
	}
	a.balance = a.balance.Sub(amount)
	a.logLocked(TransactionWithdraw, amount, "")
	return nil
}

// coversLocked applies the overdraft allowance to the coverage pre-check used
// by transfers.
func (a *CheckingAccount) coversLocked(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(a.balance.Add(a.overdraftLimit))
}

func (a *CheckingAccount) Transfer(target Account, amount decimal.Decimal, pin string) error {
	return transferFunds(a, target, amount, pin)
}

// ApplyMonthlyCharge debits the overdraft fee while the balance is negative;
// a non-negative balance leaves balance and log untouched. Callers are
// responsible for invoking this at most once per period.
func (a *CheckingAccount) ApplyMonthlyCharge() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.balance.IsNegative() {
		return
	}
	a.balance = a.balance.Sub(a.overdraftFee)
	a.logLocked(TransactionOverdraftFee, a.overdraftFee.Neg(), "")
}

func (a *CheckingAccount) OverdraftLimit() decimal.Decimal {
	return a.overdraftLimit
}

func (a *CheckingAccount) OverdraftFee() decimal.Decimal {
	return a.overdraftFee
}

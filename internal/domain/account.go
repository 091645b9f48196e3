package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindSavings  Kind = "SAVINGS"
	KindChecking Kind = "CHECKING"
)

const statementWindow = 10

// Account is the shared contract of the two variants. Deposits need no PIN;
// withdrawals and transfers verify the owner's PIN and enforce the variant's
// balance floor. Every mutation appends to the account's transaction log
// under the same lock.
type Account interface {
	Number() string
	Kind() Kind
	Owner() *Customer
	Balance() decimal.Decimal
	CreatedAt() time.Time
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal, pin string) error
	Transfer(target Account, amount decimal.Decimal, pin string) error
	ApplyMonthlyCharge()
	Statement() Statement
	Transactions() []Transaction

	base() *baseAccount
}

// variant is the per-kind policy surface used by the shared transfer path.
// Both methods expect the account lock to be held.
type variant interface {
	Account
	withdrawLocked(amount decimal.Decimal, pin string) error
	coversLocked(amount decimal.Decimal) bool
}

// Statement is a point-in-time view of an account: identity plus the most
// recent transactions, oldest of the window first.
type Statement struct {
	AccountNumber string
	Balance       decimal.Decimal
	OwnerName     string
	Kind          Kind
	Transactions  []Transaction
}

type baseAccount struct {
	mu           sync.Mutex
	number       string
	kind         Kind
	owner        *Customer // back reference for PIN checks; the customer owns the account
	balance      decimal.Decimal
	createdAt    time.Time
	transactions []Transaction
}

func newBaseAccount(number string, kind Kind, owner *Customer, initialBalance decimal.Decimal) baseAccount {
	return baseAccount{
		number:    number,
		kind:      kind,
		owner:     owner,
		balance:   initialBalance,
		createdAt: time.Now(),
	}
}

func (b *baseAccount) base() *baseAccount { return b }

func (b *baseAccount) Number() string { return b.number }

func (b *baseAccount) Kind() Kind { return b.kind }

func (b *baseAccount) Owner() *Customer { return b.owner }

func (b *baseAccount) CreatedAt() time.Time { return b.createdAt }

func (b *baseAccount) Balance() decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balance
}

// Deposit credits the account. No PIN is required for deposits.
func (b *baseAccount) Deposit(amount decimal.Decimal) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.depositLocked(amount)
}

func (b *baseAccount) depositLocked(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: deposit of %s", ErrInvalidAmount, amount)
	}
	b.balance = b.balance.Add(amount)
	b.logLocked(TransactionDeposit, amount, "")
	return nil
}

// verifyOwnerPINLocked runs the shared PIN gate for withdrawals: presence,
// then the owner's verification. Lockout errors propagate unchanged; a failed
// attempt increments the owner's counter as its defined side effect.
func (b *baseAccount) verifyOwnerPINLocked(pin string) error {
	if pin == "" {
		return ErrPINRequired
	}
	ok, err := b.owner.VerifyPIN(pin)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidPIN
	}
	return nil
}

func (b *baseAccount) logLocked(kind TransactionKind, amount decimal.Decimal, counterAccount string) {
	b.transactions = append(b.transactions, Transaction{
		ID:             uuid.New(),
		Date:           time.Now(),
		Kind:           kind,
		Amount:         amount,
		BalanceAfter:   b.balance,
		CounterAccount: counterAccount,
	})
}

// Transactions returns a copy of the full log.
func (b *baseAccount) Transactions() []Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Transaction, len(b.transactions))
	copy(out, b.transactions)
	return out
}

// Statement snapshots the account with its last entries, oldest first.
func (b *baseAccount) Statement() Statement {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := 0
	if len(b.transactions) > statementWindow {
		start = len(b.transactions) - statementWindow
	}
	window := make([]Transaction, len(b.transactions)-start)
	copy(window, b.transactions[start:])

	return Statement{
		AccountNumber: b.number,
		Balance:       b.balance,
		OwnerName:     b.owner.Name(),
		Kind:          b.kind,
		Transactions:  window,
	}
}

// transferFunds moves amount from src to target atomically. Both account
// locks are taken in number order (once for a self-transfer) so no caller can
// observe funds gone from the source but not yet at the target, and two
// concurrent transfers cannot both pass the funds check on a stale balance.
//
// The coverage pre-check is deliberately kept alongside the floor re-check
// inside withdrawLocked: the original performs both, and for savings they
// test different bounds.
func transferFunds(src variant, target Account, amount decimal.Decimal, pin string) error {
	sb := src.base()
	tb := target.base()

	if sb == tb {
		sb.mu.Lock()
		defer sb.mu.Unlock()
	} else {
		first, second := sb, tb
		if second.number < first.number {
			first, second = second, first
		}
		first.mu.Lock()
		defer first.mu.Unlock()
		second.mu.Lock()
		defer second.mu.Unlock()
	}

	if !src.coversLocked(amount) {
		return fmt.Errorf("%w: transfer of %s from %s", ErrInsufficientFunds, amount, sb.number)
	}
	if err := sb.verifyOwnerPINLocked(pin); err != nil {
		return err
	}

	// The variant withdraw re-verifies the PIN; the pre-check above already
	// passed, so this succeeds unless the floor check rejects the amount.
	if err := src.withdrawLocked(amount, pin); err != nil {
		return err
	}
	if err := tb.depositLocked(amount); err != nil {
		return err
	}
	sb.logLocked(TransactionTransferOut, amount, tb.number)
	return nil
}

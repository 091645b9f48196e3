package domain

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

const defaultMaxPINAttempts = 3

// Customer owns a portfolio of accounts and carries the PIN credential that
// gates withdrawals on them. Credential state (hash, failure counter, lock
// flag) is guarded by its own mutex so several sessions can hit the same
// customer; the mutex is never held while calling into an account.
type Customer struct {
	mu             sync.Mutex
	id             string
	name           string
	email          string
	pinHash        string
	failedAttempts int
	locked         bool
	adminKey       string
	maxAttempts    int
	accounts       []Account
}

type CustomerOption func(*Customer)

// WithAdminKey sets the administrative secret accepted by Unlock. A customer
// built without one cannot be unlocked.
func WithAdminKey(key string) CustomerOption {
	return func(c *Customer) {
		c.adminKey = key
	}
}

// WithMaxPINAttempts overrides the number of consecutive failed verifications
// that trigger a lockout.
func WithMaxPINAttempts(n int) CustomerOption {
	return func(c *Customer) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// NewCustomer registers identity data and hashes the initial PIN. The raw PIN
// is never retained.
func NewCustomer(id, name, email, pin string, opts ...CustomerOption) *Customer {
	c := &Customer{
		id:          id,
		name:        name,
		email:       email,
		pinHash:     hashPIN(pin),
		maxAttempts: defaultMaxPINAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// hashPIN is a single unsalted sha256 pass. Known weak, kept for stored
// credential format compatibility; see the hardening note in DESIGN.md.
func hashPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// VerifyPIN compares the candidate against the stored hash. A locked customer
// rejects every attempt, correct or not. A match resets the failure counter;
// a mismatch increments it, and the attempt that reaches the limit both locks
// the customer and fails with ErrCustomerLocked itself.
func (c *Customer) VerifyPIN(candidate string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.locked {
		return false, ErrCustomerLocked
	}

	candidateHash := hashPIN(candidate)
	if subtle.ConstantTimeCompare([]byte(candidateHash), []byte(c.pinHash)) == 1 {
		c.failedAttempts = 0
		return true, nil
	}

	c.failedAttempts++
	if c.failedAttempts >= c.maxAttempts {
		c.locked = true
		return false, ErrCustomerLocked
	}
	return false, nil
}

// ResetPIN replaces the stored hash after the old PIN verifies. A wrong old
// PIN counts as a failed attempt; lockout errors propagate unchanged.
func (c *Customer) ResetPIN(oldPIN, newPIN string) (bool, error) {
	ok, err := c.VerifyPIN(oldPIN)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinHash = hashPIN(newPIN)
	return true, nil
}

// Unlock clears the lock flag and failure counter when the candidate matches
// the configured administrative key exactly. No hashing: the key is a shared
// operational secret, not a stored credential.
func (c *Customer) Unlock(adminKey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.adminKey == "" || adminKey != c.adminKey {
		return false
	}
	c.locked = false
	c.failedAttempts = 0
	return true
}

// AddAccount appends to the portfolio after checking the account's back
// reference really points at this customer.
func (c *Customer) AddAccount(acct Account) error {
	if acct.Owner() != c {
		return fmt.Errorf("%w: account %s", ErrOwnershipMismatch, acct.Number())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, acct)
	return nil
}

// Account looks up an owned account by number.
func (c *Customer) Account(number string) (Account, error) {
	for _, acct := range c.snapshotAccounts() {
		if acct.Number() == number {
			return acct, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, number)
}

// Accounts returns a copy of the portfolio.
func (c *Customer) Accounts() []Account {
	return c.snapshotAccounts()
}

// AccountCount reports the portfolio size.
func (c *Customer) AccountCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.accounts)
}

// TotalBalance sums the balances of every owned account.
func (c *Customer) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, acct := range c.snapshotAccounts() {
		total = total.Add(acct.Balance())
	}
	return total
}

// AccountSummary is one row of a customer's portfolio overview.
type AccountSummary struct {
	AccountNumber string
	Kind          Kind
	Balance       decimal.Decimal
}

// AccountsSummary returns one summary row per owned account.
func (c *Customer) AccountsSummary() []AccountSummary {
	accounts := c.snapshotAccounts()
	out := make([]AccountSummary, 0, len(accounts))
	for _, acct := range accounts {
		out = append(out, AccountSummary{
			AccountNumber: acct.Number(),
			Kind:          acct.Kind(),
			Balance:       acct.Balance(),
		})
	}
	return out
}

// snapshotAccounts copies the slice under the lock so balance reads happen
// without holding the customer mutex. Account mutexes are always taken after
// (never under) this one.
func (c *Customer) snapshotAccounts() []Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

func (c *Customer) ID() string {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Email() string {
	return c.email
}

func (c *Customer) IsLocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

func (c *Customer) FailedAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failedAttempts
}

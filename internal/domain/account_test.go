package domain_test

import (
	"sync"
	"testing"

	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	customer *domain.Customer
	savings  *domain.SavingsAccount
	checking *domain.CheckingAccount
}

// newFixture mirrors the stock scenario: cust001 with PIN 1234 holding
// savings cust001-001 at $1000 and checking cust001-002 at $500.
func newFixture(t *testing.T) fixture {
	t.Helper()
	c := newTestCustomer(t)
	savings := domain.NewSavingsAccount("cust001-001", c, dec(t, "1000"), dec(t, "0.02"), dec(t, "100"))
	checking := domain.NewCheckingAccount("cust001-002", c, dec(t, "500"), dec(t, "500"), dec(t, "25"))
	require.NoError(t, c.AddAccount(savings))
	require.NoError(t, c.AddAccount(checking))
	return fixture{customer: c, savings: savings, checking: checking}
}

func lastTransaction(t *testing.T, acct domain.Account) domain.Transaction {
	t.Helper()
	txns := acct.Transactions()
	require.NotEmpty(t, txns)
	return txns[len(txns)-1]
}

func TestDeposit(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.savings.Deposit(dec(t, "200")))
	require.Equal(t, "1200", f.savings.Balance().String())

	tx := lastTransaction(t, f.savings)
	require.Equal(t, domain.TransactionDeposit, tx.Kind)
	require.Equal(t, "200", tx.Amount.String())
	require.Equal(t, "1200", tx.BalanceAfter.String())
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)

	require.ErrorIs(t, f.savings.Deposit(decimal.Zero), domain.ErrInvalidAmount)
	require.ErrorIs(t, f.savings.Deposit(dec(t, "-5")), domain.ErrInvalidAmount)
	require.Equal(t, "1000", f.savings.Balance().String())
	require.Empty(t, f.savings.Transactions())
}

func TestSavingsWithdrawEnforcesMinimumBalance(t *testing.T) {
	f := newFixture(t)

	// Down to exactly the minimum is allowed.
	require.NoError(t, f.savings.Withdraw(dec(t, "900"), "1234"))
	require.Equal(t, "100", f.savings.Balance().String())

	err := f.savings.Withdraw(dec(t, "1"), "1234")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.Equal(t, "100", f.savings.Balance().String())

	tx := lastTransaction(t, f.savings)
	require.Equal(t, domain.TransactionWithdraw, tx.Kind)
	require.Equal(t, "900", tx.Amount.String())
}

func TestCheckingWithdrawAllowsOverdraftUpToLimit(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.checking.Withdraw(dec(t, "100"), "1234"))
	require.Equal(t, "400", f.checking.Balance().String())

	// Overdraft limit is $500: from $400 a $600 withdrawal would land on -$200.
	require.NoError(t, f.checking.Withdraw(dec(t, "600"), "1234"))
	require.Equal(t, "-200", f.checking.Balance().String())

	err := f.checking.Withdraw(dec(t, "301"), "1234")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.Equal(t, "-200", f.checking.Balance().String())
}

func TestCheckingWithdrawExactOverdraftBoundary(t *testing.T) {
	f := newFixture(t)

	// Landing exactly on -limit is allowed; one cent past it is not.
	require.NoError(t, f.checking.Withdraw(dec(t, "1000"), "1234"))
	require.Equal(t, "-500", f.checking.Balance().String())

	err := f.checking.Withdraw(dec(t, "0.01"), "1234")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.Equal(t, "-500", f.checking.Balance().String())
}

func TestWithdrawPINChecks(t *testing.T) {
	f := newFixture(t)

	err := f.savings.Withdraw(dec(t, "100"), "")
	require.ErrorIs(t, err, domain.ErrPINRequired)
	require.Equal(t, 0, f.customer.FailedAttempts())

	err = f.savings.Withdraw(dec(t, "100"), "9999")
	require.ErrorIs(t, err, domain.ErrInvalidPIN)
	require.Equal(t, 1, f.customer.FailedAttempts())
	require.Equal(t, "1000", f.savings.Balance().String())

	// PIN is verified before the floor check, so a wrong PIN on an oversized
	// withdrawal still counts as a failed attempt.
	err = f.savings.Withdraw(dec(t, "100000"), "9999")
	require.ErrorIs(t, err, domain.ErrInvalidPIN)
	require.Equal(t, 2, f.customer.FailedAttempts())
}

func TestWithdrawAgainstLockedCustomer(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.customer.VerifyPIN("0000")
	}

	err := f.savings.Withdraw(dec(t, "100"), "1234")
	require.ErrorIs(t, err, domain.ErrCustomerLocked)
	require.Equal(t, "1000", f.savings.Balance().String())
}

func TestWithdrawRejectsNonPositiveAmountBeforePIN(t *testing.T) {
	f := newFixture(t)

	err := f.savings.Withdraw(decimal.Zero, "9999")
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	require.Equal(t, 0, f.customer.FailedAttempts())
}

func TestTransferMovesFundsAndLogs(t *testing.T) {
	f := newFixture(t)
	other := domain.NewCustomer("cust002", "Bob Jones", "bob@example.com", "4321", domain.WithAdminKey(testAdminKey))
	target := domain.NewSavingsAccount("cust002-001", other, dec(t, "1500"), dec(t, "0.02"), dec(t, "100"))
	require.NoError(t, other.AddAccount(target))

	require.NoError(t, f.savings.Deposit(dec(t, "200"))) // 1200
	require.NoError(t, f.savings.Transfer(target, dec(t, "150"), "1234"))

	require.Equal(t, "1050", f.savings.Balance().String())
	require.Equal(t, "1650", target.Balance().String())

	srcTxns := f.savings.Transactions()
	require.Len(t, srcTxns, 3) // deposit, withdraw, transfer-out
	require.Equal(t, domain.TransactionWithdraw, srcTxns[1].Kind)
	require.Equal(t, domain.TransactionTransferOut, srcTxns[2].Kind)
	require.Equal(t, "cust002-001", srcTxns[2].CounterAccount)
	require.Equal(t, "150", srcTxns[2].Amount.String())

	dstTx := lastTransaction(t, target)
	require.Equal(t, domain.TransactionDeposit, dstTx.Kind)
	require.Equal(t, "150", dstTx.Amount.String())
}

func TestTransferWrongPINLeavesBalancesUntouched(t *testing.T) {
	f := newFixture(t)
	other := domain.NewCustomer("cust002", "Bob Jones", "bob@example.com", "4321", domain.WithAdminKey(testAdminKey))
	target := domain.NewSavingsAccount("cust002-001", other, dec(t, "1500"), dec(t, "0.02"), dec(t, "100"))
	require.NoError(t, other.AddAccount(target))

	err := f.savings.Transfer(target, dec(t, "150"), "9999")
	require.ErrorIs(t, err, domain.ErrInvalidPIN)
	require.Equal(t, "1000", f.savings.Balance().String())
	require.Equal(t, "1500", target.Balance().String())
	require.Empty(t, f.savings.Transactions())
	require.Equal(t, 1, f.customer.FailedAttempts())
}

func TestTransferInsufficientFundsFailsBeforePINCheck(t *testing.T) {
	f := newFixture(t)

	err := f.savings.Transfer(f.checking, dec(t, "5000"), "9999")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.Equal(t, "1000", f.savings.Balance().String())
	require.Equal(t, "500", f.checking.Balance().String())
	// The coverage pre-check rejects before the PIN is ever consulted.
	require.Equal(t, 0, f.customer.FailedAttempts())
}

func TestTransferMissingPIN(t *testing.T) {
	f := newFixture(t)

	err := f.savings.Transfer(f.checking, dec(t, "100"), "")
	require.ErrorIs(t, err, domain.ErrPINRequired)
	require.Equal(t, "1000", f.savings.Balance().String())
	require.Equal(t, "500", f.checking.Balance().String())
}

func TestCheckingTransferUsesOverdraftAllowance(t *testing.T) {
	f := newFixture(t)

	// $800 from a $500 checking balance is covered by the $500 overdraft.
	require.NoError(t, f.checking.Transfer(f.savings, dec(t, "800"), "1234"))
	require.Equal(t, "-300", f.checking.Balance().String())
	require.Equal(t, "1800", f.savings.Balance().String())

	err := f.checking.Transfer(f.savings, dec(t, "201"), "1234")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.Equal(t, "-300", f.checking.Balance().String())
}

func TestSavingsTransferPreCheckRequiresFullCoverage(t *testing.T) {
	f := newFixture(t)

	// Pre-check: savings cannot cover more than the balance, regardless of
	// what the minimum-balance floor alone would say.
	err := f.savings.Transfer(f.checking, dec(t, "1001"), "1234")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Covered by balance but floored by the minimum: rejected by withdraw.
	err = f.savings.Transfer(f.checking, dec(t, "950"), "1234")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.Equal(t, "1000", f.savings.Balance().String())
	require.Equal(t, "500", f.checking.Balance().String())
}

func TestSelfTransferIsNetZero(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.savings.Transfer(f.savings, dec(t, "200"), "1234"))
	require.Equal(t, "1000", f.savings.Balance().String())

	txns := f.savings.Transactions()
	require.Len(t, txns, 3)
	require.Equal(t, domain.TransactionWithdraw, txns[0].Kind)
	require.Equal(t, domain.TransactionDeposit, txns[1].Kind)
	require.Equal(t, domain.TransactionTransferOut, txns[2].Kind)
}

func TestSavingsMonthlyInterest(t *testing.T) {
	f := newFixture(t)

	f.savings.ApplyMonthlyCharge()

	interest := dec(t, "1000").Mul(dec(t, "0.02")).Div(decimal.NewFromInt(12))
	want := dec(t, "1000").Add(interest)
	require.True(t, f.savings.Balance().Equal(want), "balance = %s, want %s", f.savings.Balance(), want)

	tx := lastTransaction(t, f.savings)
	require.Equal(t, domain.TransactionInterest, tx.Kind)
	require.True(t, tx.Amount.Equal(interest))
}

func TestSavingsAccrualNoOpBelowMinimum(t *testing.T) {
	c := newTestCustomer(t)
	a := domain.NewSavingsAccount("cust001-001", c, dec(t, "50"), dec(t, "0.02"), dec(t, "100"))

	a.ApplyMonthlyCharge()
	a.ApplyMonthlyCharge()

	require.Equal(t, "50", a.Balance().String())
	require.Empty(t, a.Transactions())
}

func TestCheckingOverdraftFee(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.checking.Withdraw(dec(t, "700"), "1234")) // -200

	f.checking.ApplyMonthlyCharge()
	require.Equal(t, "-225", f.checking.Balance().String())

	tx := lastTransaction(t, f.checking)
	require.Equal(t, domain.TransactionOverdraftFee, tx.Kind)
	require.Equal(t, "-25", tx.Amount.String())
}

func TestCheckingAccrualNoOpWhenNonNegative(t *testing.T) {
	f := newFixture(t)

	f.checking.ApplyMonthlyCharge()
	f.checking.ApplyMonthlyCharge()

	require.Equal(t, "500", f.checking.Balance().String())
	require.Empty(t, f.checking.Transactions())
}

func TestStatementWindow(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 12; i++ {
		require.NoError(t, f.savings.Deposit(dec(t, "10")))
	}

	st := f.savings.Statement()
	require.Equal(t, "cust001-001", st.AccountNumber)
	require.Equal(t, "Alice Smith", st.OwnerName)
	require.Equal(t, domain.KindSavings, st.Kind)
	require.Equal(t, "1120", st.Balance.String())
	require.Len(t, st.Transactions, 10)

	// Oldest of the window first: the first two deposits fall outside.
	require.Equal(t, "1030", st.Transactions[0].BalanceAfter.String())
	require.Equal(t, "1120", st.Transactions[9].BalanceAfter.String())
}

func TestConcurrentTransfersCannotDoubleSpend(t *testing.T) {
	f := newFixture(t)
	other := domain.NewCustomer("cust002", "Bob Jones", "bob@example.com", "4321")
	target := domain.NewSavingsAccount("cust002-001", other, dec(t, "1500"), dec(t, "0.02"), dec(t, "100"))
	require.NoError(t, other.AddAccount(target))

	// Savings at $1000 with a $100 floor: only one $600 transfer can succeed.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = f.savings.Transfer(target, dec(t, "600"), "1234")
		}()
	}
	wg.Wait()

	if errs[0] == nil {
		require.ErrorIs(t, errs[1], domain.ErrInsufficientFunds)
	} else {
		require.NoError(t, errs[1])
		require.ErrorIs(t, errs[0], domain.ErrInsufficientFunds)
	}
	require.Equal(t, "400", f.savings.Balance().String())
	require.Equal(t, "2100", target.Balance().String())
}

func TestConcurrentOpposingTransfersDoNotDeadlock(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = f.savings.Transfer(f.checking, dec(t, "100"), "1234")
	}()
	go func() {
		defer wg.Done()
		_ = f.checking.Transfer(f.savings, dec(t, "100"), "1234")
	}()
	wg.Wait()

	total := f.savings.Balance().Add(f.checking.Balance())
	require.Equal(t, "1500", total.String())
}

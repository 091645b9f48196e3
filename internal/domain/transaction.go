package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionDeposit      TransactionKind = "DEPOSIT"
	TransactionWithdraw     TransactionKind = "WITHDRAW"
	TransactionTransferOut  TransactionKind = "TRANSFER_OUT"
	TransactionInterest     TransactionKind = "INTEREST"
	TransactionOverdraftFee TransactionKind = "OVERDRAFT_FEE"
)

// Transaction is one entry in an account's append-only log. Amount is signed:
// deposits, withdrawals and transfers record the positive moved amount,
// overdraft fees record the negated fee. CounterAccount is set only for
// TRANSFER_OUT entries.
type Transaction struct {
	ID             uuid.UUID
	Date           time.Time
	Kind           TransactionKind
	Amount         decimal.Decimal
	BalanceAfter   decimal.Decimal
	CounterAccount string
}

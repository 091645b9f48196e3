package domain

import "github.com/shopspring/decimal"

// BankSummary aggregates the global account index.
type BankSummary struct {
	BankName       string
	TotalCustomers int
	TotalAccounts  int
	TotalDeposits  decimal.Decimal
	AccountsByKind map[Kind]int
}

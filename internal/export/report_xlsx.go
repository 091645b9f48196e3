package export

import (
	"fmt"
	"io"

	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/tealeg/xlsx"
)

// WriteBankReportXLSX writes a workbook with a bank summary sheet and one
// transactions sheet covering the supplied statements.
func WriteBankReportXLSX(w io.Writer, sum domain.BankSummary, statements []domain.Statement) error {
	file := xlsx.NewFile()

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return fmt.Errorf("write bank report: %w", err)
	}
	addRow(summary, "Bank", sum.BankName)
	addRow(summary, "Customers", fmt.Sprintf("%d", sum.TotalCustomers))
	addRow(summary, "Accounts", fmt.Sprintf("%d", sum.TotalAccounts))
	addRow(summary, "Total Deposits", sum.TotalDeposits.StringFixed(2))
	for kind, count := range sum.AccountsByKind {
		addRow(summary, fmt.Sprintf("%s accounts", kind), fmt.Sprintf("%d", count))
	}

	transactions, err := file.AddSheet("Transactions")
	if err != nil {
		return fmt.Errorf("write bank report: %w", err)
	}
	addRow(transactions, "Account", "Date", "Type", "Amount", "Balance After", "Counterparty")
	for _, st := range statements {
		for _, tx := range st.Transactions {
			addRow(
				transactions,
				st.AccountNumber,
				tx.Date.Format("2006-01-02 15:04:05"),
				string(tx.Kind),
				tx.Amount.StringFixed(2),
				tx.BalanceAfter.StringFixed(2),
				tx.CounterAccount,
			)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write bank report: %w", err)
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

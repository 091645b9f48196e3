// Package export renders account statements and bank reports to portable
// formats for callers that hand them to customers or back office staff.
package export

import (
	"fmt"
	"io"

	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/jung-kurt/gofpdf"
)

// WriteStatementPDF renders a statement as an A4 PDF: account header plus a
// table of the statement window.
func WriteStatementPDF(w io.Writer, st domain.Statement) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Account Statement %s", st.AccountNumber))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 7, fmt.Sprintf("Owner: %s", st.OwnerName))
	pdf.Ln(7)
	pdf.Cell(40, 7, fmt.Sprintf("Type: %s", st.Kind))
	pdf.Ln(7)
	pdf.Cell(40, 7, fmt.Sprintf("Balance: %s", st.Balance.StringFixed(2)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(45, 7, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Type", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, "Balance", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, "Counterparty", "1", 0, "", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 12)
	for _, tx := range st.Transactions {
		pdf.CellFormat(45, 7, tx.Date.Format("2006-01-02 15:04:05"), "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, string(tx.Kind), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 7, tx.Amount.StringFixed(2), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 7, tx.BalanceAfter.StringFixed(2), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 7, tx.CounterAccount, "1", 0, "", false, 0, "")
		pdf.Ln(7)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write statement pdf: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const invoiceSheet = "Invoices"

type ExportService struct {
	DB        *sql.DB
	RequestID string
}

func (s ExportService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Invoices exports the filtered invoices as an xlsx workbook.
func (s ExportService) Invoices(ctx context.Context, f repositories.InvoiceFilter) ([]byte, string, error) {
	rows, err := repositories.InvoiceRepository{DB: s.db()}.List(ctx, f)
	if err != nil {
		return nil, "", err
	}
	data, err := BuildInvoiceWorkbook(rows)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "invoices", "export", "invoice workbook built", "rows", len(rows))
	return data, "invoices_" + utils.DateKey(utils.NowUTC()) + ".xlsx", nil
}

// BuildInvoiceWorkbook writes one row per invoice and a TOTAL row.
func BuildInvoiceWorkbook(invoices []models.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return nil, err
	}

	headers := []string{"Invoice Number", "Booking ID", "Issue Date", "Due Date", "Amount", "Total Expenses", "Profit", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(invoiceSheet, cell, h)
	}
	f.SetColWidth(invoiceSheet, "A", "B", 18)
	f.SetColWidth(invoiceSheet, "C", "D", 14)
	f.SetColWidth(invoiceSheet, "E", "G", 16)
	f.SetColWidth(invoiceSheet, "H", "H", 40)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	f.SetCellStyle(invoiceSheet, "A1", "H1", headerStyle)

	var amount, expenses, profit decimal.Decimal
	for i, inv := range invoices {
		row := i + 2
		due := ""
		if inv.DueDate != nil {
			due = utils.FormatDate(*inv.DueDate)
		}
		f.SetCellValue(invoiceSheet, fmt.Sprintf("A%d", row), inv.InvoiceNumber)
		f.SetCellValue(invoiceSheet, fmt.Sprintf("B%d", row), inv.BookingID)
		f.SetCellValue(invoiceSheet, fmt.Sprintf("C%d", row), utils.FormatDate(inv.IssueDate))
		f.SetCellValue(invoiceSheet, fmt.Sprintf("D%d", row), due)
		f.SetCellValue(invoiceSheet, fmt.Sprintf("E%d", row), inv.Amount)
		f.SetCellValue(invoiceSheet, fmt.Sprintf("F%d", row), inv.TotalExpenses)
		f.SetCellValue(invoiceSheet, fmt.Sprintf("G%d", row), inv.Profit)
		f.SetCellValue(invoiceSheet, fmt.Sprintf("H%d", row), inv.Notes)

		amount = amount.Add(utils.Money(inv.Amount))
		expenses = expenses.Add(utils.Money(inv.TotalExpenses))
		profit = profit.Add(utils.Money(inv.Profit))
	}

	totalRow := len(invoices) + 2
	f.SetCellValue(invoiceSheet, fmt.Sprintf("A%d", totalRow), "TOTAL")
	f.SetCellValue(invoiceSheet, fmt.Sprintf("E%d", totalRow), amount.InexactFloat64())
	f.SetCellValue(invoiceSheet, fmt.Sprintf("F%d", totalRow), expenses.InexactFloat64())
	f.SetCellValue(invoiceSheet, fmt.Sprintf("G%d", totalRow), profit.InexactFloat64())

	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	f.SetCellStyle(invoiceSheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("H%d", totalRow), totalStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

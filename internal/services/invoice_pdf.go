package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// PDFInvoiceRenderer lays out a tax invoice on one A4 page. Company logos are
// read from AssetDir only; an empty AssetDir renders without images.
type PDFInvoiceRenderer struct {
	AssetDir string
}

// InvoiceTotals are the money lines printed on an invoice.
type InvoiceTotals struct {
	Subtotal   decimal.Decimal
	GST        decimal.Decimal
	Advance    decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeInvoiceTotals reads only the invoice's frozen amounts, so later trip
// edits never change a stored invoice. Grand total is what remains due:
// subtotal plus GST minus the advance, not below zero.
func ComputeInvoiceTotals(doc models.InvoiceDocument) InvoiceTotals {
	sub := utils.Money(doc.Invoice.Amount)
	gst := utils.GST(doc.Invoice.Amount)
	adv := utils.Money(doc.Invoice.AdvanceAmount)
	grand := sub.Add(gst).Sub(adv)
	if grand.IsNegative() {
		grand = decimal.Zero
	}
	return InvoiceTotals{Subtotal: sub, GST: gst, Advance: adv, GrandTotal: grand}
}

var (
	brandR, brandG, brandB = 35, 64, 97
	noteR, noteG, noteB    = 223, 26, 1
)

func (r PDFInvoiceRenderer) Render(doc models.InvoiceDocument) ([]byte, string, error) {
	inv, trip, company := doc.Invoice, doc.Trip, doc.Company
	totals := ComputeInvoiceTotals(doc)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.InvoiceNumber, false)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// website bar
	pdf.SetFillColor(brandR, brandG, brandB)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 10, tr(company.Website), "", 1, "C", true, 0, "")
	pdf.Ln(4)

	top := pdf.GetY()
	if f, imageType := openAsset(r.AssetDir, company.Logo); f != nil {
		opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
		pdf.RegisterImageOptionsReader("logo", opts, f)
		f.Close()
		pdf.ImageOptions("logo", 15, top, 0, 30, false, opts, 0, "")
	}

	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(contentW, 10, tr(company.Name), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range strings.Split(company.Address, ",") {
		if line = strings.TrimSpace(line); line != "" {
			pdf.CellFormat(contentW, 5, tr(line), "", 1, "R", false, 0, "")
		}
	}
	pdf.CellFormat(contentW, 5, "GST: "+safe(company.GST, "N/A"), "", 1, "R", false, 0, "")
	if company.Mobile != "" {
		pdf.CellFormat(contentW, 5, "Mob no: "+company.Mobile, "", 1, "R", false, 0, "")
	}
	if y := top + 32; pdf.GetY() < y {
		pdf.SetY(y)
	}
	rule(pdf, contentW)

	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Invoice", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	col := contentW / 3
	detailRows := [][2][3]string{
		{
			{"Submitted on:", "Type of Vehicle:", "Invoice Number:"},
			{utils.FormatDisplayDate(&inv.IssueDate), safe(trip.VehicleType, "NA"), inv.InvoiceNumber},
		},
		{
			{"Customer:", "Starting KM / Ending KM:", "Vehicle Number:"},
			{safe(trip.CustomerName, "NA"), km(trip.StartingReading) + " / " + km(trip.EndingReading), safe(trip.VehicleNumber, "NA")},
		},
	}
	for _, row := range detailRows {
		pdf.SetFont("Helvetica", "B", 10)
		for _, label := range row[0] {
			pdf.CellFormat(col, 6, label, "", 0, "L", false, 0, "")
		}
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		for _, value := range row[1] {
			pdf.CellFormat(col, 6, tr(value), "", 0, "L", false, 0, "")
		}
		pdf.Ln(8)
	}
	rule(pdf, contentW)

	description := "NA"
	if trip.FromLocation != "" && trip.EndLocation != "" {
		description = trip.FromLocation + " -> " + trip.EndLocation + " round trip"
	}
	distance := "NA"
	if d := trip.EndingReading - trip.StartingReading; d > 0 {
		distance = km(d) + " km"
	}
	widths := []float64{contentW * 0.4, contentW * 0.2, contentW * 0.2, contentW * 0.2}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"Description", "HRS/KMS", "Cost", "Total Amount"} {
		pdf.CellFormat(widths[i], 6, h, "", 0, "L", false, 0, "")
	}
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	for i, v := range []string{description, distance, pdfMoney(totals.Subtotal), pdfMoney(totals.Subtotal)} {
		pdf.CellFormat(widths[i], 6, tr(v), "", 0, "L", false, 0, "")
	}
	pdf.Ln(9)
	rule(pdf, contentW)

	pdf.SetTextColor(noteR, noteG, noteB)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Note : Including Driver allowances, tolls and permits.", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)

	quarter := contentW / 4
	totalRows := [][4]string{
		{"Journey Start Date", utils.FormatDisplayDate(trip.StartDate), "Subtotal (Excl. GST)", pdfMoney(totals.Subtotal)},
		{"Journey End Date", utils.FormatDisplayDate(trip.EndDate), "GST (5%)", pdfMoney(totals.GST)},
		{"", "", "Advance Received", pdfMoney(totals.Advance)},
	}
	for _, row := range totalRows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(quarter, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(quarter, 6, row[1], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(quarter, 6, row[2], "", 0, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(quarter, 6, row[3], "", 1, "R", false, 0, "")
	}
	pdf.SetDrawColor(brandR, brandG, brandB)
	pdf.Line(15+contentW/2, pdf.GetY()+1, 15+contentW, pdf.GetY()+1)
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW*0.75, 8, "Grand Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.25, 8, pdfMoney(totals.GrandTotal), "", 1, "R", false, 0, "")
	pdf.Line(15+contentW/2, pdf.GetY()+1, 15+contentW, pdf.GetY()+1)
	pdf.Ln(8)

	bank := company.Bank
	for _, line := range [][2]string{
		{"Mode of Payment:", bank.ModeOfPayment},
		{"Account Holder Name:", bank.Holder},
		{"Branch Name:", bank.BranchAddress},
		{"Bank Name:", bank.BankName},
		{"Current Account:", bank.CurrentAccount},
		{"IFSC:", bank.IFSC},
	} {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 6, line[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW-45, 6, tr(safe(line[1], "NA")), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	if company.Description != "" {
		pdf.SetFillColor(brandR, brandG, brandB)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(contentW, 8, tr(company.Description), "", "C", true)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), utils.SafeFilenamePart(inv.InvoiceNumber) + ".pdf", nil
}

func rule(pdf *gofpdf.Fpdf, width float64) {
	pdf.SetDrawColor(brandR, brandG, brandB)
	y := pdf.GetY() + 1
	pdf.Line(15, y, 15+width, y)
	pdf.Ln(4)
}

// pdfMoney swaps the rupee sign for "Rs." since core PDF fonts lack the glyph.
func pdfMoney(d decimal.Decimal) string {
	return strings.Replace(utils.FormatINR(d), "₹", "Rs. ", 1)
}

func km(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

// openAsset opens name inside dir for embedding. Names that are remote,
// absolute, or resolve outside dir are refused, as are non PNG/JPEG files.
func openAsset(dir, name string) (*os.File, string) {
	dir, name = strings.TrimSpace(dir), strings.TrimSpace(name)
	if dir == "" || name == "" || strings.Contains(name, "://") {
		return nil, ""
	}
	var imageType string
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		imageType = "PNG"
	case ".jpg", ".jpeg":
		imageType = "JPG"
	default:
		return nil, ""
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, ""
	}
	defer root.Close()
	f, err := root.Open(filepath.FromSlash(name))
	if err != nil {
		return nil, ""
	}
	if st, err := f.Stat(); err != nil || st.IsDir() {
		f.Close()
		return nil, ""
	}
	return f, imageType
}

package services

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/xuri/excelize/v2"
)

func sampleDocument() models.InvoiceDocument {
	return models.InvoiceDocument{
		Invoice: models.Invoice{ID: 1, InvoiceNumber: "INV000001", TripID: 5, BookingID: "20250114001", CompanyID: 2,
			IssueDate: fixedNow, Amount: 1500, AdvanceAmount: 500, TotalExpenses: 500, Profit: 1000},
		Trip:    sampleTrip(),
		Company: sampleCompany(),
	}
}

func TestComputeInvoiceTotals(t *testing.T) {
	totals := ComputeInvoiceTotals(sampleDocument())
	if totals.Subtotal.String() != "1500" || totals.GST.String() != "75" {
		t.Fatalf("unexpected subtotal/gst: %s / %s", totals.Subtotal, totals.GST)
	}
	if totals.GrandTotal.String() != "1075" {
		t.Fatalf("grand total = %s, want 1075", totals.GrandTotal)
	}

	doc := sampleDocument()
	doc.Invoice.AdvanceAmount = 5000
	if got := ComputeInvoiceTotals(doc).GrandTotal; !got.IsZero() {
		t.Fatalf("grand total must not go negative, got %s", got)
	}
}

func TestInvoiceTotalsIgnoreLaterTripEdits(t *testing.T) {
	doc := sampleDocument()
	before := ComputeInvoiceTotals(doc)

	doc.Trip.TripAmount = 9000
	doc.Trip.AdvanceAmount = 2000
	after := ComputeInvoiceTotals(doc)

	if !before.GrandTotal.Equal(after.GrandTotal) || !before.Advance.Equal(after.Advance) || !before.Subtotal.Equal(after.Subtotal) {
		t.Fatalf("stored invoice totals changed after trip edit: %+v -> %+v", before, after)
	}
}

func TestPDFInvoiceRenderer(t *testing.T) {
	data, filename, err := PDFInvoiceRenderer{}.Render(sampleDocument())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if filename != "INV000001.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestPDFInvoiceRendererSparseDocument(t *testing.T) {
	doc := models.InvoiceDocument{Invoice: models.Invoice{InvoiceNumber: "INV000002", IssueDate: fixedNow}}
	if _, _, err := (PDFInvoiceRenderer{}).Render(doc); err != nil {
		t.Fatalf("render with missing trip and company: %v", err)
	}
}

func TestBuildInvoiceWorkbookTotals(t *testing.T) {
	invoices := []models.Invoice{
		{InvoiceNumber: "INV000001", BookingID: "20250114001", IssueDate: fixedNow, Amount: 1500, TotalExpenses: 500, Profit: 1000},
		{InvoiceNumber: "INV000002", BookingID: "20250115001", IssueDate: fixedNow, Amount: 2000.5, TotalExpenses: 700.25, Profit: 1300.25, Notes: "late"},
	}
	data, err := BuildInvoiceWorkbook(invoices)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(invoiceSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header, 2 rows and total; got %d rows", len(rows))
	}
	if rows[1][0] != "INV000001" || rows[3][0] != "TOTAL" {
		t.Fatalf("unexpected layout: %v", rows)
	}
	if rows[3][4] != "3500.5" || rows[3][6] != "2300.25" {
		t.Fatalf("unexpected totals row: %v", rows[3])
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func TestOpenAssetStaysInsideAssetDir(t *testing.T) {
	base := t.TempDir()
	assets := filepath.Join(base, "assets")
	if err := os.Mkdir(assets, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writePNG(t, filepath.Join(assets, "logo.png"))
	writePNG(t, filepath.Join(base, "secret.png"))

	if f, typ := openAsset(assets, "logo.png"); f == nil || typ != "PNG" {
		t.Fatalf("logo inside asset dir should open")
	} else {
		f.Close()
	}

	refused := []string{"../secret.png", filepath.Join(base, "secret.png"), "https://cdn.test/logo.png", "logo.gif", ""}
	for _, name := range refused {
		if f, _ := openAsset(assets, name); f != nil {
			f.Close()
			t.Fatalf("%q must not be opened", name)
		}
	}
	if f, _ := openAsset("", "logo.png"); f != nil {
		f.Close()
		t.Fatalf("empty asset dir must disable images")
	}
}

func TestPDFInvoiceRendererEmbedsAssetLogo(t *testing.T) {
	assets := t.TempDir()
	writePNG(t, filepath.Join(assets, "logo.png"))

	doc := sampleDocument()
	doc.Company.Logo = "logo.png"
	data, _, err := PDFInvoiceRenderer{AssetDir: assets}.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Contains(data, []byte("/Subtype /Image")) {
		t.Fatalf("logo was not embedded")
	}
}

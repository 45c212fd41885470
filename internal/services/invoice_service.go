package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	intdb "github.com/kaicharlakarun/nrk-backend/internal/db"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"
)

// InvoiceRenderer turns an invoice document into a downloadable file.
type InvoiceRenderer interface {
	Render(doc models.InvoiceDocument) ([]byte, string, error)
}

type InvoiceService struct {
	DB        *sql.DB
	Now       func() time.Time
	Renderer  InvoiceRenderer
	RequestID string
}

func (s InvoiceService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s InvoiceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s InvoiceService) renderer() InvoiceRenderer {
	if s.Renderer != nil {
		return s.Renderer
	}
	return PDFInvoiceRenderer{}
}

func (s InvoiceService) invoices() repositories.InvoiceRepository {
	return repositories.InvoiceRepository{DB: s.db()}
}

// Issue snapshots the trip's financials into a new invoice. The invoice number
// is allocated in the insert transaction, so a failed insert does not consume
// a number. Issuing twice for one booking yields two invoices.
func (s InvoiceService) Issue(ctx context.Context, bookingID, companyKey string, createdBy int64) (models.InvoiceDocument, error) {
	bookingID = strings.TrimSpace(bookingID)
	companyKey = strings.TrimSpace(companyKey)
	if bookingID == "" {
		return models.InvoiceDocument{}, domain.ValidationError{Field: "bookingId", Msg: "required"}
	}
	if companyKey == "" {
		return models.InvoiceDocument{}, domain.ValidationError{Field: "companyKey", Msg: "required"}
	}

	trip, err := repositories.TripRepository{DB: s.db()}.GetByBookingID(ctx, bookingID)
	if err != nil {
		return models.InvoiceDocument{}, err
	}
	company, err := repositories.CompanyRepository{DB: s.db()}.GetByKey(ctx, companyKey)
	if err != nil {
		return models.InvoiceDocument{}, err
	}

	calc := domain.DeriveExpenses(trip)
	now := s.now()
	inv := models.Invoice{
		TripID:        trip.ID,
		BookingID:     trip.BookingID,
		CompanyID:     company.ID,
		IssueDate:     now,
		Amount:        trip.TripAmount,
		AdvanceAmount: trip.AdvanceAmount,
		TotalExpenses: calc.TotalExpenses,
		Profit:        calc.Profit,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		number, err := NextInvoiceNumber(ctx, tx)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number

		id, err := repositories.InvoiceRepository{DB: tx}.Insert(ctx, inv)
		if err != nil {
			if intdb.IsDuplicateKey(err) {
				return domain.ConflictError{Resource: "invoice", Msg: "invoice number already used", Err: err}
			}
			return err
		}
		inv.ID = id
		return nil
	})
	if err != nil {
		return models.InvoiceDocument{}, err
	}

	utils.LogEvent(s.RequestID, "invoices", "issue", "invoice issued",
		"invoice_number", inv.InvoiceNumber, "booking_id", inv.BookingID, "company_id", inv.CompanyID)
	return models.InvoiceDocument{Invoice: inv, Trip: trip, Company: company}, nil
}

func (s InvoiceService) List(ctx context.Context, f repositories.InvoiceFilter) ([]models.Invoice, error) {
	return s.invoices().List(ctx, f)
}

// Get loads the invoice with its trip and company. A trip or company removed
// since issuance is replaced by what the invoice itself recorded.
func (s InvoiceService) Get(ctx context.Context, id int64) (models.InvoiceDocument, error) {
	inv, err := s.invoices().GetByID(ctx, id)
	if err != nil {
		return models.InvoiceDocument{}, err
	}
	doc := models.InvoiceDocument{Invoice: inv}

	trip, err := repositories.TripRepository{DB: s.db()}.GetByID(ctx, inv.TripID)
	switch {
	case err == nil:
		doc.Trip = trip
	case domain.IsNotFound(err):
		doc.Trip = models.Trip{ID: inv.TripID, BookingID: inv.BookingID, TripAmount: inv.Amount, AdvanceAmount: inv.AdvanceAmount}
	default:
		return models.InvoiceDocument{}, err
	}

	company, err := repositories.CompanyRepository{DB: s.db()}.GetByIDIncludingDeleted(ctx, inv.CompanyID)
	switch {
	case err == nil:
		doc.Company = company
	case domain.IsNotFound(err):
		doc.Company = models.Company{ID: inv.CompanyID}
	default:
		return models.InvoiceDocument{}, err
	}
	return doc, nil
}

// Update changes due date and notes only. An empty dueDate clears it.
func (s InvoiceService) Update(ctx context.Context, id int64, upd models.InvoiceUpdate) (models.Invoice, error) {
	repo := s.invoices()
	inv, err := repo.GetByID(ctx, id)
	if err != nil {
		return inv, err
	}
	if upd.DueDate != nil {
		v := strings.TrimSpace(*upd.DueDate)
		if v == "" {
			inv.DueDate = nil
		} else {
			due, err := utils.ParseTimestamp(v)
			if err != nil {
				return models.Invoice{}, domain.ValidationError{Field: "dueDate", Msg: "invalid date", Err: err}
			}
			inv.DueDate = &due
		}
	}
	if upd.Notes != nil {
		inv.Notes = strings.TrimSpace(*upd.Notes)
	}
	if err := repo.UpdateMeta(ctx, id, inv.DueDate, inv.Notes); err != nil {
		return models.Invoice{}, err
	}
	inv.UpdatedAt = s.now()
	utils.LogEvent(s.RequestID, "invoices", "update", "invoice updated", "invoice_id", id)
	return inv, nil
}

func (s InvoiceService) Delete(ctx context.Context, id int64) error {
	if err := s.invoices().Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "invoices", "delete", "invoice deleted", "invoice_id", id)
	return nil
}

// RenderDocument renders an already loaded document.
func (s InvoiceService) RenderDocument(doc models.InvoiceDocument) ([]byte, string, error) {
	return s.renderer().Render(doc)
}

// Render re-renders a stored invoice.
func (s InvoiceService) Render(ctx context.Context, id int64) ([]byte, string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return s.RenderDocument(doc)
}

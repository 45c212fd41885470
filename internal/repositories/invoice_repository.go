package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	intdb "github.com/kaicharlakarun/nrk-backend/internal/db"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
)

type InvoiceFilter struct {
	BookingID string
	CompanyID *int64
	From      *time.Time
	To        *time.Time
}

type InvoiceRepository struct {
	DB intdb.DBTX
}

func (r InvoiceRepository) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const invoiceColumns = `id, invoice_number, trip_id, booking_id, company_id, issue_date, due_date,
	amount, advance_amount, total_expenses, profit, COALESCE(notes,''), created_by, created_at, updated_at`

func scanInvoice(s intdb.RowScanner) (models.Invoice, error) {
	var (
		inv models.Invoice
		due sql.NullTime
	)
	err := s.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.TripID, &inv.BookingID, &inv.CompanyID, &inv.IssueDate, &due,
		&inv.Amount, &inv.AdvanceAmount, &inv.TotalExpenses, &inv.Profit, &inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	inv.DueDate = intdb.TimePtr(due)
	return inv, err
}

func (r InvoiceRepository) Insert(ctx context.Context, inv models.Invoice) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO invoices (
			invoice_number, trip_id, booking_id, company_id, issue_date, due_date,
			amount, advance_amount, total_expenses, profit, notes, created_by
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		inv.InvoiceNumber, inv.TripID, inv.BookingID, inv.CompanyID, inv.IssueDate, intdb.NullTime(inv.DueDate),
		inv.Amount, inv.AdvanceAmount, inv.TotalExpenses, inv.Profit, intdb.NullIfEmpty(inv.Notes), inv.CreatedBy,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r InvoiceRepository) GetByID(ctx context.Context, id int64) (models.Invoice, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id=? LIMIT 1`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return inv, domain.NotFoundError{Resource: "invoice", Err: err}
	}
	return inv, err
}

func (r InvoiceRepository) List(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error) {
	where := []string{"1=1"}
	args := []any{}
	if v := strings.TrimSpace(f.BookingID); v != "" {
		where = append(where, "booking_id=?")
		args = append(args, v)
	}
	if f.CompanyID != nil {
		where = append(where, "company_id=?")
		args = append(args, *f.CompanyID)
	}
	if f.From != nil {
		where = append(where, "issue_date>=?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		where = append(where, "issue_date<=?")
		args = append(args, *f.To)
	}

	rows, err := r.db().QueryContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE `+strings.Join(where, " AND ")+` ORDER BY issue_date DESC, id DESC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// UpdateMeta changes the only mutable invoice fields.
func (r InvoiceRepository) UpdateMeta(ctx context.Context, id int64, due *time.Time, notes string) error {
	_, err := r.db().ExecContext(ctx, `UPDATE invoices SET due_date=?, notes=? WHERE id=?`,
		intdb.NullTime(due), intdb.NullIfEmpty(notes), id)
	return err
}

func (r InvoiceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM invoices WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "invoice"}
	}
	return nil
}

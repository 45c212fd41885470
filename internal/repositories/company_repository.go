package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	intdb "github.com/kaicharlakarun/nrk-backend/internal/db"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
)

// CompanyRepository filters out soft-deleted companies unless a method says otherwise.
type CompanyRepository struct {
	DB intdb.DBTX
}

func (r CompanyRepository) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const companyColumns = `id, company_key, name, COALESCE(address,''), COALESCE(website,''), COALESCE(gst,''),
	COALESCE(mobile,''), COALESCE(logo,''), COALESCE(stamp,''), COALESCE(description,''),
	COALESCE(bank_mode_of_payment,''), COALESCE(bank_holder,''), COALESCE(bank_branch_address,''),
	COALESCE(bank_name,''), COALESCE(bank_current_account,''), COALESCE(bank_ifsc,''),
	created_by, updated_by, is_deleted, deleted_at, created_at, updated_at`

func scanCompany(s intdb.RowScanner) (models.Company, error) {
	var (
		c         models.Company
		createdBy sql.NullInt64
		updatedBy sql.NullInt64
		deletedAt sql.NullTime
	)
	err := s.Scan(
		&c.ID, &c.Key, &c.Name, &c.Address, &c.Website, &c.GST,
		&c.Mobile, &c.Logo, &c.Stamp, &c.Description,
		&c.Bank.ModeOfPayment, &c.Bank.Holder, &c.Bank.BranchAddress,
		&c.Bank.BankName, &c.Bank.CurrentAccount, &c.Bank.IFSC,
		&createdBy, &updatedBy, &c.IsDeleted, &deletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	c.CreatedBy = intdb.Int64Ptr(createdBy)
	c.UpdatedBy = intdb.Int64Ptr(updatedBy)
	c.DeletedAt = intdb.TimePtr(deletedAt)
	return c, err
}

func companyArgs(c models.Company) []any {
	return []any{
		c.Key, c.Name, intdb.NullIfEmpty(c.Address), intdb.NullIfEmpty(c.Website), intdb.NullIfEmpty(c.GST),
		intdb.NullIfEmpty(c.Mobile), intdb.NullIfEmpty(c.Logo), intdb.NullIfEmpty(c.Stamp), intdb.NullIfEmpty(c.Description),
		intdb.NullIfEmpty(c.Bank.ModeOfPayment), intdb.NullIfEmpty(c.Bank.Holder), intdb.NullIfEmpty(c.Bank.BranchAddress),
		intdb.NullIfEmpty(c.Bank.BankName), intdb.NullIfEmpty(c.Bank.CurrentAccount), intdb.NullIfEmpty(c.Bank.IFSC),
	}
}

func (r CompanyRepository) Insert(ctx context.Context, c models.Company) (int64, error) {
	args := append(companyArgs(c), intdb.NullInt64(c.CreatedBy), intdb.NullInt64(c.UpdatedBy))
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO companies (
			company_key, name, address, website, gst,
			mobile, logo, stamp, description,
			bank_mode_of_payment, bank_holder, bank_branch_address,
			bank_name, bank_current_account, bank_ifsc,
			created_by, updated_by
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CompanyRepository) Update(ctx context.Context, c models.Company) error {
	args := append(companyArgs(c), intdb.NullInt64(c.UpdatedBy), c.ID)
	_, err := r.db().ExecContext(ctx, `
		UPDATE companies SET
			company_key=?, name=?, address=?, website=?, gst=?,
			mobile=?, logo=?, stamp=?, description=?,
			bank_mode_of_payment=?, bank_holder=?, bank_branch_address=?,
			bank_name=?, bank_current_account=?, bank_ifsc=?,
			updated_by=?
		WHERE id=? AND is_deleted=0
	`, args...)
	return err
}

func (r CompanyRepository) GetByID(ctx context.Context, id int64) (models.Company, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id=? AND is_deleted=0 LIMIT 1`, id)
	return notFoundCompany(scanCompany(row))
}

func (r CompanyRepository) GetByKey(ctx context.Context, key string) (models.Company, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE company_key=? AND is_deleted=0 ORDER BY id DESC LIMIT 1`, key)
	return notFoundCompany(scanCompany(row))
}

func notFoundCompany(c models.Company, err error) (models.Company, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return c, domain.NotFoundError{Resource: "company", Err: err}
	}
	return c, err
}

func (r CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE is_deleted=0 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// KeyTaken reports whether another active company already uses key.
func (r CompanyRepository) KeyTaken(ctx context.Context, key string, excludeID int64) (bool, error) {
	var n int
	err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM companies WHERE company_key=? AND is_deleted=0 AND id<>?`, key, excludeID).Scan(&n)
	return n > 0, err
}

func (r CompanyRepository) SoftDelete(ctx context.Context, id int64, by *int64, at time.Time) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE companies SET is_deleted=1, deleted_at=?, updated_by=? WHERE id=? AND is_deleted=0`,
		at, intdb.NullInt64(by), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "company"}
	}
	return nil
}

// GetByIDIncludingDeleted is used where a historical record must still resolve
// its company, e.g. rendering an old invoice.
func (r CompanyRepository) GetByIDIncludingDeleted(ctx context.Context, id int64) (models.Company, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id=? LIMIT 1`, id)
	return notFoundCompany(scanCompany(row))
}

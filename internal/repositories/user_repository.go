package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	intdb "github.com/kaicharlakarun/nrk-backend/internal/db"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
)

type AdminRepository struct {
	DB intdb.DBTX
}

func (r AdminRepository) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AdminRepository) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	var a models.Admin
	err := r.db().QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at FROM admins WHERE email=? LIMIT 1`, email,
	).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, domain.NotFoundError{Resource: "admin", Err: err}
	}
	a.Role = domain.RoleAdmin
	return a, err
}

func (r AdminRepository) Insert(ctx context.Context, a models.Admin) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO admins (name, email, password_hash) VALUES (?,?,?)`, a.Name, a.Email, a.PasswordHash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type DriverRepository struct {
	DB intdb.DBTX
}

func (r DriverRepository) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const driverColumns = `id, name, email, password_hash, COALESCE(phone,''), is_active, created_at, updated_at`

func scanDriver(s intdb.RowScanner) (models.Driver, error) {
	var d models.Driver
	err := s.Scan(&d.ID, &d.Name, &d.Email, &d.PasswordHash, &d.Phone, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	d.Role = domain.RoleDriver
	return d, err
}

func notFoundDriver(d models.Driver, err error) (models.Driver, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return d, domain.NotFoundError{Resource: "driver", Err: err}
	}
	return d, err
}

func (r DriverRepository) GetByID(ctx context.Context, id int64) (models.Driver, error) {
	return notFoundDriver(scanDriver(r.db().QueryRowContext(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE id=? LIMIT 1`, id)))
}

func (r DriverRepository) GetByEmail(ctx context.Context, email string) (models.Driver, error) {
	return notFoundDriver(scanDriver(r.db().QueryRowContext(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE email=? LIMIT 1`, email)))
}

func (r DriverRepository) List(ctx context.Context) ([]models.Driver, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepository) Insert(ctx context.Context, d models.Driver) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO drivers (name, email, password_hash, phone, is_active) VALUES (?,?,?,?,?)`,
		d.Name, d.Email, d.PasswordHash, intdb.NullIfEmpty(d.Phone), d.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DriverRepository) Update(ctx context.Context, d models.Driver) error {
	_, err := r.db().ExecContext(ctx,
		`UPDATE drivers SET name=?, email=?, password_hash=?, phone=?, is_active=? WHERE id=?`,
		d.Name, d.Email, d.PasswordHash, intdb.NullIfEmpty(d.Phone), d.IsActive, d.ID)
	return err
}

func (r DriverRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM drivers WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}

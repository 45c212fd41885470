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

type MaintenanceRepository struct {
	DB intdb.DBTX
}

func (r MaintenanceRepository) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const maintenanceColumns = `id, date, maintenance_type, maintenance_cost, vehicle_id, COALESCE(vehicle_number,''),
	km_at_maintenance, next_oil_change_km, original_odometer_km,
	driver_id, COALESCE(driver_name,''), COALESCE(driver_phone,''), COALESCE(company,''),
	payment_mode, COALESCE(description,''), created_at, updated_at`

func scanMaintenance(s intdb.RowScanner) (models.Maintenance, error) {
	var (
		m       models.Maintenance
		nextOil sql.NullFloat64
	)
	err := s.Scan(
		&m.ID, &m.Date, &m.MaintenanceType, &m.MaintenanceCost, &m.VehicleID, &m.VehicleNumber,
		&m.KmAtMaintenance, &nextOil, &m.OriginalOdometerKm,
		&m.DriverID, &m.DriverName, &m.DriverPhone, &m.Company,
		&m.PaymentMode, &m.Description, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return m, domain.NotFoundError{Resource: "maintenance", Err: err}
	}
	m.NextOilChangeKm = intdb.Float64Ptr(nextOil)
	return m, err
}

func maintenanceArgs(m models.Maintenance) []any {
	return []any{
		m.Date, m.MaintenanceType, m.MaintenanceCost, m.VehicleID, intdb.NullIfEmpty(m.VehicleNumber),
		m.KmAtMaintenance, intdb.NullFloat64(m.NextOilChangeKm), m.OriginalOdometerKm,
		m.DriverID, intdb.NullIfEmpty(m.DriverName), intdb.NullIfEmpty(m.DriverPhone), intdb.NullIfEmpty(m.Company),
		m.PaymentMode, intdb.NullIfEmpty(m.Description),
	}
}

func (r MaintenanceRepository) Insert(ctx context.Context, m models.Maintenance) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO maintenances (
			date, maintenance_type, maintenance_cost, vehicle_id, vehicle_number,
			km_at_maintenance, next_oil_change_km, original_odometer_km,
			driver_id, driver_name, driver_phone, company,
			payment_mode, description
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, maintenanceArgs(m)...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r MaintenanceRepository) Update(ctx context.Context, m models.Maintenance) error {
	args := append(maintenanceArgs(m), m.ID)
	_, err := r.db().ExecContext(ctx, `
		UPDATE maintenances SET
			date=?, maintenance_type=?, maintenance_cost=?, vehicle_id=?, vehicle_number=?,
			km_at_maintenance=?, next_oil_change_km=?, original_odometer_km=?,
			driver_id=?, driver_name=?, driver_phone=?, company=?,
			payment_mode=?, description=?
		WHERE id=?
	`, args...)
	return err
}

func (r MaintenanceRepository) GetByID(ctx context.Context, id int64) (models.Maintenance, error) {
	return scanMaintenance(r.db().QueryRowContext(ctx, `SELECT `+maintenanceColumns+` FROM maintenances WHERE id=? LIMIT 1`, id))
}

// List returns all records, or only driverID's when it is set.
func (r MaintenanceRepository) List(ctx context.Context, driverID *int64) ([]models.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances`
	args := []any{}
	if driverID != nil {
		query += ` WHERE driver_id=?`
		args = append(args, *driverID)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Maintenance{}
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Costs returns the maintenance_cost column only, scoped like List.
func (r MaintenanceRepository) Costs(ctx context.Context, driverID *int64) ([]float64, error) {
	query := `SELECT maintenance_cost FROM maintenances`
	args := []any{}
	if driverID != nil {
		query += ` WHERE driver_id=?`
		args = append(args, *driverID)
	}
	return queryFloats(ctx, r.db(), query, args...)
}

func (r MaintenanceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM maintenances WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "maintenance"}
	}
	return nil
}

type AdRepository struct {
	DB intdb.DBTX
}

func (r AdRepository) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const adColumns = `id, date, payment_mode, amount, created_at, updated_at`

func scanAd(s intdb.RowScanner) (models.Ad, error) {
	var a models.Ad
	err := s.Scan(&a.ID, &a.Date, &a.PaymentMode, &a.Amount, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, domain.NotFoundError{Resource: "ad", Err: err}
	}
	return a, err
}

func (r AdRepository) Insert(ctx context.Context, a models.Ad) (int64, error) {
	res, err := r.db().ExecContext(ctx, `INSERT INTO ads (date, payment_mode, amount) VALUES (?,?,?)`,
		a.Date, a.PaymentMode, a.Amount)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r AdRepository) Update(ctx context.Context, a models.Ad) error {
	_, err := r.db().ExecContext(ctx, `UPDATE ads SET date=?, payment_mode=?, amount=? WHERE id=?`,
		a.Date, a.PaymentMode, a.Amount, a.ID)
	return err
}

func (r AdRepository) GetByID(ctx context.Context, id int64) (models.Ad, error) {
	return scanAd(r.db().QueryRowContext(ctx, `SELECT `+adColumns+` FROM ads WHERE id=? LIMIT 1`, id))
}

func (r AdRepository) List(ctx context.Context) ([]models.Ad, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+adColumns+` FROM ads ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ad{}
	for rows.Next() {
		a, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Amounts returns every ad amount; ads are fleet-wide and never scoped.
func (r AdRepository) Amounts(ctx context.Context) ([]float64, error) {
	return queryFloats(ctx, r.db(), `SELECT amount FROM ads`)
}

func (r AdRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM ads WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "ad"}
	}
	return nil
}

func queryFloats(ctx context.Context, db intdb.DBTX, query string, args ...any) ([]float64, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []float64{}
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

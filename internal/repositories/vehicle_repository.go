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

type VehicleRepository struct {
	DB intdb.DBTX
}

func (r VehicleRepository) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleColumns = `id, vehicle_type, seating_capacity, vehicle_number, created_at, updated_at`

func scanVehicle(s intdb.RowScanner) (models.Vehicle, error) {
	var v models.Vehicle
	err := s.Scan(&v.ID, &v.VehicleType, &v.SeatingCapacity, &v.VehicleNumber, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return v, domain.NotFoundError{Resource: "vehicle", Err: err}
	}
	return v, err
}

func (r VehicleRepository) GetByID(ctx context.Context, id int64) (models.Vehicle, error) {
	return scanVehicle(r.db().QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=? LIMIT 1`, id))
}

func (r VehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY vehicle_number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VehicleRepository) Insert(ctx context.Context, v models.Vehicle) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO vehicles (vehicle_type, seating_capacity, vehicle_number) VALUES (?,?,?)`,
		v.VehicleType, v.SeatingCapacity, v.VehicleNumber)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) Update(ctx context.Context, v models.Vehicle) error {
	_, err := r.db().ExecContext(ctx,
		`UPDATE vehicles SET vehicle_type=?, seating_capacity=?, vehicle_number=? WHERE id=?`,
		v.VehicleType, v.SeatingCapacity, v.VehicleNumber, v.ID)
	return err
}

func (r VehicleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM vehicles WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

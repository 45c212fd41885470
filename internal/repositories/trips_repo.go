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

// DeletedMode selects how driver-soft-deleted trips are treated by List.
type DeletedMode int

const (
	DeletedExclude DeletedMode = iota
	DeletedInclude
	DeletedOnly
)

type TripFilter struct {
	DriverID      *int64
	VehicleID     *int64
	VehicleNumber string
	BookingID     string
	Search        string
	Deleted       DeletedMode

	// DateField is "bookingDate" (default) or "createdAt"; From/To are inclusive.
	DateField string
	From      *time.Time
	To        *time.Time

	// StartFrom/StartBefore bound start_date as [StartFrom, StartBefore).
	StartFrom   *time.Time
	StartBefore *time.Time

	Sort string
}

type TripRepository struct {
	DB intdb.DBTX
}

func (r TripRepository) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `id, booking_id, booking_date, COALESCE(travels_name,''),
	driver_id, COALESCE(driver_name,''), COALESCE(driver_number,''),
	vehicle_id, COALESCE(vehicle_type,''), COALESCE(vehicle_number,''),
	COALESCE(customer_name,''), COALESCE(customer_number,''),
	start_date, COALESCE(from_location,''), end_date, COALESCE(end_location,''),
	starting_reading, ending_reading,
	trip_amount, advance_amount, balance_amount, payment_mode, COALESCE(trip_amount_received_by,''),
	COALESCE(fuel_type,''), fuel_amount, tolls, parking_charges, driver_beta,
	COALESCE(description,''), created_by_role, created_by,
	is_driver_deleted, driver_deleted_at, driver_deleted_by,
	created_at, updated_at`

var tripSortColumns = map[string]string{
	"createdAt":   "created_at",
	"startDate":   "start_date",
	"bookingDate": "booking_date",
	"bookingId":   "booking_id",
	"tripAmount":  "trip_amount",
}

func scanTrip(s intdb.RowScanner) (models.Trip, error) {
	var (
		t           models.Trip
		bookingDate sql.NullTime
		driverID    sql.NullInt64
		vehicleID   sql.NullInt64
		startDate   sql.NullTime
		endDate     sql.NullTime
		fuelAmount  sql.NullString
		deletedAt   sql.NullTime
		deletedBy   sql.NullInt64
	)
	err := s.Scan(
		&t.ID, &t.BookingID, &bookingDate, &t.TravelsName,
		&driverID, &t.DriverName, &t.DriverNumber,
		&vehicleID, &t.VehicleType, &t.VehicleNumber,
		&t.CustomerName, &t.CustomerNumber,
		&startDate, &t.FromLocation, &endDate, &t.EndLocation,
		&t.StartingReading, &t.EndingReading,
		&t.TripAmount, &t.AdvanceAmount, &t.BalanceAmount, &t.PaymentMode, &t.TripAmountReceivedBy,
		&t.FuelType, &fuelAmount, &t.Tolls, &t.ParkingCharges, &t.DriverBeta,
		&t.Description, &t.CreatedByRole, &t.CreatedBy,
		&t.IsDriverDeleted, &deletedAt, &deletedBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	if bookingDate.Valid {
		t.BookingDate = bookingDate.Time.Format("2006-01-02")
	}
	t.DriverID = intdb.Int64Ptr(driverID)
	t.VehicleID = intdb.Int64Ptr(vehicleID)
	t.StartDate = intdb.TimePtr(startDate)
	t.EndDate = intdb.TimePtr(endDate)
	t.FuelAmount = intdb.StringPtr(fuelAmount)
	t.DriverDeletedAt = intdb.TimePtr(deletedAt)
	t.DriverDeletedBy = intdb.Int64Ptr(deletedBy)
	return t, nil
}

// Insert stores a new trip and returns its id. BookingID must already be allocated.
func (r TripRepository) Insert(ctx context.Context, t models.Trip) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO trips (
			booking_id, booking_date, travels_name,
			driver_id, driver_name, driver_number,
			vehicle_id, vehicle_type, vehicle_number,
			customer_name, customer_number,
			start_date, from_location, end_date, end_location,
			starting_reading, ending_reading,
			trip_amount, advance_amount, balance_amount, payment_mode, trip_amount_received_by,
			fuel_type, fuel_amount, tolls, parking_charges, driver_beta,
			description, created_by_role, created_by
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, tripWriteArgs(t, t.BookingID, t.CreatedByRole, t.CreatedBy)...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites the mutable columns of a trip.
func (r TripRepository) Update(ctx context.Context, t models.Trip) error {
	args := tripWriteArgs(t)
	args = append(args, t.ID)
	_, err := r.db().ExecContext(ctx, `
		UPDATE trips SET
			booking_date=?, travels_name=?,
			driver_id=?, driver_name=?, driver_number=?,
			vehicle_id=?, vehicle_type=?, vehicle_number=?,
			customer_name=?, customer_number=?,
			start_date=?, from_location=?, end_date=?, end_location=?,
			starting_reading=?, ending_reading=?,
			trip_amount=?, advance_amount=?, balance_amount=?, payment_mode=?, trip_amount_received_by=?,
			fuel_type=?, fuel_amount=?, tolls=?, parking_charges=?, driver_beta=?,
			description=?
		WHERE id=?
	`, args...)
	return err
}

// tripWriteArgs returns the mutable column values, optionally prefixed and suffixed
// for INSERT (booking_id first, audit columns last).
func tripWriteArgs(t models.Trip, insertOnly ...any) []any {
	var bookingDate any
	if d, err := time.ParseInLocation("2006-01-02", t.BookingDate, time.UTC); err == nil {
		bookingDate = d
	}
	body := []any{
		bookingDate, intdb.NullIfEmpty(t.TravelsName),
		intdb.NullInt64(t.DriverID), intdb.NullIfEmpty(t.DriverName), intdb.NullIfEmpty(t.DriverNumber),
		intdb.NullInt64(t.VehicleID), intdb.NullIfEmpty(t.VehicleType), intdb.NullIfEmpty(t.VehicleNumber),
		intdb.NullIfEmpty(t.CustomerName), intdb.NullIfEmpty(t.CustomerNumber),
		intdb.NullTime(t.StartDate), intdb.NullIfEmpty(t.FromLocation), intdb.NullTime(t.EndDate), intdb.NullIfEmpty(t.EndLocation),
		t.StartingReading, t.EndingReading,
		t.TripAmount, t.AdvanceAmount, t.BalanceAmount, t.PaymentMode, intdb.NullIfEmpty(t.TripAmountReceivedBy),
		intdb.NullIfEmpty(t.FuelType), intdb.NullString(t.FuelAmount), t.Tolls, t.ParkingCharges, t.DriverBeta,
		intdb.NullIfEmpty(t.Description),
	}
	if len(insertOnly) == 0 {
		return body
	}
	out := make([]any, 0, len(body)+len(insertOnly))
	out = append(out, insertOnly[0])
	out = append(out, body...)
	out = append(out, insertOnly[1:]...)
	return out
}

func (r TripRepository) GetByID(ctx context.Context, id int64) (models.Trip, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id=? LIMIT 1`, id)
	return notFoundTrip(scanTrip(row))
}

func (r TripRepository) GetByBookingID(ctx context.Context, bookingID string) (models.Trip, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE booking_id=? LIMIT 1`, bookingID)
	return notFoundTrip(scanTrip(row))
}

func notFoundTrip(t models.Trip, err error) (models.Trip, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return t, domain.NotFoundError{Resource: "trip", Err: err}
	}
	return t, err
}

func (r TripRepository) List(ctx context.Context, f TripFilter) ([]models.Trip, error) {
	where, args := tripWhere(f)
	query := `SELECT ` + tripColumns + ` FROM trips WHERE ` + where + ` ORDER BY ` + tripOrder(f.Sort)

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func tripWhere(f TripFilter) (string, []any) {
	where := []string{"1=1"}
	args := []any{}

	switch f.Deleted {
	case DeletedOnly:
		where = append(where, "is_driver_deleted=1")
	case DeletedExclude:
		where = append(where, "is_driver_deleted=0")
	}
	if f.DriverID != nil {
		where = append(where, "driver_id=?")
		args = append(args, *f.DriverID)
	}
	if f.VehicleID != nil {
		where = append(where, "vehicle_id=?")
		args = append(args, *f.VehicleID)
	}
	if v := strings.TrimSpace(f.VehicleNumber); v != "" {
		where = append(where, "vehicle_number=?")
		args = append(args, strings.ToUpper(v))
	}
	if v := strings.TrimSpace(f.BookingID); v != "" {
		where = append(where, "booking_id=?")
		args = append(args, v)
	}

	dateCol := "booking_date"
	if f.DateField == "createdAt" {
		dateCol = "created_at"
	}
	if f.From != nil {
		where = append(where, dateCol+">=?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		where = append(where, dateCol+"<=?")
		args = append(args, *f.To)
	}
	if f.StartFrom != nil {
		where = append(where, "start_date>=?")
		args = append(args, *f.StartFrom)
	}
	if f.StartBefore != nil {
		where = append(where, "start_date<?")
		args = append(args, *f.StartBefore)
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		where = append(where, "(booking_id LIKE ? OR customer_name LIKE ? OR customer_number LIKE ? OR driver_name LIKE ? OR vehicle_number LIKE ?)")
		args = append(args, like, like, like, like, like)
	}
	return strings.Join(where, " AND "), args
}

func tripOrder(sort string) string {
	sort = strings.TrimSpace(sort)
	dir := "ASC"
	if strings.HasPrefix(sort, "-") {
		dir = "DESC"
		sort = sort[1:]
	}
	col, ok := tripSortColumns[sort]
	if !ok {
		return "created_at DESC, id DESC"
	}
	return col + " " + dir + ", id " + dir
}

// SetDriverDeleted flips the driver-scoped soft delete marker.
func (r TripRepository) SetDriverDeleted(ctx context.Context, id int64, deleted bool, at *time.Time, by *int64) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE trips SET is_driver_deleted=?, driver_deleted_at=?, driver_deleted_by=? WHERE id=?
	`, deleted, intdb.NullTime(at), intdb.NullInt64(by), id)
	return err
}

func (r TripRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM trips WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

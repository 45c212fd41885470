package services

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
)

var driverColumnNames = []string{"id", "name", "email", "password_hash", "phone", "is_active", "created_at", "updated_at"}

func TestDriverUpdateKeepsHashWhenPasswordEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM drivers WHERE id=").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(driverColumnNames).AddRow(7, "Ravi", "ravi@nrk.in", "old-hash", "9876543210", true, fixedNow, fixedNow))
	mock.ExpectExec("UPDATE drivers SET").
		WithArgs("Ravi Kumar", "ravi@nrk.in", "old-hash", "9876543210", true, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	d, err := DriverService{DB: db}.Update(context.Background(), 7, models.DriverPayload{Name: strPtr("  Ravi   Kumar "), Password: strPtr("")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "Ravi Kumar" {
		t.Fatalf("unexpected name %q", d.Name)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDriverUpdateRejectsShortPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM drivers WHERE id=").
		WillReturnRows(sqlmock.NewRows(driverColumnNames).AddRow(7, "Ravi", "ravi@nrk.in", "old-hash", "", true, fixedNow, fixedNow))

	_, err = DriverService{DB: db}.Update(context.Background(), 7, models.DriverPayload{Password: strPtr("123")})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDriverGetOnlySelfOrAdmin(t *testing.T) {
	_, err := DriverService{}.Get(context.Background(), domain.RequestContext{UserID: 7, Role: domain.RoleDriver}, 8)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestMaintenanceGetForeignRecordForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "date", "maintenance_type", "maintenance_cost", "vehicle_id", "vehicle_number",
		"km_at_maintenance", "next_oil_change_km", "original_odometer_km",
		"driver_id", "driver_name", "driver_phone", "company", "payment_mode", "description", "created_at", "updated_at"}
	row := []driver.Value{3, fixedNow, "Oil change", 1200.0, 4, "AP01AB1234", 15000.0, nil, 14000.0,
		9, "Suresh", "9000000000", "", "Cash", "", fixedNow, fixedNow}
	mock.ExpectQuery("FROM maintenances WHERE id=").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(row...))

	svc := MaintenanceService{DB: db}
	_, err = svc.Get(context.Background(), domain.RequestContext{UserID: 7, Role: domain.RoleDriver}, 3)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	mock.ExpectQuery("FROM maintenances WHERE id=").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(row...))
	m, err := svc.Get(context.Background(), domain.RequestContext{UserID: 1, Role: domain.RoleAdmin}, 3)
	if err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
	if m.NextOilChangeKm != nil || m.DriverName != "Suresh" {
		t.Fatalf("unexpected record %+v", m)
	}
}

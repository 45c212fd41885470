package repositories

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
)

func TestCounterNextBookingSeq(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO booking_counters").WithArgs("20250115").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("SELECT seq FROM booking_counters").WithArgs("20250115").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(4))

	seq, err := CounterRepository{DB: db}.NextBookingSeq(context.Background(), "20250115")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq != 4 {
		t.Fatalf("expected 4, got %d", seq)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCounterNextSequence(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO sequences").WithArgs("invoice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT value FROM sequences").WithArgs("invoice").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(1))

	v, err := CounterRepository{DB: db}.NextSequence(context.Background(), "invoice")
	if err != nil || v != 1 {
		t.Fatalf("expected 1, got %d (%v)", v, err)
	}
}

func TestTripWhereDefaultsToActive(t *testing.T) {
	where, args := tripWhere(TripFilter{})
	if !strings.Contains(where, "is_driver_deleted=0") {
		t.Fatalf("default filter should hide driver-deleted trips: %s", where)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestTripWhereScopesAndRanges(t *testing.T) {
	driver := int64(7)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	where, args := tripWhere(TripFilter{
		DriverID:      &driver,
		VehicleNumber: " ap01ab1234 ",
		Deleted:       DeletedOnly,
		StartFrom:     &from,
		StartBefore:   &before,
	})
	for _, want := range []string{"is_driver_deleted=1", "driver_id=?", "vehicle_number=?", "start_date>=?", "start_date<?"} {
		if !strings.Contains(where, want) {
			t.Fatalf("missing %q in %s", want, where)
		}
	}
	if len(args) != 4 || args[1] != "AP01AB1234" {
		t.Fatalf("unexpected args: %v", args)
	}

	where, _ = tripWhere(TripFilter{Deleted: DeletedInclude})
	if strings.Contains(where, "is_driver_deleted") {
		t.Fatalf("include mode should not filter deletion: %s", where)
	}
}

func TestTripWhereCreatedAtRange(t *testing.T) {
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	where, args := tripWhere(TripFilter{DateField: "createdAt", To: &to})
	if !strings.Contains(where, "created_at<=?") || len(args) != 1 {
		t.Fatalf("unexpected where: %s %v", where, args)
	}
}

func TestTripOrder(t *testing.T) {
	cases := map[string]string{
		"":             "created_at DESC, id DESC",
		"-startDate":   "start_date DESC, id DESC",
		"bookingId":    "booking_id ASC, id ASC",
		"id; DROP x":   "created_at DESC, id DESC",
		"-tripAmount ": "trip_amount DESC, id DESC",
	}
	for in, want := range cases {
		if got := tripOrder(in); got != want {
			t.Fatalf("tripOrder(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInvoiceGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM invoices WHERE id=").WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	_, err = InvoiceRepository{DB: db}.GetByID(context.Background(), 9)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdAmounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT amount FROM ads").
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(100.0).AddRow(250.5))

	got, err := AdRepository{DB: db}.Amounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1] != 250.5 {
		t.Fatalf("unexpected amounts: %v", got)
	}
}

func TestMaintenanceCostsScoped(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	driver := int64(3)
	mock.ExpectQuery("SELECT maintenance_cost FROM maintenances WHERE driver_id=").WithArgs(driver).
		WillReturnRows(sqlmock.NewRows([]string{"maintenance_cost"}).AddRow(500.0))

	got, err := MaintenanceRepository{DB: db}.Costs(context.Background(), &driver)
	if err != nil || len(got) != 1 || got[0] != 500 {
		t.Fatalf("unexpected result: %v %v", got, err)
	}
}

func TestDeleteMissingVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM vehicles").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (VehicleRepository{DB: db}).Delete(context.Background(), 1); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

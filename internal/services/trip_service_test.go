package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
)

func TestApplyTripPayloadBalance(t *testing.T) {
	cases := []struct {
		amount, advance, want float64
	}{
		{1500, 500, 1000},
		{1000, 1200, 0},
		{800, 0, 800},
	}
	for _, c := range cases {
		var trip models.Trip
		p := models.TripPayload{TripAmount: f64Ptr(c.amount), AdvanceAmount: f64Ptr(c.advance)}
		if err := applyTripPayload(&trip, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if trip.BalanceAmount != c.want {
			t.Fatalf("balance(%v, %v) = %v, want %v", c.amount, c.advance, trip.BalanceAmount, c.want)
		}
	}
}

func TestApplyTripPayloadRecomputesBalanceOnPartialUpdate(t *testing.T) {
	trip := models.Trip{TripAmount: 1500, AdvanceAmount: 500, BalanceAmount: 1000}
	if err := applyTripPayload(&trip, models.TripPayload{AdvanceAmount: f64Ptr(1400)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.BalanceAmount != 100 {
		t.Fatalf("expected 100, got %v", trip.BalanceAmount)
	}
}

func TestApplyTripPayloadValidation(t *testing.T) {
	cases := map[string]models.TripPayload{
		"paymentMode": {PaymentMode: strPtr("Cheque")},
		"fuelType":    {FuelType: strPtr("Electric")},
		"tripAmount":  {TripAmount: f64Ptr(-1)},
		"startDate":   {StartDate: strPtr("yesterday")},
		"bookingDate": {BookingDate: strPtr("15/01/2025")},
	}
	for field, p := range cases {
		var trip models.Trip
		err := applyTripPayload(&trip, p)
		if !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", field, err)
		}
	}
}

func TestTripPayloadAcceptsNumericFuel(t *testing.T) {
	var p models.TripPayload
	if err := json.Unmarshal([]byte(`{"fuelAmount": 450.5, "tripAmount": 2000}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var trip models.Trip
	if err := applyTripPayload(&trip, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.FuelAmount == nil || *trip.FuelAmount != "450.5" {
		t.Fatalf("unexpected fuel amount %v", trip.FuelAmount)
	}
	if got := domain.DeriveExpenses(trip).FuelCost; got != 450.5 {
		t.Fatalf("fuel cost = %v", got)
	}
}

func TestCheckTripOwner(t *testing.T) {
	trip := models.Trip{DriverID: i64Ptr(7)}
	if err := checkTripOwner(domain.RequestContext{UserID: 1, Role: domain.RoleAdmin}, trip); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
	if err := checkTripOwner(domain.RequestContext{UserID: 7, Role: domain.RoleDriver}, trip); err != nil {
		t.Fatalf("owner should pass: %v", err)
	}
	if err := checkTripOwner(domain.RequestContext{UserID: 8, Role: domain.RoleDriver}, trip); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := checkTripOwner(domain.RequestContext{UserID: 7, Role: domain.RoleDriver}, models.Trip{}); !domain.IsForbidden(err) {
		t.Fatalf("unassigned trip should be forbidden for drivers, got %v", err)
	}
}

func TestTripCreateByDriverForcesSelf(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	driverCols := []string{"id", "name", "email", "password_hash", "phone", "is_active", "created_at", "updated_at"}
	vehicleCols := []string{"id", "vehicle_type", "seating_capacity", "vehicle_number", "created_at", "updated_at"}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM drivers WHERE id=").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(driverCols).AddRow(7, "Ravi", "ravi@nrk.in", "x", "9876543210", true, fixedNow, fixedNow))
	mock.ExpectQuery("FROM vehicles WHERE id=").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(vehicleCols).AddRow(3, "Innova", 7, "ap01ab1234", fixedNow, fixedNow))
	mock.ExpectExec("INSERT INTO booking_counters").WithArgs("20250115").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT seq FROM booking_counters").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(1))
	mock.ExpectExec("INSERT INTO trips").WillReturnResult(sqlmock.NewResult(40, 1))
	mock.ExpectCommit()

	rc := domain.RequestContext{UserID: 7, Role: domain.RoleDriver}
	p := models.TripPayload{
		DriverID:      i64Ptr(99),
		VehicleID:     i64Ptr(3),
		TripAmount:    f64Ptr(2000),
		AdvanceAmount: f64Ptr(500),
	}
	trip, err := TripService{DB: db, Now: clock}.Create(context.Background(), rc, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.BookingID != "20250115001" || trip.ID != 40 {
		t.Fatalf("unexpected trip identity: %s / %d", trip.BookingID, trip.ID)
	}
	if trip.DriverID == nil || *trip.DriverID != 7 || trip.DriverName != "Ravi" {
		t.Fatalf("driver snapshot not forced to self: %+v", trip)
	}
	if trip.VehicleNumber != "AP01AB1234" || trip.VehicleType != "Innova" {
		t.Fatalf("vehicle snapshot missing: %+v", trip)
	}
	if trip.CreatedByRole != "driver" || trip.CreatedBy != 7 || trip.BalanceAmount != 1500 {
		t.Fatalf("audit or balance wrong: %+v", trip)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripGetHidesDriverDeleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	trip := sampleTrip()
	trip.IsDriverDeleted = true
	mock.ExpectQuery("FROM trips WHERE id=").WillReturnRows(tripRows(trip))
	mock.ExpectQuery("FROM trips WHERE id=").WillReturnRows(tripRows(trip))

	svc := TripService{DB: db, Now: clock}
	rc := domain.RequestContext{UserID: 7, Role: domain.RoleDriver}
	if _, err := svc.Get(context.Background(), rc, trip.ID, false); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	got, err := svc.Get(context.Background(), rc, trip.ID, true)
	if err != nil {
		t.Fatalf("includeDeleted should expose the trip: %v", err)
	}
	if got.Calc.TotalExpenses != 500 || got.Calc.Profit != 1000 {
		t.Fatalf("unexpected financials: %+v", got.Calc)
	}
}

func TestTripDeleteByDriverIsSoftAndIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	trip := sampleTrip()
	mock.ExpectQuery("FROM trips WHERE id=").WillReturnRows(tripRows(trip))
	mock.ExpectExec("UPDATE trips SET is_driver_deleted=").
		WithArgs(true, fixedNow, int64(7), trip.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted := trip
	deleted.IsDriverDeleted = true
	mock.ExpectQuery("FROM trips WHERE id=").WillReturnRows(tripRows(deleted))

	svc := TripService{DB: db, Now: clock}
	rc := domain.RequestContext{UserID: 7, Role: domain.RoleDriver}
	res, err := svc.Delete(context.Background(), rc, trip.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Trip == nil || !res.Trip.IsDriverDeleted {
		t.Fatalf("trip should be marked deleted: %+v", res)
	}
	if _, err := svc.Delete(context.Background(), rc, trip.ID, false); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripRestoreAdminOnly(t *testing.T) {
	rc := domain.RequestContext{UserID: 7, Role: domain.RoleDriver}
	if _, err := (TripService{}).Restore(context.Background(), rc, 1); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestWhatsAppURL(t *testing.T) {
	trip := sampleTrip()
	link := whatsAppURL("919876543210", tripMessage(trip, "7"))
	if !strings.HasPrefix(link, "https://wa.me/919876543210?text=") {
		t.Fatalf("unexpected link %s", link)
	}
	if strings.Contains(link, "+") {
		t.Fatalf("spaces must be percent-encoded: %s", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text := u.Query().Get("text")
	for _, want := range []string{"Booking Number: 20250114001", "From: Hyderabad", "Seating capacity: 7", "Pick-up Date: 14 Jan 2025, 9:30 am"} {
		if !strings.Contains(text, want) {
			t.Fatalf("message missing %q:\n%s", want, text)
		}
	}
}

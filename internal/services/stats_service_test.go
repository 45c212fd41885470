package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
)

func TestStatsAggregateDriverScopeAndMonth(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	t1 := models.Trip{ID: 1, BookingID: "20250105001", TripAmount: 2000, FuelAmount: strPtr("300"), PaymentMode: "Cash", CreatedByRole: "driver", CreatedBy: 7}
	t2 := models.Trip{ID: 2, BookingID: "20250106001", TripAmount: 1000, Tolls: 100, PaymentMode: "Cash", CreatedByRole: "driver", CreatedBy: 7}

	mock.ExpectQuery("FROM trips WHERE .*is_driver_deleted=0.*driver_id=\\?.*start_date>=\\?.*start_date<\\?").
		WithArgs(int64(7), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(tripRows(t1, t2))
	mock.ExpectQuery("SELECT maintenance_cost FROM maintenances WHERE driver_id=").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"maintenance_cost"}).AddRow(400.0))
	mock.ExpectQuery("SELECT amount FROM ads").
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(200.0))

	rc := domain.RequestContext{UserID: 7, Role: domain.RoleDriver}
	got, err := StatsService{DB: db}.Aggregate(context.Background(), rc, "2025-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.FleetStats{
		TotalTrips:       2,
		TotalTripAmount:  3000,
		TotalExpenses:    1000,
		TotalMaintenance: 400,
		TotalAds:         200,
		TotalProfit:      2000,
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStatsAggregateAdminUnscoped(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM trips WHERE 1=1 AND is_driver_deleted=0 ORDER BY").WillReturnRows(tripRows())
	mock.ExpectQuery("SELECT maintenance_cost FROM maintenances$").
		WillReturnRows(sqlmock.NewRows([]string{"maintenance_cost"}))
	mock.ExpectQuery("SELECT amount FROM ads").WillReturnRows(sqlmock.NewRows([]string{"amount"}))

	rc := domain.RequestContext{UserID: 1, Role: domain.RoleAdmin}
	got, err := StatsService{DB: db}.Aggregate(context.Background(), rc, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (domain.FleetStats{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}
}

func TestStatsAggregateRejectsBadMonth(t *testing.T) {
	rc := domain.RequestContext{UserID: 1, Role: domain.RoleAdmin}
	_, err := StatsService{}.Aggregate(context.Background(), rc, "2025-13")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

package services

import (
	"database/sql/driver"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
)

var fixedNow = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }
func i64Ptr(v int64) *int64     { return &v }

func nullable[T any](p *T) driver.Value {
	if p == nil {
		return nil
	}
	return *p
}

var tripColumnNames = []string{
	"id", "booking_id", "booking_date", "travels_name",
	"driver_id", "driver_name", "driver_number",
	"vehicle_id", "vehicle_type", "vehicle_number",
	"customer_name", "customer_number",
	"start_date", "from_location", "end_date", "end_location",
	"starting_reading", "ending_reading",
	"trip_amount", "advance_amount", "balance_amount", "payment_mode", "trip_amount_received_by",
	"fuel_type", "fuel_amount", "tolls", "parking_charges", "driver_beta",
	"description", "created_by_role", "created_by",
	"is_driver_deleted", "driver_deleted_at", "driver_deleted_by",
	"created_at", "updated_at",
}

func tripRows(trips ...models.Trip) *sqlmock.Rows {
	rows := sqlmock.NewRows(tripColumnNames)
	for _, t := range trips {
		var bookingDate driver.Value
		if d, err := time.Parse("2006-01-02", t.BookingDate); err == nil {
			bookingDate = d
		}
		rows.AddRow(
			t.ID, t.BookingID, bookingDate, t.TravelsName,
			nullable(t.DriverID), t.DriverName, t.DriverNumber,
			nullable(t.VehicleID), t.VehicleType, t.VehicleNumber,
			t.CustomerName, t.CustomerNumber,
			nullable(t.StartDate), t.FromLocation, nullable(t.EndDate), t.EndLocation,
			t.StartingReading, t.EndingReading,
			t.TripAmount, t.AdvanceAmount, t.BalanceAmount, t.PaymentMode, t.TripAmountReceivedBy,
			t.FuelType, nullable(t.FuelAmount), t.Tolls, t.ParkingCharges, t.DriverBeta,
			t.Description, t.CreatedByRole, t.CreatedBy,
			t.IsDriverDeleted, nullable(t.DriverDeletedAt), nullable(t.DriverDeletedBy),
			fixedNow, fixedNow,
		)
	}
	return rows
}

var companyColumnNames = []string{
	"id", "company_key", "name", "address", "website", "gst", "mobile", "logo", "stamp", "description",
	"bank_mode_of_payment", "bank_holder", "bank_branch_address", "bank_name", "bank_current_account", "bank_ifsc",
	"created_by", "updated_by", "is_deleted", "deleted_at", "created_at", "updated_at",
}

func companyRows(c models.Company) *sqlmock.Rows {
	return sqlmock.NewRows(companyColumnNames).AddRow(
		c.ID, c.Key, c.Name, c.Address, c.Website, c.GST, c.Mobile, c.Logo, c.Stamp, c.Description,
		c.Bank.ModeOfPayment, c.Bank.Holder, c.Bank.BranchAddress, c.Bank.BankName, c.Bank.CurrentAccount, c.Bank.IFSC,
		nil, nil, c.IsDeleted, nil, fixedNow, fixedNow,
	)
}

func sampleTrip() models.Trip {
	start := time.Date(2025, 1, 14, 4, 0, 0, 0, time.UTC)
	return models.Trip{
		ID:              5,
		BookingID:       "20250114001",
		BookingDate:     "2025-01-14",
		DriverID:        i64Ptr(7),
		DriverName:      "Ravi",
		DriverNumber:    "+91 98765-43210",
		VehicleType:     "Innova",
		VehicleNumber:   "AP01AB1234",
		CustomerName:    "Anil",
		CustomerNumber:  "9000000001",
		StartDate:       &start,
		FromLocation:    "Hyderabad",
		EndLocation:     "Vijayawada",
		StartingReading: 1200,
		EndingReading:   1750,
		TripAmount:      1500,
		AdvanceAmount:   500,
		BalanceAmount:   1000,
		PaymentMode:     "UPI",
		FuelType:        "Diesel",
		FuelAmount:      strPtr("Petrol: 120, CNG: 80"),
		Tolls:           50,
		DriverBeta:      250,
		CreatedByRole:   "admin",
		CreatedBy:       1,
	}
}

func sampleCompany() models.Company {
	return models.Company{
		ID:          2,
		Key:         "nrk",
		Name:        "NRK Travels",
		Address:     "Plot 12, Ameerpet, Hyderabad",
		Website:     "https://nrktravels.example",
		GST:         "36ABCDE1234F1Z5",
		Mobile:      "+919876543210",
		Description: "Thank you for travelling with us",
		Bank: models.BankDetails{
			ModeOfPayment: "NEFT",
			Holder:        "NRK Travels",
			BankName:      "SBI",
			IFSC:          "SBIN0000001",
		},
	}
}

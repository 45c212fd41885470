package models

import "time"

// Trip is a booking record. Driver and vehicle fields are snapshots taken when
// the trip is assigned and are not kept in sync afterwards.
type Trip struct {
	ID          int64  `json:"id"`
	BookingID   string `json:"bookingId"`
	BookingDate string `json:"bookingDate,omitempty"`
	TravelsName string `json:"travelsName,omitempty"`

	DriverID     *int64 `json:"driverId,omitempty"`
	DriverName   string `json:"driverName,omitempty"`
	DriverNumber string `json:"driverNumber,omitempty"`

	VehicleID     *int64 `json:"vehicleId,omitempty"`
	VehicleType   string `json:"vehicleType,omitempty"`
	VehicleNumber string `json:"vehicleNumber,omitempty"`

	CustomerName   string `json:"customerName,omitempty"`
	CustomerNumber string `json:"customerNumber,omitempty"`

	StartDate    *time.Time `json:"startDate,omitempty"`
	FromLocation string     `json:"fromLocation,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	EndLocation  string     `json:"endLocation,omitempty"`

	StartingReading float64 `json:"startingReading"`
	EndingReading   float64 `json:"endingReading"`

	TripAmount           float64 `json:"tripAmount"`
	AdvanceAmount        float64 `json:"advanceAmount"`
	BalanceAmount        float64 `json:"balanceAmount"`
	PaymentMode          string  `json:"paymentMode"`
	TripAmountReceivedBy string  `json:"tripAmountReceivedBy,omitempty"`

	FuelType       string  `json:"fuelType,omitempty"`
	FuelAmount     *string `json:"fuelAmount,omitempty"`
	Tolls          float64 `json:"tolls"`
	ParkingCharges float64 `json:"parkingCharges"`
	DriverBeta     float64 `json:"driverBeta"`

	Description string `json:"description,omitempty"`

	CreatedByRole string `json:"createdByRole"`
	CreatedBy     int64  `json:"createdBy"`

	IsDriverDeleted bool       `json:"isDriverDeleted"`
	DriverDeletedAt *time.Time `json:"driverDeletedAt,omitempty"`
	DriverDeletedBy *int64     `json:"driverDeletedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TripPayload is the create/update body. Nil fields are left untouched on update.
type TripPayload struct {
	BookingDate *string `json:"bookingDate"`
	TravelsName *string `json:"travelsName"`

	DriverID  *int64 `json:"driverId"`
	VehicleID *int64 `json:"vehicleId"`

	CustomerName   *string `json:"customerName"`
	CustomerNumber *string `json:"customerNumber"`

	StartDate    *string `json:"startDate"`
	FromLocation *string `json:"fromLocation"`
	EndDate      *string `json:"endDate"`
	EndLocation  *string `json:"endLocation"`

	StartingReading *float64 `json:"startingReading"`
	EndingReading   *float64 `json:"endingReading"`

	TripAmount           *float64 `json:"tripAmount"`
	AdvanceAmount        *float64 `json:"advanceAmount"`
	PaymentMode          *string  `json:"paymentMode"`
	TripAmountReceivedBy *string  `json:"tripAmountReceivedBy"`

	FuelType       *string     `json:"fuelType"`
	FuelAmount     *FlexString `json:"fuelAmount"`
	Tolls          *float64    `json:"tolls"`
	ParkingCharges *float64    `json:"parkingCharges"`
	DriverBeta     *float64    `json:"driverBeta"`

	Description *string `json:"description"`
}

// Allowed enum values.
var (
	TripPaymentModes = []string{"Cash", "UPI", "Credit Card"}
	FuelTypes        = []string{"Petrol", "Diesel", "CNG", "Petrol & CNG"}
)

package models

import "time"

// Maintenance is a cost event. VehicleNumber, DriverName and DriverPhone are
// snapshots captured at creation.
type Maintenance struct {
	ID                 int64     `json:"id"`
	Date               time.Time `json:"date"`
	MaintenanceType    string    `json:"maintenanceType"`
	MaintenanceCost    float64   `json:"maintenanceCost"`
	VehicleID          int64     `json:"vehicleId"`
	VehicleNumber      string    `json:"vehicleNumber"`
	KmAtMaintenance    float64   `json:"kmAtMaintenance"`
	NextOilChangeKm    *float64  `json:"nextOilChangeKm,omitempty"`
	OriginalOdometerKm float64   `json:"originalOdometerKm"`
	DriverID           int64     `json:"driverId"`
	DriverName         string    `json:"driverName"`
	DriverPhone        string    `json:"driverPhone"`
	Company            string    `json:"company,omitempty"`
	PaymentMode        string    `json:"paymentMode"`
	Description        string    `json:"description,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type MaintenancePayload struct {
	Date               *string  `json:"date"`
	MaintenanceType    *string  `json:"maintenanceType"`
	MaintenanceCost    *float64 `json:"maintenanceCost"`
	VehicleID          *int64   `json:"vehicleId"`
	KmAtMaintenance    *float64 `json:"kmAtMaintenance"`
	NextOilChangeKm    *float64 `json:"nextOilChangeKm"`
	OriginalOdometerKm *float64 `json:"originalOdometerKm"`
	DriverID           *int64   `json:"driverId"`
	Company            *string  `json:"company"`
	PaymentMode        *string  `json:"paymentMode"`
	Description        *string  `json:"description"`
}

var MaintenancePaymentModes = []string{"Cash", "Card", "Online", "Other"}

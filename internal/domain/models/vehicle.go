package models

import "time"

type Vehicle struct {
	ID              int64     `json:"id"`
	VehicleType     string    `json:"vehicleType"`
	SeatingCapacity int       `json:"seatingCapacity"`
	VehicleNumber   string    `json:"vehicleNumber"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type VehiclePayload struct {
	VehicleType     *string `json:"vehicleType"`
	SeatingCapacity *int    `json:"seatingCapacity"`
	VehicleNumber   *string `json:"vehicleNumber"`
}

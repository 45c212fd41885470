package models

import "time"

// Ad is fleet-wide marketing spend.
type Ad struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	PaymentMode string    `json:"paymentMode"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AdPayload struct {
	Date        string  `json:"date"`
	PaymentMode string  `json:"paymentMode"`
	Amount      float64 `json:"amount"`
}

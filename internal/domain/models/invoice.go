package models

import "time"

// Invoice freezes the trip's financial state at issuance; only DueDate and
// Notes may change afterwards.
type Invoice struct {
	ID            int64      `json:"id"`
	InvoiceNumber string     `json:"invoiceNumber"`
	TripID        int64      `json:"tripId"`
	BookingID     string     `json:"bookingId"`
	CompanyID     int64      `json:"companyId"`
	IssueDate     time.Time  `json:"issueDate"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Amount        float64    `json:"amount"`
	AdvanceAmount float64    `json:"advanceAmount"`
	TotalExpenses float64    `json:"totalExpenses"`
	Profit        float64    `json:"profit"`
	Notes         string     `json:"notes,omitempty"`
	CreatedBy     int64      `json:"createdBy"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type InvoiceUpdate struct {
	DueDate *string `json:"dueDate"`
	Notes   *string `json:"notes"`
}

// InvoiceDocument is everything the renderer needs for one invoice.
type InvoiceDocument struct {
	Invoice Invoice `json:"invoice"`
	Trip    Trip    `json:"trip"`
	Company Company `json:"company"`
}

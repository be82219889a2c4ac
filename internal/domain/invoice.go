package domain

import (
	"encoding/json"
	"time"
)

// Invoice status values accepted by the write operations and stored in the database.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// DateOnly is a custom type for handling date-only strings from JSON
type DateOnly struct {
	time.Time
}

// UnmarshalJSON implements custom unmarshaling for date-only strings
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	// Handle null/empty dates
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	// Parse date-only format
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON implements custom marshaling for date-only strings
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}

// Invoice represents the core domain entity for an invoice.
// Amount is stored in cents.
type Invoice struct {
	ID         string   `json:"id"`
	CustomerID string   `json:"customer_id"`
	Amount     int64    `json:"amount"`
	Status     string   `json:"status"`
	Date       DateOnly `json:"date"`
}

// InvoiceWithCustomer joins an invoice with its customer's display fields
type InvoiceWithCustomer struct {
	Invoice
	CustomerName  string `json:"name"`
	CustomerEmail string `json:"email"`
	ImageURL      string `json:"image_url"`
}

// InvoiceFilter represents filters for querying invoices
type InvoiceFilter struct {
	Query string
	Page  int
	Limit int
}

// Pagination represents pagination metadata
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// PaginatedInvoices represents a paginated list of invoices with customer fields
type PaginatedInvoices struct {
	Data       []InvoiceWithCustomer `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

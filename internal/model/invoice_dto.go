package model

// InvoiceResponse represents an invoice row in the listing, joined with
// its customer's display fields. Amount is a formatted dollar string.
type InvoiceResponse struct {
	ID       string `json:"id"`
	Amount   string `json:"amount"`
	Status   string `json:"status"`
	Date     string `json:"date"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// InvoiceFormResponse represents an invoice as loaded into the edit form.
// Amount is in dollars for prefill.
type InvoiceFormResponse struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

// InvoicesListResponse represents a paginated page of the invoice table
type InvoicesListResponse struct {
	Data       []InvoiceResponse  `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

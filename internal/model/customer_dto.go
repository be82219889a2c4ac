package model

// CustomerOptionResponse represents a customer option for the invoice
// form's select input
type CustomerOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerTableResponse represents a customer row with invoice aggregates.
// Totals are formatted dollar strings.
type CustomerTableResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int    `json:"totalInvoices"`
	TotalPending  string `json:"totalPending"`
	TotalPaid     string `json:"totalPaid"`
}

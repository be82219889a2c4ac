package domain

// Customer represents a customer that invoices are billed to
type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// CustomerSummary represents a customer row in the customers table,
// with invoice counts and totals aggregated in cents
type CustomerSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int    `json:"totalInvoices"`
	TotalPending  int64  `json:"totalPending"`
	TotalPaid     int64  `json:"totalPaid"`
}

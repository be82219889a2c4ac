package domain

// Revenue represents one month of recognized revenue for the chart
type Revenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// DashboardCards represents the headline aggregates on the overview page.
// Totals are in cents.
type DashboardCards struct {
	InvoiceCount  int   `json:"invoiceCount"`
	CustomerCount int   `json:"customerCount"`
	TotalPaid     int64 `json:"totalPaid"`
	TotalPending  int64 `json:"totalPending"`
}

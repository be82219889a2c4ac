package model

// DashboardCardsResponse represents the overview cards. Totals are
// formatted dollar strings.
type DashboardCardsResponse struct {
	NumberOfInvoices     int    `json:"numberOfInvoices"`
	NumberOfCustomers    int    `json:"numberOfCustomers"`
	TotalPaidInvoices    string `json:"totalPaidInvoices"`
	TotalPendingInvoices string `json:"totalPendingInvoices"`
}

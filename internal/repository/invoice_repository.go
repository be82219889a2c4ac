package repository

import (
	"context"

	"invoice-dashboard-backend/internal/domain"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// Write operations. Each executes a single SQL statement.
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) error
	UpdateInvoice(ctx context.Context, invoice *domain.Invoice) error
	DeleteInvoice(ctx context.Context, id string) error

	// GetInvoiceByID retrieves a single invoice by its ID
	GetInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error)

	// ListInvoices retrieves a filtered, paginated page of invoices joined
	// with their customers
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error)

	// LatestInvoices retrieves the most recent invoices joined with their
	// customers
	LatestInvoices(ctx context.Context, limit int) ([]domain.InvoiceWithCustomer, error)

	// GetRevenue retrieves the monthly revenue series for the chart
	GetRevenue(ctx context.Context) ([]domain.Revenue, error)

	// GetDashboardCards retrieves the overview card aggregates
	GetDashboardCards(ctx context.Context) (*domain.DashboardCards, error)
}

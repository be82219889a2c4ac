package repository

import (
	"context"

	"invoice-dashboard-backend/internal/domain"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	// ListCustomers retrieves all customers ordered by name, for the
	// invoice form's select input
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// FilteredCustomers retrieves the customers table with per-customer
	// invoice aggregates, filtered by name or email
	FilteredCustomers(ctx context.Context, query string) ([]domain.CustomerSummary, error)
}

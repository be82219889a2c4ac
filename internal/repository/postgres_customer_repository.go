package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"invoice-dashboard-backend/internal/domain"
)

// PostgresCustomerRepository implements CustomerRepository using PostgreSQL
type PostgresCustomerRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCustomerRepository creates a new PostgreSQL customer repository
func NewPostgresCustomerRepository(db *pgxpool.Pool) CustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

// ListCustomers retrieves all customers ordered by name
func (r *PostgresCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `
		SELECT id, name, email, image_url
		FROM customers
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Email, &customer.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customer rows: %w", err)
	}

	return customers, nil
}

// FilteredCustomers retrieves the customers table with per-customer invoice
// counts and pending/paid totals, filtered by name or email
func (r *PostgresCustomerRepository) FilteredCustomers(ctx context.Context, search string) ([]domain.CustomerSummary, error) {
	query := `
		SELECT customers.id, customers.name, customers.email, customers.image_url,
		       COUNT(invoices.id) AS total_invoices,
		       COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
		       COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE customers.name ILIKE $1 OR customers.email ILIKE $1
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC
	`

	rows, err := r.db.Query(ctx, query, "%"+search+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to list filtered customers: %w", err)
	}
	defer rows.Close()

	summaries := []domain.CustomerSummary{}
	for rows.Next() {
		var summary domain.CustomerSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Email,
			&summary.ImageURL,
			&summary.TotalInvoices,
			&summary.TotalPending,
			&summary.TotalPaid,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer summary row: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customer summary rows: %w", err)
	}

	return summaries, nil
}

package repository

import (
	"context"
	"fmt"

	"invoice-dashboard-backend/internal/domain"
)

// GetRevenue retrieves the monthly revenue series for the chart
func (r *PostgresInvoiceRepository) GetRevenue(ctx context.Context) ([]domain.Revenue, error) {
	query := `SELECT month, revenue FROM revenue`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue: %w", err)
	}
	defer rows.Close()

	revenue := []domain.Revenue{}
	for rows.Next() {
		var rev domain.Revenue
		if err := rows.Scan(&rev.Month, &rev.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan revenue row: %w", err)
		}
		revenue = append(revenue, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read revenue rows: %w", err)
	}

	return revenue, nil
}

// GetDashboardCards retrieves the overview card aggregates in one query.
// COALESCE keeps the sums at zero when the invoices table is empty.
func (r *PostgresInvoiceRepository) GetDashboardCards(ctx context.Context) (*domain.DashboardCards, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM invoices) AS invoice_count,
			(SELECT COUNT(*) FROM customers) AS customer_count,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS total_paid,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS total_pending
		FROM invoices
	`

	cards := &domain.DashboardCards{}
	err := r.db.QueryRow(ctx, query).Scan(
		&cards.InvoiceCount,
		&cards.CustomerCount,
		&cards.TotalPaid,
		&cards.TotalPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard cards: %w", err)
	}

	return cards, nil
}

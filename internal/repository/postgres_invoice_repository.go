package repository

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"invoice-dashboard-backend/internal/domain"
)

// Listing defaults. The invoice table shows six rows per page.
const (
	defaultInvoicePageSize = 6
	maxInvoicePageSize     = 100
)

// PostgresInvoiceRepository implements InvoiceRepository using PostgreSQL
type PostgresInvoiceRepository struct {
	db *pgxpool.Pool
}

// NewPostgresInvoiceRepository creates a new PostgreSQL invoice repository
func NewPostgresInvoiceRepository(db *pgxpool.Pool) InvoiceRepository {
	return &PostgresInvoiceRepository{db: db}
}

// CreateInvoice inserts a new invoice row
func (r *PostgresInvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(
		ctx,
		query,
		invoice.ID,
		invoice.CustomerID,
		invoice.Amount,
		invoice.Status,
		invoice.Date.Time,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	return nil
}

// UpdateInvoice rewrites customer, amount and status for an invoice.
// The stored date is left untouched, and a zero matched-row count is not
// an error.
func (r *PostgresInvoiceRepository) UpdateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4
	`

	_, err := r.db.Exec(
		ctx,
		query,
		invoice.CustomerID,
		invoice.Amount,
		invoice.Status,
		invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	return nil
}

// DeleteInvoice removes an invoice by id. Deleting an id that is already
// gone is a success.
func (r *PostgresInvoiceRepository) DeleteInvoice(ctx context.Context, id string) error {
	query := `DELETE FROM invoices WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	return nil
}

// GetInvoiceByID retrieves a single invoice by its ID
func (r *PostgresInvoiceRepository) GetInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `
		SELECT id, customer_id, amount, status, date
		FROM invoices
		WHERE id = $1
	`

	invoice := &domain.Invoice{}
	var date time.Time
	err := r.db.QueryRow(ctx, query, id).Scan(
		&invoice.ID,
		&invoice.CustomerID,
		&invoice.Amount,
		&invoice.Status,
		&date,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("invoice not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	invoice.Date = domain.DateOnly{Time: date}

	return invoice, nil
}

// ListInvoices retrieves a filtered, paginated page of invoices joined
// with their customers. The query term matches customer name and email
// plus the amount, status and date rendered as text.
func (r *PostgresInvoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultInvoicePageSize
	}
	if limit > maxInvoicePageSize {
		limit = maxInvoicePageSize
	}

	conditions := []string{}
	args := []interface{}{}
	argCount := 0

	if filter.Query != "" {
		argCount++
		conditions = append(conditions, fmt.Sprintf(
			`(customers.name ILIKE $%d OR customers.email ILIKE $%d OR invoices.amount::text ILIKE $%d OR invoices.date::text ILIKE $%d OR invoices.status ILIKE $%d)`,
			argCount, argCount, argCount, argCount, argCount,
		))
		args = append(args, "%"+filter.Query+"%")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id` + whereClause

	var totalItems int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))

	query := `
		SELECT invoices.id, invoices.customer_id, invoices.amount, invoices.status, invoices.date,
		       customers.name, customers.email, customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id` + whereClause + fmt.Sprintf(`
		ORDER BY invoices.date DESC
		LIMIT $%d OFFSET $%d`, argCount+1, argCount+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.InvoiceWithCustomer{}
	for rows.Next() {
		var inv domain.InvoiceWithCustomer
		var date time.Time
		if err := rows.Scan(
			&inv.ID,
			&inv.CustomerID,
			&inv.Amount,
			&inv.Status,
			&date,
			&inv.CustomerName,
			&inv.CustomerEmail,
			&inv.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		inv.Date = domain.DateOnly{Time: date}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoice rows: %w", err)
	}

	return &domain.PaginatedInvoices{
		Data: invoices,
		Pagination: domain.Pagination{
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			CurrentPage: page,
			Limit:       limit,
		},
	}, nil
}

// LatestInvoices retrieves the most recent invoices joined with their
// customers
func (r *PostgresInvoiceRepository) LatestInvoices(ctx context.Context, limit int) ([]domain.InvoiceWithCustomer, error) {
	if limit < 1 {
		limit = 5
	}

	query := `
		SELECT invoices.id, invoices.customer_id, invoices.amount, invoices.status, invoices.date,
		       customers.name, customers.email, customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.InvoiceWithCustomer{}
	for rows.Next() {
		var inv domain.InvoiceWithCustomer
		var date time.Time
		if err := rows.Scan(
			&inv.ID,
			&inv.CustomerID,
			&inv.Amount,
			&inv.Status,
			&date,
			&inv.CustomerName,
			&inv.CustomerEmail,
			&inv.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		inv.Date = domain.DateOnly{Time: date}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoice rows: %w", err)
	}

	return invoices, nil
}

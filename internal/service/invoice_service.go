package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"invoice-dashboard-backend/internal/domain"
	"invoice-dashboard-backend/internal/form"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/telemetry"
	"invoice-dashboard-backend/internal/viewcache"
)

// Messages carried by the form state when a write operation fails.
const (
	MsgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	MsgCreateDatabaseError = "Database Error: Failed to Create Invoice."
	MsgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."
	MsgUpdateDatabaseError = "Database Error: Failed to Update Invoice."
	MsgUpdateMissingID     = "Invoice ID is missing"
	MsgDeleteDatabaseError = "Database Error: Failed to Delete Invoice."
)

// InvoiceServiceError represents an error in the invoice service. Message,
// when set, is the fixed text rendered to the client.
type InvoiceServiceError struct {
	Op      string
	Message string
	Err     error
}

func (e *InvoiceServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *InvoiceServiceError) Unwrap() error {
	return e.Err
}

// InvoiceService defines the interface for invoice business logic
type InvoiceService interface {
	// Form write operations. A non-nil State is a recovered failure the
	// form renders back to the user; nil means the write succeeded and
	// the listing view was invalidated.
	CreateInvoice(ctx context.Context, fields form.InvoiceFields) *form.State
	UpdateInvoice(ctx context.Context, id string, fields form.InvoiceFields) *form.State

	// DeleteInvoice removes an invoice. Unlike create and update, a
	// database failure here is returned as an error for the caller to
	// propagate.
	DeleteInvoice(ctx context.Context, id string) error

	// Query operations
	GetInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error)
	LatestInvoices(ctx context.Context, limit int) ([]domain.InvoiceWithCustomer, error)

	// Dashboard operations
	GetRevenue(ctx context.Context) ([]domain.Revenue, error)
	GetDashboardCards(ctx context.Context) (*domain.DashboardCards, error)
}

// InvoiceServiceImpl implements the InvoiceService interface
type InvoiceServiceImpl struct {
	repository repository.InvoiceRepository
	cache      viewcache.Invalidator
	logger     *zap.Logger
	metrics    *telemetry.Metrics
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(repo repository.InvoiceRepository, cache viewcache.Invalidator, logger *zap.Logger, metrics *telemetry.Metrics) InvoiceService {
	return &InvoiceServiceImpl{
		repository: repo,
		cache:      cache,
		logger:     logger,
		metrics:    metrics,
	}
}

// CreateInvoice validates the submitted fields and inserts a new invoice
// dated today. Validation and database failures are both returned as form
// state; neither reaches the caller as an error.
func (s *InvoiceServiceImpl) CreateInvoice(ctx context.Context, fields form.InvoiceFields) *form.State {
	validated, errs := form.CreateInvoiceSchema().Validate(fields)
	if len(errs) > 0 {
		s.metrics.ObserveInvoiceWrite("create", "validation_failed")
		return &form.State{Errors: errs, Message: MsgCreateMissingFields}
	}

	invoice := &domain.Invoice{
		ID:         uuid.New().String(),
		CustomerID: validated.CustomerID,
		Amount:     validated.AmountCents,
		Status:     validated.Status,
		Date:       domain.DateOnly{Time: time.Now()},
	}

	if err := s.repository.CreateInvoice(ctx, invoice); err != nil {
		s.logger.Error("invoice insert failed", zap.Error(err))
		s.metrics.ObserveInvoiceWrite("create", "db_error")
		return &form.State{Message: MsgCreateDatabaseError}
	}

	s.metrics.ObserveInvoiceWrite("create", "success")
	s.invalidateListing(ctx)
	return nil
}

// UpdateInvoice validates the submitted fields and rewrites an existing
// invoice. The empty-id check runs before any field validation. The stored
// date is never touched.
func (s *InvoiceServiceImpl) UpdateInvoice(ctx context.Context, id string, fields form.InvoiceFields) *form.State {
	if id == "" {
		s.metrics.ObserveInvoiceWrite("update", "missing_id")
		return &form.State{
			Errors:  form.Errors{"general": {"Invalid request"}},
			Message: MsgUpdateMissingID,
		}
	}

	validated, errs := form.UpdateInvoiceSchema().Validate(fields)
	if len(errs) > 0 {
		s.metrics.ObserveInvoiceWrite("update", "validation_failed")
		return &form.State{Errors: errs, Message: MsgUpdateMissingFields}
	}

	invoice := &domain.Invoice{
		ID:         id,
		CustomerID: validated.CustomerID,
		Amount:     validated.AmountCents,
		Status:     validated.Status,
	}

	if err := s.repository.UpdateInvoice(ctx, invoice); err != nil {
		s.logger.Error("invoice update failed", zap.String("invoice_id", id), zap.Error(err))
		s.metrics.ObserveInvoiceWrite("update", "db_error")
		return &form.State{
			Errors:  form.Errors{"general": {"An error occurred"}},
			Message: MsgUpdateDatabaseError,
		}
	}

	s.metrics.ObserveInvoiceWrite("update", "success")
	s.invalidateListing(ctx)
	return nil
}

// DeleteInvoice removes an invoice by id. A database failure is returned
// to the caller; deleting an id that does not exist is a success.
func (s *InvoiceServiceImpl) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.repository.DeleteInvoice(ctx, id); err != nil {
		s.metrics.ObserveInvoiceWrite("delete", "db_error")
		return &InvoiceServiceError{Op: "delete_invoice", Message: MsgDeleteDatabaseError, Err: err}
	}

	s.metrics.ObserveInvoiceWrite("delete", "success")
	s.invalidateListing(ctx)
	return nil
}

// GetInvoiceByID retrieves a single invoice
func (s *InvoiceServiceImpl) GetInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	invoice, err := s.repository.GetInvoiceByID(ctx, id)
	if err != nil {
		return nil, &InvoiceServiceError{Op: "get_invoice", Err: err}
	}
	return invoice, nil
}

// ListInvoices retrieves a filtered, paginated page of the invoice table
func (s *InvoiceServiceImpl) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error) {
	page, err := s.repository.ListInvoices(ctx, filter)
	if err != nil {
		return nil, &InvoiceServiceError{Op: "list_invoices", Err: err}
	}
	return page, nil
}

// LatestInvoices retrieves the most recent invoices
func (s *InvoiceServiceImpl) LatestInvoices(ctx context.Context, limit int) ([]domain.InvoiceWithCustomer, error) {
	invoices, err := s.repository.LatestInvoices(ctx, limit)
	if err != nil {
		return nil, &InvoiceServiceError{Op: "latest_invoices", Err: err}
	}
	return invoices, nil
}

// GetRevenue retrieves the monthly revenue series
func (s *InvoiceServiceImpl) GetRevenue(ctx context.Context) ([]domain.Revenue, error) {
	revenue, err := s.repository.GetRevenue(ctx)
	if err != nil {
		return nil, &InvoiceServiceError{Op: "get_revenue", Err: err}
	}
	return revenue, nil
}

// GetDashboardCards retrieves the overview card aggregates
func (s *InvoiceServiceImpl) GetDashboardCards(ctx context.Context) (*domain.DashboardCards, error) {
	cards, err := s.repository.GetDashboardCards(ctx)
	if err != nil {
		return nil, &InvoiceServiceError{Op: "get_dashboard_cards", Err: err}
	}
	return cards, nil
}

// invalidateListing drops every cached page of the invoice listing view.
// The outcome never affects the operation that triggered it; failures are
// only logged.
func (s *InvoiceServiceImpl) invalidateListing(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, viewcache.InvoiceListingView); err != nil {
		s.logger.Warn("invoice listing invalidation failed", zap.Error(err))
	}
}

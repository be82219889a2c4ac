package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"invoice-dashboard-backend/internal/domain"
	"invoice-dashboard-backend/internal/form"
	"invoice-dashboard-backend/internal/viewcache"
)

type fakeInvoiceRepository struct {
	createCalls int
	updateCalls int
	deleteCalls int

	lastCreated *domain.Invoice
	lastUpdated *domain.Invoice
	lastDeleted string

	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeInvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	_ = ctx
	f.createCalls++
	f.lastCreated = invoice
	return f.createErr
}

func (f *fakeInvoiceRepository) UpdateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	_ = ctx
	f.updateCalls++
	f.lastUpdated = invoice
	return f.updateErr
}

func (f *fakeInvoiceRepository) DeleteInvoice(ctx context.Context, id string) error {
	_ = ctx
	f.deleteCalls++
	f.lastDeleted = id
	return f.deleteErr
}

func (f *fakeInvoiceRepository) GetInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	_ = ctx
	return nil, fmt.Errorf("invoice not found: %s", id)
}

func (f *fakeInvoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error) {
	_ = ctx
	_ = filter
	return &domain.PaginatedInvoices{}, nil
}

func (f *fakeInvoiceRepository) LatestInvoices(ctx context.Context, limit int) ([]domain.InvoiceWithCustomer, error) {
	_ = ctx
	_ = limit
	return nil, nil
}

func (f *fakeInvoiceRepository) GetRevenue(ctx context.Context) ([]domain.Revenue, error) {
	_ = ctx
	return nil, nil
}

func (f *fakeInvoiceRepository) GetDashboardCards(ctx context.Context) (*domain.DashboardCards, error) {
	_ = ctx
	return &domain.DashboardCards{}, nil
}

type fakeInvalidator struct {
	calls int
	views []string
	err   error
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, view string) error {
	_ = ctx
	f.calls++
	f.views = append(f.views, view)
	return f.err
}

func newInvoiceServiceForTest(repo *fakeInvoiceRepository, cache *fakeInvalidator) InvoiceService {
	return NewInvoiceService(repo, cache, zap.NewNop(), nil)
}

func validFields() form.InvoiceFields {
	return form.InvoiceFields{
		CustomerID: "3958dc9e-712f-4377-85e9-fec4b6a6442a",
		Amount:     "15.50",
		Status:     "pending",
	}
}

func TestCreateInvoiceSuccess(t *testing.T) {
	repo := &fakeInvoiceRepository{}
	cache := &fakeInvalidator{}
	svc := newInvoiceServiceForTest(repo, cache)

	state := svc.CreateInvoice(context.Background(), validFields())

	require.Nil(t, state)
	require.Equal(t, 1, repo.createCalls)

	created := repo.lastCreated
	_, err := uuid.Parse(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "3958dc9e-712f-4377-85e9-fec4b6a6442a", created.CustomerID)
	assert.Equal(t, int64(1550), created.Amount)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, time.Now().Format("2006-01-02"), created.Date.Format("2006-01-02"))

	require.Equal(t, 1, cache.calls)
	assert.Equal(t, []string{viewcache.InvoiceListingView}, cache.views)
}

func TestCreateInvoiceValidationFailure(t *testing.T) {
	repo := &fakeInvoiceRepository{}
	cache := &fakeInvalidator{}
	svc := newInvoiceServiceForTest(repo, cache)

	fields := validFields()
	fields.CustomerID = ""
	state := svc.CreateInvoice(context.Background(), fields)

	require.NotNil(t, state)
	assert.Equal(t, MsgCreateMissingFields, state.Message)
	assert.Equal(t, []string{form.MsgCustomerRequired}, state.Errors["customerId"])

	assert.Equal(t, 0, repo.createCalls, "no insert on validation failure")
	assert.Equal(t, 0, cache.calls, "no invalidation on validation failure")
}

func TestCreateInvoiceDatabaseError(t *testing.T) {
	repo := &fakeInvoiceRepository{createErr: errors.New("connection refused")}
	cache := &fakeInvalidator{}
	svc := newInvoiceServiceForTest(repo, cache)

	state := svc.CreateInvoice(context.Background(), validFields())

	require.NotNil(t, state)
	assert.Equal(t, MsgCreateDatabaseError, state.Message)
	assert.Empty(t, state.Errors)
	assert.Equal(t, 0, cache.calls, "no invalidation on database failure")
}

func TestCreateInvoiceInvalidationFailureDoesNotFailOperation(t *testing.T) {
	repo := &fakeInvoiceRepository{}
	cache := &fakeInvalidator{err: errors.New("redis down")}
	svc := newInvoiceServiceForTest(repo, cache)

	state := svc.CreateInvoice(context.Background(), validFields())

	assert.Nil(t, state)
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, 1, cache.calls)
}

func TestUpdateInvoiceSuccess(t *testing.T) {
	repo := &fakeInvoiceRepository{}
	cache := &fakeInvalidator{}
	svc := newInvoiceServiceForTest(repo, cache)

	state := svc.UpdateInvoice(context.Background(), "inv-1", validFields())

	require.Nil(t, state)
	require.Equal(t, 1, repo.updateCalls)

	updated := repo.lastUpdated
	assert.Equal(t, "inv-1", updated.ID)
	assert.Equal(t, int64(1550), updated.Amount)
	assert.True(t, updated.Date.IsZero(), "update must not carry a date")

	require.Equal(t, 1, cache.calls)
	assert.Equal(t, []string{viewcache.InvoiceListingView}, cache.views)
}

func TestUpdateInvoiceMissingID(t *testing.T) {
	repo := &fakeInvoiceRepository{}
	cache := &fakeInvalidator{}
	svc := newInvoiceServiceForTest(repo, cache)

	// Fields are invalid too; the id check must win and field validation
	// must not run.
	state := svc.UpdateInvoice(context.Background(), "", form.InvoiceFields{})

	require.NotNil(t, state)
	assert.Equal(t, MsgUpdateMissingID, state.Message)
	assert.Equal(t, form.Errors{"general": {"Invalid request"}}, state.Errors)

	assert.Equal(t, 0, repo.updateCalls)
	assert.Equal(t, 0, cache.calls)
}

func TestUpdateInvoiceValidationFailure(t *testing.T) {
	repo := &fakeInvoiceRepository{}
	cache := &fakeInvalidator{}
	svc := newInvoiceServiceForTest(repo, cache)

	fields := validFields()
	fields.Amount = "0"
	fields.Status = "overdue"
	state := svc.UpdateInvoice(context.Background(), "inv-1", fields)

	require.NotNil(t, state)
	assert.Equal(t, MsgUpdateMissingFields, state.Message)
	assert.Contains(t, state.Errors, "amount")
	assert.Contains(t, state.Errors, "status")

	assert.Equal(t, 0, repo.updateCalls)
	assert.Equal(t, 0, cache.calls)
}

func TestUpdateInvoiceDatabaseError(t *testing.T) {
	repo := &fakeInvoiceRepository{updateErr: errors.New("deadlock detected")}
	cache := &fakeInvalidator{}
	svc := newInvoiceServiceForTest(repo, cache)

	state := svc.UpdateInvoice(context.Background(), "inv-1", validFields())

	require.NotNil(t, state)
	assert.Equal(t, MsgUpdateDatabaseError, state.Message)
	assert.Equal(t, form.Errors{"general": {"An error occurred"}}, state.Errors)
	assert.Equal(t, 0, cache.calls)
}

func TestDeleteInvoiceSuccess(t *testing.T) {
	repo := &fakeInvoiceRepository{}
	cache := &fakeInvalidator{}
	svc := newInvoiceServiceForTest(repo, cache)

	err := svc.DeleteInvoice(context.Background(), "inv-1")

	require.NoError(t, err)
	assert.Equal(t, "inv-1", repo.lastDeleted)
	require.Equal(t, 1, cache.calls)
	assert.Equal(t, []string{viewcache.InvoiceListingView}, cache.views)
}

func TestDeleteInvoiceDatabaseError(t *testing.T) {
	repo := &fakeInvoiceRepository{deleteErr: errors.New("connection reset")}
	cache := &fakeInvalidator{}
	svc := newInvoiceServiceForTest(repo, cache)

	err := svc.DeleteInvoice(context.Background(), "inv-1")

	require.Error(t, err)

	var svcErr *InvoiceServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, MsgDeleteDatabaseError, svcErr.Message)
	assert.Equal(t, "delete_invoice", svcErr.Op)

	assert.Equal(t, 0, cache.calls, "no invalidation on database failure")
}

package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"invoice-dashboard-backend/internal/domain"
	"invoice-dashboard-backend/internal/form"
	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/model"
	"invoice-dashboard-backend/internal/service"
	"invoice-dashboard-backend/internal/viewcache"
)

// InvoiceHandler handles HTTP requests for invoice operations
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// CreateInvoice handles the POST /invoices endpoint
// @Summary Create an invoice
// @Description Validate the submitted form fields and insert a new invoice. The invoice date is stamped server side.
// @Tags invoices
// @Accept x-www-form-urlencoded
// @Produce json
// @Param customerId formData string true "Customer id"
// @Param amount formData number true "Amount in dollars"
// @Param status formData string true "pending or paid"
// @Success 303 "Redirect to the invoice listing"
// @Failure 422 {object} form.State "Validation or database failure"
// @Router /v1/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	fields := form.InvoiceFields{
		CustomerID: c.PostForm("customerId"),
		Amount:     c.PostForm("amount"),
		Status:     c.PostForm("status"),
	}

	if state := h.invoiceService.CreateInvoice(c.Request.Context(), fields); state != nil {
		c.JSON(StatusUnprocessableEntity, state)
		return
	}

	c.Redirect(StatusSeeOther, viewcache.InvoiceListingView)
}

// UpdateInvoice handles the PUT /invoices endpoint
// @Summary Update an invoice
// @Description Validate the submitted form fields and update the invoice named by the id field. The stored date is not changed.
// @Tags invoices
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id formData string true "Invoice id"
// @Param customerId formData string true "Customer id"
// @Param amount formData number true "Amount in dollars"
// @Param status formData string true "pending or paid"
// @Success 303 "Redirect to the invoice listing"
// @Failure 422 {object} form.State "Missing id, validation or database failure"
// @Router /v1/invoices [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id := c.PostForm("id")
	fields := form.InvoiceFields{
		CustomerID: c.PostForm("customerId"),
		Amount:     c.PostForm("amount"),
		Status:     c.PostForm("status"),
	}

	if state := h.invoiceService.UpdateInvoice(c.Request.Context(), id, fields); state != nil {
		c.JSON(StatusUnprocessableEntity, state)
		return
	}

	c.Redirect(StatusSeeOther, viewcache.InvoiceListingView)
}

// DeleteInvoice handles the DELETE /invoices/{invoiceId} endpoint
// @Summary Delete an invoice
// @Description Delete an invoice by id. Deleting an id that does not exist still succeeds.
// @Tags invoices
// @Produce json
// @Param invoiceId path string true "Invoice id"
// @Success 204 "Invoice deleted"
// @Failure 500 {object} model.ErrorResponse "Database failure"
// @Router /v1/invoices/{invoiceId} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	invoiceID, err := getPathParam(c, "invoiceId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	respondNoContent(c)
}

// GetInvoices handles the GET /invoices endpoint
// @Summary List invoices
// @Description Search and paginate the invoice table, joined with customer display fields
// @Tags invoices
// @Produce json
// @Param query query string false "Search term matched against customer and invoice fields"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 6)"
// @Success 200 {object} model.InvoicesListResponse "Page of invoices"
// @Failure 400 {object} model.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices [get]
func (h *InvoiceHandler) GetInvoices(c *gin.Context) {
	page, err := getQueryInt(c, "page", 1)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("page", err.Error()))
		return
	}

	limit, err := getQueryInt(c, "limit", 6)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("limit", err.Error()))
		return
	}

	if err := validatePagination(page, limit); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	filter := domain.InvoiceFilter{
		Query: getQueryString(c, "query"),
		Page:  page,
		Limit: limit,
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		logError(c, "failed_to_list_invoices", err, map[string]interface{}{
			"query": filter.Query,
			"page":  page,
		})
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, formatInvoicesList(result))
}

// GetLatestInvoices handles the GET /invoices/latest endpoint
// @Summary Latest invoices
// @Description Fetch the most recent invoices for the dashboard overview
// @Tags invoices
// @Produce json
// @Param limit query int false "Number of invoices (default 5)"
// @Success 200 {array} model.InvoiceResponse "Latest invoices"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices/latest [get]
func (h *InvoiceHandler) GetLatestInvoices(c *gin.Context) {
	limit, err := getQueryInt(c, "limit", 5)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("limit", err.Error()))
		return
	}

	invoices, err := h.invoiceService.LatestInvoices(c.Request.Context(), limit)
	if err != nil {
		logError(c, "failed_to_get_latest_invoices", err, nil)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, formatInvoiceRows(invoices))
}

// GetInvoiceByID handles the GET /invoices/{invoiceId} endpoint
// @Summary Get an invoice
// @Description Fetch a single invoice shaped for the edit form, with the amount converted back to dollars
// @Tags invoices
// @Produce json
// @Param invoiceId path string true "Invoice id"
// @Success 200 {object} model.InvoiceFormResponse "Invoice"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices/{invoiceId} [get]
func (h *InvoiceHandler) GetInvoiceByID(c *gin.Context) {
	invoiceID, err := getPathParam(c, "invoiceId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if strings.Contains(fmt.Sprintf("%v", err), "not found") {
			respondNotFound(c, fmt.Sprintf("Invoice not found: %s", invoiceID))
		} else {
			respondInternalServerError(c, fmt.Sprintf("Failed to retrieve invoice: %v", err))
		}
		return
	}

	respondOK(c, model.InvoiceFormResponse{
		ID:         invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     float64(invoice.Amount) / 100,
		Status:     invoice.Status,
	})
}

// formatInvoicesList formats a page of invoices for response
func formatInvoicesList(result *domain.PaginatedInvoices) model.InvoicesListResponse {
	return model.InvoicesListResponse{
		Data: formatInvoiceRows(result.Data),
		Pagination: model.PaginationResponse{
			TotalItems:  result.Pagination.TotalItems,
			TotalPages:  result.Pagination.TotalPages,
			CurrentPage: result.Pagination.CurrentPage,
			Limit:       result.Pagination.Limit,
		},
	}
}

// formatInvoiceRows formats joined invoice rows for response
func formatInvoiceRows(invoices []domain.InvoiceWithCustomer) []model.InvoiceResponse {
	rows := make([]model.InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		rows[i] = model.InvoiceResponse{
			ID:       invoice.ID,
			Amount:   formatCurrency(invoice.Amount),
			Status:   invoice.Status,
			Date:     invoice.Date.Format("2006-01-02"),
			Name:     invoice.CustomerName,
			Email:    invoice.CustomerEmail,
			ImageURL: invoice.ImageURL,
		}
	}
	return rows
}

// RegisterRoutes registers the API routes for the invoice handler
func (h *InvoiceHandler) RegisterRoutes(router *gin.Engine, authMiddleware, listingCache gin.HandlerFunc) {
	api := router.Group("/v1")

	// Invoice endpoints - all protected with auth
	invoices := api.Group("/invoices", authMiddleware)
	{
		invoices.POST("", h.CreateInvoice)
		invoices.PUT("", h.UpdateInvoice)
		invoices.GET("", listingCache, h.GetInvoices)
		invoices.GET("/latest", h.GetLatestInvoices)
		invoices.GET("/:invoiceId", h.GetInvoiceByID)
		invoices.DELETE("/:invoiceId", h.DeleteInvoice)
	}
}

package handler

import (
	"github.com/gin-gonic/gin"

	"invoice-dashboard-backend/internal/domain"
	"invoice-dashboard-backend/internal/model"
	"invoice-dashboard-backend/internal/service"
)

// CustomerHandler handles HTTP requests for customer operations
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// GetCustomers handles the GET /customers endpoint
// @Summary List customers
// @Description Fetch all customers ordered by name, for the invoice form's customer select
// @Tags customers
// @Produce json
// @Success 200 {array} model.CustomerOptionResponse "Customers"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/customers [get]
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		logError(c, "failed_to_list_customers", err, nil)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	options := make([]model.CustomerOptionResponse, len(customers))
	for i, customer := range customers {
		options[i] = model.CustomerOptionResponse{
			ID:   customer.ID,
			Name: customer.Name,
		}
	}

	respondOK(c, options)
}

// GetFilteredCustomers handles the GET /customers/filtered endpoint
// @Summary Search the customer table
// @Description Search customers by name or email, with their invoice counts and pending and paid totals
// @Tags customers
// @Produce json
// @Param query query string false "Search term"
// @Success 200 {array} model.CustomerTableResponse "Customers with invoice aggregates"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/customers/filtered [get]
func (h *CustomerHandler) GetFilteredCustomers(c *gin.Context) {
	query := getQueryString(c, "query")

	customers, err := h.customerService.FilteredCustomers(c.Request.Context(), query)
	if err != nil {
		logError(c, "failed_to_filter_customers", err, map[string]interface{}{
			"query": query,
		})
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, formatCustomerTable(customers))
}

// formatCustomerTable formats customer aggregates for response
func formatCustomerTable(customers []domain.CustomerSummary) []model.CustomerTableResponse {
	rows := make([]model.CustomerTableResponse, len(customers))
	for i, customer := range customers {
		rows[i] = model.CustomerTableResponse{
			ID:            customer.ID,
			Name:          customer.Name,
			Email:         customer.Email,
			ImageURL:      customer.ImageURL,
			TotalInvoices: customer.TotalInvoices,
			TotalPending:  formatCurrency(customer.TotalPending),
			TotalPaid:     formatCurrency(customer.TotalPaid),
		}
	}
	return rows
}

// RegisterRoutes registers the API routes for the customer handler
func (h *CustomerHandler) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := router.Group("/v1")

	customers := api.Group("/customers", authMiddleware)
	{
		customers.GET("", h.GetCustomers)
		customers.GET("/filtered", h.GetFilteredCustomers)
	}
}

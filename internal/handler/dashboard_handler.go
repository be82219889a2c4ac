package handler

import (
	"github.com/gin-gonic/gin"

	"invoice-dashboard-backend/internal/model"
	"invoice-dashboard-backend/internal/service"
)

// DashboardHandler handles HTTP requests for the dashboard overview
type DashboardHandler struct {
	invoiceService service.InvoiceService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(invoiceService service.InvoiceService) *DashboardHandler {
	return &DashboardHandler{
		invoiceService: invoiceService,
	}
}

// GetCards handles the GET /dashboard/cards endpoint
// @Summary Dashboard cards
// @Description Fetch the overview card numbers: invoice and customer counts plus paid and pending totals
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.DashboardCardsResponse "Card data"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/dashboard/cards [get]
func (h *DashboardHandler) GetCards(c *gin.Context) {
	cards, err := h.invoiceService.GetDashboardCards(c.Request.Context())
	if err != nil {
		logError(c, "failed_to_get_dashboard_cards", err, nil)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, model.DashboardCardsResponse{
		NumberOfInvoices:     cards.InvoiceCount,
		NumberOfCustomers:    cards.CustomerCount,
		TotalPaidInvoices:    formatCurrency(cards.TotalPaid),
		TotalPendingInvoices: formatCurrency(cards.TotalPending),
	})
}

// GetRevenue handles the GET /revenue endpoint
// @Summary Revenue chart data
// @Description Fetch the monthly revenue rows behind the dashboard chart
// @Tags dashboard
// @Produce json
// @Success 200 {array} domain.Revenue "Monthly revenue"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/revenue [get]
func (h *DashboardHandler) GetRevenue(c *gin.Context) {
	revenue, err := h.invoiceService.GetRevenue(c.Request.Context())
	if err != nil {
		logError(c, "failed_to_get_revenue", err, nil)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, revenue)
}

// RegisterRoutes registers the API routes for the dashboard handler
func (h *DashboardHandler) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := router.Group("/v1")

	dashboard := api.Group("/dashboard", authMiddleware)
	{
		dashboard.GET("/cards", h.GetCards)
	}

	api.GET("/revenue", authMiddleware, h.GetRevenue)
}

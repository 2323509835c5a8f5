package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kanhaiyya/billing-api/internal/application/service"
	"github.com/kanhaiyya/billing-api/internal/presentation/http/dto/request"
	"github.com/kanhaiyya/billing-api/internal/presentation/http/dto/response"
)

// CartHandler handles per-table cart endpoints
type CartHandler struct {
	cartService    *service.CartService
	billingService *service.BillingService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, billingService *service.BillingService) *CartHandler {
	return &CartHandler{cartService: cartService, billingService: billingService}
}

// SetLine handles PUT /cart/:table
func (h *CartHandler) SetLine(c *gin.Context) {
	var req request.SetCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tableID := c.Param("table")
	if err := h.cartService.SetQuantity(tableID, req.ItemName, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart updated", h.cartService.Snapshot(tableID))
}

// Get handles GET /cart/:table
func (h *CartHandler) Get(c *gin.Context) {
	response.OK(c, "Cart retrieved", h.cartService.Snapshot(c.Param("table")))
}

// Clear handles DELETE /cart/:table
func (h *CartHandler) Clear(c *gin.Context) {
	h.cartService.Clear(c.Param("table"))
	response.OK(c, "Cart cleared", nil)
}

// Tables handles GET /cart. Returns the tables with open carts.
func (h *CartHandler) Tables(c *gin.Context) {
	response.OK(c, "Open tables", gin.H{"tables": h.cartService.Tables()})
}

// Preview handles GET /cart/:table/preview. Computes the totals a finalize
// would produce without creating a bill.
func (h *CartHandler) Preview(c *gin.Context) {
	discount := decimal.Zero
	if raw := c.Query("discount_percent"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			response.BadRequest(c, "Invalid discount_percent")
			return
		}
		discount = parsed
	}

	bill, err := h.billingService.Preview(c.Request.Context(), c.Param("table"), discount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill preview", bill)
}

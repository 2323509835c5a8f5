package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kanhaiyya/billing-api/internal/application/service"
	"github.com/kanhaiyya/billing-api/internal/domain/repository"
	"github.com/kanhaiyya/billing-api/internal/presentation/http/dto/request"
	"github.com/kanhaiyya/billing-api/internal/presentation/http/dto/response"
	"github.com/kanhaiyya/billing-api/pkg/pagination"
)

// BillHandler handles bill ledger endpoints
type BillHandler struct {
	billingService *service.BillingService
	printerService *service.PrinterService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingService *service.BillingService, printerService *service.PrinterService) *BillHandler {
	return &BillHandler{billingService: billingService, printerService: printerService}
}

// Finalize handles POST /bills. Turns a table's cart into a permanent bill.
func (h *BillHandler) Finalize(c *gin.Context) {
	var req request.FinalizeBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	bill, err := h.billingService.Finalize(c.Request.Context(), &service.FinalizeInput{
		TableID:         req.TableID,
		Mobile:          req.Mobile,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill finalized", bill)
}

// Search handles GET /bills
func (h *BillHandler) Search(c *gin.Context) {
	var req request.BillSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	params := &repository.BillSearchParams{
		BillNo:     req.BillNo,
		Mobile:     req.Mobile,
		Pagination: &req.PaginationParams,
	}
	params.Pagination.Validate()

	result, err := h.billingService.SearchBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved", result)
}

// Get handles GET /bills/:bill_no
func (h *BillHandler) Get(c *gin.Context) {
	bill, err := h.billingService.GetBill(c.Request.Context(), c.Param("bill_no"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved", bill)
}

// Receipt handles GET /bills/:bill_no/receipt. Returns the archived
// flat-text receipt.
func (h *BillHandler) Receipt(c *gin.Context) {
	bill, err := h.billingService.GetBill(c.Request.Context(), c.Param("bill_no"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.String(200, h.billingService.ReceiptText(bill))
}

// Print handles POST /bills/:bill_no/print. Sends the receipt to the
// thermal printer.
func (h *BillHandler) Print(c *gin.Context) {
	if err := h.printerService.PrintBill(c.Request.Context(), c.Param("bill_no")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", nil)
}

// Export handles GET /bills/export. Streams the matching bills as a
// workbook.
func (h *BillHandler) Export(c *gin.Context) {
	params := &repository.BillSearchParams{
		BillNo:     c.Query("bill_no"),
		Mobile:     c.Query("mobile"),
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 100},
	}

	f, err := h.billingService.ExportBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bills.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Error(err)
	}
}

package request

import (
	"github.com/shopspring/decimal"

	"github.com/kanhaiyya/billing-api/pkg/pagination"
)

// FinalizeBillRequest represents the finalize bill request body.
// DiscountPercent defaults to zero when omitted.
type FinalizeBillRequest struct {
	TableID         string          `json:"table" binding:"required"`
	Mobile          string          `json:"mobile"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// BillSearchRequest represents the bill search query parameters.
// BillNo and Mobile are exact matches, combined with AND when both are set.
type BillSearchRequest struct {
	BillNo string `form:"bill_no"`
	Mobile string `form:"mobile"`
	pagination.PaginationParams
}

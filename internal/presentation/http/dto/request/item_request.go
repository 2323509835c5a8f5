package request

import "github.com/shopspring/decimal"

// CreateItemRequest represents the create item request body.
// Price is in rupees; the API stores paise internally.
type CreateItemRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
}

// UpdateItemRequest represents the update item request body
type UpdateItemRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}
